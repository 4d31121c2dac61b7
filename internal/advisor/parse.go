package advisor

import (
	"encoding/json"
	"strings"

	"github.com/Veraticus/roomcraft/internal/llm"
	"github.com/Veraticus/roomcraft/internal/model"
	"github.com/Veraticus/roomcraft/internal/recommend"
)

// maxScannedProducts caps products recovered by scanning free text.
const maxScannedProducts = 10

type adviceJSON struct {
	Reasoning             string `json:"reasoning"`
	RecommendedProductIDs []any  `json:"recommendedProductIds"`
}

// ParseAdvice validates a raw advisor response against the candidates. It
// reads the first JSON object in the text; when that yields no known
// product ID it falls back to scanning the text for candidate IDs and names.
// Only IDs present in candidates are ever returned.
func ParseAdvice(raw string, candidates []model.Product) recommend.AdviceResult {
	result := recommend.AdviceResult{Raw: raw, Kind: recommend.AdviceParseError}

	known := make(map[string]bool, len(candidates))
	for _, p := range candidates {
		known[p.ID] = true
	}

	reason := "no JSON object in response"
	if obj, ok := llm.ExtractJSONObject(raw); ok {
		var parsed adviceJSON
		if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
			reason = "malformed JSON: " + err.Error()
		} else {
			ids := validIDs(parsed.RecommendedProductIDs, known)
			if len(ids) > 0 {
				result.Kind = recommend.AdviceOK
				result.ProductIDs = ids
				result.Reasoning = strings.TrimSpace(parsed.Reasoning)
				return result
			}
			reason = "no known product IDs in JSON"
		}
	}

	if ids := scanForProducts(raw, candidates); len(ids) > 0 {
		result.Kind = recommend.AdviceOK
		result.ProductIDs = ids
		result.Reasoning = strings.TrimSpace(raw)
		return result
	}

	result.Reason = reason + "; no candidate mentioned in text"
	return result
}

func validIDs(values []any, known map[string]bool) []string {
	var ids []string
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		id, ok := v.(string)
		if !ok {
			continue
		}
		id = strings.TrimSpace(id)
		if !known[id] || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// scanForProducts returns candidates whose ID or name appears in text, in
// candidate order.
func scanForProducts(text string, candidates []model.Product) []string {
	lower := strings.ToLower(text)
	var ids []string
	for _, p := range candidates {
		if len(ids) == maxScannedProducts {
			break
		}
		if containsID(text, p.ID) || (p.Name != "" && strings.Contains(lower, strings.ToLower(p.Name))) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// containsID reports whether id occurs in text without running into a
// following digit, so product-1 does not match product-12.
func containsID(text, id string) bool {
	if id == "" {
		return false
	}
	for offset := 0; ; {
		idx := strings.Index(text[offset:], id)
		if idx < 0 {
			return false
		}
		end := offset + idx + len(id)
		if end == len(text) || text[end] < '0' || text[end] > '9' {
			return true
		}
		offset = end
	}
}
