package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/roomcraft/internal/model"
)

const unitMeters = "meters"

var (
	// Matches "W220/250 x D95 x H85cm"; only the first width alternative is used.
	combinedSizePattern = regexp.MustCompile(`(?i)W\s*(\d+(?:\.\d+)?)(?:\s*/\s*\d+(?:\.\d+)?)?\s*x\s*D\s*(\d+(?:\.\d+)?)\s*x\s*H\s*(\d+(?:\.\d+)?)\s*cm`)
	centimeterPattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*cm`)
)

type sizeRule struct {
	keywords   []string
	dimensions model.Dimensions
}

// nameSizeRules give typical sizes by product name keyword, in order.
var nameSizeRules = []sizeRule{
	{keywords: []string{"sectional"}, dimensions: model.Dimensions{Width: 2.5, Depth: 1.8, Height: 0.85, Unit: unitMeters}},
	{keywords: []string{"3 seater", "3-seater"}, dimensions: model.Dimensions{Width: 2.0, Depth: 0.9, Height: 0.85, Unit: unitMeters}},
	{keywords: []string{"2 seater", "2-seater"}, dimensions: model.Dimensions{Width: 1.6, Depth: 0.9, Height: 0.85, Unit: unitMeters}},
	{keywords: []string{"armchair", "chair"}, dimensions: model.Dimensions{Width: 0.8, Depth: 0.8, Height: 0.85, Unit: unitMeters}},
	{keywords: []string{"table", "desk"}, dimensions: model.Dimensions{Width: 1.2, Depth: 0.6, Height: 0.75, Unit: unitMeters}},
}

var defaultDimensions = model.Dimensions{Width: 1.5, Depth: 0.8, Height: 0.85, Unit: unitMeters}

// inferDimensions derives a product's size. Options are consulted first,
// then the name keyword table.
func inferDimensions(name string, options []rawOption) model.Dimensions {
	if dims, ok := dimensionsFromCombinedOption(options); ok {
		return dims
	}
	if dims, ok := dimensionsFromSeparateOptions(options); ok {
		return dims
	}
	return dimensionsFromName(name)
}

func dimensionsFromCombinedOption(options []rawOption) (model.Dimensions, bool) {
	for _, opt := range options {
		for _, v := range opt.Values {
			m := combinedSizePattern.FindStringSubmatch(v)
			if m == nil {
				continue
			}
			return model.Dimensions{
				Width:  cmToMeters(m[1]),
				Depth:  cmToMeters(m[2]),
				Height: cmToMeters(m[3]),
				Unit:   unitMeters,
			}, true
		}
	}
	return model.Dimensions{}, false
}

func dimensionsFromSeparateOptions(options []rawOption) (model.Dimensions, bool) {
	var dims model.Dimensions
	found := false
	for _, opt := range options {
		target := optionTarget(&dims, opt.Type)
		if target == nil {
			continue
		}
		for _, v := range opt.Values {
			m := centimeterPattern.FindStringSubmatch(v)
			if m == nil {
				continue
			}
			*target = cmToMeters(m[1])
			found = true
			break
		}
	}
	if !found {
		return model.Dimensions{}, false
	}

	// Missing axes keep the generic default.
	if dims.Width == 0 {
		dims.Width = defaultDimensions.Width
	}
	if dims.Depth == 0 {
		dims.Depth = defaultDimensions.Depth
	}
	if dims.Height == 0 {
		dims.Height = defaultDimensions.Height
	}
	dims.Unit = unitMeters
	return dims, true
}

func optionTarget(dims *model.Dimensions, optionType string) *float64 {
	switch strings.ToLower(strings.TrimSpace(optionType)) {
	case "width":
		return &dims.Width
	case "depth":
		return &dims.Depth
	case "height":
		return &dims.Height
	default:
		return nil
	}
}

func dimensionsFromName(name string) model.Dimensions {
	lower := strings.ToLower(name)
	for _, rule := range nameSizeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.dimensions
			}
		}
	}
	return defaultDimensions
}

func cmToMeters(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v / 100
}
