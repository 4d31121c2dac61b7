package advisor

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/Veraticus/roomcraft/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// labels are the localized headings of the user prompt.
type labels struct {
	Heading     string
	Room        string
	RoomType    string
	Dimensions  string
	Preferences string
	Categories  string
	Collections string
	Budget      string
	None        string
	NoLimit     string
	Products    string
	Instruction string
}

var englishLabels = labels{
	Heading:     "Please recommend furniture for this room.",
	Room:        "Room:",
	RoomType:    "Room type",
	Dimensions:  "Dimensions",
	Preferences: "Preferences:",
	Categories:  "Selected categories",
	Collections: "Selected collections",
	Budget:      "Budget",
	None:        "None",
	NoLimit:     "No limit",
	Products:    "Candidate products",
	Instruction: "Choose 3 to 10 of the products above and explain your choice.",
}

var chineseLabels = labels{
	Heading:     "请为以下房间推荐家具。",
	Room:        "房间信息：",
	RoomType:    "房间类型",
	Dimensions:  "房间尺寸",
	Preferences: "用户偏好：",
	Categories:  "家具类别",
	Collections: "风格系列",
	Budget:      "预算",
	None:        "无",
	NoLimit:     "无限制",
	Products:    "候选商品",
	Instruction: "请从以上商品中选择3到10个，并说明理由。",
}

// PromptBuilder renders advisor prompts from embedded templates.
type PromptBuilder struct {
	system *template.Template
	user   *template.Template
}

// NewPromptBuilder parses the embedded templates.
func NewPromptBuilder() (*PromptBuilder, error) {
	funcMap := template.FuncMap{
		"formatAmount": formatAmount,
		"truncate":     truncate,
		"join":         strings.Join,
		"inc":          func(i int) int { return i + 1 },
	}

	pb := &PromptBuilder{}
	for name, dst := range map[string]**template.Template{"system": &pb.system, "user": &pb.user} {
		filename := fmt.Sprintf("templates/%s.tmpl", name)
		tmpl, err := template.New(name + ".tmpl").Funcs(funcMap).ParseFS(templateFS, filename)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		*dst = tmpl
	}
	return pb, nil
}

type systemData struct {
	Chinese bool
}

type userData struct {
	Budget      *model.Budget
	Labels      labels
	RoomType    model.RoomType
	Unit        model.DimensionUnit
	Categories  []string
	Collections []string
	Candidates  []model.Product
	Length      float64
	Width       float64
	Height      float64
}

// isChinese reports whether the request asks for Chinese output.
func isChinese(language string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(language)), "zh")
}

// System renders the system prompt for a language.
func (pb *PromptBuilder) System(language string) (string, error) {
	var buf bytes.Buffer
	if err := pb.system.Execute(&buf, systemData{Chinese: isChinese(language)}); err != nil {
		return "", fmt.Errorf("failed to execute system template: %w", err)
	}
	return buf.String(), nil
}

// User renders the user prompt listing the room, preferences and candidates.
func (pb *PromptBuilder) User(req model.RecommendationRequest, candidates []model.Product) (string, error) {
	unit := req.Dimensions.Unit
	if unit == "" {
		unit = model.UnitMeters
	}
	data := userData{
		Labels:      englishLabels,
		RoomType:    req.RoomType,
		Length:      req.Dimensions.Length,
		Width:       req.Dimensions.Width,
		Height:      req.Dimensions.Height,
		Unit:        unit,
		Categories:  req.Preferences.SelectedCategories,
		Collections: req.Preferences.SelectedCollections,
		Budget:      req.Budget,
		Candidates:  candidates,
	}
	if isChinese(req.Language) {
		data.Labels = chineseLabels
	}

	var buf bytes.Buffer
	if err := pb.user.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute user template: %w", err)
	}
	return buf.String(), nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// truncate shortens s to at most maxLen runes.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
