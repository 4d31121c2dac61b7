package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/roomcraft/internal/common"
	"github.com/Veraticus/roomcraft/internal/model"
)

// rawSource accepts both the category-grouped and the legacy flat layout.
type rawSource struct {
	Categories []rawCategory      `yaml:"categories"`
	Products   []rawLegacyProduct `yaml:"products"`
}

type rawCategory struct {
	Name     string       `yaml:"name"`
	URL      string       `yaml:"url"`
	Products []rawProduct `yaml:"products"`
}

type rawOption struct {
	Type   string   `yaml:"type"`
	Values []string `yaml:"values"`
}

type rawDimensions struct {
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Height float64 `yaml:"height"`
	Unit   string  `yaml:"unit"`
}

type rawProduct struct {
	Dimensions    *rawDimensions `yaml:"dimensions"`
	Name          string         `yaml:"name"`
	URL           string         `yaml:"url"`
	Price         string         `yaml:"price"`
	OriginalPrice string         `yaml:"original_price"`
	Description   string         `yaml:"description"`
	Category      string         `yaml:"category"`
	Collection    string         `yaml:"collection"`
	Tag           string         `yaml:"tag"`
	Delivery      string         `yaml:"delivery"`
	Options       []rawOption    `yaml:"options"`
	Images        []struct {
		URL string `yaml:"url"`
	} `yaml:"images"`
}

type rawLegacyProduct struct {
	Name                string `yaml:"name"`
	URL                 string `yaml:"url"`
	Price               string `yaml:"price"`
	OriginalPrice       string `yaml:"original_price"`
	Description         string `yaml:"description"`
	DetailedDescription string `yaml:"detailed_description"`
	Tag                 string `yaml:"tag"`
	Delivery            string `yaml:"delivery"`
	Images              []struct {
		URL   string `yaml:"url"`
		Local string `yaml:"local"`
		Alt   string `yaml:"alt"`
	} `yaml:"images"`
	Index int `yaml:"index"`
}

// LoadFile reads a catalog from path. A missing or empty file yields an empty
// catalog; a file that cannot be parsed is an error wrapping
// common.ErrCatalogLoad.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("Products file not found, using empty catalog", "path", path)
			return Empty(), nil
		}
		return nil, fmt.Errorf("%w: %w", common.ErrCatalogLoad, err)
	}

	c, err := Load(data)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded product catalog", "path", path, "products", c.Len())
	return c, nil
}

// Load parses catalog YAML into an immutable catalog.
func Load(data []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Empty(), nil
	}

	var src rawSource
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrCatalogLoad, err)
	}

	products := make([]model.Product, 0, len(src.Products)+countGrouped(src.Categories))
	next := func() string {
		return "product-" + strconv.Itoa(len(products)+1)
	}

	for _, group := range src.Categories {
		for _, raw := range group.Products {
			products = append(products, fromGrouped(next(), group, raw))
		}
	}
	for _, raw := range src.Products {
		products = append(products, fromLegacy(next(), raw))
	}

	if len(products) == 0 {
		slog.Warn("No products found in catalog source")
	}

	return newCatalog(products), nil
}

func countGrouped(groups []rawCategory) int {
	n := 0
	for _, g := range groups {
		n += len(g.Products)
	}
	return n
}

func fromGrouped(id string, group rawCategory, raw rawProduct) model.Product {
	label := raw.Category
	if label == "" {
		label = group.Name
	}
	category := NormalizeCategory(label)
	if category == model.CategoryFurniture {
		// Fall back to the name when the source label says nothing useful.
		category = NormalizeCategory(raw.Name)
	}

	images := make([]model.Image, 0, len(raw.Images))
	for _, img := range raw.Images {
		if img.URL == "" {
			continue
		}
		images = append(images, model.Image{URL: img.URL, Alt: raw.Name})
	}

	return model.Product{
		ID:            id,
		Name:          raw.Name,
		Description:   raw.Description,
		Price:         parsePrice(raw.Price),
		OriginalPrice: parseOptionalPrice(raw.OriginalPrice),
		Currency:      model.DefaultCurrency,
		Images:        images,
		Category:      category,
		Tags:          uniqueTags(raw.Collection, raw.Tag),
		Dimensions:    productDimensions(raw),
		InStock:       true,
		Delivery:      raw.Delivery,
		ExternalURL:   raw.URL,
	}
}

func fromLegacy(id string, raw rawLegacyProduct) model.Product {
	images := make([]model.Image, 0, len(raw.Images))
	for _, img := range raw.Images {
		url := img.URL
		if img.Local != "" {
			url = "/products/" + img.Local
		}
		if url == "" {
			continue
		}
		images = append(images, model.Image{URL: url, Alt: img.Alt})
	}

	return model.Product{
		ID:                  id,
		Name:                raw.Name,
		Description:         raw.Description,
		DetailedDescription: raw.DetailedDescription,
		Price:               parsePrice(raw.Price),
		OriginalPrice:       parseOptionalPrice(raw.OriginalPrice),
		Currency:            model.DefaultCurrency,
		Images:              images,
		Category:            NormalizeCategory(raw.Name),
		Tags:                uniqueTags(raw.Tag),
		Dimensions:          inferDimensions(raw.Name, nil),
		InStock:             true,
		Delivery:            raw.Delivery,
		ExternalURL:         raw.URL,
	}
}

func productDimensions(raw rawProduct) model.Dimensions {
	if d := raw.Dimensions; d != nil && d.Width > 0 && d.Depth > 0 && d.Height > 0 {
		scale := 1.0
		switch strings.ToLower(d.Unit) {
		case "cm", "centimeters":
			scale = 0.01
		}
		return model.Dimensions{
			Width:  d.Width * scale,
			Depth:  d.Depth * scale,
			Height: d.Height * scale,
			Unit:   unitMeters,
		}
	}
	return inferDimensions(raw.Name, raw.Options)
}

func uniqueTags(values ...string) []string {
	tags := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		tags = append(tags, v)
	}
	return tags
}

// parsePrice strips currency symbols and separators ("S$1,999.00" -> 1999).
// Unparseable or negative prices become 0.
func parsePrice(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseOptionalPrice(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v := parsePrice(s)
	return &v
}
