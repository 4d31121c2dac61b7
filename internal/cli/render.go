package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/roomcraft/internal/model"
	"github.com/Veraticus/roomcraft/internal/recommend"
	"github.com/Veraticus/roomcraft/internal/service"
)

// FormatPrice renders an amount with its currency.
func FormatPrice(amount float64, currency string) string {
	if currency == "" {
		currency = model.DefaultCurrency
	}
	return fmt.Sprintf("%s %.2f", currency, amount)
}

// FormatDimensions renders product dimensions in meters.
func FormatDimensions(d model.Dimensions) string {
	return fmt.Sprintf("%.2f × %.2f × %.2f m", d.Width, d.Depth, d.Height)
}

// renderTable lays out rows under a header with aligned columns.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(cells []string) string {
		rendered := make([]string, len(cells))
		for i, cell := range cells {
			rendered[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, TableHeaderStyle.Render(line(headers)))
	for _, row := range rows {
		lines = append(lines, line(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderProducts writes a product table.
func RenderProducts(w io.Writer, products []model.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No products found"))
		return err
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.ID,
			p.Name,
			string(p.Category),
			FormatPrice(p.Price, p.Currency),
			FormatDimensions(p.Dimensions),
			strings.Join(p.Tags, ", "),
		})
	}

	table := renderTable([]string{"ID", "Name", "Category", "Price", "Size (W × D × H)", "Tags"}, rows)
	_, err := fmt.Fprintf(w, "%s\n%s\n", table, SubtleStyle.Render(fmt.Sprintf("%d products", len(products))))
	return err
}

// RenderProduct writes a detail box for one product.
func RenderProduct(w io.Writer, p model.Product) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("ID:"), p.ID)
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Category:"), p.Category)
	price := FormatPrice(p.Price, p.Currency)
	if p.OriginalPrice != nil && *p.OriginalPrice > p.Price {
		price += " " + SubtleStyle.Render("(was "+FormatPrice(*p.OriginalPrice, p.Currency)+")")
	}
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Price:"), price)
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Size:"), FormatDimensions(p.Dimensions))
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Tags:"), strings.Join(p.Tags, ", "))
	}
	stock := StyleSuccess("in stock")
	if !p.InStock {
		stock = StyleWarning("out of stock")
	}
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Stock:"), stock)
	if p.Delivery != "" {
		fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Delivery:"), p.Delivery)
	}
	if p.ExternalURL != "" {
		fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Link:"), p.ExternalURL)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", p.Description)
	}

	_, err := fmt.Fprintln(w, RenderBox(p.Name, strings.TrimRight(b.String(), "\n")))
	return err
}

// RenderCategories writes the category summary table.
func RenderCategories(w io.Writer, categories []model.CategorySummary) error {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{string(c.ID), c.Name, fmt.Sprintf("%d", c.ProductCount)})
	}
	_, err := fmt.Fprintln(w, renderTable([]string{"ID", "Name", "Products"}, rows))
	return err
}

// RenderRoomPriorities writes the category priority list of a room type.
func RenderRoomPriorities(w io.Writer, roomType model.RoomType, priorities []model.CategoryPriority) error {
	rows := make([][]string, 0, len(priorities))
	for _, c := range priorities {
		rows = append(rows, []string{fmt.Sprintf("%d", c.Priority), string(c.ID), c.Name})
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n",
		StyleTitle(fmt.Sprintf("Categories for %s", roomType)),
		renderTable([]string{"Priority", "ID", "Name"}, rows))
	return err
}

var strategyTitles = map[model.SelectionStrategy]string{
	model.StrategyRuleBased: "Recommended furniture",
	model.StrategyDetected:  "Furniture for detected items",
	model.StrategyAI:        "AI-selected furniture",
	model.StrategyRelaxed:   "General recommendations",
}

// RenderRecommendation writes a recommendation result. When scores is
// non-nil each row carries its score breakdown.
func RenderRecommendation(w io.Writer, result model.RecommendationResult, currency string, scores map[string]recommend.Score) error {
	headers := []string{"#", "Product", "Price", "Position (x, z)", "Rotation"}
	if scores != nil {
		headers = append(headers, "Price fit", "Spatial fit", "Collection", "Score")
	}
	headers = append(headers, "Why")

	rows := make([][]string, 0, len(result.Recommendations))
	for i, rec := range result.Recommendations {
		row := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%s\n%s", rec.ProductName, SubtleStyle.Render(rec.ProductID)),
			FormatPrice(rec.Price, currency),
			fmt.Sprintf("%.2f, %.2f", rec.Position.X, rec.Position.Z),
			fmt.Sprintf("%.0f°", rec.Rotation),
		}
		if scores != nil {
			s := scores[rec.ProductID]
			row = append(row,
				fmt.Sprintf("%d", s.PriceFit),
				fmt.Sprintf("%d", s.SpatialFit),
				fmt.Sprintf("%d", s.Collection),
				BoldStyle.Render(fmt.Sprintf("%d", s.Total())))
		}
		row = append(row, rec.Reasoning)
		rows = append(rows, row)
	}

	title := strategyTitles[result.Strategy]
	if title == "" {
		title = strategyTitles[model.StrategyRuleBased]
	}

	parts := []string{FormatTitle(title)}
	if result.Reasoning != "" {
		parts = append(parts, FormatInfo(result.Reasoning))
	}
	parts = append(parts, renderTable(headers, rows), "")

	total := fmt.Sprintf("%s Total: %s", MoneyIcon, FormatPrice(result.TotalPrice, currency))
	switch {
	case result.BudgetExceeded && result.ExceededAmount != nil:
		parts = append(parts, total, FormatWarning(fmt.Sprintf("Over budget by %s", FormatPrice(*result.ExceededAmount, currency))))
	default:
		parts = append(parts, total)
	}

	_, err := fmt.Fprintln(w, strings.Join(parts, "\n"))
	return err
}

// RenderSmartResult writes an AI or rule-based product selection.
func RenderSmartResult(w io.Writer, result model.SmartResult) error {
	label := strategyTitles[result.Strategy]
	if result.Strategy == model.StrategyAI {
		label = RobotIcon + " " + label
	}
	if _, err := fmt.Fprintln(w, FormatTitle(label)); err != nil {
		return err
	}
	if result.Reasoning != "" {
		if _, err := fmt.Fprintln(w, FormatInfo(result.Reasoning)); err != nil {
			return err
		}
	}
	return RenderProducts(w, result.Products)
}

// RenderBatchSummary writes the statistics of a batch run.
func RenderBatchSummary(w io.Writer, stats service.BatchStats) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Statistics:\n", ChartIcon)
	fmt.Fprintf(&b, "  • Requests: %d\n", stats.Requests)
	if stats.Requests > 0 {
		fmt.Fprintf(&b, "  • Succeeded: %d (%.1f%%)\n", stats.Succeeded,
			float64(stats.Succeeded)/float64(stats.Requests)*100)
	} else {
		fmt.Fprintf(&b, "  • Succeeded: %d\n", stats.Succeeded)
	}
	fmt.Fprintf(&b, "  • Failed: %d\n", stats.Failed)
	fmt.Fprintf(&b, "  • Over budget: %d\n", stats.OverBudget)

	strategies := make([]string, 0, len(stats.ByStrategy))
	for s := range stats.ByStrategy {
		strategies = append(strategies, string(s))
	}
	sort.Strings(strategies)
	for _, s := range strategies {
		fmt.Fprintf(&b, "  • %s: %d\n", s, stats.ByStrategy[model.SelectionStrategy(s)])
	}
	fmt.Fprintf(&b, "  • Time taken: %s", stats.Duration.Round(time.Millisecond))

	_, err := fmt.Fprintln(w, RenderBox("Batch Complete", b.String()))
	return err
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
