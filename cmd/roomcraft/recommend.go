package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/Veraticus/roomcraft/internal/cli"
	"github.com/Veraticus/roomcraft/internal/common"
	"github.com/Veraticus/roomcraft/internal/model"
	"github.com/Veraticus/roomcraft/internal/recommend"
)

// requestFlags are the flags shared by every command that builds a
// recommendation request.
type requestFlags struct {
	roomType    string
	unit        string
	currency    string
	language    string
	categories  []string
	collections []string
	products    []string
	length      float64
	width       float64
	height      float64
	budget      float64
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.roomType, "room-type", string(model.RoomTypeLivingRoom), "room type: living_room, bedroom, dining_room or home_office")
	cmd.Flags().Float64Var(&f.length, "length", 5, "room length")
	cmd.Flags().Float64Var(&f.width, "width", 4, "room width")
	cmd.Flags().Float64Var(&f.height, "height", 2.7, "room height")
	cmd.Flags().StringVar(&f.unit, "unit", string(model.UnitMeters), "dimension unit: meters, feet, centimeters or inches")
	cmd.Flags().Float64Var(&f.budget, "budget", 0, "total budget (omit for no budget)")
	cmd.Flags().StringVar(&f.currency, "currency", model.DefaultCurrency, "budget currency code")
	cmd.Flags().StringVar(&f.language, "language", "en", "response language: en or zh")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "restrict to categories (repeatable)")
	cmd.Flags().StringSliceVar(&f.collections, "collection", nil, "preferred collections (repeatable)")
	cmd.Flags().StringSliceVar(&f.products, "product", nil, "restrict to product IDs (repeatable)")
}

func (f *requestFlags) request(cmd *cobra.Command) model.RecommendationRequest {
	req := model.RecommendationRequest{
		RoomType: model.RoomType(f.roomType),
		Language: f.language,
		Dimensions: model.RoomDimensions{
			Length: f.length,
			Width:  f.width,
			Height: f.height,
			Unit:   model.DimensionUnit(f.unit),
		},
		Preferences: model.Preferences{
			SelectedCategories:  splitList(f.categories),
			SelectedCollections: splitList(f.collections),
			PreferredProducts:   splitList(f.products),
		},
	}
	if cmd.Flags().Changed("budget") {
		req.Budget = &model.Budget{Amount: f.budget, Currency: f.currency}
	}
	return req
}

func recommendCmd() *cobra.Command {
	var (
		flags    requestFlags
		detected []string
		smart    bool
		explain  bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend furniture for a room",
		Long: `Select one product per priority category for the room type, within the
budget, and place each one along the walls.

With --detected the selection follows furniture labels from an image
detector instead. With --smart an AI provider picks from the candidates,
falling back to rule-based selection when no provider answers usefully.`,
		Example: `  roomcraft recommend --room-type bedroom --length 4 --width 3.5 --budget 2500
  roomcraft recommend --detected sofa,table,lamp --budget 1800
  roomcraft recommend --smart --collection scandinavian`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			products, err := loadCatalog(settings)
			if err != nil {
				return err
			}
			req := flags.request(cmd)
			out := cmd.OutOrStdout()

			if smart {
				adv, cleanup, err := createAdvisor(ctx, settings)
				if err != nil {
					return err
				}
				defer cleanup()

				result, err := newEngine(products, adv, settings).SmartRecommend(ctx, req)
				if err != nil {
					return requestError(err)
				}
				if asJSON {
					return cli.WriteJSON(out, result)
				}
				return cli.RenderSmartResult(out, result)
			}

			engine := newEngine(products, nil, settings)
			var result model.RecommendationResult
			if labels := splitList(detected); len(labels) > 0 {
				result, err = engine.RecommendFromDetected(ctx, req, labels)
			} else {
				result, err = engine.Recommend(ctx, req)
			}
			if err != nil {
				return requestError(err)
			}

			if asJSON {
				return cli.WriteJSON(out, result)
			}

			var scores map[string]recommend.Score
			if explain {
				if scores, err = engine.Explain(req, result.Recommendations); err != nil {
					return requestError(err)
				}
			}
			return cli.RenderRecommendation(out, result, flags.currency, scores)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&detected, "detected", nil, "furniture labels detected in a room photo")
	cmd.Flags().BoolVar(&smart, "smart", false, "let an AI provider pick from the candidates")
	cmd.Flags().BoolVar(&explain, "explain", false, "show the score breakdown of each pick")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.MarkFlagsMutuallyExclusive("smart", "detected")

	cmd.AddCommand(recommendBatchCmd())

	return cmd
}

func recommendBatchCmd() *cobra.Command {
	var (
		workers int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file.json>...",
		Short: "Run many recommendation requests from JSON files",
		Long: `Each file holds a JSON array of requests, or a single request object.
A request may carry a "name" and "detected" labels alongside the usual
roomType, dimensions, budget and preferences fields.

Press Ctrl+C to stop; requests not yet started are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			products, err := loadCatalog(settings)
			if err != nil {
				return err
			}

			var requests []recommend.BatchRequest
			for _, path := range args {
				batch, err := readBatchFile(path)
				if err != nil {
					return err
				}
				requests = append(requests, batch...)
			}
			if len(requests) == 0 {
				return common.NewUserError("The batch files contain no requests", common.ErrInvalidRequest)
			}

			if !cmd.Flags().Changed("workers") {
				workers = settings.BatchWorkers
			}

			var done atomic.Int64
			total := len(requests)
			errOut := cmd.ErrOrStderr()
			handler := cli.NewInterruptHandler(errOut)
			ctx := handler.HandleInterrupts(cmd.Context(), func() (int, int) {
				return int(done.Load()), total
			})

			bar := cli.NewProgressBar(errOut, total, "Recommending")
			opts := recommend.BatchOptions{
				Workers: workers,
				OnResult: func(r recommend.BatchResult) {
					done.Add(1)
					_ = bar.Add(1)
					if r.Error != nil {
						common.LogError(r.Error, "Batch request failed", common.Fields{
							"index": r.Index,
							"name":  r.Name,
						})
					}
				},
			}

			results, stats := newEngine(products, nil, settings).RecommendBatch(ctx, requests, opts)
			_ = bar.Finish()

			if handler.WasInterrupted() {
				slog.Info("Batch stopped early", "finished", done.Load(), "total", total)
			}

			if asJSON {
				return cli.WriteJSON(cmd.OutOrStdout(), batchOutput(results))
			}
			return cli.RenderBatchSummary(cmd.OutOrStdout(), stats)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", recommend.DefaultBatchOptions().Workers, "concurrent requests")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print every result as JSON")

	return cmd
}

// batchEntry is the JSON shape of one batch result.
type batchEntry struct {
	Result *model.RecommendationResult `json:"result,omitempty"`
	Name   string                      `json:"name,omitempty"`
	Error  string                      `json:"error,omitempty"`
	Index  int                         `json:"index"`
}

func batchOutput(results []recommend.BatchResult) []batchEntry {
	out := make([]batchEntry, len(results))
	for i, r := range results {
		out[i] = batchEntry{Index: r.Index, Name: r.Name}
		if r.Error != nil {
			out[i].Error = r.Error.Error()
			continue
		}
		result := r.Result
		out[i].Result = &result
	}
	return out
}

// readBatchFile decodes a JSON array of requests or a single request.
func readBatchFile(path string) ([]recommend.BatchRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("Could not read batch file %s", path), err)
	}
	requests, err := parseBatch(data)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("Batch file %s is not valid JSON", path), err)
	}
	return requests, nil
}

func parseBatch(data []byte) ([]recommend.BatchRequest, error) {
	var requests []recommend.BatchRequest
	if err := json.Unmarshal(data, &requests); err == nil {
		return requests, nil
	}

	var single recommend.BatchRequest
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("expected a request or an array of requests: %w", err)
	}
	return []recommend.BatchRequest{single}, nil
}

// requestError turns request validation failures into user-facing errors.
func requestError(err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidRequest), errors.Is(err, common.ErrUnsupportedDimensions):
		return common.NewUserError("Invalid recommendation request", err)
	case errors.Is(err, common.ErrNoProducts):
		return common.NewUserError("The catalog has no products to recommend", err)
	default:
		return err
	}
}
