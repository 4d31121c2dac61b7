package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/roomcraft/internal/cli"
	"github.com/Veraticus/roomcraft/internal/common"
	"github.com/Veraticus/roomcraft/internal/model"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query the product catalog",
	}

	cmd.AddCommand(catalogSearchCmd())
	cmd.AddCommand(catalogShowCmd())
	cmd.AddCommand(catalogCategoriesCmd())
	cmd.AddCommand(catalogNextCmd())

	return cmd
}

func catalogSearchCmd() *cobra.Command {
	var (
		query       string
		categories  []string
		collections []string
		ids         []string
		maxPrice    float64
		limit       int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search products by text, category, collection, ID and price",
		Example: `  roomcraft catalog search --category sofa --max-price 1500
  roomcraft catalog search --query harper --limit 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			products, err := loadCatalog(settings)
			if err != nil {
				return err
			}

			params := model.SearchParams{
				Query:       query,
				Categories:  splitList(categories),
				Collections: splitList(collections),
				ProductIDs:  splitList(ids),
				Limit:       limit,
			}
			if cmd.Flags().Changed("max-price") {
				params.MaxPrice = &maxPrice
			}

			results := products.Search(params)
			if asJSON {
				return cli.WriteJSON(cmd.OutOrStdout(), results)
			}
			return cli.RenderProducts(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "text matched against name, description and tags")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "categories to include (repeatable)")
	cmd.Flags().StringSliceVar(&collections, "collection", nil, "collections to include (repeatable)")
	cmd.Flags().StringSliceVar(&ids, "id", nil, "restrict to product IDs (repeatable)")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price")
	cmd.Flags().IntVar(&limit, "limit", model.DefaultSearchLimit, "maximum results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func catalogShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			products, err := loadCatalog(settings)
			if err != nil {
				return err
			}

			p, ok := products.ProductByID(args[0])
			if !ok {
				return common.NewUserError(fmt.Sprintf("No product with ID %q", args[0]), common.ErrNoProducts)
			}
			if asJSON {
				return cli.WriteJSON(cmd.OutOrStdout(), p)
			}
			return cli.RenderProduct(cmd.OutOrStdout(), p)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func catalogCategoriesCmd() *cobra.Command {
	var (
		roomType string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories, or the priority list of a room type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			products, err := loadCatalog(settings)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if roomType == "" {
				summaries := products.Categories()
				if asJSON {
					return cli.WriteJSON(out, summaries)
				}
				return cli.RenderCategories(out, summaries)
			}

			rt := model.RoomType(roomType)
			if !rt.IsValid() {
				return common.NewUserError(fmt.Sprintf("Unknown room type %q", roomType), common.ErrInvalidRequest)
			}
			priorities := products.CategoriesByRoomType(rt)
			if asJSON {
				return cli.WriteJSON(out, priorities)
			}
			return cli.RenderRoomPriorities(out, rt, priorities)
		},
	}

	cmd.Flags().StringVar(&roomType, "room-type", "", "show the category priorities of a room type")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func catalogNextCmd() *cobra.Command {
	var (
		exclude []string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "next <category> <current-name>",
		Short: "Show the next product in a category after the current one",
		Example: `  roomcraft catalog next sofa "Harper 3 Seater Sofa" --exclude product-7`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			products, err := loadCatalog(settings)
			if err != nil {
				return err
			}

			next, ok := products.NextInCategory(args[0], args[1], splitList(exclude))
			if !ok {
				return common.NewUserError(
					fmt.Sprintf("No other %s products after %q", args[0], args[1]),
					common.ErrNoProducts)
			}
			if asJSON {
				return cli.WriteJSON(cmd.OutOrStdout(), next)
			}
			return cli.RenderProduct(cmd.OutOrStdout(), next)
		},
	}

	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "product IDs to skip (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
