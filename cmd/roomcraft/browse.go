package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/roomcraft/internal/cli"
	"github.com/Veraticus/roomcraft/internal/common"
	"github.com/Veraticus/roomcraft/internal/tui"
	"github.com/Veraticus/roomcraft/internal/tui/themes"
)

func browseCmd() *cobra.Command {
	var (
		exclude []string
		theme   string
		inline  bool
	)

	cmd := &cobra.Command{
		Use:   "browse <category> [start-product-name]",
		Short: "Flip through the alternatives in a category",
		Long: `Browse a category one product at a time, the way the "next item"
button of a room planner cycles alternatives. Press n for the next product,
p to go back, x to exclude the current one and Enter to pick it.`,
		Example: `  roomcraft browse sofa
  roomcraft browse sofa "Harper Sofa" --exclude product-4`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			products, err := loadCatalog(settings)
			if err != nil {
				return err
			}

			start := ""
			if len(args) == 2 {
				start = args[1]
			}

			chosen, picked, err := tui.Run(cmd.Context(),
				tui.WithCatalog(products),
				tui.WithCategory(args[0], start),
				tui.WithExclude(splitList(exclude)),
				tui.WithTheme(themes.GetTheme(theme)),
				tui.WithAltScreen(!inline),
			)
			if err != nil {
				if errors.Is(err, common.ErrNoProducts) {
					return common.NewUserError(fmt.Sprintf("No products to browse in %q", args[0]), err)
				}
				return err
			}

			if !picked {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing picked"))
				return nil
			}
			return cli.RenderProduct(cmd.OutOrStdout(), chosen)
		},
	}

	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "product IDs to skip (repeatable)")
	cmd.Flags().StringVar(&theme, "theme", "default", "color theme: default or linen")
	cmd.Flags().BoolVar(&inline, "inline", false, "render inline instead of in the alternate screen")

	return cmd
}
