package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDescribeCmd(shared *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <cube>",
		Short: "Show the dimensions, levels, properties and measures of a cube",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cube, err := shared.server.FetchCube(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("cube %s\n", cube.Name)
			for _, dimension := range cube.Dimensions {
				fmt.Printf("  dimension %s (%s)\n", dimension.Name, dimension.Type)
				for _, hierarchy := range dimension.Hierarchies {
					fmt.Printf("    hierarchy %s\n", hierarchy.Name)
					for _, level := range hierarchy.Levels {
						fmt.Printf("      level %s\n", level.EffectiveName())
						for _, property := range level.Properties {
							fmt.Printf("        property %s\n", property.EffectiveName())
						}
					}
				}
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, measure := range cube.Measures {
				fmt.Fprintf(w, "  measure %s\t%s\n", measure.Name, measure.Aggregator)
			}
			return w.Flush()
		},
	}
	return cmd
}
