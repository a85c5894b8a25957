package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCubesCmd(shared *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "cubes",
		Short: "List the cubes available on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cubes, err := shared.server.FetchCubes(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				names := make([]string, 0, len(cubes))
				for _, cube := range cubes {
					names = append(names, cube.Name)
				}
				return printJSON(names)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CUBE\tDIMENSIONS\tMEASURES")
			for _, cube := range cubes {
				fmt.Fprintf(w, "%s\t%d\t%d\n", cube.Name, len(cube.Dimensions), len(cube.Measures))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print cube names as JSON")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
