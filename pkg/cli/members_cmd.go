package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newMembersCmd(shared *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "members <cube> <level>",
		Short: "List the members of a level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := shared.server.FetchMembers(
				cmd.Context(), args[0], args[1], shared.cfg.Server.Locale)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(members)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tCAPTION")
			for _, member := range members {
				fmt.Fprintf(w, "%s\t%s\t%s\n", member.Key, member.Name, member.Caption)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print members as JSON")
	return cmd
}
