package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datawheel/olap-client-go/pkg/query"
	"github.com/datawheel/olap-client-go/pkg/tesseract"
)

func newQueryCmd(shared *app) *cobra.Command {
	var (
		drilldowns []string
		measures   []string
		cuts       []string
		properties []string
		filters    []string
		format     string
		limit      int
		offset     int
		sortBy     string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "query <cube>",
		Short: "Build and execute a data query against a cube",
		Example: `  olapq query trade_i_baci_a_92 \
    --drilldown Year --drilldown "Exporter Country" \
    --measure "Trade Value" \
    --cut "Year=2019,2020" \
    --sort "Trade Value.desc" --limit 10 --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cube, err := shared.server.FetchCube(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			q := query.New(cube)
			for _, name := range drilldowns {
				if err := q.SetDrilldown(name); err != nil {
					return err
				}
			}
			for _, name := range measures {
				if err := q.AddMeasure(name); err != nil {
					return err
				}
			}
			for _, name := range properties {
				if err := q.SetProperty(name); err != nil {
					return err
				}
			}
			for _, spec := range cuts {
				level, members, err := parseCut(spec)
				if err != nil {
					return err
				}
				if err := q.SetCut(level, members); err != nil {
					return err
				}
			}
			for _, spec := range filters {
				name, condition, err := parseFilter(spec)
				if err != nil {
					return err
				}
				q.SetFilter(name, condition)
			}
			if format != "" {
				q.SetFormat(query.Format(format))
			}
			if limit > 0 {
				q.SetPagination(limit, offset)
			}
			if sortBy != "" {
				name, direction, err := parseSort(sortBy)
				if err != nil {
					return err
				}
				if err := q.SetSorting(name, direction); err != nil {
					return err
				}
			}
			q.SetLocale(shared.cfg.Server.Locale)

			if dryRun {
				relative, err := shared.server.QueryURL(q, tesseract.EndpointLogicLayer)
				if err != nil {
					return err
				}
				fmt.Println(relative)
				return nil
			}

			resp, err := shared.server.Execute(cmd.Context(), q, tesseract.EndpointLogicLayer)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(resp.Body)
			return err
		},
	}

	cmd.Flags().StringArrayVar(&drilldowns, "drilldown", nil, "level to break results out by (repeatable)")
	cmd.Flags().StringArrayVar(&measures, "measure", nil, "measure to aggregate (repeatable)")
	cmd.Flags().StringArrayVar(&cuts, "cut", nil, `level member restriction as "Level=key1,key2" (repeatable)`)
	cmd.Flags().StringArrayVar(&properties, "property", nil, "property column to include (repeatable)")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, `measure constraint as "Measure.gt.100" (repeatable)`)
	cmd.Flags().StringVar(&format, "format", "", "response format: csv, jsonarrays, jsonrecords or xls")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of rows")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of rows to skip")
	cmd.Flags().StringVar(&sortBy, "sort", "", `sort key as "Measure.asc" or "Measure.desc"`)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the query URL instead of executing it")
	return cmd
}

// parseCut splits "Level=key1,key2" into the level name and its member keys.
func parseCut(spec string) (string, []string, error) {
	level, keys, ok := strings.Cut(spec, "=")
	if !ok || level == "" || keys == "" {
		return "", nil, fmt.Errorf("invalid cut %q: expected \"Level=key1,key2\"", spec)
	}
	return level, strings.Split(keys, ","), nil
}

// parseFilter splits "Measure.gt.100" into the measure name and a condition.
// The measure name may itself contain dots, so the split runs from the right.
func parseFilter(spec string) (string, query.Condition, error) {
	parts := strings.Split(spec, ".")
	if len(parts) < 3 {
		return "", query.Condition{}, fmt.Errorf("invalid filter %q: expected \"Measure.gt.100\"", spec)
	}
	value, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "", query.Condition{}, fmt.Errorf("invalid filter value in %q: %w", spec, err)
	}
	comparison := query.Comparison(parts[len(parts)-2])
	switch comparison {
	case query.GT, query.GTE, query.LT, query.LTE, query.EQ, query.NEQ:
	default:
		return "", query.Condition{}, fmt.Errorf("invalid filter comparison %q in %q", comparison, spec)
	}
	name := strings.Join(parts[:len(parts)-2], ".")
	return name, query.Condition{Comparison: comparison, Value: value}, nil
}

// parseSort splits "Measure.asc" into the measure name and a direction. A
// bare measure name sorts descending.
func parseSort(spec string) (string, query.Direction, error) {
	dot := strings.LastIndex(spec, ".")
	if dot < 0 {
		return spec, query.Descending, nil
	}
	name, direction := spec[:dot], query.Direction(spec[dot+1:])
	switch direction {
	case query.Ascending, query.Descending:
		return name, direction, nil
	default:
		return "", "", fmt.Errorf("invalid sort direction %q in %q", direction, spec)
	}
}
