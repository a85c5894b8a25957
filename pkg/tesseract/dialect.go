// Package tesseract implements the Tesseract OLAP server dialect: the
// LogicLayer URL serializer, schema JSON decoding, and the HTTP client.
package tesseract

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/datawheel/olap-client-go/pkg/apperrors"
	"github.com/datawheel/olap-client-go/pkg/query"
	"github.com/datawheel/olap-client-go/pkg/schema"
)

// Endpoint families exposed by a Tesseract server.
const (
	EndpointLogicLayer = "logiclayer"
	EndpointAggregate  = "aggregate"
)

// Dialect serializes queries for Tesseract OLAP servers.
type Dialect struct{}

var _ query.Dialect = Dialect{}

// URL converts q into a relative URL for the given endpoint family. Only the
// LogicLayer endpoint is implemented; the legacy aggregate endpoint is
// recognized but rejected. The serializer does not re-validate q: callers
// are expected to have checked Validate already.
func (Dialect) URL(q *query.Query, endpoint string) (string, error) {
	switch endpoint {
	case EndpointLogicLayer:
		return LogicLayerURL(q), nil
	case EndpointAggregate:
		return "", fmt.Errorf("aggregate endpoint: %w", apperrors.ErrNotSupported)
	default:
		return "", fmt.Errorf("endpoint %q: %w", endpoint, apperrors.ErrNotSupported)
	}
}

// LogicLayerURL serializes q into a LogicLayer URL. The parameter order is
// fixed and every multi-valued parameter is sorted before joining, so the
// output is canonical regardless of the order of setter calls; servers can
// cache on the resulting string.
func LogicLayerURL(q *query.Query) string {
	var pairs []string
	add := func(key, value string) {
		if value != "" {
			pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
		}
	}

	add("cube", q.Cube.Name)
	add("measures", strings.Join(sortedKeys(q.Measures), ","))

	var drilldowns, properties []string
	for _, dimension := range sortedKeys(q.Drilldowns) {
		slot := q.Drilldowns[dimension]
		if slot.Level != nil {
			drilldowns = append(drilldowns, slot.Level.EffectiveName())
		}
		for _, property := range slot.Properties {
			properties = append(properties, property.EffectiveName())
		}
	}
	sort.Strings(drilldowns)
	sort.Strings(properties)
	add("drilldowns", strings.Join(drilldowns, ","))
	add("properties", strings.Join(properties, ","))

	var filters []string
	for _, name := range sortedKeys(q.Filters) {
		filters = append(filters, serializeFilter(q.Filters[name]))
	}
	add("filters", strings.Join(filters, ","))

	var exclude []string
	for _, dimension := range sortedKeys(q.Cuts) {
		cut := q.Cuts[dimension]
		if cut.Level == nil {
			continue
		}
		name := cut.Level.EffectiveName()
		members := make([]string, 0, len(cut.Members))
		for member := range cut.Members {
			members = append(members, member)
		}
		sort.Strings(members)
		add(name, strings.Join(members, ","))
		if cut.Exclusive {
			exclude = append(exclude, name)
		}
	}
	sort.Strings(exclude)
	add("exclude", strings.Join(exclude, ","))

	if q.Pagination.Page > 0 {
		limit := strconv.Itoa(q.Pagination.Page)
		if q.Pagination.Offset > 0 {
			limit += "," + strconv.Itoa(q.Pagination.Offset)
		}
		add("limit", limit)
	}

	if q.Sorting.Measure != "" {
		add("sort", q.Sorting.Measure+"."+string(q.Sorting.Direction))
	}

	if q.TimePrecision != "" && q.TimeValue != "" {
		add("time", q.TimePrecision+"."+q.TimeValue)
	}

	// Later calculations of the same kind override earlier ones.
	last := make(map[query.CalculationKind]query.Calculation)
	for _, calc := range q.Calculations {
		last[calc.Kind] = calc
	}
	if calc, ok := last[query.CalculationGrowth]; ok {
		add("growth", serializeGrowth(calc))
	}
	if calc, ok := last[query.CalculationRCA]; ok {
		add("rca", serializeRCA(calc))
	}
	if calc, ok := last[query.CalculationTopK]; ok {
		add("top", serializeTopK(calc))
	}

	for _, option := range []string{"debug", "exclude_default_members", "parents", "sparse"} {
		if q.Options[option] {
			add(option, "true")
		}
	}

	add("locale", q.Locale)

	return fmt.Sprintf("data.%s?%s", q.Format, strings.Join(pairs, "&"))
}

// serializeFilter renders "<name>.<op>.<value>" with an optional
// ".<joint>.<op>.<value>" tail.
func serializeFilter(f *query.Filter) string {
	out := fmt.Sprintf("%s.%s.%d", f.ValueName(), f.First.Comparison, f.First.Value)
	if f.Joint != "" && f.Second != nil {
		out = fmt.Sprintf("%s.%s.%s.%d", out, f.Joint, f.Second.Comparison, f.Second.Value)
	}
	return out
}

func serializeGrowth(calc query.Calculation) string {
	period := levelName(calc.Params["period"])
	value := measureName(calc.Params["value"])
	if period == "" || value == "" {
		return ""
	}
	return period + "," + value
}

func serializeRCA(calc query.Calculation) string {
	location := levelName(calc.Params["location"])
	category := levelName(calc.Params["category"])
	value := measureName(calc.Params["value"])
	if location == "" || category == "" || value == "" {
		return ""
	}
	return location + "," + category + "," + value
}

func serializeTopK(calc query.Calculation) string {
	amount, ok := calc.Params["amount"].(int)
	category := levelName(calc.Params["category"])
	value := measureName(calc.Params["value"])
	order, _ := calc.Params["order"].(string)
	if !ok || category == "" || value == "" || order == "" {
		return ""
	}
	return fmt.Sprintf("%d,%s,%s,%s", amount, category, value, order)
}

// levelName returns the effective name of a level-typed parameter.
func levelName(value any) string {
	if level, ok := value.(*schema.Level); ok && level != nil {
		return level.EffectiveName()
	}
	return ""
}

// measureName accepts a measure or the string name of a calculation result.
func measureName(value any) string {
	switch v := value.(type) {
	case *schema.Measure:
		if v != nil {
			return v.Name
		}
	case string:
		return v
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
