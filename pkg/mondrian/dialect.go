// Package mondrian implements the Mondrian REST server dialect.
//
// Mondrian exposes a single aggregate endpoint per cube, with repeated
// bracketed parameters (drilldown[], cut[], measures[]) instead of the
// comma-joined lists the LogicLayer dialect uses.
package mondrian

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/datawheel/olap-client-go/pkg/apperrors"
	"github.com/datawheel/olap-client-go/pkg/query"
)

// EndpointAggregate is the only endpoint family Mondrian REST exposes.
const EndpointAggregate = "aggregate"

// Dialect serializes queries for Mondrian REST servers.
type Dialect struct{}

var _ query.Dialect = Dialect{}

// URL converts q into a relative aggregate URL. An empty endpoint selects
// the aggregate family as well.
func (Dialect) URL(q *query.Query, endpoint string) (string, error) {
	if endpoint != "" && endpoint != EndpointAggregate {
		return "", fmt.Errorf("endpoint %q: %w", endpoint, apperrors.ErrNotSupported)
	}
	return AggregateURL(q), nil
}

// AggregateURL serializes q into a Mondrian aggregate URL. Parameter keys
// are emitted in a fixed order and multi-valued parameters are sorted, so
// the output is canonical regardless of setter-call order.
func AggregateURL(q *query.Query) string {
	var pairs []string
	add := func(key, value string) {
		if value != "" {
			pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
		}
	}
	addAll := func(key string, values []string) {
		sort.Strings(values)
		for _, value := range values {
			add(key, value)
		}
	}

	var captions, drilldowns, properties []string
	for _, slot := range q.Drilldowns {
		if slot.Level != nil {
			drilldowns = append(drilldowns, slot.Level.EffectiveName())
		}
		if slot.Caption != nil && slot.Level != nil {
			captions = append(captions, slot.Level.Name+"."+slot.Caption.Name)
		}
		for _, property := range slot.Properties {
			properties = append(properties, property.Level+"."+property.Name)
		}
	}
	addAll("caption[]", captions)

	var cuts []string
	for _, cut := range q.Cuts {
		if cut.Level == nil || len(cut.Members) == 0 {
			continue
		}
		cuts = append(cuts, serializeCut(cut))
	}
	addAll("cut[]", cuts)

	if q.Options["debug"] {
		add("debug", "true")
	}
	if q.Options["distinct"] {
		add("distinct", "true")
	}

	addAll("drilldown[]", drilldowns)

	var filters []string
	for _, filter := range q.Filters {
		filters = append(filters, serializeFilter(filter))
	}
	addAll("filter[]", filters)

	if q.Pagination.Page > 0 {
		add("limit", strconv.Itoa(q.Pagination.Page))
	}

	measures := make([]string, 0, len(q.Measures))
	for name := range q.Measures {
		measures = append(measures, name)
	}
	addAll("measures[]", measures)

	if q.Options["nonempty"] {
		add("nonempty", "true")
	}

	if q.Pagination.Offset > 0 {
		add("offset", strconv.Itoa(q.Pagination.Offset))
	}

	if q.Sorting.Measure != "" {
		if q.Sorting.Direction == query.Descending {
			add("order_desc", "true")
		}
		add("order", q.Sorting.Measure)
	}

	if q.Options["parents"] {
		add("parents", "true")
	}

	addAll("properties[]", properties)

	if q.Options["sparse"] {
		add("sparse", "true")
	}

	return fmt.Sprintf("%s/aggregate.%s?%s",
		url.PathEscape(q.Cube.Name), q.Format, strings.Join(pairs, "&"))
}

// serializeCut renders "Level.&[m]" for a single member and
// "{Level.&[a],Level.&[b]}" for several.
func serializeCut(cut *query.Cut) string {
	name := cut.Level.EffectiveName()
	members := make([]string, 0, len(cut.Members))
	for member := range cut.Members {
		members = append(members, member)
	}
	sort.Strings(members)

	if len(members) == 1 {
		return fmt.Sprintf("%s.&[%s]", name, members[0])
	}
	parts := make([]string, 0, len(members))
	for _, member := range members {
		parts = append(parts, fmt.Sprintf("%s.&[%s]", name, member))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// serializeFilter renders "name op value", with the optional second
// condition appended in the same style.
func serializeFilter(f *query.Filter) string {
	out := fmt.Sprintf("%s %s %d", f.ValueName(), f.First.Comparison, f.First.Value)
	if f.Joint != "" && f.Second != nil {
		out = fmt.Sprintf("%s %s %s %d", out, f.Joint, f.Second.Comparison, f.Second.Value)
	}
	return out
}
