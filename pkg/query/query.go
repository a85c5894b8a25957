// Package query implements the mutable query builder bound to a schema.Cube.
//
// A Query accumulates user intent (drilldowns, cuts, measures, filters,
// calculations, pagination, sorting, locale, options) through setter calls
// that resolve names against the cube tree. Serialization into a URL is the
// job of a Dialect implementation; the Query itself stays dialect-agnostic.
//
// A Query has exactly one logical owner; issue N concurrent requests with N
// independent Query instances over the same (immutable, shareable) cube.
package query

import (
	"fmt"

	"github.com/datawheel/olap-client-go/pkg/apperrors"
	"github.com/datawheel/olap-client-go/pkg/schema"
)

// Format selects the response encoding requested from the server.
type Format string

const (
	CSV         Format = "csv"
	JSONArrays  Format = "jsonarrays"
	JSONRecords Format = "jsonrecords"
	XLS         Format = "xls"
)

// Comparison is a numeric comparison operator, stored as its short code.
type Comparison string

const (
	GT  Comparison = "gt"
	GTE Comparison = "gte"
	LT  Comparison = "lt"
	LTE Comparison = "lte"
	EQ  Comparison = "eq"
	NEQ Comparison = "neq"
)

// Joint combines the two conditions of a filter.
type Joint string

const (
	JointAnd Joint = "and"
	JointOr  Joint = "or"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Condition is one comparison constraint of a filter.
type Condition struct {
	Comparison Comparison
	Value      int
}

// Pagination holds the limit parameters of a query. A Page of zero means no
// limit is requested.
type Pagination struct {
	Page   int
	Offset int
}

// Sorting holds the sort key and direction. An empty Measure means no
// sorting is requested.
type Sorting struct {
	Measure   string
	Direction Direction
}

// Cut restricts a level to a subset of member keys. Exclusive inverts the
// restriction; ForMatch enables the dialect-specific matching mode.
type Cut struct {
	Level     *schema.Level
	Members   map[string]struct{}
	Exclusive bool
	ForMatch  bool
}

// Drilldown requests results broken out by a level, optionally with extra
// property columns and a caption property. Properties are keyed by their
// effective name.
type Drilldown struct {
	Level      *schema.Level
	Properties map[string]*schema.Property
	Caption    *schema.Property
}

// Filter is a post-aggregation numeric constraint. When Measure is set the
// filter targets that measure; otherwise Reference names a calculation
// result, interpreted by the dialect at serialization time.
type Filter struct {
	Measure   *schema.Measure
	Reference string
	First     Condition
	Joint     Joint
	Second    *Condition
}

// ValueName returns the measure name for measure-bound filters, the raw
// reference otherwise.
func (f *Filter) ValueName() string {
	if f.Measure != nil {
		return f.Measure.Name
	}
	return f.Reference
}

// Query accumulates the parameters of one data request against a cube.
// Cuts and Drilldowns are keyed by dimension name: a dimension holds at most
// one of each, and targeting a second level of an already-used dimension
// replaces the level reference in place.
type Query struct {
	Cube          *schema.Cube
	Cuts          map[string]*Cut
	Drilldowns    map[string]*Drilldown
	Measures      map[string]*schema.Measure
	Filters       map[string]*Filter
	Calculations  []Calculation
	Options       map[string]bool
	Pagination    Pagination
	Sorting       Sorting
	TimePrecision string
	TimeValue     string
	Locale        string
	Format        Format
}

// New creates a Query bound to cube. Every collection field is initialized
// per instance; two queries from the same cube share no mutable state.
// Rebinding is not supported: build a new Query for another cube.
func New(cube *schema.Cube) *Query {
	return &Query{
		Cube:       cube,
		Cuts:       make(map[string]*Cut),
		Drilldowns: make(map[string]*Drilldown),
		Measures:   make(map[string]*schema.Measure),
		Filters:    make(map[string]*Filter),
		Options:    make(map[string]bool),
		Sorting:    Sorting{Direction: Descending},
		Format:     JSONRecords,
	}
}

// AddMeasure resolves name against the cube and adds the measure to the
// selection. Re-adding an already selected measure is a no-op.
func (q *Query) AddMeasure(name string) error {
	measure, err := q.Cube.Measure(name)
	if err != nil {
		return err
	}
	q.Measures[measure.Name] = measure
	return nil
}

// CutOption adjusts the flags of a cut. Omitted options leave the prior
// flag values of an existing cut unchanged.
type CutOption func(*Cut)

// Exclusive sets whether the cut excludes the listed members instead of
// restricting to them.
func Exclusive(value bool) CutOption {
	return func(c *Cut) { c.Exclusive = value }
}

// ForMatch sets the dialect-specific matching mode flag of a cut.
func ForMatch(value bool) CutOption {
	return func(c *Cut) { c.ForMatch = value }
}

// SetCut resolves levelName and restricts that level to the given member
// keys. The cut is keyed by the level's dimension: cutting a second level of
// the same dimension rebinds the level but keeps accumulating members, which
// are unioned across calls rather than replaced.
func (q *Query) SetCut(levelName string, members []string, opts ...CutOption) error {
	level, err := q.Cube.Level(levelName)
	if err != nil {
		return err
	}
	cut, ok := q.Cuts[level.Dimension]
	if !ok {
		cut = &Cut{Members: make(map[string]struct{})}
		q.Cuts[level.Dimension] = cut
	}
	cut.Level = level
	for _, member := range members {
		cut.Members[member] = struct{}{}
	}
	for _, opt := range opts {
		opt(cut)
	}
	return nil
}

// SetDrilldown resolves levelName and requests results broken out by that
// level. The drilldown is keyed by the level's dimension; properties and
// caption already attached to the dimension's slot are preserved.
func (q *Query) SetDrilldown(levelName string) error {
	level, err := q.Cube.Level(levelName)
	if err != nil {
		return err
	}
	q.drilldownSlot(level.Dimension).Level = level
	return nil
}

// SetProperty resolves propertyName and attaches it as an extra column to
// the drilldown slot of the property's dimension. The slot is created lazily
// when the dimension has no drilldown yet.
func (q *Query) SetProperty(propertyName string) error {
	property, err := q.Cube.Property(propertyName)
	if err != nil {
		return err
	}
	slot := q.drilldownSlot(property.Dimension)
	slot.Properties[property.EffectiveName()] = property
	return nil
}

// SetCaption resolves propertyName and uses it as the display caption of the
// drilldown slot of the property's dimension.
func (q *Query) SetCaption(propertyName string) error {
	property, err := q.Cube.Property(propertyName)
	if err != nil {
		return err
	}
	q.drilldownSlot(property.Dimension).Caption = property
	return nil
}

func (q *Query) drilldownSlot(dimension string) *Drilldown {
	slot, ok := q.Drilldowns[dimension]
	if !ok {
		slot = &Drilldown{Properties: make(map[string]*schema.Property)}
		q.Drilldowns[dimension] = slot
	}
	return slot
}

// FilterOption attaches the optional second condition of a filter.
type FilterOption func(*Filter)

// And attaches a second condition joined with logical and.
func And(second Condition) FilterOption {
	return func(f *Filter) {
		f.Joint = JointAnd
		f.Second = &second
	}
}

// Or attaches a second condition joined with logical or.
func Or(second Condition) FilterOption {
	return func(f *Filter) {
		f.Joint = JointOr
		f.Second = &second
	}
}

// SetFilter constrains a measure or calculation result. When value names a
// measure of the cube the filter binds to that measure; otherwise the raw
// string is stored and interpreted as a calculation reference by the
// dialect. A prior filter under the same name is overwritten.
func (q *Query) SetFilter(value string, first Condition, opts ...FilterOption) *Query {
	filter := &Filter{First: first}
	if measure, err := q.Cube.Measure(value); err == nil {
		filter.Measure = measure
	} else {
		filter.Reference = value
	}
	for _, opt := range opts {
		opt(filter)
	}
	q.Filters[filter.ValueName()] = filter
	return q
}

// AddCalculation appends a calculation request. Calculations are not
// deduplicated; when several of the same kind exist, dialects emit only the
// last one.
func (q *Query) AddCalculation(calc Calculation) *Query {
	q.Calculations = append(q.Calculations, calc)
	return q
}

// SetFormat selects the response encoding.
func (q *Query) SetFormat(format Format) *Query {
	q.Format = format
	return q
}

// SetLocale requests localized labels in the response.
func (q *Query) SetLocale(locale string) *Query {
	q.Locale = locale
	return q
}

// SetOption sets a boolean server option such as "debug" or "parents".
// Dialects emit only options that are present and true.
func (q *Query) SetOption(name string, value bool) *Query {
	q.Options[name] = value
	return q
}

// SetPagination limits the response to page rows, skipping offset rows.
func (q *Query) SetPagination(page, offset int) *Query {
	q.Pagination = Pagination{Page: page, Offset: offset}
	return q
}

// SetSorting resolves measureName against the cube's measures and sorts the
// response by it in the given direction.
func (q *Query) SetSorting(measureName string, direction Direction) error {
	measure, err := q.Cube.Measure(measureName)
	if err != nil {
		return err
	}
	q.Sorting = Sorting{Measure: measure.Name, Direction: direction}
	return nil
}

// SetTime restricts the time dimension to a (precision, value) pair, e.g.
// ("year", "latest"). When either component is empty the restriction is
// cleared.
func (q *Query) SetTime(precision, value string) *Query {
	if precision == "" || value == "" {
		q.TimePrecision, q.TimeValue = "", ""
		return q
	}
	q.TimePrecision, q.TimeValue = precision, value
	return q
}

// Validate reports whether the query would surely be rejected by the server:
// no cube bound, zero drilldowns, zero measures, or a filter bound to a
// measure that is not in the current measure selection. Validity is
// re-evaluated on every call; there is no cached state.
func (q *Query) Validate() error {
	if q.Cube == nil {
		return fmt.Errorf("no cube bound: %w", apperrors.ErrInvalidQuery)
	}
	drilldowns := 0
	for _, slot := range q.Drilldowns {
		if slot.Level != nil {
			drilldowns++
		}
	}
	if drilldowns == 0 {
		return fmt.Errorf("query has no drilldowns: %w", apperrors.ErrInvalidQuery)
	}
	if len(q.Measures) == 0 {
		return fmt.Errorf("query has no measures: %w", apperrors.ErrInvalidQuery)
	}
	for _, filter := range q.Filters {
		if filter.Measure == nil {
			continue
		}
		selected, ok := q.Measures[filter.Measure.Name]
		if !ok || !selected.Equal(filter.Measure) {
			return fmt.Errorf("filter measure %q is not in the measure selection: %w",
				filter.Measure.Name, apperrors.ErrInvalidQuery)
		}
	}
	return nil
}

// Dialect serializes queries following one server family's URL and parameter
// conventions. Implementations are pure: no network, no schema mutation.
type Dialect interface {
	URL(q *Query, endpoint string) (string, error)
}
