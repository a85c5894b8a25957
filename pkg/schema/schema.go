// Package schema holds the in-memory model of an OLAP cube: the
// Cube/Dimension/Hierarchy/Level/Property/Measure tree plus name resolution
// over it.
//
// The tree is built once from decoded server metadata and is never mutated
// afterwards, so a single cube can safely back any number of concurrent
// queries without locking.
package schema

import (
	"fmt"

	"github.com/datawheel/olap-client-go/pkg/apperrors"
)

// DimensionType tags how a dimension should be treated by UIs. It has no
// effect on URL serialization.
type DimensionType string

const (
	DimensionStandard DimensionType = "standard"
	DimensionTime     DimensionType = "time"
	DimensionGeo      DimensionType = "geo"
)

// ParseDimensionType maps a raw type tag to a DimensionType, defaulting to
// standard for unrecognized values.
func ParseDimensionType(value string) DimensionType {
	switch DimensionType(value) {
	case DimensionTime:
		return DimensionTime
	case DimensionGeo:
		return DimensionGeo
	default:
		return DimensionStandard
	}
}

// Aggregator identifies the server-side aggregation function of a measure.
type Aggregator string

const (
	AggregatorSum                Aggregator = "sum"
	AggregatorCount              Aggregator = "count"
	AggregatorAverage            Aggregator = "avg"
	AggregatorMax                Aggregator = "max"
	AggregatorMin                Aggregator = "min"
	AggregatorBasicGroupedMedian Aggregator = "basic_grouped_median"
	AggregatorWeightedAverage    Aggregator = "weighted_average"
	AggregatorWeightedSum        Aggregator = "weighted_sum"
	AggregatorReplicateWeightMOE Aggregator = "Replicate Weight MOE"
	AggregatorMOE                Aggregator = "MOE"
	AggregatorWeightedAverageMOE Aggregator = "weighted_average_moe"
	AggregatorCustom             Aggregator = "custom"
	AggregatorUnknown            Aggregator = "unknown"
)

var knownAggregators = map[Aggregator]bool{
	AggregatorSum:                true,
	AggregatorCount:              true,
	AggregatorAverage:            true,
	AggregatorMax:                true,
	AggregatorMin:                true,
	AggregatorBasicGroupedMedian: true,
	AggregatorWeightedAverage:    true,
	AggregatorWeightedSum:        true,
	AggregatorReplicateWeightMOE: true,
	AggregatorMOE:                true,
	AggregatorWeightedAverageMOE: true,
	AggregatorCustom:             true,
}

// ParseAggregator maps a raw aggregator name to an Aggregator, returning
// AggregatorUnknown for unrecognized values.
func ParseAggregator(value string) Aggregator {
	if knownAggregators[Aggregator(value)] {
		return Aggregator(value)
	}
	return AggregatorUnknown
}

// Cube is the top-level description of an analytical dataset: measures
// sliceable by dimensions.
type Cube struct {
	Name        string
	Annotations map[string]string
	Dimensions  []*Dimension
	Measures    []*Measure
}

// Dimension is a categorical axis composed of one or more hierarchies.
type Dimension struct {
	Name             string
	Type             DimensionType
	DefaultHierarchy string
	Annotations      map[string]string
	Hierarchies      []*Hierarchy
}

// Hierarchy is an ordered drill path of levels within a dimension.
// Dimension carries the owning dimension's name, stamped at build time.
type Hierarchy struct {
	Name        string
	Dimension   string
	Annotations map[string]string
	Levels      []*Level
}

// Level is one rung of a hierarchy. Depth is its 1-based position in the
// hierarchy's level list, outermost first. UniqueName is a secondary
// identifier some servers require for disambiguation; when present it is
// preferred over Name in serialized output.
type Level struct {
	Name        string
	UniqueName  string
	Dimension   string
	Hierarchy   string
	Depth       int
	Annotations map[string]string
	Properties  []*Property
}

// Property is a descriptive attribute attached to a level's members.
type Property struct {
	Name        string
	UniqueName  string
	Dimension   string
	Hierarchy   string
	Level       string
	CaptionSet  string
	Annotations map[string]string
}

// Measure is a numeric fact aggregated by the server. AggregatorMeta keeps
// extra dialect-specific fields attached to the aggregator descriptor.
type Measure struct {
	Name           string
	Aggregator     Aggregator
	AggregatorMeta map[string]any
	Annotations    map[string]string
}

// Member is one member of a level, as listed by the server.
type Member struct {
	Key     string
	Name    string
	Caption string
}

// Matches reports whether name refers to this level, by name or unique name.
func (l *Level) Matches(name string) bool {
	return name == l.Name || (l.UniqueName != "" && name == l.UniqueName)
}

// EffectiveName returns the unique name when present, the name otherwise.
func (l *Level) EffectiveName() string {
	if l.UniqueName != "" {
		return l.UniqueName
	}
	return l.Name
}

// Matches reports whether name refers to this property, by name or unique name.
func (p *Property) Matches(name string) bool {
	return name == p.Name || (p.UniqueName != "" && name == p.UniqueName)
}

// EffectiveName returns the unique name when present, the name otherwise.
func (p *Property) EffectiveName() string {
	if p.UniqueName != "" {
		return p.UniqueName
	}
	return p.Name
}

// Equal reports whether two measures describe the same fact: same name and
// same aggregator.
func (m *Measure) Equal(other *Measure) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Name == other.Name && m.Aggregator == other.Aggregator
}

// Hierarchies returns every hierarchy in the cube, in tree order.
func (c *Cube) Hierarchies() []*Hierarchy {
	var out []*Hierarchy
	for _, dim := range c.Dimensions {
		out = append(out, dim.Hierarchies...)
	}
	return out
}

// Levels returns every level in the cube, in tree order.
func (c *Cube) Levels() []*Level {
	var out []*Level
	for _, dim := range c.Dimensions {
		out = append(out, dim.Levels()...)
	}
	return out
}

// Properties returns every property in the cube, in tree order.
func (c *Cube) Properties() []*Property {
	var out []*Property
	for _, dim := range c.Dimensions {
		out = append(out, dim.Properties()...)
	}
	return out
}

// Dimension resolves a dimension by exact name.
func (c *Cube) Dimension(name string) (*Dimension, error) {
	for _, dim := range c.Dimensions {
		if dim.Name == name {
			return dim, nil
		}
	}
	return nil, fmt.Errorf("dimension %q in cube %q: %w", name, c.Name, apperrors.ErrNotFound)
}

// Hierarchy resolves a hierarchy by exact name across all dimensions.
func (c *Cube) Hierarchy(name string) (*Hierarchy, error) {
	for _, hie := range c.Hierarchies() {
		if hie.Name == name {
			return hie, nil
		}
	}
	return nil, fmt.Errorf("hierarchy %q in cube %q: %w", name, c.Name, apperrors.ErrNotFound)
}

// Level resolves a level by name or unique name across the whole tree.
// The first match in tree order wins; duplicate names across hierarchies are
// a data-quality condition outside this package's control.
func (c *Cube) Level(name string) (*Level, error) {
	for _, lvl := range c.Levels() {
		if lvl.Matches(name) {
			return lvl, nil
		}
	}
	return nil, fmt.Errorf("level %q in cube %q: %w", name, c.Name, apperrors.ErrNotFound)
}

// Property resolves a property by name or unique name across the whole tree.
func (c *Cube) Property(name string) (*Property, error) {
	for _, prop := range c.Properties() {
		if prop.Matches(name) {
			return prop, nil
		}
	}
	return nil, fmt.Errorf("property %q in cube %q: %w", name, c.Name, apperrors.ErrNotFound)
}

// Measure resolves a measure by exact name.
func (c *Cube) Measure(name string) (*Measure, error) {
	for _, mea := range c.Measures {
		if mea.Name == name {
			return mea, nil
		}
	}
	return nil, fmt.Errorf("measure %q in cube %q: %w", name, c.Name, apperrors.ErrNotFound)
}

// Levels returns every level in the dimension, in tree order.
func (d *Dimension) Levels() []*Level {
	var out []*Level
	for _, hie := range d.Hierarchies {
		out = append(out, hie.Levels...)
	}
	return out
}

// Properties returns every property in the dimension, in tree order.
func (d *Dimension) Properties() []*Property {
	var out []*Property
	for _, lvl := range d.Levels() {
		out = append(out, lvl.Properties...)
	}
	return out
}

// Hierarchy resolves a child hierarchy by exact name.
func (d *Dimension) Hierarchy(name string) (*Hierarchy, error) {
	for _, hie := range d.Hierarchies {
		if hie.Name == name {
			return hie, nil
		}
	}
	return nil, fmt.Errorf("hierarchy %q in dimension %q: %w", name, d.Name, apperrors.ErrNotFound)
}

// Level resolves a descendant level by name or unique name.
func (d *Dimension) Level(name string) (*Level, error) {
	for _, lvl := range d.Levels() {
		if lvl.Matches(name) {
			return lvl, nil
		}
	}
	return nil, fmt.Errorf("level %q in dimension %q: %w", name, d.Name, apperrors.ErrNotFound)
}

// Property resolves a descendant property by name or unique name.
func (d *Dimension) Property(name string) (*Property, error) {
	for _, prop := range d.Properties() {
		if prop.Matches(name) {
			return prop, nil
		}
	}
	return nil, fmt.Errorf("property %q in dimension %q: %w", name, d.Name, apperrors.ErrNotFound)
}

// Properties returns every property in the hierarchy, in tree order.
func (h *Hierarchy) Properties() []*Property {
	var out []*Property
	for _, lvl := range h.Levels {
		out = append(out, lvl.Properties...)
	}
	return out
}

// Level resolves a child level by name or unique name.
func (h *Hierarchy) Level(name string) (*Level, error) {
	for _, lvl := range h.Levels {
		if lvl.Matches(name) {
			return lvl, nil
		}
	}
	return nil, fmt.Errorf("level %q in hierarchy %q: %w", name, h.Name, apperrors.ErrNotFound)
}

// Property resolves a descendant property by name or unique name.
func (h *Hierarchy) Property(name string) (*Property, error) {
	for _, prop := range h.Properties() {
		if prop.Matches(name) {
			return prop, nil
		}
	}
	return nil, fmt.Errorf("property %q in hierarchy %q: %w", name, h.Name, apperrors.ErrNotFound)
}

// Property resolves a child property by name or unique name.
func (l *Level) Property(name string) (*Property, error) {
	for _, prop := range l.Properties {
		if prop.Matches(name) {
			return prop, nil
		}
	}
	return nil, fmt.Errorf("property %q in level %q: %w", name, l.Name, apperrors.ErrNotFound)
}
