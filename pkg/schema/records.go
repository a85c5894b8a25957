package schema

// Raw record types mirror the shape of a server's schema JSON. They are an
// intermediate step only: decoding fills them, NewCube walks them once in a
// top-down pass that stamps ancestor names and level depth, and the resulting
// entity tree is then treated as immutable.

// CubeRecord is the decoded form of one cube's metadata.
type CubeRecord struct {
	Name        string            `json:"name"`
	Annotations map[string]string `json:"annotations"`
	Dimensions  []DimensionRecord `json:"dimensions"`
	Measures    []MeasureRecord   `json:"measures"`
}

// DimensionRecord is the decoded form of a dimension.
type DimensionRecord struct {
	Name             string            `json:"name"`
	Type             string            `json:"type"`
	DefaultHierarchy string            `json:"default_hierarchy"`
	Annotations      map[string]string `json:"annotations"`
	Hierarchies      []HierarchyRecord `json:"hierarchies"`
}

// HierarchyRecord is the decoded form of a hierarchy.
type HierarchyRecord struct {
	Name        string            `json:"name"`
	Annotations map[string]string `json:"annotations"`
	Levels      []LevelRecord     `json:"levels"`
}

// LevelRecord is the decoded form of a level. Properties may be null in
// server output; a nil slice is treated as empty.
type LevelRecord struct {
	Name        string            `json:"name"`
	UniqueName  string            `json:"unique_name"`
	Annotations map[string]string `json:"annotations"`
	Properties  []PropertyRecord  `json:"properties"`
}

// PropertyRecord is the decoded form of a level property.
type PropertyRecord struct {
	Name        string            `json:"name"`
	UniqueName  string            `json:"unique_name"`
	CaptionSet  string            `json:"caption_set"`
	Annotations map[string]string `json:"annotations"`
}

// MeasureRecord is the decoded form of a measure. Aggregator holds the raw
// aggregator descriptor; its "name" key selects the Aggregator and the
// remaining keys become AggregatorMeta.
type MeasureRecord struct {
	Name        string            `json:"name"`
	Aggregator  map[string]any    `json:"aggregator"`
	Annotations map[string]string `json:"annotations"`
}

// NewCube builds the immutable cube tree from a decoded record, stamping
// parent names downward and assigning level depth as the 1-based position
// within each hierarchy.
func NewCube(rec CubeRecord) *Cube {
	cube := &Cube{
		Name:        rec.Name,
		Annotations: annotations(rec.Annotations),
		Dimensions:  make([]*Dimension, 0, len(rec.Dimensions)),
		Measures:    make([]*Measure, 0, len(rec.Measures)),
	}
	for _, dim := range rec.Dimensions {
		cube.Dimensions = append(cube.Dimensions, newDimension(dim))
	}
	for _, mea := range rec.Measures {
		cube.Measures = append(cube.Measures, newMeasure(mea))
	}
	return cube
}

func newDimension(rec DimensionRecord) *Dimension {
	dim := &Dimension{
		Name:             rec.Name,
		Type:             ParseDimensionType(rec.Type),
		DefaultHierarchy: rec.DefaultHierarchy,
		Annotations:      annotations(rec.Annotations),
		Hierarchies:      make([]*Hierarchy, 0, len(rec.Hierarchies)),
	}
	for _, hie := range rec.Hierarchies {
		dim.Hierarchies = append(dim.Hierarchies, newHierarchy(hie, dim.Name))
	}
	return dim
}

func newHierarchy(rec HierarchyRecord, dimension string) *Hierarchy {
	hie := &Hierarchy{
		Name:        rec.Name,
		Dimension:   dimension,
		Annotations: annotations(rec.Annotations),
		Levels:      make([]*Level, 0, len(rec.Levels)),
	}
	for index, lvl := range rec.Levels {
		hie.Levels = append(hie.Levels, newLevel(lvl, dimension, hie.Name, index+1))
	}
	return hie
}

func newLevel(rec LevelRecord, dimension, hierarchy string, depth int) *Level {
	lvl := &Level{
		Name:        rec.Name,
		UniqueName:  rec.UniqueName,
		Dimension:   dimension,
		Hierarchy:   hierarchy,
		Depth:       depth,
		Annotations: annotations(rec.Annotations),
		Properties:  make([]*Property, 0, len(rec.Properties)),
	}
	for _, prop := range rec.Properties {
		lvl.Properties = append(lvl.Properties, &Property{
			Name:        prop.Name,
			UniqueName:  prop.UniqueName,
			Dimension:   dimension,
			Hierarchy:   hierarchy,
			Level:       rec.Name,
			CaptionSet:  prop.CaptionSet,
			Annotations: annotations(prop.Annotations),
		})
	}
	return lvl
}

func newMeasure(rec MeasureRecord) *Measure {
	name := AggregatorUnknown
	meta := make(map[string]any)
	for key, value := range rec.Aggregator {
		if key == "name" {
			if raw, ok := value.(string); ok {
				name = ParseAggregator(raw)
			}
			continue
		}
		meta[key] = value
	}
	return &Measure{
		Name:           rec.Name,
		Aggregator:     name,
		AggregatorMeta: meta,
		Annotations:    annotations(rec.Annotations),
	}
}

// annotations always returns a usable map so lookups never nil-check.
func annotations(in map[string]string) map[string]string {
	if in == nil {
		return map[string]string{}
	}
	return in
}
