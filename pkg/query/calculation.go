package query

import "github.com/datawheel/olap-client-go/pkg/schema"

// CalculationKind tags a server-side derived metric request.
type CalculationKind string

const (
	CalculationGrowth CalculationKind = "growth"
	CalculationRCA    CalculationKind = "rca"
	CalculationTopK   CalculationKind = "topk"
)

// Calculation is a server-side derived metric request: a kind tag plus
// kind-specific parameters. The typed constructors below cover the kinds
// every dialect understands; NewCalculation admits dialect-specific ones.
type Calculation struct {
	Kind   CalculationKind
	Params map[string]any
}

// NewCalculation builds a calculation of an arbitrary kind.
func NewCalculation(kind CalculationKind, params map[string]any) Calculation {
	if params == nil {
		params = make(map[string]any)
	}
	return Calculation{Kind: kind, Params: params}
}

// NewGrowth requests growth of a measure over a period level.
func NewGrowth(period *schema.Level, value *schema.Measure) Calculation {
	return Calculation{Kind: CalculationGrowth, Params: map[string]any{
		"period": period,
		"value":  value,
	}}
}

// NewRCA requests revealed comparative advantage of a measure across a
// location and a category level.
func NewRCA(location, category *schema.Level, value *schema.Measure) Calculation {
	return Calculation{Kind: CalculationRCA, Params: map[string]any{
		"location": location,
		"category": category,
		"value":    value,
	}}
}

// NewTopK requests the top amount entries of a category level ranked by
// value, which may be a *schema.Measure or the string name of another
// calculation result.
func NewTopK(amount int, category *schema.Level, value any, descending bool) Calculation {
	order := "desc"
	if !descending {
		order = "asc"
	}
	return Calculation{Kind: CalculationTopK, Params: map[string]any{
		"amount":   amount,
		"category": category,
		"value":    value,
		"order":    order,
	}}
}
