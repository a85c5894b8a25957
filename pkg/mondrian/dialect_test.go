package mondrian_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawheel/olap-client-go/pkg/apperrors"
	"github.com/datawheel/olap-client-go/pkg/mondrian"
	"github.com/datawheel/olap-client-go/pkg/query"
	"github.com/datawheel/olap-client-go/pkg/schema"
	"github.com/datawheel/olap-client-go/pkg/testhelpers"
)

func fixtureCube(t *testing.T) *schema.Cube {
	t.Helper()
	var rec schema.CubeRecord
	require.NoError(t, json.Unmarshal([]byte(testhelpers.FixtureCubeJSON), &rec))
	return schema.NewCube(rec)
}

func TestAggregateURLEmpty(t *testing.T) {
	q := query.New(fixtureCube(t))
	assert.Equal(t, "trade_i_baci_a_92/aggregate.jsonrecords?", mondrian.AggregateURL(q))

	q.SetFormat(query.CSV)
	assert.Equal(t, "trade_i_baci_a_92/aggregate.csv?", mondrian.AggregateURL(q))
}

func TestAggregateURLFull(t *testing.T) {
	q := query.New(fixtureCube(t))

	require.NoError(t, q.SetDrilldown("Year"))
	require.NoError(t, q.SetDrilldown("Exporter Country"))
	require.NoError(t, q.SetProperty("Exporter Country ISO 2"))
	require.NoError(t, q.SetCaption("Exporter Country ISO 3"))
	require.NoError(t, q.AddMeasure("Trade Value"))
	require.NoError(t, q.AddMeasure("Quantity"))
	require.NoError(t, q.SetCut("Year", []string{"2020", "2019"}))
	require.NoError(t, q.SetCut("HS2", []string{"01"}))
	q.SetFilter("Trade Value", query.Condition{Comparison: query.GT, Value: 100})
	q.SetPagination(10, 5)
	require.NoError(t, q.SetSorting("Trade Value", query.Descending))
	q.SetOption("debug", true).SetOption("nonempty", true).SetOption("parents", true)

	assert.Equal(t,
		"trade_i_baci_a_92/aggregate.jsonrecords?"+
			"caption%5B%5D=Country.ISO+3"+
			"&cut%5B%5D=HS2.%26%5B01%5D"+
			"&cut%5B%5D=%7BYear.%26%5B2019%5D%2CYear.%26%5B2020%5D%7D"+
			"&debug=true"+
			"&drilldown%5B%5D=Exporter+Country"+
			"&drilldown%5B%5D=Year"+
			"&filter%5B%5D=Trade+Value+gt+100"+
			"&limit=10"+
			"&measures%5B%5D=Quantity"+
			"&measures%5B%5D=Trade+Value"+
			"&nonempty=true"+
			"&offset=5"+
			"&order_desc=true"+
			"&order=Trade+Value"+
			"&parents=true"+
			"&properties%5B%5D=Country.ISO+2",
		mondrian.AggregateURL(q))
}

func TestAggregateURLAscendingSort(t *testing.T) {
	q := query.New(fixtureCube(t))
	require.NoError(t, q.SetSorting("Quantity", query.Ascending))

	assert.Equal(t,
		"trade_i_baci_a_92/aggregate.jsonrecords?order=Quantity",
		mondrian.AggregateURL(q))
}

func TestAggregateURLIsCanonical(t *testing.T) {
	cube := fixtureCube(t)

	a := query.New(cube)
	require.NoError(t, a.SetDrilldown("Year"))
	require.NoError(t, a.SetDrilldown("HS2"))
	require.NoError(t, a.AddMeasure("Trade Value"))
	require.NoError(t, a.AddMeasure("Quantity"))

	b := query.New(cube)
	require.NoError(t, b.AddMeasure("Quantity"))
	require.NoError(t, b.AddMeasure("Trade Value"))
	require.NoError(t, b.SetDrilldown("HS2"))
	require.NoError(t, b.SetDrilldown("Year"))

	assert.Equal(t, mondrian.AggregateURL(a), mondrian.AggregateURL(b))
}

func TestDialectURLEndpoints(t *testing.T) {
	q := query.New(fixtureCube(t))
	dialect := mondrian.Dialect{}

	out, err := dialect.URL(q, mondrian.EndpointAggregate)
	require.NoError(t, err)
	assert.Equal(t, mondrian.AggregateURL(q), out)

	out, err = dialect.URL(q, "")
	require.NoError(t, err)
	assert.Equal(t, mondrian.AggregateURL(q), out)

	_, err = dialect.URL(q, "logiclayer")
	assert.ErrorIs(t, err, apperrors.ErrNotSupported)
}
