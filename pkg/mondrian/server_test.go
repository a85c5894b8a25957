package mondrian_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/datawheel/olap-client-go/pkg/apperrors"
	"github.com/datawheel/olap-client-go/pkg/mondrian"
	"github.com/datawheel/olap-client-go/pkg/query"
)

func TestServerExecute(t *testing.T) {
	var gotPath, gotQuery string
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"axes":[],"values":[]}`))
	}))
	t.Cleanup(fake.Close)

	server := mondrian.NewServer(fake.URL+"/mondrian-rest/cubes", zap.NewNop())
	ctx := context.Background()

	q := query.New(fixtureCube(t))
	require.NoError(t, q.SetDrilldown("Year"))
	require.NoError(t, q.AddMeasure("Trade Value"))

	resp, err := server.Execute(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, query.JSONRecords, resp.Format)
	assert.JSONEq(t, `{"axes":[],"values":[]}`, string(resp.Body))

	assert.Equal(t, "/mondrian-rest/cubes/trade_i_baci_a_92/aggregate.jsonrecords", gotPath)
	assert.Equal(t, "drilldown%5B%5D=Year&measures%5B%5D=Trade+Value", gotQuery)
}

func TestServerExecuteInvalidQuery(t *testing.T) {
	server := mondrian.NewServer("http://127.0.0.1:1/", zap.NewNop())

	q := query.New(fixtureCube(t))
	_, err := server.Execute(context.Background(), q)
	assert.ErrorIs(t, err, apperrors.ErrInvalidQuery, "no request is made for invalid queries")
}

func TestServerExecuteUpstreamError(t *testing.T) {
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such cube"}`, http.StatusNotFound)
	}))
	t.Cleanup(fake.Close)

	server := mondrian.NewServer(fake.URL, zap.NewNop())
	q := query.New(fixtureCube(t))
	require.NoError(t, q.SetDrilldown("Year"))
	require.NoError(t, q.AddMeasure("Trade Value"))

	_, err := server.Execute(context.Background(), q)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}
