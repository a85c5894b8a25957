package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/datawheel/olap-client-go/pkg/retry"
)

func TestNewClientNormalizesBaseURL(t *testing.T) {
	client := NewClient("https://olap.example.com/tesseract", zap.NewNop())
	assert.Equal(t, "https://olap.example.com/tesseract/", client.BaseURL())

	client = NewClient("https://olap.example.com/tesseract/", zap.NewNop())
	assert.Equal(t, "https://olap.example.com/tesseract/", client.BaseURL())
}

func TestGetResolvesUnderBasePath(t *testing.T) {
	var gotPath, gotQuery, gotAccept string
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("ok"))
	}))
	t.Cleanup(fake.Close)

	client := NewClient(fake.URL+"/tesseract", zap.NewNop())
	status, body, err := client.Get(context.Background(), "data.csv?cube=trade&drilldowns=Exporter+Country")
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "/tesseract/data.csv", gotPath)
	assert.Equal(t, "cube=trade&drilldowns=Exporter+Country", gotQuery, "query strings pass through unre-encoded")
	assert.Equal(t, "application/json", gotAccept)
}

func TestGetReturnsErrorStatuses(t *testing.T) {
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(fake.Close)

	client := NewClient(fake.URL, zap.NewNop())
	status, _, err := client.Get(context.Background(), "cubes/absent")
	require.NoError(t, err, "HTTP error statuses are not transport errors")
	assert.Equal(t, 404, status)
}

func TestGetRetriesTransientFailures(t *testing.T) {
	attempts := 0
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte("ok"))
	}))
	fake.Close()

	client := NewClient(fake.URL, zap.NewNop(), WithRetry(&retry.Config{
		MaxRetries:   1,
		InitialDelay: 1,
		MaxDelay:     1,
		Multiplier:   1,
	}))
	_, _, err := client.Get(context.Background(), "cubes")
	assert.Error(t, err, "a closed server is unreachable even after retrying")
	assert.Zero(t, attempts)
}

func TestGetInvalidRelativeURL(t *testing.T) {
	client := NewClient("https://olap.example.com/", zap.NewNop())
	_, _, err := client.Get(context.Background(), "data.csv?cube=%zz")
	assert.Error(t, err)
}
