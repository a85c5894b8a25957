package tesseract

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/datawheel/olap-client-go/pkg/apperrors"
	"github.com/datawheel/olap-client-go/pkg/logging"
	"github.com/datawheel/olap-client-go/pkg/query"
	"github.com/datawheel/olap-client-go/pkg/schema"
	"github.com/datawheel/olap-client-go/pkg/transport"
)

// Response carries the raw outcome of an executed query. The client does
// not parse data payloads; interpreting Body is the caller's concern.
type Response struct {
	Status int
	Body   []byte
	Format query.Format
}

// Server is a client for one Tesseract OLAP server.
type Server struct {
	client  *transport.Client
	logger  *zap.Logger
	dialect Dialect
}

// NewServer creates a client for the Tesseract server at baseURL.
func NewServer(baseURL string, logger *zap.Logger, opts ...transport.Option) *Server {
	logger = logger.Named("tesseract")
	return &Server{
		client: transport.NewClient(baseURL, logger, opts...),
		logger: logger,
	}
}

// Dialect returns the serializer for this server family.
func (s *Server) Dialect() query.Dialect {
	return s.dialect
}

// QueryURL converts q into the relative URL this server understands.
func (s *Server) QueryURL(q *query.Query, endpoint string) (string, error) {
	return s.dialect.URL(q, endpoint)
}

// FetchCubes retrieves the schema information for all cubes on the server.
func (s *Server) FetchCubes(ctx context.Context) ([]*schema.Cube, error) {
	status, body, err := s.client.Get(ctx, "cubes")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("cubes listing returned status %d: %w", status, apperrors.ErrUpstream)
	}
	return DecodeSchema(body)
}

// FetchCube retrieves the schema information for a single cube.
func (s *Server) FetchCube(ctx context.Context, name string) (*schema.Cube, error) {
	status, body, err := s.client.Get(ctx, "cubes/"+url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("cube %q: %w", name, apperrors.ErrNotFound)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("cube %q returned status %d: %w", name, status, apperrors.ErrUpstream)
	}
	return DecodeCube(body)
}

// FetchMembers retrieves the members of a level in a cube. Pass a locale to
// prefer localized captions when the server provides them.
func (s *Server) FetchMembers(ctx context.Context, cubeName, levelName, locale string) ([]schema.Member, error) {
	relative := fmt.Sprintf("members.%s?cube=%s&level=%s",
		query.JSONRecords, url.QueryEscape(cubeName), url.QueryEscape(levelName))
	status, body, err := s.client.Get(ctx, relative)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("members of %q returned status %d: %w", levelName, status, apperrors.ErrUpstream)
	}
	return DecodeMembers(body, locale)
}

// Execute validates q, serializes it for the given endpoint and performs
// the request. Non-2xx statuses are reported as upstream errors.
func (s *Server) Execute(ctx context.Context, q *query.Query, endpoint string) (*Response, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	relative, err := s.dialect.URL(q, endpoint)
	if err != nil {
		return nil, err
	}
	status, body, err := s.client.Get(ctx, relative)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		s.logger.Warn("query rejected by server",
			zap.Int("status", status),
			zap.String("body", logging.TruncateString(string(body), 200)))
		return nil, fmt.Errorf("query returned status %d: %w", status, apperrors.ErrUpstream)
	}
	return &Response{Status: status, Body: body, Format: q.Format}, nil
}
