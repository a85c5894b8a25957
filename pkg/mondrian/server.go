package mondrian

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/datawheel/olap-client-go/pkg/apperrors"
	"github.com/datawheel/olap-client-go/pkg/logging"
	"github.com/datawheel/olap-client-go/pkg/query"
	"github.com/datawheel/olap-client-go/pkg/transport"
)

// Response carries the raw outcome of an executed query.
type Response struct {
	Status int
	Body   []byte
	Format query.Format
}

// Server is a client for one Mondrian REST server. Schema decoding is left
// to the caller; Mondrian installations vary too much in their metadata
// shape to decode generically here.
type Server struct {
	client  *transport.Client
	logger  *zap.Logger
	dialect Dialect
}

// NewServer creates a client for the Mondrian server at baseURL.
func NewServer(baseURL string, logger *zap.Logger, opts ...transport.Option) *Server {
	logger = logger.Named("mondrian")
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

// Execute validates q, serializes it and performs the request. Non-2xx
// statuses are reported as upstream errors.
func (s *Server) Execute(ctx context.Context, q *query.Query) (*Response, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	relative, err := s.dialect.URL(q, EndpointAggregate)
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
