package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/querylane/docstore-client/pkg/client"
	"github.com/querylane/docstore-client/pkg/logging"
	"github.com/querylane/docstore-client/pkg/pager"
	"github.com/rs/zerolog"
)

// Service issues typed Docstore API calls through a transport client.
type Service struct {
	client *client.Client
	logger zerolog.Logger
}

// NewService creates a Service on top of a configured transport client.
func NewService(c *client.Client) *Service {
	return &Service{
		client: c,
		logger: logging.NewLogger("docstore"),
	}
}

// ListDocuments fetches the first page of the collection listing and
// returns a pager over all pages. Transport errors and non-2xx API
// responses surface as *client.APIError, both here and on later page
// advances.
func (s *Service) ListDocuments(ctx context.Context, req *ListDocumentsRequest) (*DocumentPager, error) {
	if err := validateTarget(req.Database, req.Collection); err != nil {
		return nil, err
	}

	resp, err := s.listDocuments(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("database", req.Database).
		Str("collection", req.Collection).
		Int("documents", len(resp.Documents)).
		Msg("Listed first document page")

	return &DocumentPager{
		Pager: pager.New[*ListDocumentsRequest, *ListDocumentsResponse, Document](
			s.listDocuments, req, resp),
	}, nil
}

// PartitionQuery fetches the first page of partition cursors for the
// collection and returns a pager over all pages.
func (s *Service) PartitionQuery(ctx context.Context, req *PartitionQueryRequest) (*PartitionPager, error) {
	if err := validateTarget(req.Database, req.Collection); err != nil {
		return nil, err
	}
	if req.PartitionCount <= 0 {
		return nil, fmt.Errorf("partition count must be positive (got %d)", req.PartitionCount)
	}

	resp, err := s.partitionQuery(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("database", req.Database).
		Str("collection", req.Collection).
		Int("partitions", len(resp.Partitions)).
		Msg("Fetched first partition page")

	return &PartitionPager{
		Pager: pager.New[*PartitionQueryRequest, *PartitionQueryResponse, Cursor](
			s.partitionQuery, req, resp),
	}, nil
}

// listDocuments performs one ListDocuments call.
func (s *Service) listDocuments(ctx context.Context, req *ListDocumentsRequest) (*ListDocumentsResponse, error) {
	path := fmt.Sprintf("/v1/databases/%s/documents/%s",
		url.PathEscape(req.Database), url.PathEscape(req.Collection))

	q := url.Values{}
	if req.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(req.PageSize))
	}
	if req.OrderBy != "" {
		q.Set("orderBy", req.OrderBy)
	}
	if req.PageToken != "" {
		q.Set("pageToken", req.PageToken)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, client.ErrorFromResponse(resp)
	}

	var out ListDocumentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode list documents response: %w", err)
	}

	return &out, nil
}

// partitionQueryBody is the wire form of a PartitionQuery call.
type partitionQueryBody struct {
	PartitionCount int64  `json:"partitionCount"`
	PageSize       int    `json:"pageSize,omitempty"`
	PageToken      string `json:"pageToken,omitempty"`
}

// partitionQuery performs one PartitionQuery call.
func (s *Service) partitionQuery(ctx context.Context, req *PartitionQueryRequest) (*PartitionQueryResponse, error) {
	path := fmt.Sprintf("/v1/databases/%s/documents/%s:partitionQuery",
		url.PathEscape(req.Database), url.PathEscape(req.Collection))

	body := partitionQueryBody{
		PartitionCount: req.PartitionCount,
		PageSize:       req.PageSize,
		PageToken:      req.PageToken,
	}

	resp, err := s.client.PostJSON(ctx, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, client.ErrorFromResponse(resp)
	}

	var out PartitionQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode partition query response: %w", err)
	}

	return &out, nil
}

func validateTarget(database, collection string) error {
	if database == "" {
		return fmt.Errorf("database is required")
	}
	if collection == "" {
		return fmt.Errorf("collection is required")
	}
	return nil
}
