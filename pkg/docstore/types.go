// Package docstore exposes the typed Docstore API surface: document
// listing and query partitioning, both returning pagers that lazily walk
// the remaining result pages.
package docstore

import "time"

// Document is a single stored document.
type Document struct {
	// Name is the full resource path of the document.
	Name string `json:"name"`

	// Fields holds the document's decoded field values.
	Fields map[string]any `json:"fields,omitempty"`

	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
}

// Cursor is a position in a query's result set, used as a partition
// boundary by PartitionQuery.
type Cursor struct {
	// Values are the ordered field values the cursor points at.
	Values []any `json:"values"`

	// Before positions the cursor just before the referenced document
	// instead of just after it.
	Before bool `json:"before,omitempty"`
}

// ListDocumentsRequest lists the documents of a collection.
type ListDocumentsRequest struct {
	// Database is the database ID (e.g. "main").
	Database string

	// Collection is the collection ID under the database.
	Collection string

	// PageSize is the maximum number of documents per page. Zero lets
	// the server choose.
	PageSize int

	// OrderBy is an optional comma-separated ordering expression.
	OrderBy string

	// PageToken resumes listing from a previous response's
	// NextPageToken. Empty requests the first page.
	PageToken string
}

// Clone returns an independent copy of the request.
func (r *ListDocumentsRequest) Clone() *ListDocumentsRequest {
	c := *r
	return &c
}

// SetPageToken sets the page token for the next fetch.
func (r *ListDocumentsRequest) SetPageToken(token string) {
	r.PageToken = token
}

// ListDocumentsResponse is one page of a document listing.
type ListDocumentsResponse struct {
	Documents []Document `json:"documents"`

	// NextPageToken is the cursor of the following page; empty when
	// there are no further pages.
	NextPageToken string `json:"nextPageToken"`
}

// PageItems returns the page's documents.
func (r *ListDocumentsResponse) PageItems() []Document {
	return r.Documents
}

// NextToken returns the token of the following page.
func (r *ListDocumentsResponse) NextToken() string {
	return r.NextPageToken
}

// PartitionQueryRequest splits a collection query into cursor-delimited
// partitions that can be consumed in parallel by separate readers.
type PartitionQueryRequest struct {
	Database   string
	Collection string

	// PartitionCount is the desired maximum number of partition points.
	PartitionCount int64

	// PageSize is the maximum number of partitions per page.
	PageSize int

	// PageToken resumes from a previous response's NextPageToken.
	PageToken string
}

// Clone returns an independent copy of the request.
func (r *PartitionQueryRequest) Clone() *PartitionQueryRequest {
	c := *r
	return &c
}

// SetPageToken sets the page token for the next fetch.
func (r *PartitionQueryRequest) SetPageToken(token string) {
	r.PageToken = token
}

// PartitionQueryResponse is one page of partition cursors.
type PartitionQueryResponse struct {
	Partitions []Cursor `json:"partitions"`

	// NextPageToken is the cursor of the following page; empty when
	// there are no further pages.
	NextPageToken string `json:"nextPageToken"`
}

// PageItems returns the page's partition cursors.
func (r *PartitionQueryResponse) PageItems() []Cursor {
	return r.Partitions
}

// NextToken returns the token of the following page.
func (r *PartitionQueryResponse) NextToken() string {
	return r.NextPageToken
}
