package docstore

import (
	"fmt"

	"github.com/querylane/docstore-client/pkg/pager"
)

// DocumentPager walks the pages of a ListDocuments call. It is created
// by Service.ListDocuments with the first page already fetched; advancing
// it issues further ListDocuments calls with an updated page token.
//
// The accessor methods delegate to the most recently fetched response,
// so after partial iteration they reflect the latest page, not the first.
// A DocumentPager is a single-use cursor and must not be shared between
// concurrent consumers.
type DocumentPager struct {
	*pager.Pager[*ListDocumentsRequest, *ListDocumentsResponse, Document]
}

// Documents returns the current page's documents.
func (p *DocumentPager) Documents() []Document {
	return p.Response().Documents
}

// NextPageToken returns the current page's next-page token.
func (p *DocumentPager) NextPageToken() string {
	return p.Response().NextPageToken
}

// String returns a debug form showing the current response.
func (p *DocumentPager) String() string {
	return fmt.Sprintf("DocumentPager<%+v>", p.Response())
}

// PartitionPager walks the pages of a PartitionQuery call. It is created
// by Service.PartitionQuery with the first page already fetched.
//
// The accessor methods delegate to the most recently fetched response.
// A PartitionPager is a single-use cursor and must not be shared between
// concurrent consumers.
type PartitionPager struct {
	*pager.Pager[*PartitionQueryRequest, *PartitionQueryResponse, Cursor]
}

// Partitions returns the current page's partition cursors.
func (p *PartitionPager) Partitions() []Cursor {
	return p.Response().Partitions
}

// NextPageToken returns the current page's next-page token.
func (p *PartitionPager) NextPageToken() string {
	return p.Response().NextPageToken
}

// String returns a debug form showing the current response.
func (p *PartitionPager) String() string {
	return fmt.Sprintf("PartitionPager<%+v>", p.Response())
}
