package pager

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// listReq is a minimal paginated request for testing.
type listReq struct {
	Query     string
	PageToken string
}

func (r *listReq) Clone() *listReq {
	c := *r
	return &c
}

func (r *listReq) SetPageToken(token string) {
	r.PageToken = token
}

// listResp is a minimal paginated response for testing.
type listResp struct {
	Label         string
	Items         []string
	NextPageToken string
}

func (r *listResp) PageItems() []string {
	return r.Items
}

func (r *listResp) NextToken() string {
	return r.NextPageToken
}

// fakeFetch serves pages from a token-keyed map and records every token
// it is called with.
type fakeFetch struct {
	pages  map[string]*listResp
	errs   map[string]error
	tokens []string
}

func (f *fakeFetch) fetch(_ context.Context, req *listReq) (*listResp, error) {
	f.tokens = append(f.tokens, req.PageToken)
	if err, ok := f.errs[req.PageToken]; ok {
		delete(f.errs, req.PageToken)
		return nil, err
	}
	page, ok := f.pages[req.PageToken]
	if !ok {
		return nil, errors.New("unknown page token: " + req.PageToken)
	}
	return page, nil
}

func newTestPager(initial *listResp, f *fakeFetch) *Pager[*listReq, *listResp, string] {
	req := &listReq{Query: "all"}
	return New[*listReq, *listResp, string](f.fetch, req, initial)
}

func TestNextPage_WalksAllPages(t *testing.T) {
	initial := &listResp{Label: "p1", Items: []string{"a", "b"}, NextPageToken: "T1"}
	f := &fakeFetch{pages: map[string]*listResp{
		"T1": {Label: "p2", Items: []string{"c"}, NextPageToken: "T2"},
		"T2": {Label: "p3", Items: []string{"d", "e"}, NextPageToken: ""},
	}}
	p := newTestPager(initial, f)

	ctx := context.Background()
	var labels []string
	for {
		page, err := p.NextPage(ctx)
		if errors.Is(err, Done) {
			break
		}
		if err != nil {
			t.Fatalf("NextPage() failed: %v", err)
		}
		labels = append(labels, page.Label)
	}

	if got, want := strings.Join(labels, ","), "p1,p2,p3"; got != want {
		t.Errorf("Pages = %q, want %q", got, want)
	}
	// N pages require exactly N-1 fetches.
	if len(f.tokens) != 2 {
		t.Errorf("Fetch count = %d, want 2", len(f.tokens))
	}
	if got, want := strings.Join(f.tokens, ","), "T1,T2"; got != want {
		t.Errorf("Fetch tokens = %q, want %q", got, want)
	}

	// Done is terminal.
	if _, err := p.NextPage(ctx); !errors.Is(err, Done) {
		t.Errorf("NextPage() after exhaustion = %v, want Done", err)
	}
}

func TestNextPage_SinglePage(t *testing.T) {
	initial := &listResp{Label: "p1", Items: []string{"a"}, NextPageToken: ""}
	f := &fakeFetch{}
	p := newTestPager(initial, f)

	ctx := context.Background()
	page, err := p.NextPage(ctx)
	if err != nil {
		t.Fatalf("NextPage() failed: %v", err)
	}
	if page != initial {
		t.Error("First page should be the stored initial response")
	}

	if _, err := p.NextPage(ctx); !errors.Is(err, Done) {
		t.Errorf("NextPage() = %v, want Done", err)
	}
	if len(f.tokens) != 0 {
		t.Errorf("Fetch count = %d, want 0 for single-page result", len(f.tokens))
	}
}

func TestNextItem_FlattensPages(t *testing.T) {
	initial := &listResp{Items: []string{"a", "b"}, NextPageToken: "T1"}
	f := &fakeFetch{pages: map[string]*listResp{
		"T1": {Items: nil, NextPageToken: "T2"}, // empty page in the middle
		"T2": {Items: []string{"c", "d"}, NextPageToken: ""},
	}}
	p := newTestPager(initial, f)

	ctx := context.Background()
	var items []string
	for {
		item, err := p.NextItem(ctx)
		if errors.Is(err, Done) {
			break
		}
		if err != nil {
			t.Fatalf("NextItem() failed: %v", err)
		}
		items = append(items, item)
	}

	if got, want := strings.Join(items, ","), "a,b,c,d"; got != want {
		t.Errorf("Items = %q, want %q", got, want)
	}
}

func TestResponse_TracksLatestPage(t *testing.T) {
	initial := &listResp{Label: "p1", NextPageToken: "T1"}
	f := &fakeFetch{pages: map[string]*listResp{
		"T1": {Label: "p2", NextPageToken: "T2"},
		"T2": {Label: "p3", NextPageToken: ""},
	}}
	p := newTestPager(initial, f)

	ctx := context.Background()
	if got := p.Response().Label; got != "p1" {
		t.Errorf("Response before iteration = %q, want p1", got)
	}

	// Consume through page 2.
	if _, err := p.NextPage(ctx); err != nil {
		t.Fatalf("NextPage() failed: %v", err)
	}
	if _, err := p.NextPage(ctx); err != nil {
		t.Fatalf("NextPage() failed: %v", err)
	}

	if got := p.Response().Label; got != "p2" {
		t.Errorf("Response after page 2 = %q, want p2 (latest, not first)", got)
	}
}

func TestNextPage_FetchErrorNoRollback(t *testing.T) {
	fetchErr := errors.New("backend unavailable")
	initial := &listResp{Label: "p1", Items: []string{"a"}, NextPageToken: "T1"}
	f := &fakeFetch{
		pages: map[string]*listResp{
			"T1": {Label: "p2", Items: []string{"b"}, NextPageToken: ""},
		},
		errs: map[string]error{"T1": fetchErr},
	}
	p := newTestPager(initial, f)

	ctx := context.Background()
	if _, err := p.NextPage(ctx); err != nil {
		t.Fatalf("First NextPage() failed: %v", err)
	}

	// Page 2 fetch fails; the error propagates unchanged.
	if _, err := p.NextPage(ctx); !errors.Is(err, fetchErr) {
		t.Fatalf("NextPage() error = %v, want %v", err, fetchErr)
	}

	// The last successful response is retained.
	if got := p.Response().Label; got != "p1" {
		t.Errorf("Response after failed fetch = %q, want p1", got)
	}

	// Resuming re-issues the already-advanced request: the token is not
	// rolled back, so the same token is sent again.
	page, err := p.NextPage(ctx)
	if err != nil {
		t.Fatalf("NextPage() after error failed: %v", err)
	}
	if page.Label != "p2" {
		t.Errorf("Resumed page = %q, want p2", page.Label)
	}
	if got, want := strings.Join(f.tokens, ","), "T1,T1"; got != want {
		t.Errorf("Fetch tokens = %q, want %q (same token re-issued)", got, want)
	}
}

func TestItems_ConcreteScenario(t *testing.T) {
	// Initial response {items: [a,b], next_token: "T1"};
	// fetch("T1") -> {items: [c], next_token: ""}.
	initial := &listResp{Items: []string{"a", "b"}, NextPageToken: "T1"}
	f := &fakeFetch{pages: map[string]*listResp{
		"T1": {Items: []string{"c"}, NextPageToken: ""},
	}}
	p := newTestPager(initial, f)

	items, err := p.All(context.Background())
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if got, want := strings.Join(items, ","), "a,b,c"; got != want {
		t.Errorf("All() = %q, want %q", got, want)
	}
	if len(f.tokens) != 1 || f.tokens[0] != "T1" {
		t.Errorf("Fetch tokens = %v, want exactly [T1]", f.tokens)
	}
}

func TestNew_ClonesRequest(t *testing.T) {
	initial := &listResp{NextPageToken: "T1"}
	f := &fakeFetch{pages: map[string]*listResp{
		"T1": {NextPageToken: ""},
	}}
	req := &listReq{Query: "all"}
	p := New[*listReq, *listResp, string](f.fetch, req, initial)

	// Mutating the caller's request must not affect the pager's copy.
	req.PageToken = "corrupted"
	req.Query = "none"

	ctx := context.Background()
	if _, err := p.NextPage(ctx); err != nil {
		t.Fatalf("NextPage() failed: %v", err)
	}
	if _, err := p.NextPage(ctx); err != nil {
		t.Fatalf("NextPage() failed: %v", err)
	}
	if got, want := strings.Join(f.tokens, ","), "T1"; got != want {
		t.Errorf("Fetch tokens = %q, want %q", got, want)
	}
}

func TestPages_Iterator(t *testing.T) {
	initial := &listResp{Label: "p1", NextPageToken: "T1"}
	f := &fakeFetch{pages: map[string]*listResp{
		"T1": {Label: "p2", NextPageToken: "T2"},
		"T2": {Label: "p3", NextPageToken: ""},
	}}
	p := newTestPager(initial, f)

	var labels []string
	for page, err := range p.Pages(context.Background()) {
		if err != nil {
			t.Fatalf("Pages() yielded error: %v", err)
		}
		labels = append(labels, page.Label)
		if len(labels) == 2 {
			break
		}
	}

	if got, want := strings.Join(labels, ","), "p1,p2"; got != want {
		t.Errorf("Pages = %q, want %q", got, want)
	}
	// Breaking out leaves the cursor at the last yielded page.
	if got := p.Response().Label; got != "p2" {
		t.Errorf("Response after early break = %q, want p2", got)
	}
}

func TestItems_IteratorYieldsError(t *testing.T) {
	fetchErr := errors.New("boom")
	initial := &listResp{Items: []string{"a"}, NextPageToken: "T1"}
	f := &fakeFetch{errs: map[string]error{"T1": fetchErr}}
	p := newTestPager(initial, f)

	var items []string
	var gotErr error
	for item, err := range p.Items(context.Background()) {
		if err != nil {
			gotErr = err
			break
		}
		items = append(items, item)
	}

	if got, want := strings.Join(items, ","), "a"; got != want {
		t.Errorf("Items before error = %q, want %q", got, want)
	}
	if !errors.Is(gotErr, fetchErr) {
		t.Errorf("Yielded error = %v, want %v", gotErr, fetchErr)
	}
}

func TestString(t *testing.T) {
	initial := &listResp{Label: "p1"}
	p := newTestPager(initial, &fakeFetch{})

	s := p.String()
	if !strings.HasPrefix(s, "Pager<") {
		t.Errorf("String() = %q, want Pager<...> form", s)
	}
	if !strings.Contains(s, "p1") {
		t.Errorf("String() = %q, should include the current response", s)
	}
}
