package pager

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for pager operations.
var (
	pagerFetchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docstore_pager_fetches_total",
		Help: "Total page fetches issued by pagers (excludes the initial page)",
	})

	pagerFetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docstore_pager_fetch_errors_total",
		Help: "Total page fetches that returned an error",
	})
)

// Done is returned by NextPage and NextItem when iteration is complete.
var Done = errors.New("no more pages")

// Request is a list or query request carrying a page token. Clone must
// return an independent copy; the Pager mutates its own copy in place as
// pages advance.
type Request[R any] interface {
	Clone() R
	SetPageToken(token string)
}

// Page is one response of a paginated call: a repeated field of items
// plus the token of the following page. An empty token means the page is
// the last one.
type Page[T any] interface {
	PageItems() []T
	NextToken() string
}

// FetchFunc issues one remote call. It is supplied by the caller and is
// expected to be bound to whatever transport, auth, and per-call options
// are in effect; the Pager treats its error behavior as opaque.
type FetchFunc[R Request[R], P Page[T], T any] func(ctx context.Context, req R) (P, error)

// Pager lazily walks the pages behind an initial response. It owns a copy
// of the initial request and holds exactly one response at a time, always
// the most recently fetched one.
type Pager[R Request[R], P Page[T], T any] struct {
	fetch FetchFunc[R, P, T]
	req   R
	resp  P

	started bool // initial response handed out
	idx     int  // item cursor within the current response
}

// New creates a Pager from the fetch method, the request that produced
// the initial response, and that response. No I/O happens here; the first
// page has already been fetched by the caller.
func New[R Request[R], P Page[T], T any](fetch FetchFunc[R, P, T], req R, resp P) *Pager[R, P, T] {
	return &Pager[R, P, T]{
		fetch: fetch,
		req:   req.Clone(),
		resp:  resp,
	}
}

// Response returns the most recently fetched response. Before the first
// advance this is the initial response; afterwards it reflects the latest
// page, never page one.
func (p *Pager[R, P, T]) Response() P {
	return p.resp
}

// NextPage returns the next page of results. The first call yields the
// stored initial response without fetching. Each later call sets the
// request's page token from the current response, issues one fetch, and
// replaces the held response. Returns Done once a response with an empty
// next token has been handed out.
//
// On a fetch error the error is returned unchanged and the held response
// stays at the last successful page. The request token is NOT rolled
// back: it still points at the page that failed, so calling NextPage
// again after catching the error re-issues the same advanced request.
// Callers that retry around a pager should account for this.
func (p *Pager[R, P, T]) NextPage(ctx context.Context) (P, error) {
	var zero P

	if !p.started {
		p.started = true
		return p.resp, nil
	}

	token := p.resp.NextToken()
	if token == "" {
		return zero, Done
	}

	p.req.SetPageToken(token)
	resp, err := p.fetch(ctx, p.req)
	if err != nil {
		pagerFetchErrorsTotal.Inc()
		log.Debug().
			Err(err).
			Str("page_token", token).
			Msg("Page fetch failed")
		return zero, err
	}

	pagerFetchesTotal.Inc()
	p.resp = resp
	p.idx = 0

	log.Debug().
		Int("items", len(resp.PageItems())).
		Bool("has_next", resp.NextToken() != "").
		Msg("Page fetched")

	return p.resp, nil
}

// NextItem returns the next item across all pages, in page order and
// original within-page order. Pages are fetched on demand through
// NextPage as the current page drains. Returns Done after the last item
// of the last page; fetch errors propagate unchanged, with the same
// no-rollback behavior as NextPage.
func (p *Pager[R, P, T]) NextItem(ctx context.Context) (T, error) {
	for {
		if p.started {
			items := p.resp.PageItems()
			if p.idx < len(items) {
				item := items[p.idx]
				p.idx++
				return item, nil
			}
		}

		if _, err := p.NextPage(ctx); err != nil {
			var zero T
			return zero, err
		}
	}
}

// Pages returns the remaining pages as a range-over-func sequence. The
// sequence shares the pager's cursor: it is single-use, and breaking out
// early leaves the pager positioned at the last yielded page. A fetch
// error is yielded as the final element.
func (p *Pager[R, P, T]) Pages(ctx context.Context) iter.Seq2[P, error] {
	return func(yield func(P, error) bool) {
		for {
			page, err := p.NextPage(ctx)
			if errors.Is(err, Done) {
				return
			}
			if err != nil {
				var zero P
				yield(zero, err)
				return
			}
			if !yield(page, nil) {
				return
			}
		}
	}
}

// Items returns the remaining items as a range-over-func sequence, with
// the same single-use semantics as Pages.
func (p *Pager[R, P, T]) Items(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, err := p.NextItem(ctx)
			if errors.Is(err, Done) {
				return
			}
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// All drains the pager and returns the concatenation of every remaining
// page's items.
func (p *Pager[R, P, T]) All(ctx context.Context) ([]T, error) {
	var items []T
	for item, err := range p.Items(ctx) {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// String returns a debug form showing the currently held response.
func (p *Pager[R, P, T]) String() string {
	return fmt.Sprintf("Pager<%+v>", p.resp)
}
