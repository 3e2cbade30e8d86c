// Package pager implements lazy token-based pagination over remote list
// and query calls.
//
// A Pager wraps the method that produced an initial response, the request
// that was sent, and that first response. It walks the remaining pages on
// demand: each advance sets the request's page token to the previous
// response's next token and issues exactly one fetch. Iteration ends when
// a response carries an empty next token.
//
// Example usage:
//
//	pager := pager.New[*ListReq, *ListResp, Item](fetch, req, firstResp)
//	for {
//		item, err := pager.NextItem(ctx)
//		if errors.Is(err, pager.Done) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		handle(item)
//	}
//
// A Pager is a single-use cursor. Advancing it mutates the owned request
// and replaces the held response, so it must not be shared between
// concurrent consumers and cannot be restarted; construct a new Pager
// from a fresh first-page fetch instead.
package pager
