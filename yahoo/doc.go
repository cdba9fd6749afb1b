// Package yahoo provides the transport for the Yahoo Fantasy Sports API.
//
// The Client performs authenticated GET requests for resource paths built by
// the query package and returns the fantasy_content payload of the response.
//
// # Features
//
//   - Bearer authentication through a TokenSource
//   - Token refresh shortly before expiry, with a configurable margin
//   - A fixed, context-aware pause before each request
//   - Typed errors for non-200 responses
//
// # Usage
//
//	client, err := yahoo.NewClient(authService, logger,
//		yahoo.WithTimeout(10*time.Second),
//		yahoo.WithRequestDelay(500*time.Millisecond),
//	)
//	if err != nil {
//		return err
//	}
//
//	content, err := client.Get(ctx, "league/nhl.l.12345/standings")
//	var apiErr *yahoo.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// re-run the authorization flow
//	}
//
// The client is safe for concurrent use; requests are serialised so the
// request delay applies between consecutive calls.
package yahoo
