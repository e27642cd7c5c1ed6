// Package httputil provides the HTTP plumbing for remote ontology documents.
//
//   - [NewClient]: an HTTP client with a fetch timeout and User-Agent
//   - [CheckStatus]: maps response codes to [ErrNotFound], [ErrNetwork] and
//     retryable errors
//   - [Retry]: retry with exponential backoff for transient failures
//
// Transient failures (connection errors, 5xx, 429) are wrapped in
// [RetryableError]; everything else is returned to the caller at once:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    return httputil.CheckStatus(resp.StatusCode)
//	})
package httputil
