// Package provider adapts external company, search, registry and DNS
// services to the domain capability ports.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

const maxBodyBytes = 2 << 20

// errNotFound marks a 404 so that callers can map it to "no data".
var errNotFound = errors.New("not found")

// doer is satisfied by *http.Client.
type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// fetch executes the request built by newReq, retrying 5xx and transport
// errors with a short exponential backoff. The request is rebuilt on every
// attempt so bodies can be replayed.
func fetch(ctx context.Context, client doer, newReq func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	backoff := retry.WithMaxRetries(2, retry.NewExponential(100*time.Millisecond))

	var body []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := newReq(ctx)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return errNotFound
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("upstream status %d", resp.StatusCode))
		case resp.StatusCode >= 300:
			return fmt.Errorf("upstream status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return err
	})
	return body, err
}

// NewHTTPClient returns a client with the given per-request timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
