package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrNoAPIKey is returned before any request is made when no key is set.
	ErrNoAPIKey = errors.New("api key is not configured")
	// ErrTransport covers connectivity failures and timeouts.
	ErrTransport = errors.New("transport failure")
	// ErrStatus is wrapped by StatusError for any non-2xx response.
	ErrStatus = errors.New("unexpected status code")
	// ErrDecode is returned when a response body cannot be decoded.
	ErrDecode = errors.New("invalid response body")
	// ErrCircuitOpen is returned while the breaker rejects calls.
	ErrCircuitOpen = errors.New("circuit breaker open")

	errNoHTTPClient = errors.New("http client not configured")
)

// maxErrorBody bounds how much of a failed response is kept.
const maxErrorBody = 512

// StatusError captures a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", ErrStatus, e.StatusCode, string(e.Body))
}

func (e *StatusError) Unwrap() error {
	return ErrStatus
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		IsSuccessful: func(err error) bool {
			// A 4xx is the caller's problem, not the API's health.
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode < 500 && se.StatusCode != http.StatusTooManyRequests
			}
			return err == nil
		},
	})
}

// getJSON performs one GET through the circuit breaker and decodes a 2xx
// body into out. There are no retries.
func getJSON(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, url string, out any) error {
	if client == nil {
		return errNoHTTPClient
	}

	_, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransport, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return nil, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return err
}
