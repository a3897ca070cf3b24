package herego

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Get issues a single GET against rawURL and returns the raw response body.
// Exactly one attempt is made. Transport failures come back as
// *TransportError; the HTTP status is not inspected because the services
// signal errors through the JSON envelope, including on 200 responses.
func Get(ctx context.Context, client HTTPDoer, rawURL string, timeout time.Duration, operation string) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Operation: operation, Err: err}
	}
	return body, nil
}

// DecodeJSON unmarshals body into v, reporting failures as *ParseError.
func DecodeJSON(body []byte, v interface{}, operation string) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &ParseError{Operation: operation, Err: err}
	}
	return nil
}
