package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitQuotes submits the generated quotes one at a time. Appends to the
// backing store are not arbitrated, so submissions stay sequential.
func submitQuotes(ctx context.Context, config *Config, subs []Submission, stats *Stats) error {
	log.Printf("submitting %d quotes...", len(subs))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/quotes"

	for i, sub := range subs {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled during submission: %w", ctx.Err())
		default:
		}

		stats.QuotesSubmitted++
		if submitSingleQuote(ctx, client, url, sub) {
			stats.QuotesSuccessful++
		} else {
			stats.QuotesFailed++
		}

		if config.Verbose {
			log.Printf("progress: %d/%d submitted (success: %d, failed: %d)",
				i+1, len(subs), stats.QuotesSuccessful, stats.QuotesFailed)
		}

		if config.Interval > 0 && i < len(subs)-1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled during submission: %w", ctx.Err())
			case <-time.After(config.Interval):
			}
		}
	}

	log.Printf(`quote submission completed:
   Successful: %d
   Failed: %d
`, stats.QuotesSuccessful, stats.QuotesFailed)

	return nil
}

// submitSingleQuote submits one quote and reports whether it was stored.
func submitSingleQuote(ctx context.Context, client *HTTPClient, url string, sub Submission) bool {
	resp, err := client.Post(ctx, url, sub)
	if err != nil {
		return false
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return false
	}

	if resp.StatusCode != StatusCreated {
		log.Printf("submission rejected with status %d: %s", resp.StatusCode, string(body))
		return false
	}

	var stored StoredQuote
	if err := json.Unmarshal(body, &stored); err != nil {
		// A 201 means the record is durable even if the echo is unreadable.
		return true
	}
	return stored.TimestampUTC != ""
}

// fetchBoardSize reads the full history back and returns its length.
func fetchBoardSize(ctx context.Context, config *Config) (int, error) {
	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/quotes")
	if err != nil {
		return 0, fmt.Errorf("failed to read board: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return 0, fmt.Errorf("failed to read board response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return 0, fmt.Errorf("board read failed with status: %d", resp.StatusCode)
	}

	var quotes []StoredQuote
	if err := json.Unmarshal(body, &quotes); err != nil {
		return 0, fmt.Errorf("failed to parse board response: %w", err)
	}
	return len(quotes), nil
}
