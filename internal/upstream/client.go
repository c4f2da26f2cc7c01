// Package upstream fetches the peps.python.org index and resolves its
// entries to local mirror document names.
package upstream

import (
	"context"
	"fmt"
	"net/http"
)

const DefaultIndexURL = "https://peps.python.org/api/peps.json"

// Client fetches the upstream PEP index. The zero value fetches the
// public index with http.DefaultClient.
type Client struct {
	IndexURL   string
	HTTPClient *http.Client
	UserAgent  string
}

func NewClient(indexURL string) *Client {
	return &Client{IndexURL: indexURL}
}

func (c *Client) fillDefaults() {
	if c.IndexURL == "" {
		c.IndexURL = DefaultIndexURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.UserAgent == "" {
		c.UserAgent = "github.com/emrgen/peps"
	}
}

type HTTPError struct {
	Status     string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %s", e.Status)
}

// FetchIndex retrieves and parses the index. Transport failures and non-200
// responses come back as errors; callers of an ingestion run treat them as
// fatal for the whole run.
func (c *Client) FetchIndex(ctx context.Context) (_ *Index, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("GET %q: %w", c.IndexURL, err)
		}
	}()
	c.fillDefaults()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.IndexURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{Status: resp.Status, StatusCode: resp.StatusCode}
	}

	return ParseIndex(resp.Body)
}
