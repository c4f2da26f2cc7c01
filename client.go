package peps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when the server has no PEP by that number.
	ErrNotFound = errors.New("pep not found")
)

// Client calls the query API of a running peps server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
	}
}

type Author struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PEP struct {
	Number        int      `json:"number"`
	Title         string   `json:"title"`
	Status        string   `json:"status"`
	Type          string   `json:"type"`
	Topic         string   `json:"topic"`
	Created       *string  `json:"created"`
	PythonVersion *string  `json:"python_version"`
	URL           string   `json:"url"`
	Authors       []Author `json:"authors"`
}

type PEPList struct {
	PEPs  []PEP `json:"peps"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

type SearchResult struct {
	PEPs  []PEP  `json:"peps"`
	Total int    `json:"total"`
	Query string `json:"query"`
}

// GetPEP retrieves one PEP by number. A 404 comes back as ErrNotFound.
func (c *Client) GetPEP(ctx context.Context, number int) (*PEP, error) {
	var pep PEP
	if err := c.get(ctx, "/api/peps/"+strconv.Itoa(number), nil, &pep); err != nil {
		return nil, err
	}

	return &pep, nil
}

// ListPEPs retrieves one page of PEPs.
func (c *Client) ListPEPs(ctx context.Context, skip, limit int) (*PEPList, error) {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var list PEPList
	if err := c.get(ctx, "/api/peps", query, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// SearchPEPs retrieves all PEPs whose title contains q.
func (c *Client) SearchPEPs(ctx context.Context, q string) (*SearchResult, error) {
	query := url.Values{}
	query.Set("q", q)

	var result SearchResult
	if err := c.get(ctx, "/api/search", query, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// CountPEPs returns the total number of stored PEPs.
func (c *Client) CountPEPs(ctx context.Context) (int64, error) {
	var res struct {
		Count int64 `json:"count"`
	}
	if err := c.get(ctx, "/api/peps/count", nil, &res); err != nil {
		return 0, err
	}

	return res.Count, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (err error) {
	u := strings.TrimRight(c.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	defer func() {
		if err != nil && !errors.Is(err, ErrNotFound) {
			err = fmt.Errorf("GET %q: %w", u, err)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
