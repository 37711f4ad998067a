package eventor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/beevik/etree"

	"github.com/erikaderstedt/tkassa/internal/storage"
)

// Client fetches Eventor documents over HTTP, authenticating with a
// static ApiKey header. Responses are cached by query fingerprint; a
// cache write failure is logged but never fails the fetch.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   storage.Cache
}

// New returns a client against the given base URL. Pass storage.Nop{}
// to run without a cache.
func New(baseURL, apiKey string, cache storage.Cache) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{},
		cache:   cache,
	}
}

// Fetch resolves a query to the root element of the response document.
// Transport failures, non-200 responses and unparseable bodies are all
// fatal to the caller's run.
func (c *Client) Fetch(ctx context.Context, q Query) (*etree.Element, error) {
	key := q.Fingerprint()
	if body, ok, err := c.cache.Get(ctx, key); err != nil {
		return nil, fmt.Errorf("reading response cache: %w", err)
	} else if ok {
		slog.Debug("cache hit", "endpoint", q.Endpoint, "fingerprint", key)
		return parseDocument(body)
	}

	u := q.URL(c.baseURL)
	slog.Info("eventor request", "url", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", q.Endpoint, err)
	}
	req.Header.Set("ApiKey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", q.Endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requesting %s: unexpected status %s", q.Endpoint, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", q.Endpoint, err)
	}

	if err := c.cache.Put(ctx, key, string(body)); err != nil {
		slog.Warn("unable to cache response", "endpoint", q.Endpoint, "error", err)
	}

	return parseDocument(string(body))
}

func parseDocument(body string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, fmt.Errorf("invalid XML from Eventor: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty document from Eventor")
	}
	return root, nil
}
