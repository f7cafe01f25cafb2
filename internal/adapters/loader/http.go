package loader

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPLoader fetches resources relative to a base URL.
type HTTPLoader struct {
	base    *url.URL
	client  *http.Client
	timeout time.Duration
}

// NewHTTP builds a loader rooted at base. A trailing slash is implied.
func NewHTTP(base *url.URL, opts ...Option) *HTTPLoader {
	b := *base
	if !strings.HasSuffix(b.Path, "/") {
		b.Path += "/"
	}
	l := &HTTPLoader{base: &b, client: http.DefaultClient}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load issues a GET for path and decodes the body. Non-2xx responses fail
// with ErrLoad naming the path.
func (l *HTTPLoader) Load(ctx context.Context, path string, v any) error {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	ref, err := url.Parse(path)
	if err != nil {
		return loadError(path, err.Error())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.base.ResolveReference(ref).String(), nil)
	if err != nil {
		return loadError(path, err.Error())
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.client.Do(req)
	if err != nil {
		return loadError(path, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return loadError(path, fmt.Sprintf("status %d", resp.StatusCode))
	}
	return decode(path, resp.Body, v)
}
