// Loads external SVG documents over HTTP and keeps them in a
// process-wide cache. Concurrent requests for the same URL are
// coalesced into one fetch, and settled outcomes (including
// failures) are memoized for the lifetime of the process.
package svgfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/steve02081504/animate-SVG/svgdom"
)

// Loader fetches and parses documents, one cached entry per
// normalized URL. The zero value is not usable; use NewLoader.
type Loader struct {
	client *http.Client

	mu   sync.Mutex
	docs map[string]*outcome
	sf   singleflight.Group
}

// outcome is a settled load: either a parsed document or the error
// that prevented it. Entries are never evicted or retried.
type outcome struct {
	doc *svgdom.Document
	err error
}

// NewLoader returns a Loader backed by the given client,
// or http.DefaultClient when client is nil.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client, docs: map[string]*outcome{}}
}

// Normalize strips the query and fragment from a document URL,
// producing the cache key.
func Normalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// Load returns the document at the given URL, fetching and parsing it
// at most once per normalized URL. A failed load is cached as a
// failure and returned to every later caller.
func (l *Loader) Load(ctx context.Context, rawURL string) (*svgdom.Document, error) {
	key := Normalize(rawURL)

	l.mu.Lock()
	if out, ok := l.docs[key]; ok {
		l.mu.Unlock()
		return out.doc, out.err
	}
	l.mu.Unlock()

	v, err, _ := l.sf.Do(key, func() (interface{}, error) {
		doc, err := l.fetch(ctx, key)
		out := &outcome{doc: doc, err: err}
		l.mu.Lock()
		l.docs[key] = out
		l.mu.Unlock()
		return out, nil
	})
	if err != nil {
		// the inner func never fails; keep the compiler honest
		return nil, err
	}
	out := v.(*outcome)
	return out.doc, out.err
}

func (l *Loader) fetch(ctx context.Context, docURL string) (*svgdom.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", docURL, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", docURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch %s: unexpected status %s", docURL, resp.Status)
	}
	doc, err := svgdom.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", docURL, err)
	}
	doc.URL = docURL
	return doc, nil
}

// defaultLoader backs the package level Load used by svganim.
var defaultLoader = NewLoader(nil)

// DefaultLoader returns the shared process-wide loader.
func DefaultLoader() *Loader {
	return defaultLoader
}

// Load fetches through the shared process-wide loader.
func Load(ctx context.Context, rawURL string) (*svgdom.Document, error) {
	return defaultLoader.Load(ctx, rawURL)
}
