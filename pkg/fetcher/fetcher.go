// Package fetcher retrieves item pages: one GET per item with a fixed
// identification header and a bounded timeout, returning a parsed document
// plus the response metadata the run history records.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/dtnitsch/wanikani-scraper/internal/common"
)

// FetchError reports a failed page retrieval: a transport error (Err set)
// or a non-2xx response (StatusCode set).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status code %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Page is one fetched document plus response metadata.
type Page struct {
	Doc         *goquery.Document
	StatusCode  int
	Duration    time.Duration
	Size        int
	ContentHash string
}

// Fetcher issues page requests through a single shared client.
type Fetcher struct {
	client *resty.Client
}

// New builds a fetcher with the given User-Agent and per-request timeout.
func New(userAgent string, timeout time.Duration) *Fetcher {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetTimeout(timeout)
	return &Fetcher{client: client}
}

// Fetch GETs one page and parses it. No internal retry: a transport error
// or non-2xx status comes back as *FetchError and propagates to the caller.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if !res.IsSuccess() {
		return nil, &FetchError{URL: url, StatusCode: res.StatusCode()}
	}

	body := res.Body()
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}

	return &Page{
		Doc:         doc,
		StatusCode:  res.StatusCode(),
		Duration:    res.Time(),
		Size:        len(body),
		ContentHash: common.ContentHash(body),
	}, nil
}
