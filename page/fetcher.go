package page

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/prometheus/common/log"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultURL is the status page of a Freebox seen from the LAN
	DefaultURL = "http://mafreebox.freebox.fr/pub/fbx_info.txt"
	// DefaultEncoding is the charset the status page is served in
	DefaultEncoding = "iso-8859-1"
)

// FetchError is returned when the status page cannot be retrieved
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("could not fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves the status page
type Fetcher struct {
	url      string
	encoding string
	client   *http.Client
}

// NewFetcher creates a fetcher for url, decoding the body from encoding
func NewFetcher(url, encoding string, client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if encoding == "" {
		encoding = DefaultEncoding
	}
	return &Fetcher{
		url:      url,
		encoding: encoding,
		client:   client,
	}
}

// Fetch issues a single GET and returns the page as UTF-8 lines
func (f *Fetcher) Fetch(ctx context.Context) (Page, error) {
	req, err := http.NewRequest(http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}

	resp, err := f.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("wrong status code %d", resp.StatusCode)}
	}

	r, err := charset.NewReaderLabel(f.encoding, resp.Body)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	body, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	log.Debugf("fetched %d bytes from %s", len(body), f.url)

	return Parse(string(body)), nil
}
