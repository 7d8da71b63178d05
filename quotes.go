package brokerage

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// QuoteService fetches current unit prices from a JSON quote API over HTTP.
// It implements PriceProvider, mapping HTTP outcomes onto the core error
// taxonomy: a 404 means the symbol is unknown (ErrInvalidSymbol), any other
// failure means the symbol cannot be priced right now (ErrPriceUnavailable).
type QuoteService struct {
	// BaseURL is the API root, e.g. "https://quotes.example.com/api".
	BaseURL string
	// APIKey is appended as the api_token query parameter when set.
	APIKey string
	// PricePath is the JSONPath expression locating the price in the
	// response body. Defaults to "$.price".
	PricePath string
	// Client is the HTTP client to use. Defaults to a client whose
	// responses are disk-cached with a daily expiry.
	Client *http.Client
}

// NewQuoteService creates a quote service with the daily-cached HTTP client.
func NewQuoteService(baseURL, apiKey string) *QuoteService {
	return &QuoteService{BaseURL: baseURL, APIKey: apiKey, Client: dailyCached()}
}

// Price implements PriceProvider.
func (s *QuoteService) Price(symbol string) (Money, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return Money{}, err
	}

	addr := fmt.Sprintf("%s/quote/%s?fmt=json", strings.TrimRight(s.BaseURL, "/"), url.PathEscape(sym))
	if s.APIKey != "" {
		addr += "&api_token=" + url.QueryEscape(s.APIKey)
	}

	var payload any
	if err := jwget(s.client(), addr, &payload); err != nil {
		var status *httpStatusError
		if errors.As(err, &status) && status.code == http.StatusNotFound {
			return Money{}, fmt.Errorf("%w: quote API does not know %q", ErrInvalidSymbol, sym)
		}
		return Money{}, fmt.Errorf("%w: %q: %v", ErrPriceUnavailable, sym, err)
	}

	value, err := jsonpath.Get(s.pricePath(), payload)
	if err != nil {
		return Money{}, fmt.Errorf("%w: no price field for %q: %v", ErrPriceUnavailable, sym, err)
	}
	price, ok := value.(float64)
	if !ok || price <= 0 {
		return Money{}, fmt.Errorf("%w: quote API returned %v for %q", ErrPriceUnavailable, value, sym)
	}
	return M(price), nil
}

func (s *QuoteService) pricePath() string {
	if s.PricePath == "" {
		return "$.price"
	}
	return s.PricePath
}

func (s *QuoteService) client() *http.Client {
	if s.Client == nil {
		s.Client = dailyCached()
	}
	return s.Client
}

// httpStatusError reports a non-2xx response.
type httpStatusError struct {
	code   int
	status string
}

func (e *httpStatusError) Error() string { return e.status }

// diskCache implements a simple disk cache for HTTP responses. The cache key
// includes the current day, so entries expire daily.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := fmt.Sprintf("%s %s %s", time.Now().UTC().Format("2006-01-02"), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to the disk cache.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(os.TempDir(), key))
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// dailyCached returns a client whose responses are cached with daily expiry.
func dailyCached() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %w", resp.Request.URL.Host, resp.Request.URL.Path,
			&httpStatusError{code: resp.StatusCode, status: resp.Status})
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
