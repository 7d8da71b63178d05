package brokerage

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuoteServer(t *testing.T, prices map[string]float64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Path[len("/quote/"):]
		price, ok := prices[symbol]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `{"symbol":%q,"price":%v}`, symbol, price)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestQuoteServicePrice(t *testing.T) {
	server := newQuoteServer(t, map[string]float64{"AAPL": 190.005, "TSLA": 250})
	svc := &QuoteService{BaseURL: server.URL, Client: server.Client()}

	price, err := svc.Price("aapl")
	require.NoError(t, err)
	assert.Equal(t, "190.01", price.String())

	price, err = svc.Price("TSLA")
	require.NoError(t, err)
	assert.Equal(t, "250.00", price.String())
}

func TestQuoteServiceUnknownSymbol(t *testing.T) {
	server := newQuoteServer(t, nil)
	svc := &QuoteService{BaseURL: server.URL, Client: server.Client()}

	_, err := svc.Price("ZZZZ")
	assert.ErrorIs(t, err, ErrInvalidSymbol)

	_, err = svc.Price("not a symbol")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestQuoteServiceBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol":"AAPL"}`)
	}))
	t.Cleanup(server.Close)
	svc := &QuoteService{BaseURL: server.URL, Client: server.Client()}

	_, err := svc.Price("AAPL")
	assert.ErrorIs(t, err, ErrPriceUnavailable)
}

func TestQuoteServiceNonPositivePrice(t *testing.T) {
	server := newQuoteServer(t, map[string]float64{"AAPL": 0})
	svc := &QuoteService{BaseURL: server.URL, Client: server.Client()}

	_, err := svc.Price("AAPL")
	assert.ErrorIs(t, err, ErrPriceUnavailable)
}

func TestQuoteServiceServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	svc := &QuoteService{BaseURL: server.URL, Client: server.Client()}

	_, err := svc.Price("AAPL")
	assert.ErrorIs(t, err, ErrPriceUnavailable)
}

func TestQuoteServiceCustomPricePath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"last":99.5}}`)
	}))
	t.Cleanup(server.Close)
	svc := &QuoteService{BaseURL: server.URL, PricePath: "$.data.last", Client: server.Client()}

	price, err := svc.Price("AAPL")
	require.NoError(t, err)
	assert.Equal(t, "99.50", price.String())
}
