package pricing

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// quoteCurrency is the fiat side of every price this client returns.
const quoteCurrency = "brl"

// symbolToID maps common ticker symbols to CoinGecko coin IDs. Symbols not
// listed here fall back to their lowercase form, which is correct for many
// smaller coins whose ID matches the ticker.
var symbolToID = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOT":   "polkadot",
	"DOGE":  "dogecoin",
	"AVAX":  "avalanche-2",
	"MATIC": "matic-network",
	"LINK":  "chainlink",
	"LTC":   "litecoin",
	"BNB":   "binancecoin",
	"USDT":  "tether",
	"USDC":  "usd-coin",
}

// Client provides methods for fetching market data from the CoinGecko API.
// It wraps an HTTP client and translates ticker symbols to coin IDs on the
// way out and back.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new market data client against the given API base
// URL (e.g. "https://api.coingecko.com/api/v3").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// CoinID translates a ticker symbol to the provider's coin ID.
func CoinID(symbol string) string {
	if id, ok := symbolToID[strings.ToUpper(symbol)]; ok {
		return id
	}
	return strings.ToLower(symbol)
}

// QuerySimplePrice fetches the current price and 24h change for the given
// symbols in a single request. The response is keyed by coin ID; use
// CoinID to look entries up per symbol.
//
// Parameters:
//   - symbols: ticker symbols (e.g. "BTC", "ETH")
//
// Returns:
//   - SimplePriceResponse: Raw API response keyed by coin ID
//   - error: If the HTTP request fails or the response cannot be parsed
func (c *Client) QuerySimplePrice(symbols []string) (SimplePriceResponse, error) {
	ids := make([]string, len(symbols))
	for i, symbol := range symbols {
		ids[i] = CoinID(symbol)
	}

	endpoint := fmt.Sprintf(
		"%s/simple/price?ids=%s&vs_currencies=%s&include_24hr_change=true",
		c.baseURL,
		url.QueryEscape(strings.Join(ids, ",")),
		quoteCurrency,
	)

	var response SimplePriceResponse
	if err := c.query(endpoint, &response); err != nil {
		return nil, err
	}

	return response, nil
}

// PriceFor extracts the price and 24h change for one symbol from a simple
// price response.
//
// Returns:
//   - price, change: the quoted values
//   - bool: true if the symbol was present in the response
func (r SimplePriceResponse) PriceFor(symbol string) (price, change float64, ok bool) {
	entry, ok := r[CoinID(symbol)]
	if !ok {
		return 0, 0, false
	}
	price, ok = entry[quoteCurrency]
	if !ok {
		return 0, 0, false
	}
	return price, entry[quoteCurrency+"_24h_change"], true
}

// QueryMarketChart fetches up to `days` days of price history for a
// symbol and reduces the intraday points to one close per calendar day.
// The provider returns multiple samples per day for short ranges; the
// last sample of each day wins.
//
// Parameters:
//   - symbol: ticker symbol (e.g. "BTC")
//   - days: how many days back to fetch
//
// Returns:
//   - []DailyClose: one entry per day, in ascending date order
//   - error: If the HTTP request fails, parsing fails, or no data is returned
func (c *Client) QueryMarketChart(symbol string, days int) ([]DailyClose, error) {
	endpoint := fmt.Sprintf(
		"%s/coins/%s/market_chart?vs_currency=%s&days=%d&interval=daily",
		c.baseURL,
		url.PathEscape(CoinID(symbol)),
		quoteCurrency,
		days,
	)

	var response MarketChartResponse
	if err := c.query(endpoint, &response); err != nil {
		return nil, err
	}
	if len(response.Prices) == 0 {
		return nil, fmt.Errorf("no price data returned for symbol %s", symbol)
	}

	byDay := make(map[time.Time]float64)
	order := []time.Time{}
	for _, pair := range response.Prices {
		if len(pair) != 2 {
			return nil, fmt.Errorf("malformed price pair for symbol %s", symbol)
		}
		day := time.UnixMilli(int64(pair[0])).UTC().Truncate(24 * time.Hour)
		if _, seen := byDay[day]; !seen {
			order = append(order, day)
		}
		byDay[day] = pair[1]
	}

	closes := make([]DailyClose, len(order))
	for i, day := range order {
		closes[i] = DailyClose{Date: day, Price: byDay[day]}
	}

	return closes, nil
}

// query is an internal helper that executes HTTP requests to the market
// data API and decodes the JSON response into out.
func (c *Client) query(endpoint string, out any) error {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", "crypto-portfolio-tracker/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("market data API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return err
	}

	return nil
}
