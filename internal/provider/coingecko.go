package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"alphascope/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	coingeckoBaseURL = "https://api.coingecko.com/api/v3"

	// RequestTimeout bounds every provider HTTP call.
	RequestTimeout = 15 * time.Second

	defaultMarketsLimit = 50
	trendingLimit       = 5
)

// CoinGeckoProvider fetches global stats, the market listing, trending coins
// and the Bitcoin quote from the CoinGecko free API.
type CoinGeckoProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewCoinGeckoProvider creates a provider with built-in rate limiting.
// Rate limited to 8 requests per minute (one token every 7.5 seconds).
// Callers normally pass the process-wide shared client; nil gets a
// default client with the standard timeout.
func NewCoinGeckoProvider(tracer trace.Tracer, client *http.Client) *CoinGeckoProvider {
	if client == nil {
		client = &http.Client{Timeout: RequestTimeout}
	}
	return &CoinGeckoProvider{
		client:  client,
		baseURL: coingeckoBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(8, 7500*time.Millisecond),
	}
}

// FetchGlobal fetches aggregate market statistics from /global.
func (p *CoinGeckoProvider) FetchGlobal(ctx context.Context) (*domain.MarketSnapshot, error) {
	_, span := p.tracer.Start(ctx, "coingecko.fetch-global")
	defer span.End()

	body, err := p.doRequest(ctx, p.baseURL+"/global")
	if err != nil {
		return nil, fmt.Errorf("fetch global stats: %w", err)
	}

	var raw struct {
		Data struct {
			TotalMarketCap      map[string]float64 `json:"total_market_cap"`
			TotalVolume         map[string]float64 `json:"total_volume"`
			CapChange24hUSD     *float64           `json:"market_cap_change_percentage_24h_usd"`
			ActiveCryptos       int                `json:"active_cryptocurrencies"`
			MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse global stats: %w", err)
	}

	snap := &domain.MarketSnapshot{
		CapChange24hPct: raw.Data.CapChange24hUSD,
		ActiveAssets:    raw.Data.ActiveCryptos,
	}
	if v, ok := raw.Data.TotalMarketCap["usd"]; ok {
		snap.TotalMarketCapUSD = &v
	}
	if v, ok := raw.Data.TotalVolume["usd"]; ok {
		snap.TotalVolumeUSD = &v
	}
	if v, ok := raw.Data.MarketCapPercentage["btc"]; ok {
		snap.BTCDominancePct = &v
	}
	return snap, nil
}

// FetchMarkets fetches up to limit assets ordered by market cap descending.
// This listing is the source of truth for top-mover selection; optional
// fields stay nil when CoinGecko reports null.
func (p *CoinGeckoProvider) FetchMarkets(ctx context.Context, limit int) ([]domain.AssetQuote, error) {
	_, span := p.tracer.Start(ctx, "coingecko.fetch-markets")
	defer span.End()

	if limit <= 0 {
		limit = defaultMarketsLimit
	}
	url := fmt.Sprintf("%s/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1&sparkline=false",
		p.baseURL, limit)

	body, err := p.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}

	var raw []struct {
		Name         string   `json:"name"`
		Symbol       string   `json:"symbol"`
		CurrentPrice *float64 `json:"current_price"`
		MarketCap    *float64 `json:"market_cap"`
		Change24hPct *float64 `json:"price_change_percentage_24h"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse markets: %w", err)
	}

	quotes := make([]domain.AssetQuote, 0, len(raw))
	for _, row := range raw {
		quotes = append(quotes, domain.AssetQuote{
			Name:         row.Name,
			Symbol:       strings.ToUpper(row.Symbol),
			PriceUSD:     row.CurrentPrice,
			MarketCapUSD: row.MarketCap,
			Change24hPct: row.Change24hPct,
		})
	}
	return quotes, nil
}

// FetchTrending fetches the currently popular coins from /search/trending.
// The provider order is already rank-ordered; only the first five are kept.
func (p *CoinGeckoProvider) FetchTrending(ctx context.Context) ([]domain.TrendingEntry, error) {
	_, span := p.tracer.Start(ctx, "coingecko.fetch-trending")
	defer span.End()

	body, err := p.doRequest(ctx, p.baseURL+"/search/trending")
	if err != nil {
		return nil, fmt.Errorf("fetch trending: %w", err)
	}

	var raw struct {
		Coins []struct {
			Item struct {
				Name          string  `json:"name"`
				Symbol        string  `json:"symbol"`
				MarketCapRank *int    `json:"market_cap_rank"`
				PriceBTC      float64 `json:"price_btc"`
			} `json:"item"`
		} `json:"coins"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse trending: %w", err)
	}

	coins := raw.Coins
	if len(coins) > trendingLimit {
		coins = coins[:trendingLimit]
	}
	entries := make([]domain.TrendingEntry, 0, len(coins))
	for _, row := range coins {
		entries = append(entries, domain.TrendingEntry{
			Name:          row.Item.Name,
			Symbol:        strings.ToUpper(row.Item.Symbol),
			MarketCapRank: row.Item.MarketCapRank,
			PriceBTC:      row.Item.PriceBTC,
		})
	}
	return entries, nil
}

// FetchBitcoinQuote fetches the Bitcoin price, 24h change and market cap
// from /simple/price.
func (p *CoinGeckoProvider) FetchBitcoinQuote(ctx context.Context) (*domain.AssetQuote, error) {
	_, span := p.tracer.Start(ctx, "coingecko.fetch-bitcoin-quote")
	defer span.End()

	url := p.baseURL + "/simple/price?ids=bitcoin&vs_currencies=usd&include_24hr_change=true&include_market_cap=true"
	body, err := p.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch bitcoin quote: %w", err)
	}

	var raw map[string]struct {
		USD          *float64 `json:"usd"`
		USD24hChange *float64 `json:"usd_24h_change"`
		USDMarketCap *float64 `json:"usd_market_cap"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse bitcoin quote: %w", err)
	}
	row, ok := raw["bitcoin"]
	if !ok {
		return nil, fmt.Errorf("bitcoin quote missing from response")
	}

	return &domain.AssetQuote{
		Name:         "Bitcoin",
		Symbol:       "BTC",
		PriceUSD:     row.USD,
		MarketCapUSD: row.USDMarketCap,
		Change24hPct: row.USD24hChange,
	}, nil
}

func (p *CoinGeckoProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("coingecko API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
