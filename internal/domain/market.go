package domain

import "time"

// MarketSnapshot aggregates global market statistics for a single report.
// Pointer fields are nil when the provider omitted the value; a nil field
// drops the corresponding report line rather than rendering a zero.
type MarketSnapshot struct {
	TotalMarketCapUSD *float64
	TotalVolumeUSD    *float64
	CapChange24hPct   *float64
	ActiveAssets      int
	BTCDominancePct   *float64
}

// AssetQuote is a single priced asset, either a row from the markets
// listing or the dedicated Bitcoin quote.
type AssetQuote struct {
	Name         string
	Symbol       string
	PriceUSD     *float64
	MarketCapUSD *float64
	Change24hPct *float64
}

// TrendingEntry is a provider-flagged popular asset. The provider already
// rank-orders these; MarketCapRank is nil for unranked coins.
type TrendingEntry struct {
	Name          string
	Symbol        string
	MarketCapRank *int
	PriceBTC      float64
}

// DefiProtocol is a DeFi project with its total value locked.
type DefiProtocol struct {
	Name        string
	Category    string
	TVLUSD      *float64
	Change1dPct *float64
}

// SentimentReading is the latest fear & greed index value (0-100).
type SentimentReading struct {
	Value          int
	Classification string
	Timestamp      time.Time
}
