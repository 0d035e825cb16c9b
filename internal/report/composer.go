package report

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"alphascope/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	BotName    = "AlphaScope"
	BotVersion = "1.0.0"
)

// Name clipping widths per report section, to bound message size.
const (
	moverNameWidth    = 15
	trendingNameWidth = 12
	categoryWidth     = 8
)

// How many trending coins the full summary shows (the /trending command
// shows all five the adapter returns).
const summaryTrendingCount = 3

// MarketReader is the CoinGecko surface the composer consumes.
type MarketReader interface {
	FetchGlobal(ctx context.Context) (*domain.MarketSnapshot, error)
	FetchMarkets(ctx context.Context, limit int) ([]domain.AssetQuote, error)
	FetchTrending(ctx context.Context) ([]domain.TrendingEntry, error)
	FetchBitcoinQuote(ctx context.Context) (*domain.AssetQuote, error)
}

type DefiReader interface {
	FetchProtocols(ctx context.Context) ([]domain.DefiProtocol, error)
}

type SentimentReader interface {
	FetchLatest(ctx context.Context) (*domain.SentimentReading, error)
}

// Service composes market reports from the provider adapters. It holds no
// mutable state beyond the injected readers and is safe for concurrent use
// by bot and HTTP handler goroutines.
type Service struct {
	tracer      trace.Tracer
	market      MarketReader
	defi        DefiReader
	sentiment   SentimentReader
	moversLimit int
	clock       func() time.Time
}

func NewService(tracer trace.Tracer, market MarketReader, defi DefiReader, sentiment SentimentReader, moversLimit int) *Service {
	if moversLimit <= 0 {
		moversLimit = 50
	}
	return &Service{
		tracer:      tracer,
		market:      market,
		defi:        defi,
		sentiment:   sentiment,
		moversLimit: moversLimit,
		clock:       time.Now,
	}
}

// MarketSummary composes the full market report. The six provider calls run
// sequentially; each failure is logged and drops only its own section. A
// defect in assembly itself is converted into the fixed fallback report
// instead of propagating.
func (s *Service) MarketSummary(ctx context.Context) (text string) {
	ctx, span := s.tracer.Start(ctx, "report.market-summary")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("market summary composition failed: %v", r)
			text = s.fallbackReport(fmt.Sprintf("%v", r))
		}
	}()

	var (
		btc       *domain.AssetQuote
		overview  *domain.MarketSnapshot
		reading   *domain.SentimentReading
		listing   []domain.AssetQuote
		trending  []domain.TrendingEntry
		protocols []domain.DefiProtocol
	)

	if q, err := s.market.FetchBitcoinQuote(ctx); err != nil {
		log.Printf("bitcoin quote unavailable: %v", err)
	} else {
		btc = q
	}
	if snap, err := s.market.FetchGlobal(ctx); err != nil {
		log.Printf("global stats unavailable: %v", err)
	} else {
		overview = snap
	}
	if r, err := s.sentiment.FetchLatest(ctx); err != nil {
		log.Printf("fear & greed unavailable: %v", err)
	} else {
		reading = r
	}
	if quotes, err := s.market.FetchMarkets(ctx, s.moversLimit); err != nil {
		log.Printf("market listing unavailable: %v", err)
	} else {
		listing = quotes
	}
	if entries, err := s.market.FetchTrending(ctx); err != nil {
		log.Printf("trending unavailable: %v", err)
	} else {
		trending = entries
	}
	if rows, err := s.defi.FetchProtocols(ctx); err != nil {
		log.Printf("defi protocols unavailable: %v", err)
	} else {
		protocols = rows
	}

	gainer, loser := TopMovers(listing)
	hot := HotDefi(protocols)

	parts := []string{
		"🚀 *CRYPTO MARKET ALPHA* 🚀",
		"📅 " + s.clock().UTC().Format("2006-01-02 15:04 UTC"),
		"",
	}

	if btc != nil && btc.PriceUSD != nil {
		parts = append(parts,
			fmt.Sprintf("₿ *Bitcoin*: $%.0f %s", *btc.PriceUSD, FormatPercent(btc.Change24hPct)),
			"")
	}

	if overview != nil {
		parts = append(parts,
			"📊 *MARKET OVERVIEW*",
			"💎 Total Cap: "+FormatUSD(overview.TotalMarketCapUSD),
			"📊 24h Change: "+FormatPercent(overview.CapChange24hPct))
		if overview.BTCDominancePct != nil {
			parts = append(parts, fmt.Sprintf("₿ BTC Dom: %.1f%%", *overview.BTCDominancePct))
		}
		parts = append(parts, "")
	}

	if reading != nil {
		bucket := ClassifySentiment(reading.Value)
		parts = append(parts,
			"🎭 *SENTIMENT*",
			fmt.Sprintf("%s Fear & Greed: %d/100", bucket.Emoji(), reading.Value),
			"📝 "+reading.Classification,
			"")
	}

	if gainer != nil || loser != nil {
		parts = append(parts, "📈 *TOP MOVERS*")
		if gainer != nil {
			parts = append(parts, fmt.Sprintf("🥇 %s (%s) %s",
				clipName(gainer.Name, moverNameWidth), gainer.Symbol, FormatPercent(gainer.Change24hPct)))
		}
		if loser != nil {
			parts = append(parts, fmt.Sprintf("🥉 %s (%s) %s",
				clipName(loser.Name, moverNameWidth), loser.Symbol, FormatPercent(loser.Change24hPct)))
		}
		parts = append(parts, "")
	}

	if len(trending) > 0 {
		parts = append(parts, "🔥 *TRENDING*")
		for i, coin := range trending {
			if i >= summaryTrendingCount {
				break
			}
			line := fmt.Sprintf("%d. %s (%s)", i+1, clipName(coin.Name, trendingNameWidth), coin.Symbol)
			if coin.MarketCapRank != nil {
				line += fmt.Sprintf(" #%d", *coin.MarketCapRank)
			}
			parts = append(parts, line)
		}
		parts = append(parts, "")
	}

	if len(hot) > 0 {
		top := hot[0]
		category := top.Category
		if category == "" {
			category = "DeFi"
		}
		parts = append(parts,
			"🏗️ *TOP DEFI*",
			"⭐ "+clipName(top.Name, moverNameWidth),
			fmt.Sprintf("💎 TVL: %s %s", FormatUSD(top.TVLUSD), FormatPercent(top.Change1dPct)),
			"🏗️ "+clipName(category, categoryWidth),
			"")
	}

	parts = append(parts,
		"━━━━━━━━━━━━━━━━━━━━",
		fmt.Sprintf("🤖 *%s* v%s", BotName, BotVersion),
		"💡 Use /menu for more options")

	return strings.Join(parts, "\n")
}

// BitcoinSummary composes the standalone Bitcoin price message.
func (s *Service) BitcoinSummary(ctx context.Context) string {
	ctx, span := s.tracer.Start(ctx, "report.bitcoin-summary")
	defer span.End()

	q, err := s.market.FetchBitcoinQuote(ctx)
	if err != nil {
		log.Printf("bitcoin quote unavailable: %v", err)
	}
	if q == nil || q.PriceUSD == nil {
		return "❌ Unable to fetch Bitcoin price data"
	}

	return strings.Join([]string{
		"₿ *BITCOIN PRICE*",
		"",
		fmt.Sprintf("💰 *Price:* $%.2f", *q.PriceUSD),
		"📊 *24h Change:* " + FormatPercent(q.Change24hPct),
		"🏦 *Market Cap:* " + FormatUSD(q.MarketCapUSD),
		"",
		"⏰ " + s.clock().UTC().Format("15:04 UTC"),
	}, "\n")
}

// TrendingSummary composes the standalone trending coins message.
func (s *Service) TrendingSummary(ctx context.Context) string {
	ctx, span := s.tracer.Start(ctx, "report.trending-summary")
	defer span.End()

	entries, err := s.market.FetchTrending(ctx)
	if err != nil {
		log.Printf("trending unavailable: %v", err)
	}
	if len(entries) == 0 {
		return "❌ Unable to fetch trending data"
	}

	parts := []string{"🔥 *TRENDING CRYPTOCURRENCIES*", ""}
	for i, coin := range entries {
		rank := "Unranked"
		if coin.MarketCapRank != nil {
			rank = fmt.Sprintf("#%d", *coin.MarketCapRank)
		}
		parts = append(parts,
			fmt.Sprintf("%d. *%s* (%s)", i+1, coin.Name, coin.Symbol),
			"    📊 Rank: "+rank)
	}
	parts = append(parts, "", "⏰ "+s.clock().UTC().Format("15:04 UTC"))
	return strings.Join(parts, "\n")
}

// DefiSummary composes the standalone top-DeFi message.
func (s *Service) DefiSummary(ctx context.Context) string {
	ctx, span := s.tracer.Start(ctx, "report.defi-summary")
	defer span.End()

	protocols, err := s.defi.FetchProtocols(ctx)
	if err != nil {
		log.Printf("defi protocols unavailable: %v", err)
	}
	hot := HotDefi(protocols)
	if len(hot) == 0 {
		return "❌ Unable to fetch DeFi data"
	}

	parts := []string{"🏗️ *TOP DEFI PROTOCOLS*", ""}
	for i, p := range hot {
		category := p.Category
		if category == "" {
			category = "DeFi"
		}
		parts = append(parts,
			fmt.Sprintf("%d. *%s*", i+1, p.Name),
			"    💎 TVL: "+FormatUSD(p.TVLUSD),
			"    📊 24h: "+FormatPercent(p.Change1dPct),
			"    🏗️ "+category)
	}
	parts = append(parts, "", "⏰ "+s.clock().UTC().Format("15:04 UTC"))
	return strings.Join(parts, "\n")
}

// fallbackReport is the fixed-format reply for an assembly defect. The
// cause is clipped to 50 characters.
func (s *Service) fallbackReport(cause string) string {
	return strings.Join([]string{
		"⚠️ *MARKET DATA ERROR* ⚠️",
		"",
		"❌ Unable to fetch data",
		"🔍 Error: " + clipRunes(cause, 50) + "...",
		"",
		"🔄 Try again in a few moments",
		fmt.Sprintf("🤖 *%s* v%s", BotName, BotVersion),
	}, "\n")
}

func clipName(name string, width int) string {
	if name == "" {
		return "Unknown"
	}
	return clipRunes(name, width)
}

func clipRunes(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s
}
