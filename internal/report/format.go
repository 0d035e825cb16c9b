package report

import (
	"fmt"
	"math"
)

// Direction markers used by FormatPercent.
const (
	upMarker   = "📈"
	downMarker = "📉"
)

// FormatUSD renders a USD amount abbreviated by magnitude with two decimals.
func FormatUSD(amount *float64) string { return FormatUSDPrec(amount, 2) }

// FormatUSDPrec renders a USD amount abbreviated by magnitude (T/B/M/K).
// Suffix tiers are picked on the absolute value, so negative amounts keep
// their sign and land in the same tier as their positive counterpart.
// nil renders "N/A", never "$0.00".
func FormatUSDPrec(amount *float64, decimals int) string {
	if amount == nil {
		return "N/A"
	}
	v := *amount
	abs := math.Abs(v)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("$%.*fT", decimals, v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("$%.*fB", decimals, v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.*fM", decimals, v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.*fK", decimals, v/1e3)
	default:
		return fmt.Sprintf("$%.*f", decimals, v)
	}
}

// FormatPercent renders a 24h percentage change with a direction marker.
// Strictly positive values get an explicit plus sign; zero counts as
// non-positive and takes the down marker. nil renders "N/A".
func FormatPercent(pct *float64) string {
	if pct == nil {
		return "N/A"
	}
	if *pct > 0 {
		return fmt.Sprintf("%s +%.2f%%", upMarker, *pct)
	}
	return fmt.Sprintf("%s %.2f%%", downMarker, *pct)
}

// SentimentBucket classifies a 0-100 fear & greed value into one of five
// ordered buckets. Bucket boundaries are closed on the lower edge: 75 is
// extreme greed, not greed.
type SentimentBucket int

const (
	ExtremeFear SentimentBucket = iota
	Fear
	Neutral
	Greed
	ExtremeGreed
)

func ClassifySentiment(value int) SentimentBucket {
	switch {
	case value >= 75:
		return ExtremeGreed
	case value >= 55:
		return Greed
	case value >= 45:
		return Neutral
	case value >= 25:
		return Fear
	default:
		return ExtremeFear
	}
}

func (b SentimentBucket) String() string {
	switch b {
	case ExtremeGreed:
		return "Extreme Greed"
	case Greed:
		return "Greed"
	case Neutral:
		return "Neutral"
	case Fear:
		return "Fear"
	default:
		return "Extreme Fear"
	}
}

func (b SentimentBucket) Emoji() string {
	switch b {
	case ExtremeGreed:
		return "🤑"
	case Greed:
		return "😊"
	case Neutral:
		return "😐"
	case Fear:
		return "😨"
	default:
		return "😱"
	}
}
