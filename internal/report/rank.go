package report

import (
	"sort"

	"alphascope/internal/domain"

	"github.com/samber/lo"
)

// Eligibility threshold for movers (market cap) and DeFi protocols (TVL).
// The bound is strict: an asset at exactly 1M USD is excluded.
const minEligibleUSD = 1_000_000

const hotDefiLimit = 5

// TopMovers selects the top gainer and loser from a market-cap-descending
// listing. Entries need a defined 24h change and a market cap strictly
// above the threshold; an empty eligible set yields (nil, nil). The stable
// ascending sort preserves the listing order among equal changes, so tied
// entries resolve deterministically without an explicit secondary key.
func TopMovers(listing []domain.AssetQuote) (gainer, loser *domain.AssetQuote) {
	eligible := lo.Filter(listing, func(q domain.AssetQuote, _ int) bool {
		return q.Change24hPct != nil && q.MarketCapUSD != nil && *q.MarketCapUSD > minEligibleUSD
	})
	if len(eligible) == 0 {
		return nil, nil
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return *eligible[i].Change24hPct < *eligible[j].Change24hPct
	})
	g := eligible[len(eligible)-1]
	l := eligible[0]
	return &g, &l
}

// HotDefi selects up to five protocols with the strongest 24h TVL growth.
// Protocols need a defined change and a TVL strictly above the threshold.
func HotDefi(protocols []domain.DefiProtocol) []domain.DefiProtocol {
	eligible := lo.Filter(protocols, func(p domain.DefiProtocol, _ int) bool {
		return p.Change1dPct != nil && p.TVLUSD != nil && *p.TVLUSD > minEligibleUSD
	})
	sort.SliceStable(eligible, func(i, j int) bool {
		return *eligible[i].Change1dPct > *eligible[j].Change1dPct
	})
	if len(eligible) > hotDefiLimit {
		eligible = eligible[:hotDefiLimit]
	}
	return eligible
}
