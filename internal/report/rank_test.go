package report

import (
	"testing"

	"alphascope/internal/domain"
)

func quote(name string, cap, change *float64) domain.AssetQuote {
	return domain.AssetQuote{Name: name, Symbol: name, MarketCapUSD: cap, Change24hPct: change}
}

func TestTopMoversSelectsExtremes(t *testing.T) {
	listing := []domain.AssetQuote{
		quote("A", ptr(5e9), ptr(1.0)),
		quote("B", ptr(3e9), ptr(-8.2)),
		quote("C", ptr(2e9), ptr(14.7)),
		quote("D", ptr(1e9), ptr(0.3)),
	}

	gainer, loser := TopMovers(listing)
	if gainer == nil || gainer.Name != "C" {
		t.Fatalf("expected C as gainer, got %+v", gainer)
	}
	if loser == nil || loser.Name != "B" {
		t.Fatalf("expected B as loser, got %+v", loser)
	}
}

func TestTopMoversGainerIndependentOfPosition(t *testing.T) {
	// The maximum change sits first in the input; position must not matter.
	listing := []domain.AssetQuote{
		quote("Max", ptr(2e6), ptr(42.0)),
		quote("Mid", ptr(5e9), ptr(3.0)),
		quote("Min", ptr(4e9), ptr(-1.0)),
	}

	gainer, _ := TopMovers(listing)
	if gainer == nil || gainer.Name != "Max" {
		t.Fatalf("expected Max as gainer, got %+v", gainer)
	}
}

func TestTopMoversThresholdIsStrict(t *testing.T) {
	listing := []domain.AssetQuote{
		quote("AtThreshold", ptr(1_000_000), ptr(9.9)),
		quote("Below", ptr(500_000), ptr(20.0)),
	}

	gainer, loser := TopMovers(listing)
	if gainer != nil || loser != nil {
		t.Fatalf("caps at or below 1M must be excluded, got %+v / %+v", gainer, loser)
	}
}

func TestTopMoversRequiresDefinedChange(t *testing.T) {
	listing := []domain.AssetQuote{
		quote("NoChange", ptr(9e9), nil),
		quote("NoCap", nil, ptr(5.0)),
	}

	gainer, loser := TopMovers(listing)
	if gainer != nil || loser != nil {
		t.Fatalf("entries without change or cap must be excluded, got %+v / %+v", gainer, loser)
	}
}

func TestTopMoversTieKeepsListingOrder(t *testing.T) {
	// Equal changes: the stable sort keeps the market-cap-descending input
	// order, so the higher-cap asset wins the gainer slot.
	listing := []domain.AssetQuote{
		quote("BigCap", ptr(9e9), ptr(5.0)),
		quote("SmallCap", ptr(2e6), ptr(5.0)),
	}

	gainer, loser := TopMovers(listing)
	if gainer == nil || gainer.Name != "SmallCap" {
		t.Fatalf("last equal element is the gainer slot, got %+v", gainer)
	}
	if loser == nil || loser.Name != "BigCap" {
		t.Fatalf("first equal element is the loser slot, got %+v", loser)
	}
}

func protocol(name string, tvl, change *float64) domain.DefiProtocol {
	return domain.DefiProtocol{Name: name, Category: "Dexes", TVLUSD: tvl, Change1dPct: change}
}

func TestHotDefiRanksByChangeDescending(t *testing.T) {
	protocols := []domain.DefiProtocol{
		protocol("A", ptr(2e9), ptr(1.0)),
		protocol("B", ptr(5e8), ptr(9.0)),
		protocol("C", ptr(3e7), ptr(4.5)),
	}

	hot := HotDefi(protocols)
	if len(hot) != 3 {
		t.Fatalf("expected 3 protocols, got %d", len(hot))
	}
	if hot[0].Name != "B" || hot[1].Name != "C" || hot[2].Name != "A" {
		t.Fatalf("unexpected order: %+v", hot)
	}
}

func TestHotDefiFiltersAndTruncates(t *testing.T) {
	protocols := []domain.DefiProtocol{
		protocol("TooSmall", ptr(1_000_000), ptr(99.0)),
		protocol("NoChange", ptr(8e9), nil),
		protocol("NoTVL", nil, ptr(2.0)),
	}
	for i := 0; i < 7; i++ {
		protocols = append(protocols, protocol("P", ptr(5e8), ptr(float64(i))))
	}

	hot := HotDefi(protocols)
	if len(hot) != 5 {
		t.Fatalf("expected top 5, got %d", len(hot))
	}
	for _, p := range hot {
		if p.Name != "P" {
			t.Fatalf("ineligible protocol surfaced: %+v", p)
		}
	}
	if *hot[0].Change1dPct != 6 || *hot[4].Change1dPct != 2 {
		t.Fatalf("unexpected ranking: %+v", hot)
	}
}

func TestHotDefiEmptyInput(t *testing.T) {
	if hot := HotDefi(nil); len(hot) != 0 {
		t.Fatalf("expected empty result, got %+v", hot)
	}
}
