package provider

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func newTestDefiLlama(t *testing.T, rt roundTripFunc) *DefiLlamaProvider {
	t.Helper()
	p := NewDefiLlamaProvider(trace.NewNoopTracerProvider().Tracer("test"), &http.Client{Transport: rt})
	p.baseURL = "http://example"
	return p
}

func TestFetchProtocols(t *testing.T) {
	t.Parallel()

	p := newTestDefiLlama(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/protocols" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return jsonResponse(`[
			{"name":"Lido","category":"Liquid Staking","tvl":24000000000,"change_1d":1.2},
			{"name":"Ghost","category":"Dexes","tvl":null,"change_1d":null}
		]`), nil
	})

	protocols, err := p.FetchProtocols(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(protocols) != 2 {
		t.Fatalf("expected 2 protocols, got %d", len(protocols))
	}
	if protocols[0].Name != "Lido" || protocols[0].TVLUSD == nil || *protocols[0].TVLUSD != 2.4e10 {
		t.Fatalf("unexpected first protocol: %+v", protocols[0])
	}
	if protocols[1].TVLUSD != nil || protocols[1].Change1dPct != nil {
		t.Fatalf("null tvl/change should stay nil: %+v", protocols[1])
	}
}

func TestFetchProtocolsNonOKStatus(t *testing.T) {
	t.Parallel()

	p := newTestDefiLlama(t, func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(bytes.NewBufferString("bad gateway")),
			Header:     make(http.Header),
		}, nil
	})

	if _, err := p.FetchProtocols(context.Background()); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestFetchProtocolsMalformedBody(t *testing.T) {
	t.Parallel()

	p := newTestDefiLlama(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(`{"not":"an array"}`), nil
	})

	if _, err := p.FetchProtocols(context.Background()); err == nil {
		t.Fatal("expected error for malformed body")
	}
}
