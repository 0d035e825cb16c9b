package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"alphascope/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const defillamaBaseURL = "https://api.llama.fi"

// DefiLlamaProvider fetches DeFi protocol TVL data from the DefiLlama API.
type DefiLlamaProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewDefiLlamaProvider(tracer trace.Tracer, client *http.Client) *DefiLlamaProvider {
	if client == nil {
		client = &http.Client{Timeout: RequestTimeout}
	}
	return &DefiLlamaProvider{
		client:  client,
		baseURL: defillamaBaseURL,
		tracer:  tracer,
	}
}

// FetchProtocols fetches every tracked protocol with its TVL and 24h TVL
// change. TVL or change can be null in the feed and stay nil here.
func (p *DefiLlamaProvider) FetchProtocols(ctx context.Context) ([]domain.DefiProtocol, error) {
	_, span := p.tracer.Start(ctx, "defillama.fetch-protocols")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/protocols", nil)
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
		return nil, fmt.Errorf("defillama API error %d: %s", resp.StatusCode, string(body))
	}

	var raw []struct {
		Name     string   `json:"name"`
		Category string   `json:"category"`
		TVL      *float64 `json:"tvl"`
		Change1d *float64 `json:"change_1d"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode defillama response: %w", err)
	}

	protocols := make([]domain.DefiProtocol, 0, len(raw))
	for _, row := range raw {
		protocols = append(protocols, domain.DefiProtocol{
			Name:        row.Name,
			Category:    row.Category,
			TVLUSD:      row.TVL,
			Change1dPct: row.Change1d,
		})
	}
	return protocols, nil
}
