package classification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/advisordash/rebalancer/internal/domain"
)

const geminiModel = "gemini-2.5-flash"

const systemInstruction = `You are a senior financial analyst with deep expertise in asset classification.
Analyze the given list of financial assets (tickers and descriptions) and classify each with high precision.

For each asset determine:
1. assetClass: one of US_EQUITY, NON_US_EQUITY, FIXED_INCOME, MUNI_BOND, OTHER, CASH.
2. sector: the specific industry sector (e.g. "Technology", "Municipal", "Corporate Bond").
3. stateCode: for municipal bonds only, the 2-letter US state code from the description, else null.
4. logoTicker: for corporate bonds, the parent issuer's ticker (e.g. "APPLE INC 3.5% 2030" -> "AAPL"), else null.

Return a JSON array with one object per input asset.`

var responseSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"symbol": {Type: genai.TypeString, Description: "The input ticker symbol"},
			"assetClass": {
				Type: genai.TypeString,
				Enum: []string{
					domain.AssetClassUSEquity, domain.AssetClassNonUSEquity,
					domain.AssetClassFixedIncome, domain.AssetClassMuniBond,
					domain.AssetClassOther, domain.AssetClassCash,
				},
			},
			"sector":     {Type: genai.TypeString},
			"stateCode":  {Type: genai.TypeString, Nullable: genai.Ptr(true)},
			"logoTicker": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		},
		Required: []string{"symbol", "assetClass", "sector"},
	},
}

// GeminiClassifier classifies assets with Gemini, falling back to the
// keyword heuristics per position when the model cannot be reached.
type GeminiClassifier struct {
	apiKey string
	log    zerolog.Logger
}

// NewGeminiClassifier creates a new Gemini-backed classifier. An empty
// API key is allowed; Scan then uses heuristics only.
func NewGeminiClassifier(apiKey string, log zerolog.Logger) *GeminiClassifier {
	return &GeminiClassifier{
		apiKey: apiKey,
		log:    log.With().Str("client", "gemini").Logger(),
	}
}

type assetInput struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
}

type assetOutput struct {
	Symbol     string `json:"symbol"`
	AssetClass string `json:"assetClass"`
	Sector     string `json:"sector"`
	StateCode  string `json:"stateCode,omitempty"`
	LogoTicker string `json:"logoTicker,omitempty"`
}

// Scan classifies the given positions, keyed by symbol. Every input
// symbol is present in the result: AI output where available, heuristic
// fallback otherwise.
func (c *GeminiClassifier) Scan(ctx context.Context, positions []domain.Position) map[string]Result {
	results := make(map[string]Result, len(positions))
	for _, pos := range positions {
		results[pos.Symbol] = Classify(pos.Symbol, pos.Description)
	}

	if c.apiKey == "" {
		c.log.Warn().Msg("No Gemini API key configured, using heuristic fallback")
		return results
	}

	aiResults, err := c.generate(ctx, positions)
	if err != nil {
		c.log.Error().Err(err).Msg("Gemini scan failed, using heuristic fallback")
		return results
	}

	for _, out := range aiResults {
		if _, known := results[out.Symbol]; !known {
			continue
		}
		results[out.Symbol] = Result{
			AssetClass: out.AssetClass,
			Sector:     out.Sector,
			StateCode:  out.StateCode,
			LogoTicker: out.LogoTicker,
		}
	}

	return results
}

func (c *GeminiClassifier) generate(ctx context.Context, positions []domain.Position) ([]assetOutput, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	inputs := make([]assetInput, 0, len(positions))
	for _, pos := range positions {
		inputs = append(inputs, assetInput{Symbol: pos.Symbol, Description: pos.Description})
	}

	inputJSON, err := json.MarshalIndent(inputs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, geminiModel,
		genai.Text("Classify the following assets:\n"+string(inputJSON)),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
			ResponseMIMEType:  "application/json",
			ResponseSchema:    responseSchema,
			Temperature:       genai.Ptr[float32](0.1),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var outputs []assetOutput
	if err := json.Unmarshal([]byte(text), &outputs); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	return outputs, nil
}
