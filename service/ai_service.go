package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"credit-pricing/domain"
	"credit-pricing/report"
)

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

type AIService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	log        zerolog.Logger
}

type OpenAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// NewAIService creates the explanation service. Without an API key it only
// produces fallback explanations.
func NewAIService(apiKey, model string, log zerolog.Logger) *AIService {
	return &AIService{
		apiKey:  apiKey,
		apiURL:  openAIChatURL,
		model:   model,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("component", "ai_service").Logger(),
	}
}

// WithEndpoint points the service at another chat completions URL.
func (s *AIService) WithEndpoint(url string) *AIService {
	s.apiURL = url
	return s
}

// ExplainQuote generates a short professional justification of the suggested
// rate, weighing risk against return.
func (s *AIService) ExplainQuote(ctx context.Context, q domain.Quote) string {
	if !s.enabled {
		return s.generateFallbackExplanation(q)
	}

	explanation, err := s.callLLM(ctx, buildQuotePrompt(q))
	if err != nil {
		s.log.Warn().Err(err).Msg("AI explanation failed, using fallback")
		return s.generateFallbackExplanation(q)
	}

	return explanation
}

func buildQuotePrompt(q domain.Quote) string {
	op := q.Request.Operation
	res := q.Result

	riskLine := ""
	if res.CompositeRisk != nil {
		riskLine = fmt.Sprintf("\n- Composite default risk: %s (%s scoring)",
			report.FormatPercent(res.CompositeRiskPct), res.CompositeRisk.Strategy)
	}

	return fmt.Sprintf(`Consider a receivables anticipation operation in Brazil.

OPERATION:
- Amount: %s
- Term: %d days
- Counterparty rating: %d/100 (%s risk)
- Cost of capital: %s
- Desired margin: %s
- Average market rate: %s%s

RESULT:
- Suggested ideal rate: %s
- Expected return: %s
- Minimum price: %s
- Competitive status: %s

Write a short, professional explanation (3-4 sentences) justifying the suggested rate, taking risk versus return into account.`,
		report.FormatBRL(op.Amount), res.TermDays, op.CounterpartyRating, res.RiskClass,
		report.FormatPercent(op.CostOfCapitalPct), report.FormatPercent(op.DesiredMarginPct),
		report.FormatPercent(op.CompetitorRatePct), riskLine,
		report.FormatPercent(res.IdealRatePct), report.FormatBRL(res.ExpectedReturn),
		report.FormatBRL(res.MinimumPrice), res.MarketComparison)
}

func (s *AIService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: s.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a credit pricing analyst for a Brazilian receivables anticipation desk. You explain suggested rates clearly and precisely, quoting amounts in reais.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens:   250,
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}

func (s *AIService) generateFallbackExplanation(q domain.Quote) string {
	op := q.Request.Operation
	res := q.Result

	base := fmt.Sprintf("The suggested rate of %s covers the %s cost of capital, the desired margin of %s and %s for the counterparty's default risk (rating %d/100).",
		report.FormatPercent(res.IdealRatePct),
		report.FormatPercent(op.CostOfCapitalPct),
		report.FormatPercent(op.DesiredMarginPct),
		report.FormatPercent(res.DefaultRiskFraction*2),
		op.CounterpartyRating)

	var market string
	switch res.MarketComparison {
	case domain.AboveMarket:
		market = fmt.Sprintf("It sits above the %s market reference, so the client may find cheaper offers.", report.FormatPercent(op.CompetitorRatePct))
	case domain.BelowMarket:
		market = fmt.Sprintf("It sits below the %s market reference, which makes the offer competitive.", report.FormatPercent(op.CompetitorRatePct))
	default:
		market = fmt.Sprintf("It is in line with the %s market reference.", report.FormatPercent(op.CompetitorRatePct))
	}

	if res.NegativeMargin {
		return fmt.Sprintf("%s %s Warning: the rate does not cover the cost of capital and the expected return is %s.",
			base, market, report.FormatBRL(res.ExpectedReturn))
	}
	return fmt.Sprintf("%s %s Expected return: %s over %d days.",
		base, market, report.FormatBRL(res.ExpectedReturn), res.TermDays)
}
