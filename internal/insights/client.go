// Package insights produces a short automatic assessment of a candidate's
// pitch using the Gemini generative API.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gigante-rh/talent-intake/pkg/logger"
)

// FallbackMessage is returned whenever an assessment cannot be produced.
// The dashboard shows it verbatim, so it stays in the operators' language.
const FallbackMessage = "Não foi possível realizar a análise automática no momento."

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type ClientAPI interface {
	AnalyzePitch(ctx context.Context, name, jobTitle, pitch string) string
}

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func NewClient(apiKey, model string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	c := &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// AnalyzePitch asks the model for a two-sentence recruiter-facing summary of
// the candidate's pitch. Any failure, including a missing API key, yields
// the fallback message rather than an error: the assessment is a nicety,
// never a blocker.
func (c *Client) AnalyzePitch(ctx context.Context, name, jobTitle, pitch string) string {
	lg := logger.From(ctx)

	if c.apiKey == "" {
		lg.Debug("insights skipped, no API key configured")
		return FallbackMessage
	}
	if strings.TrimSpace(pitch) == "" {
		return FallbackMessage
	}

	prompt := fmt.Sprintf(
		"Analise brevemente o seguinte resumo de um candidato chamado %s para a vaga de %s. "+
			"Destaque pontos fortes e possíveis ressalvas em no máximo duas frases curtas.\n\nResumo: %q",
		name, jobTitle, pitch)

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 150,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		lg.Error("insights request marshal failed", "error", err)
		return FallbackMessage
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		lg.Error("insights request build failed", "error", err)
		return FallbackMessage
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		lg.Warn("insights call failed", "error", err)
		return FallbackMessage
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		lg.Warn("insights call rejected", "status", resp.StatusCode)
		return FallbackMessage
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		lg.Warn("insights response decode failed", "error", err)
		return FallbackMessage
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return FallbackMessage
	}

	text := strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return FallbackMessage
	}
	return text
}
