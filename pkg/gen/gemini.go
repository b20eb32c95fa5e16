package gen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/starlight-letter/starlight/pkg/settings"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

const (
	// DefaultModel is the generation model the desktop releases shipped
	// with.
	DefaultModel = "gemini-2.5-pro"

	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultTimeout = 120 * time.Second
)

// Gemini is a Client backed by the Gemini generateContent REST API. The
// zero value uses the default model, endpoint, and a shared http.Client.
type Gemini struct {
	// Model overrides DefaultModel when set.
	Model string
	// BaseURL overrides the production endpoint; used by tests.
	BaseURL string
	// HTTPClient overrides the transport; used by tests.
	HTTPClient *http.Client
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
	SafetySettings   []geminiSafety  `json:"safetySettings"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiSafety struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	// Some response shapes flatten the text to the top level.
	Text string `json:"text"`
}

type geminiErrorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *Gemini) LetterReply(ctx context.Context, s settings.Settings, userLetter string) (string, error) {
	return g.generate(ctx, s.APIKey, SystemPrompt(s), LetterReplyPrompt(userLetter))
}

func (g *Gemini) Fortune(ctx context.Context, s settings.Settings, day timeutil.Day) (string, error) {
	return g.generate(ctx, s.APIKey, SystemPrompt(s), FortunePrompt(day))
}

// generate issues exactly one generateContent call. The system and task
// prompts travel together as a single user turn, matching what the desktop
// shell sends.
func (g *Gemini) generate(ctx context.Context, apiKey, systemPrompt, taskPrompt string) (string, error) {
	model := g.Model
	if model == "" {
		model = DefaultModel
	}
	baseURL := g.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := g.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: systemPrompt + "\n\n" + taskPrompt}},
		}},
		GenerationConfig: geminiGenConfig{
			Temperature:     0.8,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 30000,
		},
		SafetySettings: []geminiSafety{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
			{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gen: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", baseURL, model, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gen: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gen: call model: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gen: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Prefer the provider's own message when the envelope decodes.
		var envelope geminiErrorEnvelope
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
			return "", fmt.Errorf("gen: %s", envelope.Error.Message)
		}
		return "", fmt.Errorf("gen: API error: %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("gen: decode response: %w", err)
	}
	if len(parsed.Candidates) > 0 {
		parts := parsed.Candidates[0].Content.Parts
		if len(parts) > 0 && parts[0].Text != "" {
			return parts[0].Text, nil
		}
	}
	if parsed.Text != "" {
		return parsed.Text, nil
	}
	return "", fmt.Errorf("gen: no text in model response")
}
