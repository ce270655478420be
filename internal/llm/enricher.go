package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"autoverse/internal/models"
)

// Enrichment is the structured output of the enrichment service: richer
// marketing copy plus spec values the scrape could not provide.
type Enrichment struct {
	ProsCons    models.ProsCons   `json:"pros_cons"`
	Description string            `json:"description"`
	Specs       map[string]string `json:"specs"`
}

// Enricher generates an Enrichment for a vehicle. Implementations may call
// out to an external text-generation service; failures are expected and the
// caller always has a deterministic fallback.
type Enricher interface {
	Generate(ctx context.Context, v *models.Vehicle) (*Enrichment, error)
}

// OpenAIEnricher calls an OpenAI-compatible chat-completions endpoint.
type OpenAIEnricher struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewOpenAIEnricher creates an enricher against baseURL (e.g.
// "https://api.openai.com"). Any endpoint speaking the chat-completions
// protocol works, which keeps local model servers usable in development.
func NewOpenAIEnricher(baseURL, apiKey string) *OpenAIEnricher {
	return &OpenAIEnricher{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   "gpt-3.5-turbo",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are an automotive expert that processes vehicle data. " +
	"Extract and structure information from raw scraped data. Return valid JSON only."

// Generate asks the model for pros/cons, a description and normalized specs.
func (e *OpenAIEnricher) Generate(ctx context.Context, v *models.Vehicle) (*Enrichment, error) {
	payload, _ := json.Marshal(chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(v)},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
		Temperature:    0.7,
		MaxTokens:      1000,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enrichment request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrichment request: status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("enrichment decode: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("enrichment response has no choices")
	}

	var enr Enrichment
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &enr); err != nil {
		return nil, fmt.Errorf("enrichment content malformed: %w", err)
	}
	return &enr, nil
}

func buildPrompt(v *models.Vehicle) string {
	specsJSON, _ := json.Marshal(v.Specs)
	return fmt.Sprintf(`Process the following %s data and extract structured information:

Vehicle: %s %s
Type: %s
Price: ₹%.2f Lakh
Specs: %s

Please provide:
1. Pros (5 advantages based on specs and price point)
2. Cons (5 disadvantages or considerations)
3. A compelling 2-line description for marketing
4. Normalized specifications (ensure consistent units and format)

Return JSON in this exact format:
{
    "pros_cons": {
        "pros": ["advantage 1", "advantage 2", "advantage 3", "advantage 4", "advantage 5"],
        "cons": ["disadvantage 1", "disadvantage 2", "disadvantage 3", "disadvantage 4", "disadvantage 5"]
    },
    "description": "Two compelling sentences about this vehicle",
    "specs": {
        "fuel_type": "normalized fuel type",
        "transmission": "normalized transmission",
        "mileage": "X km/l or X km/charge",
        "engine": "displacement or type",
        "fuel_tank_capacity": "X Liters",
        "seat_height": "X mm",
        "abs": "Yes/No (single/dual channel)",
        "kerb_weight": "X kg"
    }
}`, v.Type, v.Brand, v.Model, v.Type, float64(v.Price)/100_000, specsJSON)
}
