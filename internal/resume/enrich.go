package resume

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

const extractionPrompt = `You are a resume parser. Extract structured information from the resume text below.

Respond ONLY with a valid JSON object in this exact format:
{
"skills": ["skill1", "skill2"],
"headline": "short professional headline",
"summary": "2-3 sentence professional summary",
"experience": [],
"education": [],
"location": "city, country if present"
}

The "skills" array is required and must list concrete technical and professional skills found in the resume, lower-cased. All other fields are optional.`

// Enrichment is the structured metadata extracted from resume text. Skills is
// the only field the rest of the pipeline depends on; experience and
// education stay raw because the model's shape for them varies.
type Enrichment struct {
	Skills     []string        `json:"skills"`
	Headline   string          `json:"headline,omitempty"`
	Summary    string          `json:"summary,omitempty"`
	Experience json.RawMessage `json:"experience,omitempty"`
	Education  json.RawMessage `json:"education,omitempty"`
	Location   string          `json:"location,omitempty"`
}

// Enricher calls a chat-completion API to pull structured data out of resume
// text. A zero APIKey disables it.
type Enricher struct {
	APIKey   string
	Model    string
	Endpoint string
	http     *http.Client
}

// NewEnricher builds an Enricher with a bounded request timeout.
func NewEnricher(apiKey, model string) *Enricher {
	return &Enricher{
		APIKey:   apiKey,
		Model:    model,
		Endpoint: openAIEndpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Enrich extracts structured metadata from text. It never fails the caller:
// any transport or parse problem is logged and degrades to an empty
// Enrichment, because resume parsing must not fail solely because enrichment
// failed.
func (e *Enricher) Enrich(ctx context.Context, text string) Enrichment {
	if e.APIKey == "" {
		return Enrichment{}
	}

	content, err := e.complete(ctx, text)
	if err != nil {
		log.Printf("resume enrichment skipped: %v", err)
		return Enrichment{}
	}

	enrichment, err := parseEnrichment(content)
	if err != nil {
		log.Printf("resume enrichment response unparseable: %v", err)
		return Enrichment{}
	}
	return enrichment
}

func (e *Enricher) complete(ctx context.Context, text string) (string, error) {
	reqBody := chatRequest{
		Model: e.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a resume parser. You must respond only with valid JSON."},
			{Role: "user", Content: extractionPrompt + "\n\nResume text:\n" + text},
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.Endpoint, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+e.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call chat API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat API error (status %d): %s", resp.StatusCode, string(body))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat response")
	}

	return cr.Choices[0].Message.Content, nil
}

func parseEnrichment(content string) (Enrichment, error) {
	cleaned := StripCodeFences(content)
	object := FirstJSONObject(cleaned)
	if object == "" {
		return Enrichment{}, fmt.Errorf("no JSON object in response")
	}

	var enrichment Enrichment
	if err := json.Unmarshal([]byte(object), &enrichment); err != nil {
		return Enrichment{}, fmt.Errorf("parse enrichment object: %w", err)
	}
	return enrichment, nil
}
