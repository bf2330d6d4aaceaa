// Package summarizer generates video summaries and the daily news digest
// with Gemini. Failures never propagate past the caller's skip-and-log:
// adapters return an error, callers treat it as absence.
package summarizer

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

const summaryPrompt = `Eres un especialista en crear resúmenes de videos financieros y económicos.
Resume esta transcripción de video, destaca los puntos clave y no te dejes nada de información importante.

Canal: %s
Título: %s

%s`

const newsPrompt = `Hazme un resumen de las noticias económicas y financieras más importantes de hoy a nivel España e internacional.
Específicamente de los mercados financieros, bolsa, criptomonedas, tipos de interés, inflación y economía en general.
Ponme los enlaces de las fuentes de información que utilices para hacer el resumen.
No te inventes nada, solo utiliza información verificada y de fuentes fiables.`

// Gemini wraps the generative model client.
type Gemini struct {
	client *genai.Client
}

// NewGemini builds a client against the Gemini API.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client}, nil
}

// Summarize produces a summary of a video transcript. An empty model
// response is an error, not an empty summary.
func (g *Gemini) Summarize(ctx context.Context, transcript, title, channelName string) (string, error) {
	prompt := fmt.Sprintf(summaryPrompt, channelName, title, transcript)

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	log.Printf("Summary generated for %q: %d characters", title, len(text))
	return text, nil
}

// TodaysNewsDigest produces the daily financial news digest, grounded with
// Google Search so the model cites real sources.
func (g *Gemini) TodaysNewsDigest(ctx context.Context) (string, error) {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(newsPrompt), config)
	if err != nil {
		return "", fmt.Errorf("news digest generation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	log.Printf("News digest generated: %d characters", len(text))
	return text, nil
}
