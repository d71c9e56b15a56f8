// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize asks an external text-generation service for a short
// plain-language summary of one paper. The returned text is opaque to the
// rest of the pipeline.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"

	"github.com/pdiddy/paper-radar/internal/httputil"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// ErrNoAPIKey is returned when the client has no credential configured.
var ErrNoAPIKey = errors.New("summarizer API key not configured")

// Request carries the paper fields the summarizer sees.
type Request struct {
	Title   string
	Summary string
	Authors []string
	Year    int
}

// RequestFor builds a Request from a paper.
func RequestFor(p types.Paper) Request {
	return Request{Title: p.Title, Summary: p.Summary, Authors: p.Authors, Year: p.Year}
}

// Summarizer abstracts the text-generation service so tests can supply a
// mock.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
}

// SummarizeFunc adapts a function to Summarizer.
type SummarizeFunc func(ctx context.Context, req Request) (string, error)

// Summarize calls f.
func (f SummarizeFunc) Summarize(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

const systemPrompt = "You are a helpful research assistant. Summarize the following academic " +
	"abstract concisely, focusing on the key findings and methodology in about 3-4 sentences."

var userPromptTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`Title: {{.Title}}
{{- if .Authors}}
Authors: {{join .Authors ", "}}
{{- end}}
{{- if gt .Year 0}}
Year: {{.Year}}
{{- end}}

Abstract:
{{.Summary}}
`))

func renderPrompt(req Request) (string, error) {
	var buf bytes.Buffer
	if err := userPromptTmpl.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ChatClient calls an OpenAI-compatible chat completions endpoint (Groq by
// default).
type ChatClient struct {
	BaseURL    string
	APIKey     string
	Model      string
	UserAgent  string
	MaxRetries int
	Client     *http.Client
}

// NewChatClient builds a ChatClient from configuration.
func NewChatClient(cfg types.SummarizeConfig) *ChatClient {
	return &ChatClient{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		Client:     &http.Client{Timeout: cfg.Timeout},
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

// Summarize sends the paper to the chat endpoint and returns the first
// choice's text.
func (c *ChatClient) Summarize(ctx context.Context, r Request) (string, error) {
	if c.APIKey == "" {
		return "", ErrNoAPIKey
	}

	prompt, err := renderPrompt(r)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	bodyBytes, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling chat API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}

	text := strings.TrimSpace(cr.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("chat API returned empty content")
	}
	return text, nil
}
