// Package llm implements the roster import parser on top of an
// OpenAI-compatible chat completion API.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/okian/podium/internal/domain/importer"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o"

const systemPrompt = `You are a data extraction assistant.
Extract student chess ranking data from the user's text.
Return ONLY a JSON object with a key "students".
Each student must have:
- firstName (string)
- lastName (string)
- fullName (string)
- points (integer)
- classLabel (string, preserve full label like "3-C", "1-Г", "5 class")

IMPORTANT: Do not strip letters or hyphens from classLabel.
If data is missing/unclear, guess reasonably or skip.
Output valid JSON only.`

// Parser extracts students with a language model.
type Parser struct {
	client *openai.Client
	model  string
	log    logger.Logger
}

type options struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Parser.
type Option func(*options)

// WithModel selects the chat model.
func WithModel(m string) Option {
	return func(o *options) {
		if m != "" {
			o.model = m
		}
	}
}

// WithBaseURL points the client at another OpenAI-compatible endpoint.
func WithBaseURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// New creates a Parser authenticated with apiKey.
func New(apiKey string, opts ...Option) *Parser {
	o := options{model: DefaultModel}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := openai.DefaultConfig(apiKey)
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	if o.httpClient != nil {
		cfg.HTTPClient = o.httpClient
	}

	return &Parser{
		client: openai.NewClientWithConfig(cfg),
		model:  o.model,
		log:    logger.Named("llm"),
	}
}

type extracted struct {
	Students []struct {
		FirstName  string      `json:"firstName"`
		LastName   string      `json:"lastName"`
		FullName   string      `json:"fullName"`
		Points     json.Number `json:"points"`
		ClassLabel string      `json:"classLabel"`
	} `json:"students"`
}

// Parse implements importer.Parser.
func (p *Parser) Parse(ctx context.Context, raw string) (importer.Result, error) {
	if err := importer.CheckText(raw); err != nil {
		return importer.Result{}, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: raw},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return importer.Result{}, fmt.Errorf("%w: chat completion: %w", importer.ErrParse, err)
	}
	if len(resp.Choices) == 0 {
		return importer.Result{}, fmt.Errorf("%w: empty completion", importer.ErrParse)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		content = "{}"
	}
	var out extracted
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return importer.Result{}, fmt.Errorf("%w: decode completion: %w", importer.ErrParse, err)
	}

	res := importer.Result{Students: make([]model.Student, 0, len(out.Students)), Warnings: []string{}}
	for i, s := range out.Students {
		points, err := s.Points.Float64()
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Student %d has unreadable points %q", i+1, s.Points.String()))
			continue
		}
		res.Students = append(res.Students, model.Student{
			ID:         uuid.NewString(),
			FirstName:  s.FirstName,
			LastName:   s.LastName,
			FullName:   s.FullName,
			Points:     int(math.Round(points)),
			ClassLabel: s.ClassLabel,
		}.Normalize())
	}

	p.log.Debug(ctx, "parsed roster text",
		logger.String("model", p.model),
		logger.Int("students", len(res.Students)),
		logger.Int("tokens", resp.Usage.TotalTokens),
	)
	return res, nil
}
