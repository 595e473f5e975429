package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/seolab/gapscout/gap"
)

const (
	defaultModel       = openai.GPT4oMini
	defaultTemperature = 0.7
	defaultMaxTokens   = 500
)

const systemPrompt = "You are an expert SEO and UX copywriter. Your task is to optimize titles and meta descriptions to increase CTR in SERPs."

// completionClient is the slice of the OpenAI client the requestor uses.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Requestor asks a chat-completion model for optimized title and meta
// description copy. Failures are absorbed: a missing suggestion is advisory,
// never fatal.
type Requestor struct {
	client completionClient
	model  string
}

// RequestorOption defines a function type to modify the Requestor instance.
type RequestorOption func(*Requestor)

// WithClient replaces the completion client (primarily for testing).
func WithClient(client completionClient) RequestorOption {
	return func(r *Requestor) {
		r.client = client
	}
}

// WithModel overrides the completion model.
func WithModel(model string) RequestorOption {
	return func(r *Requestor) {
		r.model = model
	}
}

func NewRequestor(apiKey string, options ...RequestorOption) *Requestor {
	r := &Requestor{
		client: openai.NewClient(apiKey),
		model:  defaultModel,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Suggest returns generated copy suggestions for the given title, meta
// description and gap terms. ok is false when no suggestion is available for
// any reason; callers must treat that as a normal outcome.
func (r *Requestor) Suggest(ctx context.Context, title, description string, terms []gap.Term) (string, bool) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(title, description, terms)},
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("suggestion request failed")
		return "", false
	}
	if len(resp.Choices) == 0 {
		return "", false
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", false
	}
	return text, true
}

func buildPrompt(title, description string, terms []gap.Term) string {
	tokens := make([]string, 0, len(terms))
	for _, t := range terms {
		tokens = append(tokens, t.Token)
	}
	gapList := strings.Join(tokens, ", ")

	var b strings.Builder
	fmt.Fprintf(&b, "Here is the existing Title: %s\n", title)
	fmt.Fprintf(&b, "Here are the gap terms for Title: %s\n\n", gapList)
	fmt.Fprintf(&b, "Here is the existing Meta Description: %s\n", description)
	fmt.Fprintf(&b, "Here are the gap terms for Meta Description: %s\n\n", gapList)
	b.WriteString("Generate 3 optimized suggestions for both titles and meta descriptions.")
	return b.String()
}
