package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/JaimeStill/brandkit/pkg/formatting"
)

// Describer writes the brand description paragraph for a request.
type Describer interface {
	Describe(ctx context.Context, r *Request) (string, error)
}

// TemplateDescriber renders the fixed description template.
type TemplateDescriber struct{}

func (TemplateDescriber) Describe(_ context.Context, r *Request) (string, error) {
	return TemplateDescription(r), nil
}

// TemplateDescription renders the three-paragraph description, followed by
// the request notes when present.
func TemplateDescription(r *Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s is a %s %s company that serves %s.\n\n",
		r.BusinessName, strings.Join(r.PersonalityTraits, ", "), r.Industry, audienceText(r.TargetAudience))
	fmt.Fprintf(&b, "The brand embodies a %s aesthetic with %s tones, reflecting the company's commitment to innovation and excellence in the %s sector.\n\n",
		r.Style, r.ColorScheme, r.Industry)
	fmt.Fprintf(&b, "%s stands out through its unique approach to combining traditional values with modern solutions, creating a trustworthy yet forward-thinking brand identity that resonates with its target market.",
		r.BusinessName)

	if r.Notes != "" {
		fmt.Fprintf(&b, "\n\nAdditional considerations: %s", r.Notes)
	}
	return b.String()
}

// FallbackDescription is the one-sentence description used when the
// description stage fails.
func FallbackDescription(r *Request) string {
	return fmt.Sprintf("A %s company focused on serving %s with innovative solutions.",
		r.Industry, audienceText(r.TargetAudience))
}

func audienceText(audience string) string {
	return strings.ReplaceAll(audience, "-", " ")
}

var errEmptyDescription = errors.New("model returned an empty description")

const describeInstructions = `You are a brand strategist. Write a brand description of two or three short paragraphs for the business below.
Respond with JSON only, in the form {"description": "..."}.`

type describeResponse struct {
	Description string `json:"description"`
}

// ChatDescriber asks a chat completion model for the description.
type ChatDescriber struct {
	client *openai.Client
	model  string
}

// NewChatDescriber returns a ChatDescriber for an OpenAI-compatible endpoint.
func NewChatDescriber(apiKey, baseURL, model string) *ChatDescriber {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &ChatDescriber{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (d *ChatDescriber) Describe(ctx context.Context, r *Request) (string, error) {
	user := fmt.Sprintf(
		"Business: %s\nIndustry: %s\nStyle: %s\nColor scheme: %s\nPersonality: %s\nAudience: %s\nBrief: %s",
		r.BusinessName, r.Industry, r.Style, r.ColorScheme,
		strings.Join(r.PersonalityTraits, ", "), audienceText(r.TargetAudience), r.Prompt,
	)
	if r.Notes != "" {
		user += "\nNotes: " + r.Notes
	}

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: describeInstructions},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.6,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyDescription
	}

	parsed, err := formatting.Parse[describeResponse](resp.Choices[0].Message.Content)
	if err != nil {
		return "", err
	}

	desc := strings.TrimSpace(parsed.Description)
	if desc == "" {
		return "", errEmptyDescription
	}
	return desc, nil
}
