package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Client wraps the OpenAI-compatible chat API used for scan analysis, the
// eye-care chatbot and the vision-quiz narrative report.
type Client struct {
	api   *openai.Client
	model string
}

// New builds a client for the configured key and model. BaseURL is optional
// and allows OpenAI-compatible backends.
func New(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

const scanPrompt = `You are a professional eye specialist doctor.

Analyze this eye image and provide a FULL medical report in:

1. English
2. Tamil

Must include:
- Disease name if available, or any abnormalities found
  (for example: eye is very red or dry). If none found, say "No issues found".
- Symptoms
- Causes (how it happens)
- What to do
- What NOT to do
- Health tips
- Risk level

Provide the response in a structured format with headings and short content,
with bullet points where necessary.`

// AnalyzeScan sends the eye image inline as a data URL and returns the
// model's report text.
func (c *Client) AnalyzeScan(ctx context.Context, image []byte, contentType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: scanPrompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("scan analysis: %w", err)
	}
	return firstChoice(resp)
}

// Chat answers a free-form eye-care question in the assistant persona.
func (c *Client) Chat(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(`You are a medical eye specialist assistant.

Answer in BOTH English and Tamil.

Include:
- Explanation
- Symptoms
- Causes
- What to do
- What NOT to do
- Health tips

Question:
%s`, question)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chatbot: %w", err)
	}
	return firstChoice(resp)
}

// VisionReport turns a scored quiz into a narrative risk report. The input
// contract is the raw correct count, the total and the weak-area labels.
func (c *Client) VisionReport(ctx context.Context, correct, total int, weakAreas []string) (string, error) {
	prompt := fmt.Sprintf(`You are a senior ophthalmologist.

A user completed a vision activity test.

Score: %d / %d
Weak areas: %s

Generate a PROFESSIONAL vision risk report.

Include:
1. Risk Level (Low / Moderate / High)
2. What happened
3. Why it happened
4. What may happen if ignored
5. How to improve
6. What to avoid
7. Eye care tips

Language:
- English
- Tamil

Rules:
- Not a medical diagnosis
- Friendly professional tone`, correct, total, strings.Join(weakAreas, ", "))

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision report: %w", err)
	}
	return firstChoice(resp)
}

func firstChoice(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in model response")
	}
	return resp.Choices[0].Message.Content, nil
}
