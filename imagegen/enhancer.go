package imagegen

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// PromptEnhancer compresses a free-text image request into a short prompt
// suitable for the diffusion model.
type PromptEnhancer interface {
	Enhance(ctx context.Context, inputText string) (string, error)
}

const enhancerTemplate = `Rewrite the following user request as a SHORT, compact, professional image prompt
(max 300 characters) for Stable Diffusion. Keep only the essential visual details
and style keywords like "high resolution, realistic, cinematic, vibrant, poster design".
Avoid long sentences.

User request: %s`

// geminiEnhancer rewrites prompts through the completion model.
type geminiEnhancer struct {
	client *genai.Client
	model  string
}

func NewGeminiEnhancer(ctx context.Context, apiKey, model string) (PromptEnhancer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &geminiEnhancer{client: client, model: model}, nil
}

func (e *geminiEnhancer) Enhance(ctx context.Context, inputText string) (string, error) {
	prompt := fmt.Sprintf(enhancerTemplate, inputText)
	result, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	enhanced := strings.TrimSpace(result.Text())
	if enhanced == "" {
		return "", fmt.Errorf("enhancer returned empty prompt")
	}
	return enhanced, nil
}
