package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"copydesk/httpclient"
	"copydesk/logger"
)

const defaultBaseURL = "https://api.stability.ai"
const generatePath = "/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"

const dataURIPrefix = "data:image/png;base64,"

// IsDataURI reports whether s is an inline PNG payload.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, dataURIPrefix)
}

// negativePrompt suppresses common diffusion artifacts. Weight -1 marks it
// as a negative text prompt for the Stability API.
const negativePrompt = "low quality, blurry, distorted, text artifacts, watermark"

// Generator is the adapter to the Stability image-synthesis API. Like the
// search adapter, every failure is folded into the returned string.
type Generator struct {
	base      *httpclient.BaseClient
	apiKey    string
	enhancer  PromptEnhancer
	outputDir string
}

type textPrompt struct {
	Text   string   `json:"text"`
	Weight *float64 `json:"weight,omitempty"`
}

type generateRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    int          `json:"cfg_scale"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
	Sampler     string       `json:"sampler"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
}

type generateResponse struct {
	Artifacts []struct {
		Base64 string `json:"base64"`
	} `json:"artifacts"`
}

func New(apiKey string, enhancer PromptEnhancer, outputDir string) *Generator {
	return NewWithBaseURL(apiKey, enhancer, outputDir, defaultBaseURL)
}

func NewWithBaseURL(apiKey string, enhancer PromptEnhancer, outputDir, baseURL string) *Generator {
	// image synthesis regularly takes longer than the default timeout
	httpClient := httpclient.New(httpclient.Config{Timeout: 3 * time.Minute})
	return &Generator{
		base:      httpclient.NewBaseClientWithClient(httpClient, baseURL),
		apiKey:    apiKey,
		enhancer:  enhancer,
		outputDir: outputDir,
	}
}

// Generate rewrites the intent into a compact prompt, calls the synthesis
// API with fixed parameters and returns an inline PNG data URI. Any failure
// comes back as an inline error string, never as an error value.
func (g *Generator) Generate(ctx context.Context, inputText string) string {
	out, err := g.generate(ctx, inputText)
	if err != nil {
		return fmt.Sprintf("Image generation failed: %v", err)
	}
	return out
}

func (g *Generator) generate(ctx context.Context, inputText string) (string, error) {
	enhanced, err := g.enhancer.Enhance(ctx, inputText)
	if err != nil {
		return "", fmt.Errorf("prompt enhancement: %w", err)
	}

	negWeight := -1.0
	payload := generateRequest{
		TextPrompts: []textPrompt{
			{Text: enhanced},
			{Text: negativePrompt, Weight: &negWeight},
		},
		CfgScale: 12,
		Samples:  1,
		Steps:    50,
		Sampler:  "K_EULER_ANCESTRAL",
		Width:    1024,
		Height:   1024,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := g.base.NewRequest(ctx, http.MethodPost, generatePath, nil, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.base.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	const maxBodySize = 32 * 1024 * 1024
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return "", fmt.Errorf("response read failed: %w", readErr)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if len(out.Artifacts) == 0 {
		return "", fmt.Errorf("no artifacts in response")
	}

	imageBase64 := out.Artifacts[0].Base64
	g.saveCopy(imageBase64)
	return dataURIPrefix + imageBase64, nil
}

// saveCopy writes the PNG under the configured output directory. Failures
// are logged, not surfaced: the inline payload is the primary contract.
func (g *Generator) saveCopy(imageBase64 string) {
	if g.outputDir == "" {
		return
	}
	raw, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		logger.Log.Warnf("failed to decode generated image: %v", err)
		return
	}
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		logger.Log.Warnf("failed to create image output dir: %v", err)
		return
	}
	name := fmt.Sprintf("poster_%s.png", time.Now().Format("20060102_150405"))
	path := filepath.Join(g.outputDir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		logger.Log.Warnf("failed to write generated image: %v", err)
		return
	}
	logger.Log.Infof("generated image saved to %s", path)
}
