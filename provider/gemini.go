package provider

import (
	"bytes"
	"context"
	"fmt"

	"github.com/krishkalaria12/snap-studio/imaging"
	"github.com/krishkalaria12/snap-studio/storage"
	"google.golang.org/genai"
)

type GeminiOptions struct {
	APIKey    string
	Model     string
	MaxWidth  int
	MaxHeight int
}

// Gemini asks a Gemini image model for the picture and stores the result
// through an Uploader.
type Gemini struct {
	client    *genai.Client
	model     string
	uploader  storage.Uploader
	maxWidth  int
	maxHeight int
}

func NewGemini(ctx context.Context, opts GeminiOptions, uploader storage.Uploader) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{
		client:    client,
		model:     opts.Model,
		uploader:  uploader,
		maxWidth:  opts.MaxWidth,
		maxHeight: opts.MaxHeight,
	}, nil
}

func injectSysPrompt(prompt string) string {
	return fmt.Sprintf(`You are an AI image generation assistant. Create detailed, visual descriptions for image generation models. Focus on:

- Clear visual elements (colors, composition, lighting, style)
- Specific artistic techniques or photographic styles when relevant
- Safe, appropriate content only
- Realistic and achievable image concepts

Transform user requests into precise, descriptive prompts that will produce high-quality images.

User request: %s`, prompt)
}

func (g *Gemini) Generate(ctx context.Context, prompt, filename string) (string, error) {
	result, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(injectSysPrompt(prompt)),
		&genai.GenerateContentConfig{},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	imageBytes := extractImage(result)
	if len(imageBytes) == 0 {
		return "", fmt.Errorf("%w: no image data in response", ErrGenerationFailed)
	}

	normalized, err := imaging.Normalize(imageBytes, g.maxWidth, g.maxHeight)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	url, err := g.uploader.Upload(ctx, filename, bytes.NewReader(normalized), imaging.ContentType)
	if err != nil {
		return "", fmt.Errorf("%w: upload generated image: %v", ErrGenerationFailed, err)
	}
	return url, nil
}

func extractImage(result *genai.GenerateContentResponse) []byte {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}
