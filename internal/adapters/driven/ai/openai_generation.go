package ai

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/custodia-labs/respona-core/internal/core/domain"
	"github.com/custodia-labs/respona-core/internal/core/ports/driven"
)

// Ensure OpenAIGeneration implements GenerationService
var _ driven.GenerationService = (*OpenAIGeneration)(nil)

// GenerationConfig configures the OpenAI-compatible generation backend.
// Works against OpenAI itself or any compatible endpoint (Ollama exposes
// one at /v1).
type GenerationConfig struct {
	// APIKey authenticates requests. Local backends accept any value.
	APIKey string

	// BaseURL points at the API root, e.g. http://localhost:11434/v1
	BaseURL string

	// Model is the model identifier, e.g. qwen3:4b
	Model string

	// Temperature controls sampling randomness
	Temperature float32

	// TopP controls nucleus sampling
	TopP float32
}

// DefaultGenerationConfig returns the settings tuned for grounded answering:
// low temperature keeps the model close to the provided context.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		BaseURL:     "https://api.openai.com/v1",
		Temperature: 0.2,
		TopP:        0.95,
	}
}

// OpenAIGeneration implements GenerationService over an OpenAI-compatible
// chat completion API
type OpenAIGeneration struct {
	client *openai.Client
	config GenerationConfig
}

// NewOpenAIGeneration creates a new generation service
func NewOpenAIGeneration(cfg GenerationConfig) (*OpenAIGeneration, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("generation model is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGenerationConfig().BaseURL
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultGenerationConfig().Temperature
	}
	if cfg.TopP == 0 {
		cfg.TopP = DefaultGenerationConfig().TopP
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL

	return &OpenAIGeneration{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Generate produces the complete answer in one call
func (g *OpenAIGeneration) Generate(ctx context.Context, req *domain.GenerationRequest) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, g.completionRequest(req, false))
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateStream produces the answer incrementally
func (g *OpenAIGeneration) GenerateStream(ctx context.Context, req *domain.GenerationRequest) (<-chan driven.Fragment, error) {
	stream, err := g.client.CreateChatCompletionStream(ctx, g.completionRequest(req, true))
	if err != nil {
		return nil, fmt.Errorf("chat completion stream failed: %w", err)
	}

	out := make(chan driven.Fragment)
	go func() {
		defer close(out)
		defer stream.Close()

		for {
			response, err := stream.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				select {
				case out <- driven.Fragment{Err: err}:
				case <-ctx.Done():
				}
				return
			}

			if len(response.Choices) == 0 {
				continue
			}
			delta := response.Choices[0].Delta.Content
			if delta == "" {
				continue
			}

			select {
			case out <- driven.Fragment{Text: delta}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// SupportsStreaming reports that incremental output is available
func (g *OpenAIGeneration) SupportsStreaming() bool {
	return true
}

// Model returns the model name being used
func (g *OpenAIGeneration) Model() string {
	return g.config.Model
}

// Ping verifies the generation service is available
func (g *OpenAIGeneration) Ping(ctx context.Context) error {
	_, err := g.client.ListModels(ctx)
	return err
}

// Close releases resources held by the generation service
func (g *OpenAIGeneration) Close() error {
	return nil
}

func (g *OpenAIGeneration) completionRequest(req *domain.GenerationRequest, stream bool) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model:       g.config.Model,
		Temperature: g.config.Temperature,
		TopP:        g.config.TopP,
		Stream:      stream,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
	}
}
