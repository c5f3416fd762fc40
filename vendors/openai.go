package vendors

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sashabaranov/go-openai"

	"github.com/lawmasters-app/lawmasters/config"
	"github.com/lawmasters-app/lawmasters/log"
	"github.com/lawmasters-app/lawmasters/utils"
)

var (
	openaiClient     *OpenAIClient
	openaiClientOnce sync.Once
	openaiLogger     = log.GetLogger("OpenAI")
)

// OpenAIClient wraps the OpenAI client
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// CompletionOptions holds options for completions
type CompletionOptions struct {
	SystemPrompt string
	Prompt       string
	MaxTokens    int
	Temperature  float32
	JSONMode     bool
}

// CompletionResponse represents a completion response
type CompletionResponse struct {
	Content      string
	FinishReason string
	Usage        struct {
		PromptTokens     int
		CompletionTokens int
		TotalTokens      int
	}
}

// AnalysisVerdict is the structured result of a document analysis
type AnalysisVerdict struct {
	Summary string   `json:"summary"`
	Risks   []string `json:"risks"`
	Tags    []string `json:"tags"`
}

// GetOpenAIClient returns the singleton OpenAI client, nil when not configured
func GetOpenAIClient() *OpenAIClient {
	openaiClientOnce.Do(func() {
		cfg := config.Get()

		if cfg.OpenAIAPIKey == "" {
			openaiLogger.Warn().Msg("OPENAI_API_KEY not configured, OpenAI disabled")
			return
		}

		clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
		if cfg.OpenAIBaseURL != "" && cfg.OpenAIBaseURL != "https://api.openai.com/v1" {
			clientConfig.BaseURL = cfg.OpenAIBaseURL
		}

		openaiClient = &OpenAIClient{
			client: openai.NewClientWithConfig(clientConfig),
			model:  cfg.OpenAIModel,
		}

		openaiLogger.Info().Str("model", cfg.OpenAIModel).Msg("OpenAI initialized")
	})

	return openaiClient
}

// Complete performs a chat completion
func (o *OpenAIClient) Complete(ctx context.Context, opts CompletionOptions) (*CompletionResponse, error) {
	if o == nil {
		return nil, errors.New("OpenAI client not configured")
	}

	var messages []openai.ChatCompletionMessage

	if opts.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.SystemPrompt,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: opts.Prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	if opts.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		openaiLogger.Error().Err(err).Msg("completion failed")
		return nil, err
	}

	if len(resp.Choices) == 0 {
		openaiLogger.Error().Interface("response", resp).Msg("openai response has no choices")
		return &CompletionResponse{}, nil
	}

	content := resp.Choices[0].Message.Content
	finishReason := string(resp.Choices[0].FinishReason)

	openaiLogger.Debug().
		Str("finishReason", finishReason).
		Int("promptTokens", resp.Usage.PromptTokens).
		Int("completionTokens", resp.Usage.CompletionTokens).
		Msg("openai response")

	return &CompletionResponse{
		Content:      content,
		FinishReason: finishReason,
		Usage: struct {
			PromptTokens     int
			CompletionTokens int
			TotalTokens      int
		}{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// AnalyzeDocument produces a structured verdict for a legal document
func (o *OpenAIClient) AnalyzeDocument(ctx context.Context, title, documentText string) (*AnalysisVerdict, error) {
	if o == nil {
		return nil, errors.New("OpenAI client not configured")
	}

	resp, err := o.Complete(ctx, CompletionOptions{
		SystemPrompt: documentAnalysisSystemPrompt,
		Prompt:       fmt.Sprintf("Document title: %s\n\n%s", title, documentText),
		Temperature:  0.1,
		JSONMode:     true,
	})
	if err != nil {
		return nil, err
	}

	if resp.FinishReason == "length" {
		openaiLogger.Warn().
			Int("completionTokens", resp.Usage.CompletionTokens).
			Msg("analysis response truncated")
	}

	parsed, err := utils.ParseJSONFromLLMResponse(resp.Content)
	if err != nil {
		openaiLogger.Error().Err(err).Str("content", resp.Content).Msg("failed to parse analysis JSON")
		return nil, err
	}

	verdict := &AnalysisVerdict{
		Summary: utils.ExtractString(parsed, "summary"),
		Risks:   utils.ExtractStringList(parsed, "risks", 20),
		Tags:    utils.ExtractStringList(parsed, "tags", 20),
	}

	if verdict.Summary == "" {
		return nil, errors.New("analysis response missing summary")
	}

	return verdict, nil
}

// GetOpenAI returns the OpenAI client (wrapper for workers)
func GetOpenAI() *OpenAIClient {
	return GetOpenAIClient()
}
