package ai

import (
	"context"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"
)

const (
	// DefaultModel is the default model to use
	DefaultModel = "gpt-4o-mini"
	// DefaultBaseURL is the default OpenAI-compatible API base URL
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout bounds a single completion call
	DefaultTimeout = 30 * time.Second
)

// OpenAIInvoker implements CompletionProvider against an OpenAI-compatible
// chat completion endpoint.
type OpenAIInvoker struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

// NewOpenAIInvoker creates a provider for the given credential. The returned
// invoker bounds every call with the per-request timeout; the HTTP client
// timeout is a backstop.
func NewOpenAIInvoker(apiKey, baseURL, model string, logger *zap.Logger, debugMode bool) *OpenAIInvoker {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := &http.Client{
		Timeout: DefaultTimeout + 5*time.Second,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &OpenAIInvoker{
		client:    client,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}
}

// Configured always reports true; an invoker is only constructed when a
// credential exists.
func (p *OpenAIInvoker) Configured() bool { return true }

// Complete issues one bounded chat completion request. Transport and
// protocol faults never escape as Go errors: they are folded into the
// returned CompletionResult so the caller can fall back deterministically.
func (p *OpenAIInvoker) Complete(ctx context.Context, turns []Turn, opts CompletionOptions) CompletionResult {
	model := opts.Model
	if model == "" {
		model = p.model
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case "system":
			messages = append(messages, openai.SystemMessage(turn.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}

	req := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: messages,
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}
	if opts.Temperature != nil {
		req.Temperature = openai.Float(*opts.Temperature)
	}
	if opts.JSONResponse {
		req.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	if p.logger != nil && p.debugMode {
		previews := make([]string, 0, len(turns))
		for _, turn := range turns {
			previews = append(previews, SanitizePreview(turn.Content, false))
		}
		p.logger.Debug("llm_api_request",
			zap.String("model", model),
			zap.Int("message_count", len(messages)),
			zap.Strings("message_previews", previews),
		)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(callCtx, req)
	latency := time.Since(start)

	if err != nil {
		fields := []zap.Field{
			zap.Bool("success", false),
			zap.String("model", model),
			zap.String("error_kind", string(ErrorKindTransport)),
			zap.Bool("timeout", isTimeout(err)),
			zap.Int64("latency_ms", latency.Milliseconds()),
			zap.Error(err),
		}
		if apiErr := extractAPIError(err); apiErr != nil {
			fields = append(fields, zap.String("api_error_type", apiErr.Type))
		}
		if p.logger != nil {
			p.logger.Warn("llm_completion", fields...)
		}
		return CompletionResult{Success: false, ErrorKind: ErrorKindTransport}
	}

	if len(resp.Choices) == 0 {
		if p.logger != nil {
			p.logger.Warn("llm_completion",
				zap.Bool("success", false),
				zap.String("model", model),
				zap.String("error_kind", string(ErrorKindTransport)),
				zap.String("reason", "no choices in response"),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		return CompletionResult{Success: false, ErrorKind: ErrorKindTransport}
	}

	content := resp.Choices[0].Message.Content

	var usage *Usage
	if resp.Usage.TotalTokens > 0 {
		usage = &Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		}
	}

	if p.logger != nil {
		p.logger.Info("llm_completion",
			zap.Bool("success", true),
			zap.String("model", model),
			zap.Int("response_length", len(content)),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
		if p.debugMode {
			p.logger.Debug("llm_api_response",
				zap.String("model", model),
				zap.String("response_preview", SanitizePreview(content, true)),
			)
		}
	}

	return CompletionResult{Success: true, Message: content, Usage: usage}
}
