package ai

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/taskmaster-app/taskmaster-api/internal/models"
	"github.com/taskmaster-app/taskmaster-api/internal/validation"
	"go.uber.org/zap"
)

// Source identifies which terminal path produced an extraction result.
type Source string

const (
	// SourceModel means the remote model produced a validated result.
	SourceModel Source = "model"
	// SourceFallback means the deterministic path produced the result.
	SourceFallback Source = "fallback"
)

// Settings tunes the extractor's completion requests.
type Settings struct {
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Extractor orchestrates one extraction per request: it tries the remote
// model once, repairs and validates the reply, and resolves to the
// deterministic fallback on any failure. There is no retry loop: a transport
// fault or malformed reply always yields a fallback result within the same
// request, so latency stays bounded and a usable result is always produced.
type Extractor struct {
	provider CompletionProvider
	logger   *zap.Logger
	settings Settings
}

// NewExtractor creates an extractor. Pass Unconfigured{} as the provider
// when no API credential exists; every request then resolves directly to the
// fallback path without network I/O.
func NewExtractor(provider CompletionProvider, logger *zap.Logger, settings Settings) *Extractor {
	if settings.MaxTokens <= 0 {
		settings.MaxTokens = 2000
	}
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}
	return &Extractor{
		provider: provider,
		logger:   logger,
		settings: settings,
	}
}

// ParseChecklist converts free-form checklist text into sections.
func (e *Extractor) ParseChecklist(ctx context.Context, text string) (*models.ChecklistDocument, Source) {
	text = validation.SanitizeMultiline(text)

	var doc models.ChecklistDocument
	kind := e.completeJSON(ctx, checklistSystemPrompt, buildChecklistPrompt(text), &doc)
	if kind == ErrorKindNone {
		if err := validation.ValidateChecklist(&doc); err != nil {
			kind = ErrorKindValidation
			e.logFallback("parse_checklist", kind, err)
		} else {
			normalizeChecklist(&doc)
			return &doc, SourceModel
		}
	} else {
		e.logFallback("parse_checklist", kind, nil)
	}

	return FallbackChecklist(text), SourceFallback
}

// RestructureList organizes free-form list text into the fixed priority
// buckets.
func (e *Extractor) RestructureList(ctx context.Context, text string) (*models.CategorizedList, Source) {
	text = validation.SanitizeMultiline(text)

	var list models.CategorizedList
	kind := e.completeJSON(ctx, restructureSystemPrompt, buildRestructurePrompt(text), &list)
	if kind == ErrorKindNone {
		if err := validation.ValidateCategorized(&list); err != nil {
			kind = ErrorKindValidation
			e.logFallback("restructure_list", kind, err)
		} else {
			return &list, SourceModel
		}
	} else {
		e.logFallback("restructure_list", kind, nil)
	}

	return FallbackCategorize(text), SourceFallback
}

// GeneratePlan asks the model for categories and tasks matching the user's
// request. There is no heuristic plan synthesis: on any failure the plan is
// nil, the caller materializes nothing, and the chat reply still goes out.
func (e *Extractor) GeneratePlan(ctx context.Context, prompt string) (*models.GeneratedPlan, Source) {
	prompt = validation.SanitizeText(prompt)

	var plan models.GeneratedPlan
	kind := e.completeJSON(ctx, planSystemPrompt, prompt, &plan)
	if kind == ErrorKindNone {
		if err := validation.ValidatePlan(&plan); err != nil {
			kind = ErrorKindValidation
			e.logFallback("generate_plan", kind, err)
		} else {
			return &plan, SourceModel
		}
	} else {
		e.logFallback("generate_plan", kind, nil)
	}

	return nil, SourceFallback
}

// Chat produces a conversational reply. History must be chronological;
// exactly one system turn carrying the assistant persona (and the user's
// stored context summary, when present) is prepended before it. The reply
// never fails user-visibly: any failure resolves to a canned contextual
// answer.
func (e *Extractor) Chat(ctx context.Context, history []Turn, message, contextSummary string) (string, *Usage, Source) {
	message = validation.SanitizeText(message)

	system := chatSystemPrompt
	if contextSummary != "" {
		system += "\n\nUser context: " + contextSummary
	}

	turns := make([]Turn, 0, len(history)+2)
	turns = append(turns, Turn{Role: "system", Content: system})
	for _, turn := range history {
		turns = append(turns, Turn{Role: turn.Role, Content: validation.SanitizeText(turn.Content)})
	}
	turns = append(turns, Turn{Role: "user", Content: message})

	if !e.provider.Configured() {
		e.logFallback("chat", ErrorKindUnavailable, nil)
		return fallbackReply(message), nil, SourceFallback
	}

	chatTemperature := 0.7
	result := e.provider.Complete(ctx, turns, CompletionOptions{
		Model:       e.settings.Model,
		MaxTokens:   e.settings.MaxTokens,
		Temperature: &chatTemperature,
		Timeout:     e.settings.Timeout,
	})
	if !result.Success {
		e.logFallback("chat", result.ErrorKind, nil)
		return fallbackReply(message), nil, SourceFallback
	}

	return result.Message, result.Usage, SourceModel
}

// Summarize condenses a conversation into a short context summary. This is
// the worker path: there is no fallback for it, so a failure is an error the
// job machinery handles with retries.
func (e *Extractor) Summarize(ctx context.Context, history []Turn) (string, error) {
	if !e.provider.Configured() {
		return "", ErrUnavailable
	}

	turns := []Turn{
		{Role: "system", Content: summarySystemPrompt},
		{Role: "user", Content: buildSummaryPrompt(history)},
	}

	result := e.provider.Complete(ctx, turns, CompletionOptions{
		Model:     e.settings.Model,
		MaxTokens: 500,
		Timeout:   e.settings.Timeout,
	})
	if !result.Success {
		return "", &CompletionError{Kind: result.ErrorKind}
	}

	return strings.TrimSpace(result.Message), nil
}

// Configured reports whether the model path is available at all.
func (e *Extractor) Configured() bool {
	return e.provider.Configured()
}

// completeJSON runs one model attempt for a structured extraction: complete,
// repair, decode. It returns the error kind of the first failed step, or
// ErrorKindNone with out populated.
func (e *Extractor) completeJSON(ctx context.Context, system, user string, out any) ErrorKind {
	if !e.provider.Configured() {
		return ErrorKindUnavailable
	}

	result := e.provider.Complete(ctx, []Turn{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, CompletionOptions{
		Model:        e.settings.Model,
		MaxTokens:    e.settings.MaxTokens,
		Temperature:  &e.settings.Temperature,
		Timeout:      e.settings.Timeout,
		JSONResponse: true,
	})
	if !result.Success {
		return result.ErrorKind
	}

	raw, err := ExtractJSONObject(result.Message)
	if err != nil {
		return ErrorKindParse
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return ErrorKindParse
	}

	return ErrorKindNone
}

func (e *Extractor) logFallback(operation string, kind ErrorKind, err error) {
	if e.logger == nil {
		return
	}
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.String("error_kind", string(kind)),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	e.logger.Info("extraction_fallback", fields...)
}

// normalizeChecklist enforces the section invariants the model cannot be
// trusted to honor: sequential positive ids and non-empty status fields.
func normalizeChecklist(doc *models.ChecklistDocument) {
	for i := range doc.Sections {
		doc.Sections[i].ID = i + 1
		if doc.Sections[i].OwnerStatus == "" {
			doc.Sections[i].OwnerStatus = models.StatusNotSpecified
		}
		if doc.Sections[i].ReviewerStatus == "" {
			doc.Sections[i].ReviewerStatus = models.StatusNotSpecified
		}
	}
}

// fallbackReply is the canned conversational answer used when the model path
// fails. The wording is keyed on what the user seems to be asking about so
// the degraded mode still feels helpful.
func fallbackReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "task"):
		return "I'm having trouble connecting to my AI service right now, but I can still " +
			"help you with task management! You can create tasks directly, organize them " +
			"into categories, and mark them complete. I'll be back online soon to provide " +
			"more AI-powered assistance!"
	case strings.Contains(lower, "category") || strings.Contains(lower, "organize"):
		return "I'm experiencing connectivity issues, but you can still organize your work! " +
			"Try creating new categories, moving tasks between them, and using colors to " +
			"organize your workflow. I'll be back to help with AI-powered organization soon!"
	default:
		return "I apologize, but I'm having trouble connecting to my AI service right now. " +
			"You can still create and manage tasks, organize with categories, and track " +
			"your progress. I'll be back online shortly to provide full AI assistance!"
	}
}
