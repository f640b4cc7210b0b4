package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dskvich/oracai/pkg/domain"
	"github.com/dskvich/oracai/pkg/session"
)

type Gateway interface {
	GenerateFromText(ctx context.Context, instruction, userText string) (string, error)
	GenerateFromTextAndImage(ctx context.Context, instruction string, image *domain.UploadedImage) (string, error)
}

type PromptCatalog interface {
	Template(mode domain.Mode) string
}

type SessionRepository interface {
	History(sessionID string) *session.History
	Messages(sessionID string) []domain.ChatMessage
	Delete(sessionID string)
}

type assistantService struct {
	gateway  Gateway
	prompts  PromptCatalog
	sessions SessionRepository
}

func NewAssistantService(
	gateway Gateway,
	prompts PromptCatalog,
	sessions SessionRepository,
) *assistantService {
	return &assistantService{
		gateway:  gateway,
		prompts:  prompts,
		sessions: sessions,
	}
}

// Submit routes one user action to the handler of its mode.
func (a *assistantService) Submit(ctx context.Context, sub domain.Submission) (*domain.Result, error) {
	switch sub.Mode {
	case domain.ModeChat:
		return a.Chat(ctx, sub.SessionID, sub.Text)
	case domain.ModeERDExplain, domain.ModeCloudExplain:
		return a.ExplainDiagram(ctx, sub.Mode, sub.Image)
	case domain.ModeTroubleshoot:
		return a.Troubleshoot(ctx, sub.Text)
	}
	return nil, fmt.Errorf("unsupported mode %v", sub.Mode)
}

// Chat answers one question and records the exchange in the session history. A failed call
// leaves the history untouched.
func (a *assistantService) Chat(ctx context.Context, sessionID, text string) (*domain.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &domain.ValidationError{Field: "text", Message: "please enter a question"}
	}

	slog.InfoContext(ctx, "Generating chat response", "sessionID", sessionID, "promptLength", len(text))

	answer, err := a.gateway.GenerateFromText(ctx, a.prompts.Template(domain.ModeChat), text)
	if err != nil {
		return nil, fmt.Errorf("generating chat response: %w", err)
	}

	history := a.sessions.History(sessionID)
	history.AppendExchange(text, answer)

	slog.DebugContext(ctx, "Recorded chat exchange", "sessionID", sessionID, "historyLength", history.Len())

	return &domain.Result{
		Mode:    domain.ModeChat,
		Text:    answer,
		History: history.Messages(),
	}, nil
}

func (a *assistantService) ExplainDiagram(ctx context.Context, mode domain.Mode, image *domain.UploadedImage) (*domain.Result, error) {
	if !mode.NeedsImage() {
		return nil, fmt.Errorf("mode %v does not explain diagrams", mode)
	}
	if image == nil || len(image.Data) == 0 {
		return nil, &domain.ValidationError{Field: "image", Message: "please upload an image first"}
	}

	slog.InfoContext(ctx, "Explaining diagram", "mode", mode.Slug(), "mimeType", image.MIMEType,
		"width", image.Width, "height", image.Height, "imageDataSizeBytes", len(image.Data))

	explanation, err := a.gateway.GenerateFromTextAndImage(ctx, a.prompts.Template(mode), image)
	if err != nil {
		return nil, fmt.Errorf("explaining diagram: %w", err)
	}

	return &domain.Result{
		Mode:  mode,
		Text:  explanation,
		Image: image,
	}, nil
}

func (a *assistantService) Troubleshoot(ctx context.Context, text string) (*domain.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &domain.ValidationError{Field: "text", Message: "please describe your Oracle issue"}
	}

	slog.InfoContext(ctx, "Troubleshooting issue", "promptLength", len(text))

	answer, err := a.gateway.GenerateFromText(ctx, a.prompts.Template(domain.ModeTroubleshoot), text)
	if err != nil {
		return nil, fmt.Errorf("troubleshooting issue: %w", err)
	}

	return &domain.Result{
		Mode: domain.ModeTroubleshoot,
		Text: answer,
	}, nil
}

func (a *assistantService) ChatHistory(sessionID string) []domain.ChatMessage {
	return a.sessions.Messages(sessionID)
}

func (a *assistantService) ClearChat(ctx context.Context, sessionID string) {
	slog.InfoContext(ctx, "Clearing chat history", "sessionID", sessionID)
	a.sessions.Delete(sessionID)
}
