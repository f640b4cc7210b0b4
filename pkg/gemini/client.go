package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/samber/lo"
	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/dskvich/oracai/pkg/domain"
	"github.com/dskvich/oracai/pkg/logger"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultModel   = "gemini-2.0-flash-001"
	DefaultTimeout = 60 * time.Second

	instrumentationName = "github.com/dskvich/oracai/pkg/gemini"
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type client struct {
	api      *openai.Client
	model    string
	tracer   trace.Tracer
	duration metric.Float64Histogram
	failures metric.Int64Counter
}

func NewClient(cfg Config) (*client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is empty")
	}

	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = lo.Ternary(cfg.Timeout > 0, cfg.Timeout, DefaultTimeout)
	hc.Transport = &errorBodyTransport{next: hc.Transport}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = strings.TrimRight(lo.Ternary(cfg.BaseURL != "", cfg.BaseURL, DefaultBaseURL), "/")
	apiCfg.HTTPClient = hc

	meter := otel.Meter(instrumentationName)
	duration, err := meter.Float64Histogram(
		"gemini.request.duration",
		metric.WithDescription("Model request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}
	failures, err := meter.Int64Counter(
		"gemini.request.failures",
		metric.WithDescription("Failed model requests by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failure counter: %w", err)
	}

	return &client{
		api:      openai.NewClientWithConfig(apiCfg),
		model:    lo.Ternary(cfg.Model != "", cfg.Model, DefaultModel),
		tracer:   otel.Tracer(instrumentationName),
		duration: duration,
		failures: failures,
	}, nil
}

// GenerateFromText sends instruction and userText joined into a single prompt.
func (c *client) GenerateFromText(ctx context.Context, instruction, userText string) (string, error) {
	message := openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: domain.TextPrompt(instruction, userText),
	}

	return c.complete(ctx, "text", message)
}

// GenerateFromTextAndImage sends the instruction and the image as two parts of one message.
func (c *client) GenerateFromTextAndImage(ctx context.Context, instruction string, image *domain.UploadedImage) (string, error) {
	if image == nil {
		return "", fmt.Errorf("image is nil")
	}

	message := openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeText,
				Text: instruction,
			},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    image.DataURL(),
					Detail: openai.ImageURLDetailAuto,
				},
			},
		},
	}

	return c.complete(ctx, "text_image", message)
}

func (c *client) complete(ctx context.Context, operation string, message openai.ChatCompletionMessage) (string, error) {
	ctx, span := c.tracer.Start(ctx, "gemini."+operation, trace.WithAttributes(
		attribute.String("gen_ai.request.model", c.model),
	))
	defer span.End()

	slog.InfoContext(ctx, "Calling model", "model", c.model, "operation", operation)

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: []openai.ChatCompletionMessage{message},
	})

	text, err := c.extractText(resp, err)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		genErr := classify(err)
		outcome = string(genErr.Kind)

		span.RecordError(err)
		span.SetStatus(codes.Error, genErr.Error())
		c.failures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("kind", string(genErr.Kind)),
		))
		slog.ErrorContext(ctx, "Model call failed", "operation", operation, "kind", genErr.Kind, "elapsed", elapsed, logger.Err(err))

		err = genErr
	} else {
		slog.DebugContext(ctx, "Model response received", "operation", operation, "length", len(text), "elapsed", elapsed)
	}

	c.duration.Record(ctx, float64(elapsed.Milliseconds()), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))

	return text, err
}

func (c *client) extractText(resp openai.ChatCompletionResponse, err error) (string, error) {
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errEmptyResponse
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", errEmptyResponse
	}

	return text, nil
}
