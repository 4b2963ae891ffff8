// Package planner asks a chat model for an overall plan covering the
// current task list. Calls run off the caller's goroutine and deliver a
// single result.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	"github.com/balkashynov/stickies/internal/models"
)

const (
	DefaultBaseURL = "https://api.deepseek.com"
	DefaultModel   = "deepseek-chat"
	DefaultTimeout = 45 * time.Second

	systemPrompt = "You are a helpful assistant"
	userPrompt   = "Generate an overall plan with detailed suggestions for the following tasks: %s"
)

// ErrMissingAPIKey is returned when no API key is configured
var ErrMissingAPIKey = errors.New("planner API key not set")

// Planner turns a task list into a free-text plan
type Planner struct {
	model   llms.Model
	timeout time.Duration
	logger  *zap.SugaredLogger
	wg      sync.WaitGroup
}

// Option configures a Planner
type Option func(*Planner)

// WithTimeout bounds each request; zero or negative keeps the default
func WithTimeout(d time.Duration) Option {
	return func(p *Planner) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l *zap.SugaredLogger) Option {
	return func(p *Planner) {
		p.logger = l
	}
}

// NewWithModel wraps an existing chat model
func NewWithModel(model llms.Model, opts ...Option) *Planner {
	p := &Planner{
		model:   model,
		timeout: DefaultTimeout,
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewDeepseek builds a planner backed by DeepSeek's OpenAI-compatible API.
// Empty baseURL/model fall back to the DeepSeek defaults.
func NewDeepseek(apiKey, baseURL, model string, opts ...Option) (*Planner, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create planner client: %w", err)
	}

	return NewWithModel(llm, opts...), nil
}

// FormatTasks renders tasks as "title (goal_type, task_type)" joined by "; "
func FormatTasks(tasks []models.Task) string {
	parts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		title := strings.TrimSpace(t.Title)
		if title == "" {
			title = "(untitled)"
		}
		parts = append(parts, fmt.Sprintf("%s (%s, %s)", title, t.GoalType, t.TaskType))
	}
	return strings.Join(parts, "; ")
}

// BuildMessages returns the chat messages sent for tasks. An empty list
// still produces a request, with an empty task description.
func BuildMessages(tasks []models.Task) []llms.MessageContent {
	return []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(fmt.Sprintf(userPrompt, FormatTasks(tasks)))},
		},
	}
}

// Generate performs the request synchronously, bounded by the planner timeout
func (p *Planner) Generate(ctx context.Context, tasks []models.Task) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	p.logger.Debugw("plan requested", "tasks", len(tasks))

	resp, err := p.model.GenerateContent(ctx, BuildMessages(tasks), llms.WithTemperature(0.7))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = &RequestError{Reason: fmt.Sprintf("timed out after %s", p.timeout), Err: context.DeadlineExceeded}
		} else {
			err = &RequestError{Reason: "request failed", Err: err}
		}
		p.logger.Warnw("plan request failed", "error", err, "latency", time.Since(start).String())
		return "", err
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", &RequestError{Reason: "malformed reply: no choices"}
	}
	text := strings.TrimSpace(resp.Choices[0].Content)
	if text == "" {
		return "", &RequestError{Reason: "malformed reply: empty content"}
	}

	p.logger.Infow("plan generated", "tasks", len(tasks), "chars", len(text), "latency", time.Since(start).String())
	return text, nil
}

// Result is the single completion of an asynchronous request
type Result struct {
	Text string
	Err  error
}

// Request runs Generate on a worker goroutine. Exactly one Result is sent
// on the returned channel; it is buffered so the caller may abandon it.
func (p *Planner) Request(ctx context.Context, tasks []models.Task) <-chan Result {
	out := make(chan Result, 1)
	snapshot := append([]models.Task(nil), tasks...)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		text, err := p.Generate(ctx, snapshot)
		out <- Result{Text: text, Err: err}
		close(out)
	}()

	return out
}

// Events receives the outcome of RequestTo
type Events interface {
	PlanReady(text string)
	PlanFailed(err error)
}

// RequestTo is Request with delivery through an event sink
func (p *Planner) RequestTo(ctx context.Context, tasks []models.Task, sink Events) {
	results := p.Request(ctx, tasks)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		res := <-results
		if res.Err != nil {
			sink.PlanFailed(res.Err)
			return
		}
		sink.PlanReady(res.Text)
	}()
}

// Wait blocks until all in-flight requests have delivered
func (p *Planner) Wait() {
	p.wg.Wait()
}
