package segment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// DefaultModel is the chat model used for segmentation when none is
// configured.
const DefaultModel = openai.GPT4oMini

// segmentSystemPrompt instructs the model to emit the wire format
// directly, one record per line, so deltas can be parsed as they stream.
const segmentSystemPrompt = `You split text into short display chunks for speed reading.

Rules:
- Each chunk is 1-3 words, a natural phrase unit.
- Keep punctuation attached to the word it follows.
- Cover the entire input in order. Never rephrase, summarize, or drop words.
- Score each chunk's reading difficulty from 0.0 (trivial) to 1.0 (dense:
  numbers, jargon, long or unusual words).

Output NDJSON only: one JSON object per line, no surrounding text, no code
fences. Each line is {"text": "<chunk>", "complexity": <score>}.`

// OpenAIConfig configures the LLM segmenter.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	MaxRetries int
	RetryDelay time.Duration

	// RequestsPerMinute caps stream creation; zero means the default.
	RequestsPerMinute int
}

// OpenAISegmenter streams chunk records from a chat completion. The raw
// delta stream is exposed as an io.Reader, so the consumer's partial-line
// handling applies to real network framing.
type OpenAISegmenter struct {
	client     *openai.Client
	model      string
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAISegmenter creates a segmenter from the given config.
func NewOpenAISegmenter(cfg OpenAIConfig) (*OpenAISegmenter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("segment: OpenAI API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 3
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}
	rpm := cfg.RequestsPerMinute
	if rpm < 1 {
		rpm = 20
	}

	return &OpenAISegmenter{
		client:     openai.NewClient(cfg.APIKey),
		model:      model,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}, nil
}

// Segment opens a streaming completion for the document and returns a
// reader over the raw NDJSON deltas. Stream creation is retried with
// exponential backoff; failures after the stream is open surface as a
// read error on the returned reader.
func (s *OpenAISegmenter) Segment(ctx context.Context, document string) (io.ReadCloser, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var stream *openai.ChatCompletionStream
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			log.Debug("retrying segmentation request", "attempt", attempt, "err", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay * time.Duration(1<<uint(attempt-1))):
			}
		}

		stream, lastErr = s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: segmentSystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: document},
			},
			Temperature: 0.2,
			Stream:      true,
		})
		if lastErr == nil {
			break
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("creating segmentation stream after %d attempts: %w", s.maxRetries+1, lastErr)
	}

	pr, pw := io.Pipe()
	go func() {
		defer stream.Close()
		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				pw.Close()
				return
			}
			if err != nil {
				pw.CloseWithError(fmt.Errorf("receiving segmentation delta: %w", err))
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			if _, err := io.WriteString(pw, resp.Choices[0].Delta.Content); err != nil {
				// Reader side gone; stop pulling deltas.
				return
			}
		}
	}()
	return pr, nil
}

var _ Segmenter = (*OpenAISegmenter)(nil)
