package sentiment

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/learnify/backend/pkg/circuitbreaker"
	"github.com/learnify/backend/pkg/logger"
	"github.com/learnify/backend/pkg/retry"
)

const polaritySystemPrompt = `You are a sentiment rater for short learning queries.
Rate the emotional polarity of the user's text on a scale from -1.0 (very negative,
confused, frustrated) to 1.0 (very positive, excited, motivated).
Reply with ONLY the number, nothing else.`

// OpenAIProvider asks a chat model for a polarity rating. Guarded by a
// circuit breaker and retries; callers degrade to neutral on error.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	timeout     time.Duration
	cb          *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
}

func NewOpenAIProvider(apiKey, model string, timeoutSec int) *OpenAIProvider {
	cb := circuitbreaker.NewCircuitBreaker("sentiment", circuitbreaker.Config{
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger.GetLogger(),
	})

	retryConfig := retry.Config{
		MaxAttempts:    2,
		InitialDelay:   300 * time.Millisecond,
		MaxDelay:       2 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
		Logger:         logger.GetLogger(),
	}

	logger.Info("OpenAI sentiment provider initialized", zap.String("model", model))

	return &OpenAIProvider{
		client:      openai.NewClient(apiKey),
		model:       model,
		timeout:     time.Duration(timeoutSec) * time.Second,
		cb:          cb,
		retryConfig: retryConfig,
	}
}

func (p *OpenAIProvider) Polarity(ctx context.Context, text string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var polarity float64

	err := p.cb.Execute(ctx, func() error {
		return retry.Do(ctx, p.retryConfig, func() error {
			resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
				Model: p.model,
				Messages: []openai.ChatCompletionMessage{
					{Role: openai.ChatMessageRoleSystem, Content: polaritySystemPrompt},
					{Role: openai.ChatMessageRoleUser, Content: text},
				},
				Temperature: 0,
				MaxTokens:   8,
			})
			if err != nil {
				return fmt.Errorf("failed to rate sentiment: %w", err)
			}

			if len(resp.Choices) == 0 {
				return fmt.Errorf("empty completion response")
			}

			raw := strings.TrimSpace(resp.Choices[0].Message.Content)
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("unparseable polarity %q: %w", raw, err)
			}
			if value < -1.0 || value > 1.0 {
				return fmt.Errorf("polarity %f out of range", value)
			}

			polarity = value
			return nil
		})
	})

	if err != nil {
		return 0, err
	}

	logger.Debug("Sentiment rated", zap.Float64("polarity", polarity))
	return polarity, nil
}
