// Package chat answers questions about a processed video using retrieval
// over the embedded transcript chunks. Follow-up questions are condensed
// into standalone questions before retrieval so that pronouns and elliptic
// references resolve against the conversation history.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tubenotes/internal/store"
	"tubenotes/internal/timeutil"
)

const defaultTopK = 3

const condensePrompt = `Given the following conversation and a follow up question, rephrase the follow up question to be a standalone question that captures all relevant context from the conversation.`

const answerPrompt = `You are an assistant that helps users understand YouTube video content based on its subtitles.
Answer the question based on the following context from the video subtitles.

Provide a concise and helpful answer. If the answer is not in the context, say so.
Include relevant timestamps if available in the context.`

// Completer produces a chat completion for a prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Embedder turns a question into a query vector.
type Embedder interface {
	EmbedOne(ctx context.Context, text string) ([]float32, error)
}

// Searcher ranks stored chunks against a query vector.
type Searcher interface {
	Search(ctx context.Context, videoID string, query []float32, k int) ([]store.SearchResult, error)
}

// Exchange is one question/answer pair in the conversation history.
type Exchange struct {
	Question string
	Answer   string
}

// Answer is a reply with the timestamps of the retrieved context.
type Answer struct {
	Text       string
	Timestamps []float64
}

// Service answers questions about one video's transcript.
type Service struct {
	completer Completer
	embedder  Embedder
	searcher  Searcher
	topK      int
}

// NewService constructs a chat service. topK <= 0 falls back to the default
// of three retrieved chunks.
func NewService(completer Completer, embedder Embedder, searcher Searcher, topK int) *Service {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &Service{completer: completer, embedder: embedder, searcher: searcher, topK: topK}
}

// Ask answers a question about the video. With history present the
// follow-up is first condensed into a standalone question; condensation
// failures fall back to the raw question rather than aborting.
func (s *Service) Ask(ctx context.Context, videoID, question string, history []Exchange) (Answer, error) {
	var empty Answer
	question = strings.TrimSpace(question)
	if question == "" {
		return empty, errors.New("chat: question required")
	}

	standalone := question
	if len(history) > 0 {
		if condensed, err := s.condense(ctx, question, history); err == nil && condensed != "" {
			standalone = condensed
		}
	}

	query, err := s.embedder.EmbedOne(ctx, standalone)
	if err != nil {
		return empty, fmt.Errorf("chat: embed question: %w", err)
	}
	results, err := s.searcher.Search(ctx, videoID, query, s.topK)
	if err != nil {
		if errors.Is(err, store.ErrNotIndexed) {
			return empty, fmt.Errorf("chat: %w (re-process the video with embeddings enabled)", err)
		}
		return empty, fmt.Errorf("chat: search transcript: %w", err)
	}

	text, err := s.completer.Complete(ctx, answerPrompt, buildAnswerInput(standalone, results))
	if err != nil {
		return empty, fmt.Errorf("chat: answer: %w", err)
	}

	answer := Answer{Text: strings.TrimSpace(text)}
	for _, result := range results {
		answer.Timestamps = append(answer.Timestamps, result.Chunk.StartTime)
	}
	answer.Text += formatTimestampSuffix(answer.Timestamps)
	return answer, nil
}

func (s *Service) condense(ctx context.Context, question string, history []Exchange) (string, error) {
	var builder strings.Builder
	builder.WriteString("Chat History:\n")
	for _, exchange := range history {
		fmt.Fprintf(&builder, "Human: %s\nAssistant: %s\n", exchange.Question, exchange.Answer)
	}
	fmt.Fprintf(&builder, "\nFollow Up Input: %s\nStandalone question:", question)

	condensed, err := s.completer.Complete(ctx, condensePrompt, builder.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(condensed), nil
}

func buildAnswerInput(question string, results []store.SearchResult) string {
	var builder strings.Builder
	builder.WriteString("Context:\n")
	for _, result := range results {
		fmt.Fprintf(&builder, "[%s] %s\n\n", timeutil.FormatTime(result.Chunk.StartTime), result.Chunk.Text)
	}
	fmt.Fprintf(&builder, "Question: %s\n\nAnswer:", question)
	return builder.String()
}

func formatTimestampSuffix(timestamps []float64) string {
	if len(timestamps) == 0 {
		return ""
	}
	formatted := make([]string, len(timestamps))
	for i, ts := range timestamps {
		formatted[i] = timeutil.FormatTime(ts)
	}
	return "\n\nRelevant timestamps: " + strings.Join(formatted, ", ")
}
