package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyperjump/sqlrag/internal/embedding"
	"github.com/hyperjump/sqlrag/internal/llm"
	"github.com/hyperjump/sqlrag/internal/models"
	"github.com/hyperjump/sqlrag/internal/storage"
	"github.com/hyperjump/sqlrag/internal/vector"
	"go.uber.org/zap"
)

// DefaultTopK is the number of stored chunks placed in the prompt context.
const DefaultTopK = 2

var (
	// ErrEmptyQuery is returned for blank queries; the session is left untouched.
	ErrEmptyQuery = errors.New("query cannot be empty")
	// ErrBusy is returned when a turn is already in flight and the engine rejects concurrent turns.
	ErrBusy = errors.New("session is awaiting a response")
)

// Engine answers queries: embed the query, rank every stored chunk, build the
// prompt and call the generator.
type Engine struct {
	store            storage.EmbeddingStore
	embedder         embedding.Embedder
	retriever        vector.Retriever
	generator        llm.Generator
	topK             int
	maxHistory       int
	rejectConcurrent bool
	logger           *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a logger for per-turn debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTopK sets how many matches are placed in the context. Values <= 0 keep DefaultTopK.
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithHistoryWindow limits the prompt to the newest max history messages. 0 keeps all.
func WithHistoryWindow(max int) Option {
	return func(e *Engine) { e.maxHistory = max }
}

// WithRejectConcurrent makes Ask return ErrBusy instead of waiting for a turn in flight.
func WithRejectConcurrent(reject bool) Option {
	return func(e *Engine) { e.rejectConcurrent = reject }
}

// NewEngine creates an engine. retriever may be nil for the exhaustive retriever.
func NewEngine(store storage.EmbeddingStore, embedder embedding.Embedder, retriever vector.Retriever, generator llm.Generator, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		embedder:  embedder,
		retriever: retriever,
		generator: generator,
		topK:      DefaultTopK,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.retriever == nil {
		e.retriever = vector.NewExhaustiveRetriever()
	}
	return e
}

// Ask runs one turn on s. The query is appended to the history before
// retrieval and the answer after generation. If any step fails the query is
// removed again, the session returns to StateIdle and the error is returned.
func (e *Engine) Ask(ctx context.Context, s *Session, query string) (*models.QueryResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if e.rejectConcurrent {
		if !s.turn.TryLock() {
			return nil, ErrBusy
		}
	} else {
		s.turn.Lock()
	}
	defer s.turn.Unlock()

	start := time.Now()
	prior, epoch := s.begin(query)
	answer, matches, err := e.answer(ctx, prior, query)
	if err != nil {
		s.abort(epoch)
		e.logger.Debug("chat turn failed", zap.String("session", s.ID()), zap.Error(err))
		return nil, err
	}
	if !s.finish(epoch, answer) {
		e.logger.Debug("chat session reset during turn", zap.String("session", s.ID()))
	}

	took := time.Since(start)
	e.logger.Debug("chat turn done",
		zap.String("session", s.ID()),
		zap.Int("matches", len(matches)),
		zap.Duration("took", took))
	return &models.QueryResponse{
		SessionID: s.ID(),
		Answer:    answer,
		Matches:   matches,
		History:   s.History(),
		QueryTime: took.Milliseconds(),
	}, nil
}

// Retrieve returns the stored chunks most similar to query without generating.
func (e *Engine) Retrieve(ctx context.Context, query string) ([]models.ScoredMatch, error) {
	vec, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	records, err := e.store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan embeddings: %w", err)
	}
	matches, err := e.retriever.TopK(ctx, vec, e.topK, records)
	if err != nil {
		return nil, fmt.Errorf("rank embeddings: %w", err)
	}
	return matches, nil
}

func (e *Engine) answer(ctx context.Context, prior []models.ChatMessage, query string) (string, []models.ScoredMatch, error) {
	matches, err := e.Retrieve(ctx, query)
	if err != nil {
		return "", nil, err
	}
	prompt := BuildPrompt(matches, HistoryWindow(prior, e.maxHistory), query)
	answer, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return "", nil, fmt.Errorf("generate answer: %w", err)
	}
	return answer, matches, nil
}
