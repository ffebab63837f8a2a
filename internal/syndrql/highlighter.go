package syndrql

import (
	"context"
	"sync"
	"time"

	"github.com/syndrdb/quill/internal/cachemanager"
	"github.com/syndrdb/quill/internal/log"
	"github.com/syndrdb/quill/internal/pubsub"
)

// DefaultDebounce is how long typing must pause before the statement
// under the cursor is revalidated.
const DefaultDebounce = 200 * time.Millisecond

// ValidationUpdate is the payload published for validation lifecycle
// events. Queued events carry only the statement; completed events add
// the result and its diagnostics.
type ValidationUpdate struct {
	Statement *Statement
	Result    ValidationResult
	Details   []ErrorDetail
}

// HighlighterConfig tunes the orchestration layer. Zero values fall
// back to the package defaults.
type HighlighterConfig struct {
	Debounce  time.Duration
	CacheTTL  time.Duration
	SkipCache bool // bypass caches entirely, useful for tests
}

// Highlighter owns the incremental pipeline behind the editor. It keeps
// the current statement list, caches token runs and validation results
// by source text, and after a typing pause revalidates only the
// statement that was edited. Timer callbacks run on their own
// goroutine; all statement state is guarded by one mutex.
type Highlighter struct {
	mu         sync.Mutex
	statements []*Statement
	pending    *Statement
	timer      *time.Timer
	gen        int // bumped on every reschedule so stale fires abandon

	debounce time.Duration
	ttl      time.Duration

	tokens  *cachemanager.ReadThroughCache[string, []Token, string]
	results cachemanager.CacheManager[string, ValidationResult]

	broker      *pubsub.Broker[ValidationUpdate]
	onValidated func(ValidationUpdate)
}

// NewHighlighter builds a highlighter with its two caches and an event
// broker. Close releases the broker when the editor goes away.
func NewHighlighter(cfg HighlighterConfig) *Highlighter {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = cachemanager.DefaultExpiration
	}

	tokenCache := cachemanager.NewInMemoryCacheManager[string, []Token](
		"tokens", cfg.CacheTTL, cachemanager.DefaultCleanupInterval)
	resultCache := cachemanager.NewInMemoryCacheManager[string, ValidationResult](
		"validation", cfg.CacheTTL, cachemanager.DefaultCleanupInterval)

	return &Highlighter{
		debounce: cfg.Debounce,
		ttl:      cfg.CacheTTL,
		tokens: cachemanager.NewReadThroughCache(
			cachemanager.CacheManager[string, []Token](tokenCache),
			func(ctx context.Context, src string) ([]Token, error) {
				return Tokenize(src), nil
			},
			cfg.SkipCache,
		),
		results: resultCache,
		broker:  pubsub.NewBroker[ValidationUpdate](),
	}
}

// TokenizeCached returns the token run for src, serving repeats from the
// token cache. Two calls with identical source return equal tokens.
func (h *Highlighter) TokenizeCached(ctx context.Context, src string) []Token {
	tokens, _ := h.tokens.Get(ctx, src, src, h.ttl)
	return tokens
}

// Statements returns the current statement list. The slice is detached;
// the entries are shared.
func (h *Highlighter) Statements() []*Statement {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Statement(nil), h.statements...)
}

// SetOnValidated registers a callback invoked after every completed
// validation, on the goroutine that ran it.
func (h *Highlighter) SetOnValidated(fn func(ValidationUpdate)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onValidated = fn
}

// Events exposes the broker publishing queued and completed validation
// updates.
func (h *Highlighter) Events() *pubsub.Broker[ValidationUpdate] {
	return h.broker
}

// UpdateDocument re-segments the document after an edit. Statements
// whose text already has a cached validation result keep that verdict;
// the statement containing the cursor is marked dirty and scheduled for
// revalidation one debounce interval from now. Scheduling again before
// the interval elapses restarts it, so a typing burst validates once.
func (h *Highlighter) UpdateDocument(ctx context.Context, text string, cursorLine, cursorCol int) []*Statement {
	h.mu.Lock()
	defer h.mu.Unlock()

	stmts := ParseStatements(text)
	for _, s := range stmts {
		if res, ok := h.results.Get(ctx, s.Text); ok {
			s.Valid = res.Valid
			s.Dirty = false
		}
	}

	target := StatementAt(stmts, cursorLine, cursorCol)
	if target == nil {
		h.statements = stmts
		h.pending = nil
		h.gen++
		if h.timer != nil {
			h.timer.Stop()
			h.timer = nil
		}
		return h.statements
	}

	idx := statementIndex(stmts, target)
	h.statements = MarkDirty(stmts, target)
	h.pending = h.statements[idx]

	h.gen++
	gen := h.gen
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = time.AfterFunc(h.debounce, func() { h.fire(gen) })

	log.Debug(log.CatLang, "validation scheduled",
		"line", cursorLine, "statements", len(h.statements))
	h.broker.Publish(pubsub.QueuedEvent, ValidationUpdate{Statement: h.pending})

	return h.statements
}

// Flush validates the pending statement immediately, if any. The editor
// calls this on blur and before handing a statement to execution.
func (h *Highlighter) Flush(ctx context.Context) {
	h.mu.Lock()
	stmt := h.pending
	h.pending = nil
	h.gen++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.mu.Unlock()

	if stmt != nil {
		h.run(ctx, stmt)
	}
}

// ValidateAll synchronously validates every current statement, marking
// each clean. Used when a document is first opened.
func (h *Highlighter) ValidateAll(ctx context.Context) []ValidationUpdate {
	stmts := h.Statements()
	updates := make([]ValidationUpdate, 0, len(stmts))
	for _, s := range stmts {
		updates = append(updates, h.run(ctx, s))
	}
	return updates
}

// InvalidateCaches drops every cached token run and validation result.
func (h *Highlighter) InvalidateCaches(ctx context.Context) {
	_ = h.results.Flush(ctx)
	log.Debug(log.CatLang, "caches invalidated")
}

// CacheStats reports how many validation results are currently cached.
func (h *Highlighter) CacheStats() int {
	return h.results.ItemCount()
}

// Close stops any pending timer and shuts the event broker down.
func (h *Highlighter) Close() {
	h.mu.Lock()
	h.gen++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.pending = nil
	h.mu.Unlock()
	h.broker.Close()
}

// fire runs on the timer goroutine. A generation mismatch means the
// schedule was superseded by a later edit or a flush; abandon quietly.
func (h *Highlighter) fire(gen int) {
	h.mu.Lock()
	if gen != h.gen || h.pending == nil {
		h.mu.Unlock()
		return
	}
	stmt := h.pending
	h.pending = nil
	h.timer = nil
	h.mu.Unlock()

	h.run(context.Background(), stmt)
}

// run validates one statement, caches the result by statement text,
// marks the statement clean, and notifies listeners.
func (h *Highlighter) run(ctx context.Context, stmt *Statement) ValidationUpdate {
	res, ok := h.results.Get(ctx, stmt.Text)
	if !ok {
		res = Validate(stmt.Tokens)
		h.results.Set(ctx, stmt.Text, res, h.ttl)
	}
	details := AnalyzeErrors(stmt.Tokens, res, stmt.LineStart)

	h.mu.Lock()
	h.statements = MarkClean(h.statements, stmt, res.Valid)
	// MarkClean replaced the entry; surface the fresh copy to listeners.
	clean := stmt
	for _, s := range h.statements {
		if s.Text == stmt.Text && s.LineStart == stmt.LineStart {
			clean = s
			break
		}
	}
	cb := h.onValidated
	h.mu.Unlock()

	log.Debug(log.CatLang, "statement validated",
		"valid", res.Valid, "errors", len(details), "line", stmt.LineStart)

	update := ValidationUpdate{Statement: clean, Result: res, Details: details}
	if cb != nil {
		cb(update)
	}
	h.broker.Publish(pubsub.CompletedEvent, update)
	return update
}

func statementIndex(stmts []*Statement, target *Statement) int {
	for i, s := range stmts {
		if s == target {
			return i
		}
	}
	return -1
}
