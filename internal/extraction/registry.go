package extraction

import (
	"context"
	"fmt"
	"sync"

	"github.com/SharkFourSix/momo/internal/domain"
	"github.com/SharkFourSix/momo/pkg/logger"
)

// Registry maps provider short codes to registered extractors. It is an
// explicit value rather than a process-wide singleton; construct one per
// application (or test) context and hand it to whatever needs lookups.
//
// Reads and writes on the underlying map are mutually exclusive; extraction
// itself touches no shared state.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]Extractor
	logger     *logger.Logger
}

func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNop()
	}
	return &Registry{
		extractors: make(map[string]Extractor),
		logger:     log,
	}
}

// Register binds a provider short code to an extractor instance. The first
// registration for a code wins; later calls for the same code are no-ops.
// Returns the registry for chained registrations.
func (r *Registry) Register(code string, ex Extractor) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.extractors[code]; !exists {
		r.extractors[code] = ex
	}
	return r
}

// RegisterFactory constructs an extractor through the given factory and
// registers it. A construction failure is a programming error at the
// registration site and panics immediately rather than surfacing later at
// extraction time.
func (r *Registry) RegisterFactory(code string, factory func() (Extractor, error)) *Registry {
	ex, err := factory()
	if err != nil {
		panic(fmt.Sprintf("extraction: constructing extractor for %q: %v", code, err))
	}
	return r.Register(code, ex)
}

// Lookup returns the extractor bound to code, if any.
func (r *Registry) Lookup(code string) (Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ex, ok := r.extractors[code]
	return ex, ok
}

// LookupAs returns the extractor bound to code asserted to the concrete
// type T. An extractor of a different type is a type-mismatch error; an
// unbound code returns the zero T with ok=false and no error.
func LookupAs[T Extractor](r *Registry, code string) (T, bool, error) {
	var zero T

	ex, ok := r.Lookup(code)
	if !ok {
		return zero, false, nil
	}
	typed, ok := ex.(T)
	if !ok {
		return zero, false, fmt.Errorf("extraction: extractor for %q is %T, not %T", code, ex, zero)
	}
	return typed, true, nil
}

// Extract looks up the extractor for code and runs it over text.
//
// Extraction is best effort: an unbound code, a message matching no known
// template, or a parse failure inside the extractor all yield (nil, nil).
// Failures are reported on the diagnostic channel (the registry logger)
// only. The one hard error is a kind mismatch: when want is not KindAny and
// the extracted record is of a different kind, the caller declared a wrong
// expectation and gets domain.ErrKindMismatch instead of an unrelated record.
func (r *Registry) Extract(ctx context.Context, code, text string, opts map[string]string, want domain.Kind) (domain.Transaction, error) {
	ex, ok := r.Lookup(code)
	if !ok {
		r.logger.Debug(ctx, "No extractor registered", "provider", code)
		return nil, nil
	}

	tx, err := ex.Extract(code, text, opts)
	if err != nil {
		r.logger.Warn(ctx, "Extraction failed",
			"provider", code,
			"error", err,
		)
		return nil, nil
	}
	if tx == nil {
		r.logger.Debug(ctx, "Message matched no template", "provider", code)
		return nil, nil
	}

	if want != domain.KindAny && tx.Kind() != want {
		return nil, fmt.Errorf("%w: extracted %s, expected %s", domain.ErrKindMismatch, tx.Kind(), want)
	}
	return tx, nil
}

// ExtractAs runs Extract and returns the record as the concrete type T.
// ok is false when nothing was extracted.
func ExtractAs[T domain.Transaction](ctx context.Context, r *Registry, code, text string, opts map[string]string) (T, bool, error) {
	var zero T

	tx, err := r.Extract(ctx, code, text, opts, domain.KindAny)
	if err != nil {
		return zero, false, err
	}
	if tx == nil {
		return zero, false, nil
	}
	typed, ok := tx.(T)
	if !ok {
		return zero, false, fmt.Errorf("%w: extracted %T, expected %T", domain.ErrKindMismatch, tx, zero)
	}
	return typed, true, nil
}
