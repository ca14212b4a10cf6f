package extraction

import "github.com/SharkFourSix/momo/internal/domain"

// Extractor turns one provider's raw SMS text into a structured transaction.
//
// Implementations own the whole classification and parsing pipeline for
// their provider and make no assumptions about concurrent use beyond being
// safe for concurrent calls (extraction is stateless). A nil transaction
// with a nil error means the text matched no known template, which callers
// must treat as a normal outcome.
//
// opts is an open bag of parameters whose meaning is entirely up to the
// implementation; extractors that need nothing extra ignore it.
type Extractor interface {
	Extract(providerCode, text string, opts map[string]string) (domain.Transaction, error)
}
