package extractors

import (
	"regexp"
	"strings"

	"github.com/SharkFourSix/momo/internal/domain"
	"github.com/SharkFourSix/momo/internal/extraction"
	"github.com/SharkFourSix/momo/pkg/textutil"
)

// ProviderMpamba is the short code the TNM Mpamba service sends from.
const ProviderMpamba = "MPAMBA"

// Multiline message bodies are parsed with a single ordered alternation per
// subtype: a header line shape plus one alternative per field line. The
// engine walks the matches in textual order and assigns fields by match
// position, not by which label actually matched, so the canonical line order
// (header, amount, fee, reference, balance) is assumed. A message missing an
// optional line shifts every later field into the wrong slot; this matches
// the wire-compatible behavior of existing deployments.
var (
	mpambaCreditPattern = regexp.MustCompile(`(?m)^Money Sent to (08[0-9]{8}) (.+)? on ([0-9]{2}/[0-9]{2}/[0-9]{4} [0-9]{2}:[0-9]{2}:[0-9]{2}).\s*$|^Amount: ([0-9,]+\.[0-9]{2})MWK\s*$|Fee: ([0-9,]+\.[0-9]{2})MWK\s*$|^Ref: ([A-Z0-9]+)\s*$|Bal: ([0-9,]+\.[0-9]{2})MWK$`)

	mpambaDebitPattern = regexp.MustCompile(`(?m)^Money Received from ([0-9]{10,12}) (.+)? on ([0-9]{2}/[0-9]{2}/[0-9]{4} [0-9]{2}:[0-9]{2}:[0-9]{2}).\s*$|^Amount: ([0-9,]+\.[0-9]{2})MWK\s*$|^Ref: ([A-Z0-9]+)\s*$|Bal: ([0-9,]+\.[0-9]{2})MWK$`)

	mpambaDepositPattern = regexp.MustCompile(`^Deposit from (.+) on ([0-9]{2}/[0-9]{2}/[0-9]{4} [0-9]{2}:[0-9]{2}:[0-9]{2})\. Amount: ([0-9,]+\.[0-9]{2})MWK Fee: ([0-9,]+\.[0-9]{2})MWK Ref: ([A-Z0-9]+) Available Balance: ([0-9,]+\.[0-9]{2})MWK\.$`)

	mpambaCashOutPattern = regexp.MustCompile(`(?m)^Cash Out to (.+) - (.+) on ([0-9]{2}/[0-9]{2}/[0-9]{4} [0-9]{2}:[0-9]{2}:[0-9]{2}).$|^Amt: ([,0-9]+\.00)MWK.*$|^Fee: ([,0-9]+\.00)MWK.*$|^Ref: ([A-Z0-9]+)\s*$|^Bal: ([,0-9]+\.00)MWK\s*$`)

	// Agent cash-in; groups 4 and 5 are repetition internals of the
	// timestamp group and never read.
	mpambaCashInPattern = regexp.MustCompile(`(?m)^Cash In from ([0-9]+)-([0-9A-Z\s]+) on (([0-9]{2,4}/?){3} ([0-9]{2}:?){3})\.\s*$|^Amt: ([0-9,]+\.[0-9]{2})MWK$|^Fee: ([0-9,]+\.[0-9]{2})MWK\s*$|^Ref: ([A-Z0-9]+)$|Bal: ([0-9,]+\.[0-9]{2})MWK$`)

	// Coded cash-in fits one template on one logical line, so all fields
	// come from a single match.
	mpambaCodedCashInPattern = regexp.MustCompile(`^Trans ID: ([A-Z0-9.]+): you have received MK([0-9]+\.[0-9]{2}) from ([A-Z0-9]+), (.+)\. your new balance is MK([0-9]+\.[0-9]{2})`)
)

// MpambaExtractor extracts transactions from TNM Mpamba notification SMS.
type MpambaExtractor struct{}

// NewMpambaExtractor is the factory used for registry registration.
func NewMpambaExtractor() (extraction.Extractor, error) {
	return &MpambaExtractor{}, nil
}

// Extract classifies text by its leading template prefix and runs the
// matching subtype parser. Unknown prefixes and foreign provider codes
// yield (nil, nil). opts is unused.
func (e *MpambaExtractor) Extract(providerCode, text string, opts map[string]string) (domain.Transaction, error) {
	if providerCode != ProviderMpamba || text == "" {
		return nil, nil
	}

	switch {
	case strings.HasPrefix(text, "Money Sent to "):
		return e.extractCredit(text)
	case strings.HasPrefix(text, "Money Received from "):
		return e.extractDebit(text)
	case strings.HasPrefix(text, "Trans ID: "):
		return e.extractCodedCashIn(text)
	case strings.HasPrefix(text, "Cash In from "):
		return e.extractAgentCashIn(text)
	case strings.HasPrefix(text, "Deposit from "):
		return e.extractDeposit(text)
	case strings.HasPrefix(text, "Cash Out to"):
		return e.extractCashOut(text)
	}
	return nil, nil
}

// group returns capture g of the i-th match, or "" when fewer than i+1
// matches were found. Captures of non-participating alternatives are also "".
func group(matches [][]string, i, g int) string {
	if i >= len(matches) {
		return ""
	}
	return matches[i][g]
}

func (e *MpambaExtractor) extractCredit(text string) (domain.Transaction, error) {
	matches := mpambaCreditPattern.FindAllStringSubmatch(text, -1)

	tx := domain.Credit{}
	if len(matches) > 0 {
		tx.RecipientPhone = group(matches, 0, 1)
		tx.RecipientName = textutil.CleanName(group(matches, 0, 2))
		ts, err := textutil.ParseTime(group(matches, 0, 3))
		if err != nil {
			return nil, err
		}
		tx.Timestamp = &ts
	}
	var err error
	if tx.Amount, err = currencyAt(matches, 1, 4); err != nil {
		return nil, err
	}
	if tx.Fee, err = currencyAt(matches, 2, 5); err != nil {
		return nil, err
	}
	tx.ID = group(matches, 3, 6)
	if tx.Balance, err = currencyAt(matches, 4, 7); err != nil {
		return nil, err
	}
	return tx, nil
}

func (e *MpambaExtractor) extractDebit(text string) (domain.Transaction, error) {
	matches := mpambaDebitPattern.FindAllStringSubmatch(text, -1)

	tx := domain.Debit{}
	if len(matches) > 0 {
		tx.SenderPhone = group(matches, 0, 1)
		tx.SenderName = textutil.CleanName(group(matches, 0, 2))
		ts, err := textutil.ParseTime(group(matches, 0, 3))
		if err != nil {
			return nil, err
		}
		tx.Timestamp = &ts
	}
	var err error
	if tx.Amount, err = currencyAt(matches, 1, 4); err != nil {
		return nil, err
	}
	tx.ID = group(matches, 2, 5)
	if tx.Balance, err = currencyAt(matches, 3, 6); err != nil {
		return nil, err
	}
	return tx, nil
}

func (e *MpambaExtractor) extractDeposit(text string) (domain.Transaction, error) {
	tx := domain.Deposit{}
	m := mpambaDepositPattern.FindStringSubmatch(text)
	if m == nil {
		return tx, nil
	}

	tx.Source = textutil.CleanName(m[1])
	ts, err := textutil.ParseTime(m[2])
	if err != nil {
		return nil, err
	}
	tx.Timestamp = &ts
	if tx.Amount, err = textutil.Currency(m[3]); err != nil {
		return nil, err
	}
	if tx.Fee, err = textutil.Currency(m[4]); err != nil {
		return nil, err
	}
	tx.ID = m[5]
	if tx.Balance, err = textutil.Currency(m[6]); err != nil {
		return nil, err
	}
	return tx, nil
}

func (e *MpambaExtractor) extractCashOut(text string) (domain.Transaction, error) {
	matches := mpambaCashOutPattern.FindAllStringSubmatch(text, -1)

	tx := domain.CashOut{}
	if len(matches) > 0 {
		tx.Agent = domain.Agent{
			Code: group(matches, 0, 2),
			Name: textutil.CleanName(group(matches, 0, 1)),
		}
		ts, err := textutil.ParseTime(group(matches, 0, 3))
		if err != nil {
			return nil, err
		}
		tx.Timestamp = &ts
	}
	var err error
	if tx.Amount, err = currencyAt(matches, 1, 4); err != nil {
		return nil, err
	}
	if tx.Fee, err = currencyAt(matches, 2, 5); err != nil {
		return nil, err
	}
	tx.ID = group(matches, 3, 6)
	if tx.Balance, err = currencyAt(matches, 4, 7); err != nil {
		return nil, err
	}
	return tx, nil
}

func (e *MpambaExtractor) extractAgentCashIn(text string) (domain.Transaction, error) {
	matches := mpambaCashInPattern.FindAllStringSubmatch(text, -1)

	tx := domain.CashIn{}
	if len(matches) > 0 {
		tx.Agent = domain.Agent{
			Code: group(matches, 0, 1),
			Name: textutil.CleanName(group(matches, 0, 2)),
		}
		ts, err := textutil.ParseTime(group(matches, 0, 3))
		if err != nil {
			return nil, err
		}
		tx.Timestamp = &ts
	}
	var err error
	if tx.Amount, err = currencyAt(matches, 1, 6); err != nil {
		return nil, err
	}
	if tx.Fee, err = currencyAt(matches, 2, 7); err != nil {
		return nil, err
	}
	tx.ID = group(matches, 3, 8)
	if tx.Balance, err = currencyAt(matches, 4, 9); err != nil {
		return nil, err
	}
	return tx, nil
}

// extractCodedCashIn handles the "Trans ID:" variant, which carries no fee
// and no timestamp. The timestamp stays nil rather than being defaulted.
func (e *MpambaExtractor) extractCodedCashIn(text string) (domain.Transaction, error) {
	tx := domain.CashIn{}
	m := mpambaCodedCashInPattern.FindStringSubmatch(text)
	if m == nil {
		return tx, nil
	}

	tx.ID = m[1]
	var err error
	if tx.Amount, err = textutil.Currency(m[2]); err != nil {
		return nil, err
	}
	tx.Agent = domain.Agent{Code: m[3], Name: textutil.CleanName(m[4])}
	if tx.Balance, err = textutil.Currency(m[5]); err != nil {
		return nil, err
	}
	tx.Fee = 0
	tx.Timestamp = nil
	return tx, nil
}

// currencyAt parses capture g of the i-th match as a monetary value.
// An absent match or non-participating capture yields 0.
func currencyAt(matches [][]string, i, g int) (float64, error) {
	return textutil.Currency(group(matches, i, g))
}
