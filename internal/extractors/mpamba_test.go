package extractors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SharkFourSix/momo/internal/domain"
)

func mustExtract(t *testing.T, text string) domain.Transaction {
	t.Helper()

	ex := &MpambaExtractor{}
	tx, err := ex.Extract(ProviderMpamba, text, nil)
	require.NoError(t, err)
	require.NotNil(t, tx)
	return tx
}

func TestMpambaExtractor_AgentCashIn(t *testing.T) {
	input := "Cash In from 123456-JOHN DOE INVESTMENT OUTLET on 06/05/2019 14:00:50.\n" +
		"Amt: 2,000.00MWK\n" +
		"Fee: 0.00MWK\n" +
		"Ref: 1A2B8C4D7E\n" +
		"Bal: 2,000.00MWK"

	tx := mustExtract(t, input)

	cashIn, ok := tx.(domain.CashIn)
	require.True(t, ok)

	assert.Equal(t, "123456", cashIn.Agent.Code)
	assert.Equal(t, "JOHN DOE INVESTMENT OUTLET", cashIn.Agent.Name)
	assert.Equal(t, 2000.00, cashIn.Amount)
	assert.Equal(t, 0.00, cashIn.Fee)
	assert.Equal(t, "1A2B8C4D7E", cashIn.TransactionID())
	assert.Equal(t, 2000.00, cashIn.Balance)

	require.NotNil(t, cashIn.Time())
	assert.Equal(t, time.Date(2019, time.May, 6, 14, 0, 50, 0, time.UTC), *cashIn.Time())
}

func TestMpambaExtractor_CodedCashIn(t *testing.T) {
	input := "Trans ID: 9F8E7D6C5B: you have received MK1500.00 from 987654, AGENT JONES. your new balance is MK1700.00"

	tx := mustExtract(t, input)

	cashIn, ok := tx.(domain.CashIn)
	require.True(t, ok)

	assert.Equal(t, "9F8E7D6C5B", cashIn.TransactionID())
	assert.Equal(t, 1500.00, cashIn.Amount)
	assert.Equal(t, "987654", cashIn.Agent.Code)
	assert.Equal(t, "AGENT JONES", cashIn.Agent.Name)
	assert.Equal(t, 1700.00, cashIn.Balance)
	assert.Equal(t, 0.00, cashIn.Fee)
	assert.Nil(t, cashIn.Time(), "coded cash-in carries no timestamp")
}

func TestMpambaExtractor_Debit(t *testing.T) {
	input := "Money Received from 265888555555   on 10/05/2019 23:06:26. \n" +
		"Amount: 100.00MWK \n" +
		"Ref: E5D4C3B2A1 \n" +
		"Bal: 290.00MWK"

	tx := mustExtract(t, input)

	debit, ok := tx.(domain.Debit)
	require.True(t, ok)

	assert.Equal(t, "265888555555", debit.SenderPhone)
	assert.Empty(t, debit.SenderName)
	assert.Equal(t, "E5D4C3B2A1", debit.TransactionID())
	assert.Equal(t, 100.00, debit.Amount)
	assert.Equal(t, 290.00, debit.Balance)
}

func TestMpambaExtractor_Credit(t *testing.T) {
	input := "Money Sent to 0881555555   on 02/04/2019 17:09:19. \n" +
		"Amount: 10,000.00MWK \n" +
		"Fee: 100.00MWK \n" +
		"Ref: 1A2B3C4D5E \n" +
		"Bal: 204.00MWK"

	tx := mustExtract(t, input)

	credit, ok := tx.(domain.Credit)
	require.True(t, ok)

	assert.Equal(t, "1A2B3C4D5E", credit.TransactionID())
	assert.Equal(t, "0881555555", credit.RecipientPhone)
	assert.Empty(t, credit.RecipientName)
	assert.Equal(t, 10000.00, credit.Amount)
	assert.Equal(t, 100.00, credit.Fee)
	assert.Equal(t, 204.00, credit.Balance)
}

func TestMpambaExtractor_Deposit(t *testing.T) {
	input := "Deposit from National Bank on 11/05/2019 04:55:07. Amount: 201.00MWK Fee: 0.00MWK Ref: 1B1B1B1BJZ Available Balance: 491.00MWK."

	tx := mustExtract(t, input)

	deposit, ok := tx.(domain.Deposit)
	require.True(t, ok)

	assert.Equal(t, "1B1B1B1BJZ", deposit.TransactionID())
	assert.Equal(t, "National Bank", deposit.Source)
	assert.Equal(t, 201.00, deposit.Amount)
	assert.Equal(t, 0.00, deposit.Fee)
	assert.Equal(t, 491.00, deposit.Balance)
}

func TestMpambaExtractor_CashOut(t *testing.T) {
	input := "Cash Out to AGENT SMITH - 1234567 on 12/05/2019 12:12:07.\n" +
		"Amt: 7,200.00MWK \n" +
		"Fee: 380.00MWK. \n" +
		"Ref: 8GHABCGDTF \n" +
		"Bal: 1,581.00MWK"

	tx := mustExtract(t, input)

	cashOut, ok := tx.(domain.CashOut)
	require.True(t, ok)

	assert.Equal(t, "8GHABCGDTF", cashOut.TransactionID())
	assert.Equal(t, "1234567", cashOut.Agent.Code)
	assert.Equal(t, "AGENT SMITH", cashOut.Agent.Name)
	assert.Equal(t, 7200.00, cashOut.Amount)
	assert.Equal(t, 380.00, cashOut.Fee)
	assert.Equal(t, 1581.00, cashOut.Balance)
}

func TestMpambaExtractor_ForeignProvider(t *testing.T) {
	ex := &MpambaExtractor{}

	tx, err := ex.Extract("AIRTEL", "Money Sent to 0881555555   on 02/04/2019 17:09:19.", nil)
	require.NoError(t, err)
	assert.Nil(t, tx)
}

func TestMpambaExtractor_UnknownPrefix(t *testing.T) {
	ex := &MpambaExtractor{}

	tests := []struct {
		name string
		text string
	}{
		{name: "plain text", text: "Your account was topped up"},
		{name: "empty", text: ""},
		{name: "prefix in the middle", text: "FYI Money Sent to 0881555555 on 02/04/2019 17:09:19."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := ex.Extract(ProviderMpamba, tt.text, nil)
			require.NoError(t, err)
			assert.Nil(t, tx)
		})
	}
}

func TestMpambaExtractor_MalformedTimestamp(t *testing.T) {
	// Shape-valid by the pattern but rejected by strict time parsing.
	input := "Money Received from 265888555555   on 10/13/2019 23:06:26. \n" +
		"Amount: 100.00MWK \n" +
		"Ref: E5D4C3B2A1 \n" +
		"Bal: 290.00MWK"

	ex := &MpambaExtractor{}
	tx, err := ex.Extract(ProviderMpamba, input, nil)
	assert.Error(t, err)
	assert.Nil(t, tx)
}

func TestMpambaExtractor_HeaderlessBody(t *testing.T) {
	// A recognized prefix with no parseable header line makes the first
	// scan hit a field line whose header captures are empty, so the
	// timestamp parse fails and the attempt aborts.
	input := "Money Sent to someone\n" +
		"Amount: 100.00MWK \n" +
		"Bal: 290.00MWK"

	ex := &MpambaExtractor{}
	tx, err := ex.Extract(ProviderMpamba, input, nil)
	assert.Error(t, err)
	assert.Nil(t, tx)
}

func TestMpambaExtractor_CashOutBodyWithoutFields(t *testing.T) {
	// Prefix matches but nothing inside does: the engine degrades to an
	// empty record with defaulted fields, same as the behavior callers of
	// the original library depend on.
	ex := &MpambaExtractor{}
	tx, err := ex.Extract(ProviderMpamba, "Cash Out to lunch", nil)
	require.NoError(t, err)
	require.NotNil(t, tx)

	cashOut, ok := tx.(domain.CashOut)
	require.True(t, ok)
	assert.Empty(t, cashOut.TransactionID())
	assert.Nil(t, cashOut.Time())
	assert.Zero(t, cashOut.Amount)
	assert.Zero(t, cashOut.Fee)
	assert.Zero(t, cashOut.Balance)
}

func TestMpambaExtractor_MissingFeeLineShiftsLaterFields(t *testing.T) {
	// Field assignment is positional by scan order. Dropping the optional
	// Fee line makes every later line land in the wrong slot: the scan
	// that should see the fee sees the reference, and so on.
	input := "Money Sent to 0881555555   on 02/04/2019 17:09:19. \n" +
		"Amount: 10,000.00MWK \n" +
		"Ref: 1A2B3C4D5E \n" +
		"Bal: 204.00MWK"

	tx := mustExtract(t, input)

	credit, ok := tx.(domain.Credit)
	require.True(t, ok)

	assert.Equal(t, 10000.00, credit.Amount)
	assert.Zero(t, credit.Fee)
	assert.Empty(t, credit.TransactionID(), "reference shifts into the fee slot and is lost")
	assert.Zero(t, credit.Balance)
}

func TestMpambaExtractor_CreditWithRecipientName(t *testing.T) {
	input := "Money Sent to 0881555555 JOHN DOE on 02/04/2019 17:09:19. \n" +
		"Amount: 10,000.00MWK \n" +
		"Fee: 100.00MWK \n" +
		"Ref: 1A2B3C4D5E \n" +
		"Bal: 204.00MWK"

	tx := mustExtract(t, input)

	credit, ok := tx.(domain.Credit)
	require.True(t, ok)
	assert.Equal(t, "JOHN DOE", credit.RecipientName)
	assert.Equal(t, "0881555555", credit.RecipientPhone)
}
