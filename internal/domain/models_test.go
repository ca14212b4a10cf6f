package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameTransaction(t *testing.T) {
	tests := []struct {
		name string
		a, b Transaction
		want bool
	}{
		{
			name: "same id",
			a:    Debit{Ref: Ref{ID: "1A2B3C4D5E"}},
			b:    Credit{Ref: Ref{ID: "1A2B3C4D5E"}},
			want: true,
		},
		{
			name: "case-insensitive",
			a:    Debit{Ref: Ref{ID: "1a2b3c4d5e"}},
			b:    Debit{Ref: Ref{ID: "1A2B3C4D5E"}},
			want: true,
		},
		{
			name: "different ids",
			a:    Debit{Ref: Ref{ID: "1A2B3C4D5E"}},
			b:    Debit{Ref: Ref{ID: "E5D4C3B2A1"}},
			want: false,
		},
		{
			name: "missing id never equal",
			a:    Debit{},
			b:    Debit{},
			want: false,
		},
		{
			name: "nil operand",
			a:    Debit{Ref: Ref{ID: "1A2B3C4D5E"}},
			b:    nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameTransaction(tt.a, tt.b))
		})
	}
}

func TestRefString(t *testing.T) {
	ts := time.Date(2019, time.May, 6, 14, 0, 50, 0, time.UTC)

	withTime := Ref{ID: "1A2B8C4D7E", Timestamp: &ts}
	assert.Equal(t, "1A2B8C4D7E - 06/05/2019 14:00:50", withTime.String())

	withoutTime := Ref{ID: "1A2B8C4D7E"}
	assert.Equal(t, "1A2B8C4D7E", withoutTime.String())
}

func TestAgentString(t *testing.T) {
	agent := Agent{Code: "123456", Name: "JOHN DOE INVESTMENT OUTLET"}
	assert.Equal(t, "123456 - JOHN DOE INVESTMENT OUTLET", agent.String())
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindCashIn, CashIn{}.Kind())
	assert.Equal(t, KindCashOut, CashOut{}.Kind())
	assert.Equal(t, KindCredit, Credit{}.Kind())
	assert.Equal(t, KindDebit, Debit{}.Kind())
	assert.Equal(t, KindDeposit, Deposit{}.Kind())

	assert.True(t, ValidKind(KindCashIn))
	assert.False(t, ValidKind(Kind("REFUND")))
	assert.False(t, ValidKind(KindAny))
}
