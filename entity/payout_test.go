package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcPayout(t *testing.T) {
	tests := []struct {
		name    string
		player  []Card
		dealer  []Card
		outcome Outcome
		payout  int64
		profit  int64
	}{
		{"20 beats 19", MustParseCards("Ks", "Qh"), MustParseCards("10c", "9d"), OutcomeWin, 2000, 1000},
		{"blackjack beats 20", MustParseCards("As", "Kh"), MustParseCards("10c", "Qd"), OutcomeBlackjack, 2500, 1500},
		{"20 pushes 20", MustParseCards("Ks", "Qh"), MustParseCards("10c", "Jd"), OutcomePush, 1000, 0},
		{"player bust loses to dealer bust", MustParseCards("Ks", "Qh", "5c"), MustParseCards("10c", "6d", "9s"), OutcomeLose, 0, -1000},
		{"player bust loses to dealer 17", MustParseCards("Ks", "Qh", "2c"), MustParseCards("10c", "7d"), OutcomeLose, 0, -1000},
		{"dealer bust", MustParseCards("10s", "2h"), MustParseCards("10c", "6d", "9s"), OutcomeWin, 2000, 1000},
		{"lower total loses", MustParseCards("10s", "7h"), MustParseCards("10c", "8d"), OutcomeLose, 0, -1000},
		{"blackjack pushes blackjack", MustParseCards("As", "Kh"), MustParseCards("Ac", "Qd"), OutcomePush, 1000, 0},
		{"three-card 21 ties dealer blackjack", MustParseCards("7s", "7h", "7c"), MustParseCards("Ac", "Qd"), OutcomePush, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := CalcPayout(tt.player, tt.dealer, 1000)
			assert.Equal(t, tt.outcome, s.Outcome)
			assert.Equal(t, tt.payout, s.Payout)
			assert.Equal(t, tt.profit, s.Profit)
			assert.InDelta(t, float64(tt.payout)/1000, s.Multiplier, 1e-9)
		})
	}
}

func TestCalcPayoutRoundsBlackjackDown(t *testing.T) {
	s := CalcPayout(MustParseCards("As", "Kh"), MustParseCards("10c", "9d"), 15)
	assert.Equal(t, int64(37), s.Payout)
	assert.Equal(t, int64(22), s.Profit)
}

func TestCalcPayoutRevealsHole(t *testing.T) {
	dealer := MustParseCards("Ac", "Kd")
	dealer[1].Hidden = true
	s := CalcPayout(MustParseCards("10s", "Qh"), dealer, 1000)
	assert.Equal(t, OutcomeLose, s.Outcome)
}

func TestSettleHand(t *testing.T) {
	dealer := MustParseCards("10c", "9d")

	surrendered := NewHand(1001, MustParseCards("10s", "6h")...)
	surrendered.Surrendered = true
	s := SettleHand(surrendered, dealer)
	assert.Equal(t, OutcomeSurrender, s.Outcome)
	assert.Equal(t, int64(500), s.Payout)
	assert.Equal(t, int64(-501), s.Profit)

	split := NewHand(1000, MustParseCards("As", "Kh")...)
	split.FromSplit = true
	s = SettleHand(split, dealer)
	assert.Equal(t, OutcomeWin, s.Outcome, "21 after a split pays even money")
	assert.Equal(t, int64(2000), s.Payout)
}

func TestCalcInsurance(t *testing.T) {
	assert.Equal(t, InsuranceSettlement{Amount: 500, Payout: 1500, Profit: 1000}, CalcInsurance(500, true))
	assert.Equal(t, InsuranceSettlement{Amount: 500, Payout: 0, Profit: -500}, CalcInsurance(500, false))
	assert.Equal(t, InsuranceSettlement{}, CalcInsurance(0, true))
}

func TestRoundSettlementOutcome(t *testing.T) {
	single := RoundSettlement{Hands: []Settlement{{Outcome: OutcomeBlackjack}}, Profit: 1500}
	assert.Equal(t, OutcomeBlackjack, single.Outcome())

	split := RoundSettlement{Hands: []Settlement{{Outcome: OutcomeWin}, {Outcome: OutcomeLose}}}
	assert.Equal(t, OutcomePush, split.Outcome())
	split.Profit = -1000
	assert.Equal(t, OutcomeLose, split.Outcome())
	split.Profit = 1000
	assert.Equal(t, OutcomeWin, split.Outcome())
}
