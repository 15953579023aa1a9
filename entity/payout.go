package entity

type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLose      Outcome = "lose"
	OutcomePush      Outcome = "push"
	OutcomeBlackjack Outcome = "blackjack"
	OutcomeSurrender Outcome = "surrender"
)

// Settlement is the money result of one wager. Payout includes the returned
// stake; Profit is Payout minus Bet.
type Settlement struct {
	Outcome    Outcome `json:"outcome"`
	Bet        int64   `json:"bet"`
	Payout     int64   `json:"payout"`
	Profit     int64   `json:"profit"`
	Multiplier float64 `json:"multiplier"`
}

func newSettlement(o Outcome, bet, payout int64) Settlement {
	s := Settlement{
		Outcome: o,
		Bet:     bet,
		Payout:  payout,
		Profit:  payout - bet,
	}
	if bet > 0 {
		s.Multiplier = float64(payout) / float64(bet)
	}
	return s
}

// CalcPayout settles a main bet in fixed priority: player bust, player
// blackjack, dealer bust, higher total, tie, otherwise a loss.
func CalcPayout(playerCards, dealerCards []Card, bet int64) Settlement {
	return calcPayout(playerCards, dealerCards, bet, IsBlackjack(playerCards))
}

func calcPayout(playerCards, dealerCards []Card, bet int64, playerNatural bool) Settlement {
	dealerCards = Revealed(dealerCards)
	playerTotal := Total(playerCards)
	dealerTotal := Total(dealerCards)
	switch {
	case playerTotal > 21:
		return newSettlement(OutcomeLose, bet, 0)
	case playerNatural && !IsBlackjack(dealerCards):
		return newSettlement(OutcomeBlackjack, bet, bet*5/2)
	case dealerTotal > 21:
		return newSettlement(OutcomeWin, bet, bet*2)
	case playerTotal > dealerTotal:
		return newSettlement(OutcomeWin, bet, bet*2)
	case playerTotal == dealerTotal:
		return newSettlement(OutcomePush, bet, bet)
	default:
		return newSettlement(OutcomeLose, bet, 0)
	}
}

// SettleHand settles a finished player hand against the dealer.
func SettleHand(h *Hand, dealerCards []Card) Settlement {
	if h.Surrendered {
		return newSettlement(OutcomeSurrender, h.Bet, h.Bet/2)
	}
	return calcPayout(h.Cards, dealerCards, h.Bet, h.IsNatural())
}

// InsuranceSettlement is kept apart from the main-bet table.
type InsuranceSettlement struct {
	Amount int64 `json:"amount"`
	Payout int64 `json:"payout"`
	Profit int64 `json:"profit"`
}

// CalcInsurance pays 2:1 on the amount when the dealer holds blackjack; the
// stake comes back with the winnings.
func CalcInsurance(amount int64, dealerBlackjack bool) InsuranceSettlement {
	if amount <= 0 {
		return InsuranceSettlement{}
	}
	if !dealerBlackjack {
		return InsuranceSettlement{Amount: amount, Payout: 0, Profit: -amount}
	}
	return InsuranceSettlement{Amount: amount, Payout: amount * 3, Profit: amount * 2}
}

// RoundSettlement aggregates every wager of a finished round.
type RoundSettlement struct {
	Hands     []Settlement         `json:"hands"`
	Insurance *InsuranceSettlement `json:"insurance,omitempty"`
	Payout    int64                `json:"payout"`
	Profit    int64                `json:"profit"`
}

// Outcome summarises the round: the single hand's outcome, or for split rounds
// the sign of the net profit.
func (r RoundSettlement) Outcome() Outcome {
	if len(r.Hands) == 1 {
		return r.Hands[0].Outcome
	}
	switch {
	case r.Profit > 0:
		return OutcomeWin
	case r.Profit < 0:
		return OutcomeLose
	default:
		return OutcomePush
	}
}
