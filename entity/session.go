package entity

import (
	"fmt"
	"time"
)

type GameState string

const (
	GameStateBetting          GameState = "BETTING"
	GameStateInsuranceOffered GameState = "INSURANCE_OFFERED"
	GameStatePlaying          GameState = "PLAYING"
	GameStateDealerTurn       GameState = "DEALER_TURN"
	GameStateFinished         GameState = "FINISHED"
)

// Insurance tracks the side bet offered against a dealer ace.
type Insurance struct {
	Offered  bool  `json:"offered"`
	Bought   bool  `json:"bought"`
	Amount   int64 `json:"amount"`
	Resolved bool  `json:"resolved"`
}

// GameSession is one player's round. All mutation goes through the methods
// below; each either fully applies or leaves the session untouched.
type GameSession struct {
	ID              string
	PlayerID        string
	RoundID         int64
	State           GameState
	Hands           []*Hand
	ActiveHandIndex int
	DealerHand      *Hand
	Insurance       Insurance
	Settlement      *RoundSettlement

	// Debited is what the ledger has taken for this round; Credited is what
	// has been given back, either as payout or refund.
	Debited  int64
	Credited int64
	PaidOut  bool
	Aborted  bool
	// Refund is stake taken for an action that then failed and whose credit
	// back has not gone through yet. It is outside Debited.
	Refund int64

	CreatedAt time.Time
	UpdatedAt time.Time

	shoe *Shoe
}

func NewGameSession(id, playerID string, now time.Time) *GameSession {
	return &GameSession{
		ID:         id,
		PlayerID:   playerID,
		State:      GameStateBetting,
		DealerHand: NewHand(0),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *GameSession) Shoe() *Shoe { return s.shoe }

func (s *GameSession) Touch(now time.Time) { s.UpdatedAt = now }

// ActiveHand is nil before the deal.
func (s *GameSession) ActiveHand() *Hand {
	if s.ActiveHandIndex < 0 || s.ActiveHandIndex >= len(s.Hands) {
		return nil
	}
	return s.Hands[s.ActiveHandIndex]
}

// TotalBet sums main bets plus insurance; it always equals Debited.
func (s *GameSession) TotalBet() int64 {
	var total int64
	for _, h := range s.Hands {
		total += h.Bet
	}
	return total + s.Insurance.Amount
}

// Outstanding is the money still held for the round.
func (s *GameSession) Outstanding() int64 {
	return s.Debited - s.Credited
}

func (s *GameSession) DealerUpCard() (Card, bool) {
	if s.DealerHand == nil || len(s.DealerHand.Cards) == 0 {
		return Card{}, false
	}
	return s.DealerHand.Cards[0], true
}

func (s *GameSession) dealerHasBlackjack() bool {
	return IsBlackjack(Revealed(s.DealerHand.Cards))
}

// Deal starts the round on a fresh shoe: player, dealer up, player, dealer hole.
func (s *GameSession) Deal(roundID int64, bet int64, shoe *Shoe) error {
	if bet <= 0 {
		return fmt.Errorf("bet %d: %w", bet, ErrInvalidAction)
	}
	cards, err := shoe.Deal(4)
	if err != nil {
		return err
	}
	cards[3].Hidden = true
	s.RoundID = roundID
	s.shoe = shoe
	s.Hands = []*Hand{NewHand(bet, cards[0], cards[2])}
	s.ActiveHandIndex = 0
	s.DealerHand = NewHand(0, cards[1], cards[3])
	s.Insurance = Insurance{}
	s.Settlement = nil
	s.Debited = bet
	s.Credited = 0
	s.PaidOut = false
	s.Aborted = false
	return nil
}

// NeedsInsuranceOffer is true when the dealer shows an ace.
func (s *GameSession) NeedsInsuranceOffer() bool {
	up, ok := s.DealerUpCard()
	return ok && up.IsAce()
}

// RevealHole turns the dealer's hole card face up.
func (s *GameSession) RevealHole() {
	s.DealerHand.Cards = Revealed(s.DealerHand.Cards)
}

// PeekBlackjack checks the hole card without exposing it; on a dealer
// blackjack the hole is revealed and true is returned.
func (s *GameSession) PeekBlackjack() bool {
	if !s.dealerHasBlackjack() {
		return false
	}
	s.RevealHole()
	return true
}

// ShortCircuit reports whether the round ends right after the deal or the
// insurance decision: either side holding blackjack.
func (s *GameSession) ShortCircuit() bool {
	if s.PeekBlackjack() {
		return true
	}
	return len(s.Hands) == 1 && s.Hands[0].IsNatural()
}

func (s *GameSession) InsuranceCost() int64 {
	if len(s.Hands) == 0 {
		return 0
	}
	return s.Hands[0].Bet / 2
}

func (s *GameSession) CanInsure() bool {
	return s.State == GameStateInsuranceOffered && s.Insurance.Offered && !s.Insurance.Resolved
}

// DecideInsurance records the player's insurance choice. The cost must already
// have been debited when buy is true.
func (s *GameSession) DecideInsurance(buy bool) error {
	if !s.CanInsure() {
		return ErrInvalidAction
	}
	if buy {
		amount := s.InsuranceCost()
		s.Insurance.Bought = true
		s.Insurance.Amount = amount
		s.Debited += amount
	}
	return nil
}

func (s *GameSession) activeOpen() (*Hand, bool) {
	if s.State != GameStatePlaying {
		return nil, false
	}
	h := s.ActiveHand()
	if h == nil || h.Settled {
		return nil, false
	}
	return h, true
}

func (s *GameSession) CanHit() bool {
	_, ok := s.activeOpen()
	return ok
}

func (s *GameSession) CanStand() bool {
	return s.CanHit()
}

func (s *GameSession) CanDoubleDown() bool {
	h, ok := s.activeOpen()
	return ok && len(h.Cards) == 2
}

func (s *GameSession) CanSplit() bool {
	h, ok := s.activeOpen()
	return ok && len(s.Hands) == 1 && h.PlayerCanSplit()
}

func (s *GameSession) CanSurrender() bool {
	h, ok := s.activeOpen()
	return ok && len(s.Hands) == 1 && !h.FromSplit && len(h.Cards) == 2
}

// Hit draws one card; a bust settles the hand.
func (s *GameSession) Hit() error {
	h, ok := s.activeOpen()
	if !ok {
		return ErrInvalidAction
	}
	c, err := s.shoe.DealOne()
	if err != nil {
		return err
	}
	h.AddCards(c)
	if h.IsBust() {
		h.Settled = true
	}
	return nil
}

func (s *GameSession) Stand() error {
	h, ok := s.activeOpen()
	if !ok {
		return ErrInvalidAction
	}
	h.Settled = true
	return nil
}

// DoubleDown doubles the active bet and draws exactly one card. The extra
// stake must already have been debited.
func (s *GameSession) DoubleDown() error {
	if !s.CanDoubleDown() {
		return ErrInvalidAction
	}
	h := s.ActiveHand()
	c, err := s.shoe.DealOne()
	if err != nil {
		return err
	}
	s.Debited += h.Bet
	h.Bet *= 2
	h.Doubled = true
	h.AddCards(c)
	h.Settled = true
	return nil
}

// Split turns a pair into two hands of one card each and completes both with
// a fresh card. The second stake must already have been debited.
func (s *GameSession) Split() error {
	if !s.CanSplit() {
		return ErrInvalidAction
	}
	cards, err := s.shoe.Deal(2)
	if err != nil {
		return err
	}
	first := s.ActiveHand()
	second := first.Split()
	first.AddCards(cards[0])
	second.AddCards(cards[1])
	s.Hands = append(s.Hands, second)
	s.ActiveHandIndex = 0
	s.Debited += second.Bet
	return nil
}

func (s *GameSession) Surrender() error {
	if !s.CanSurrender() {
		return ErrInvalidAction
	}
	h := s.ActiveHand()
	h.Surrendered = true
	h.Settled = true
	return nil
}

// Advance moves the pointer to the next unsettled hand. It returns false once
// every hand is settled.
func (s *GameSession) Advance() bool {
	for i := s.ActiveHandIndex; i < len(s.Hands); i++ {
		if !s.Hands[i].Settled {
			s.ActiveHandIndex = i
			return true
		}
	}
	return false
}

func (s *GameSession) AllSettled() bool {
	for _, h := range s.Hands {
		if !h.Settled {
			return false
		}
	}
	return true
}

// AnySurrendered ends a round without a dealer turn.
func (s *GameSession) AnySurrendered() bool {
	for _, h := range s.Hands {
		if h.Surrendered {
			return true
		}
	}
	return false
}

// PlayDealer reveals the hole card and draws to 17.
func (s *GameSession) PlayDealer() error {
	s.RevealHole()
	for DealerMustDraw(s.DealerHand.Cards) {
		c, err := s.shoe.DealOne()
		if err != nil {
			return err
		}
		s.DealerHand.AddCards(c)
	}
	return nil
}

// Settle runs every hand and the insurance bet through the payout table. It is
// a no-op once a settlement exists.
func (s *GameSession) Settle() *RoundSettlement {
	if s.Settlement != nil {
		return s.Settlement
	}
	s.RevealHole()
	rs := &RoundSettlement{Hands: make([]Settlement, 0, len(s.Hands))}
	for _, h := range s.Hands {
		st := SettleHand(h, s.DealerHand.Cards)
		h.Settled = true
		h.Settlement = &st
		rs.Hands = append(rs.Hands, st)
		rs.Payout += st.Payout
		rs.Profit += st.Profit
	}
	if s.Insurance.Bought {
		ins := CalcInsurance(s.Insurance.Amount, s.dealerHasBlackjack())
		rs.Insurance = &ins
		rs.Payout += ins.Payout
		rs.Profit += ins.Profit
	}
	s.Insurance.Resolved = s.Insurance.Offered || s.Insurance.Bought
	s.Settlement = rs
	return rs
}

// LegalActions lists what the player may send next.
func (s *GameSession) LegalActions() []ActionType {
	switch s.State {
	case GameStateBetting, GameStateFinished:
		return []ActionType{ActionPlaceBet}
	case GameStateInsuranceOffered:
		return []ActionType{ActionInsurance}
	case GameStatePlaying:
		if !s.CanHit() {
			return nil
		}
		actions := []ActionType{ActionHit, ActionStand}
		if s.CanDoubleDown() {
			actions = append(actions, ActionDoubleDown)
		}
		if s.CanSplit() {
			actions = append(actions, ActionSplit)
		}
		if s.CanSurrender() {
			actions = append(actions, ActionSurrender)
		}
		return actions
	}
	return nil
}

// Snapshot renders the session for clients with the hole card masked.
func (s *GameSession) Snapshot() Result {
	r := Result{
		OK:              true,
		SessionID:       s.ID,
		RoundID:         s.RoundID,
		State:           s.State,
		Hands:           make([]Hand, 0, len(s.Hands)),
		ActiveHandIndex: s.ActiveHandIndex,
		LegalActions:    s.LegalActions(),
		Insurance:       s.Insurance,
	}
	for _, h := range s.Hands {
		r.Hands = append(r.Hands, h.Masked())
	}
	if s.DealerHand != nil {
		r.DealerHand = s.DealerHand.Masked()
	}
	if s.State == GameStateFinished && s.Settlement != nil {
		r.Result = s.Settlement.Outcome()
		r.Payout = s.Settlement.Payout
		r.Profit = s.Settlement.Profit
	}
	return r
}
