package entity

// Hand is one player hand (or the dealer's) together with its wager.
type Hand struct {
	Cards       []Card      `json:"cards"`
	Bet         int64       `json:"bet"`
	Settled     bool        `json:"settled"`
	Doubled     bool        `json:"doubled,omitempty"`
	Surrendered bool        `json:"surrendered,omitempty"`
	FromSplit   bool        `json:"from_split,omitempty"`
	Settlement  *Settlement `json:"settlement,omitempty"`
}

func NewHand(bet int64, cards ...Card) *Hand {
	return &Hand{
		Cards: append(make([]Card, 0, len(cards)+2), cards...),
		Bet:   bet,
	}
}

// Total sums the visible cards, re-counting aces from 11 to 1 while the hand
// would otherwise bust.
func Total(cards []Card) int {
	total, _ := eval(cards)
	return total
}

// IsSoft reports whether an ace is still counted as 11.
func IsSoft(cards []Card) bool {
	_, soft := eval(cards)
	return soft > 0
}

func eval(cards []Card) (total int, softAces int) {
	for _, c := range cards {
		if c.Hidden {
			continue
		}
		total += c.Point()
		if c.IsAce() {
			softAces++
		}
	}
	for total > 21 && softAces > 0 {
		total -= 10
		softAces--
	}
	return total, softAces
}

// IsBlackjack is true for exactly two visible cards: one ace and one ten-value card.
func IsBlackjack(cards []Card) bool {
	if len(cards) != 2 || cards[0].Hidden || cards[1].Hidden {
		return false
	}
	a, b := cards[0], cards[1]
	return (a.IsAce() && b.IsTenValue()) || (b.IsAce() && a.IsTenValue())
}

func IsBust(cards []Card) bool {
	return Total(cards) > 21
}

// Revealed returns a copy of cards with every hidden flag cleared.
func Revealed(cards []Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		c.Hidden = false
		out[i] = c
	}
	return out
}

// DealerMustDraw applies the stand-on-all-17s rule.
func DealerMustDraw(cards []Card) bool {
	return Total(Revealed(cards)) < DealerStandPoint
}

func (h *Hand) Total() int   { return Total(h.Cards) }
func (h *Hand) IsBust() bool { return IsBust(h.Cards) }
func (h *Hand) IsSoft() bool { return IsSoft(h.Cards) }

// IsNatural is a two-card blackjack dealt as such; split hands never qualify.
func (h *Hand) IsNatural() bool {
	return !h.FromSplit && IsBlackjack(h.Cards)
}

func (h *Hand) AddCards(c ...Card) {
	h.Cards = append(h.Cards, c...)
}

// PlayerCanSplit needs a two-card hand of equal rank.
func (h *Hand) PlayerCanSplit() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// Split moves the second card into a new hand carrying an equal bet.
func (h *Hand) Split() *Hand {
	second := NewHand(h.Bet, h.Cards[1])
	second.FromSplit = true
	h.Cards = []Card{h.Cards[0]}
	h.FromSplit = true
	return second
}

// Masked returns a copy safe to hand to clients.
func (h *Hand) Masked() Hand {
	out := *h
	out.Cards = make([]Card, len(h.Cards))
	for i, c := range h.Cards {
		out.Cards[i] = c.Masked()
	}
	return out
}
