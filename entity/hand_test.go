package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name      string
		cards     []Card
		total     int
		soft      bool
		blackjack bool
		bust      bool
	}{
		{name: "empty", cards: nil, total: 0},
		{name: "ace king", cards: MustParseCards("As", "Kh"), total: 21, soft: true, blackjack: true},
		{name: "ten ace", cards: MustParseCards("10d", "Ac"), total: 21, soft: true, blackjack: true},
		{name: "two aces and nine", cards: MustParseCards("As", "Ah", "9c"), total: 21, soft: true},
		{name: "three card 21", cards: MustParseCards("7s", "7h", "7c"), total: 21},
		{name: "king queen five", cards: MustParseCards("Ks", "Qh", "5c"), total: 25, bust: true},
		{name: "four aces", cards: MustParseCards("As", "Ah", "Ac", "Ad"), total: 14, soft: true},
		{name: "hard after reduce", cards: MustParseCards("As", "9h", "5c"), total: 15},
		{name: "bust with ace", cards: MustParseCards("As", "Kh", "Qc", "5d"), total: 26, bust: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.total, Total(tt.cards))
			assert.Equal(t, tt.soft, IsSoft(tt.cards))
			assert.Equal(t, tt.blackjack, IsBlackjack(tt.cards))
			assert.Equal(t, tt.bust, IsBust(tt.cards))
		})
	}
}

func TestTotalIgnoresHiddenCards(t *testing.T) {
	cards := MustParseCards("As", "Kh")
	cards[1].Hidden = true
	assert.Equal(t, 11, Total(cards))
	assert.False(t, IsBlackjack(cards))
	assert.True(t, IsBlackjack(Revealed(cards)))
}

func TestDealerMustDraw(t *testing.T) {
	assert.True(t, DealerMustDraw(MustParseCards("10s", "6h")))
	assert.False(t, DealerMustDraw(MustParseCards("10s", "7h")))
	assert.False(t, DealerMustDraw(MustParseCards("As", "6h")), "stands on soft 17")

	hole := MustParseCards("10s", "9h")
	hole[1].Hidden = true
	assert.False(t, DealerMustDraw(hole), "hole card counts for the dealer")
}

func TestHandSplit(t *testing.T) {
	h := NewHand(1000, MustParseCards("8s", "8h")...)
	assert.True(t, h.PlayerCanSplit())

	second := h.Split()
	assert.Len(t, h.Cards, 1)
	assert.Len(t, second.Cards, 1)
	assert.Equal(t, int64(1000), second.Bet)
	assert.True(t, h.FromSplit)
	assert.True(t, second.FromSplit)

	assert.False(t, NewHand(1000, MustParseCards("Ks", "Qh")...).PlayerCanSplit(), "ten-values of different rank")
}

func TestSplitHandIsNeverNatural(t *testing.T) {
	h := NewHand(1000, MustParseCards("As", "Kh")...)
	assert.True(t, h.IsNatural())
	h.FromSplit = true
	assert.False(t, h.IsNatural())
}

func TestHandMasked(t *testing.T) {
	h := NewHand(0, MustParseCards("As", "Kh")...)
	h.Cards[1].Hidden = true
	h.Cards[1].ID = 42

	m := h.Masked()
	assert.Equal(t, Card{ID: 42, Hidden: true}, m.Cards[1])
	assert.Equal(t, RankK, h.Cards[1].Rank, "original untouched")
}
