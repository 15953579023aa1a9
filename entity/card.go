package entity

import "fmt"

type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

type Rank string

const (
	RankA  Rank = "A"
	Rank2  Rank = "2"
	Rank3  Rank = "3"
	Rank4  Rank = "4"
	Rank5  Rank = "5"
	Rank6  Rank = "6"
	Rank7  Rank = "7"
	Rank8  Rank = "8"
	Rank9  Rank = "9"
	Rank10 Rank = "10"
	RankJ  Rank = "J"
	RankQ  Rank = "Q"
	RankK  Rank = "K"
)

// Suits and Ranks fix the enumeration order used to build a shoe.
var (
	Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}
	Ranks = []Rank{RankA, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8, Rank9, Rank10, RankJ, RankQ, RankK}
)

// Card is an immutable playing card. Dealt cards carry a round-unique ID;
// Hidden is only ever set on the dealer's hole card.
type Card struct {
	ID     int64 `json:"id,omitempty"`
	Suit   Suit  `json:"suit,omitempty"`
	Rank   Rank  `json:"rank,omitempty"`
	Hidden bool  `json:"hidden,omitempty"`
}

// Point is the blackjack value of the rank with aces counted as 11.
func (c Card) Point() int {
	switch c.Rank {
	case RankA:
		return 11
	case Rank10, RankJ, RankQ, RankK:
		return 10
	case Rank2:
		return 2
	case Rank3:
		return 3
	case Rank4:
		return 4
	case Rank5:
		return 5
	case Rank6:
		return 6
	case Rank7:
		return 7
	case Rank8:
		return 8
	case Rank9:
		return 9
	}
	return 0
}

func (c Card) IsAce() bool { return c.Rank == RankA }

func (c Card) IsTenValue() bool {
	switch c.Rank {
	case Rank10, RankJ, RankQ, RankK:
		return true
	}
	return false
}

// Masked returns the card as a client may see it: a hidden card keeps only its ID.
func (c Card) Masked() Card {
	if !c.Hidden {
		return c
	}
	return Card{ID: c.ID, Hidden: true}
}

func (c Card) String() string {
	if c.Hidden {
		return "??"
	}
	return string(c.Rank) + suitSymbol(c.Suit)
}

func suitSymbol(s Suit) string {
	switch s {
	case SuitHearts:
		return "♥"
	case SuitDiamonds:
		return "♦"
	case SuitClubs:
		return "♣"
	case SuitSpades:
		return "♠"
	}
	return "?"
}

// ParseCard reads shorthand such as "As", "10h", "Kd" or "7♣".
func ParseCard(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %q", s)
	}
	var (
		suit Suit
		rank string
	)
	switch {
	case hasSuffixAny(s, "♠", "s", "S"):
		suit = SuitSpades
	case hasSuffixAny(s, "♥", "h", "H"):
		suit = SuitHearts
	case hasSuffixAny(s, "♦", "d", "D"):
		suit = SuitDiamonds
	case hasSuffixAny(s, "♣", "c", "C"):
		suit = SuitClubs
	default:
		return Card{}, fmt.Errorf("invalid card suit: %q", s)
	}
	rank = trimSuit(s)
	for _, r := range Ranks {
		if string(r) == rank {
			return Card{Suit: suit, Rank: r}, nil
		}
	}
	if rank == "T" {
		return Card{Suit: suit, Rank: Rank10}, nil
	}
	return Card{}, fmt.Errorf("invalid card rank: %q", rank)
}

// MustParseCards panics on bad input; meant for fixtures.
func MustParseCards(shorthand ...string) []Card {
	cards := make([]Card, 0, len(shorthand))
	for _, s := range shorthand {
		c, err := ParseCard(s)
		if err != nil {
			panic(err)
		}
		cards = append(cards, c)
	}
	return cards
}

func hasSuffixAny(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if len(s) > len(suf) && s[len(s)-len(suf):] == suf {
			return true
		}
	}
	return false
}

func trimSuit(s string) string {
	for _, suf := range []string{"♠", "♥", "♦", "♣"} {
		if hasSuffixAny(s, suf) {
			return s[:len(s)-len(suf)]
		}
	}
	return s[:len(s)-1]
}
