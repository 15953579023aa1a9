package entity

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/emirpasic/gods/lists/arraylist"
)

// Shoe holds the undealt cards of one round. Cards are stored in build order and
// every deal picks a uniformly random remaining card, so the order is never
// materialised anywhere a client could observe it.
type Shoe struct {
	cards *arraylist.List
	pick  func(n int) (int, error)
	ids   IDGenerator
}

// NewShoe builds deckCount standard decks. A nil reader means crypto/rand and a
// nil generator means the package snowflake node.
func NewShoe(deckCount int, random io.Reader, ids IDGenerator) (*Shoe, error) {
	if deckCount < 1 {
		return nil, fmt.Errorf("shoe.new.invalid-deck-count: %d", deckCount)
	}
	if random == nil {
		random = rand.Reader
	}
	cards := arraylist.New()
	for i := 0; i < deckCount; i++ {
		for _, s := range Suits {
			for _, r := range Ranks {
				cards.Add(Card{Suit: s, Rank: r})
			}
		}
	}
	return &Shoe{
		cards: cards,
		pick: func(n int) (int, error) {
			return RandomIndex(random, n)
		},
		ids: orDefaultIDs(ids),
	}, nil
}

// NewOrderedShoe deals exactly the given cards in the given order. It exists for
// deterministic tests and hand replays; live rounds use NewShoe.
func NewOrderedShoe(cards []Card, ids IDGenerator) *Shoe {
	list := arraylist.New()
	for _, c := range cards {
		list.Add(Card{Suit: c.Suit, Rank: c.Rank})
	}
	return &Shoe{
		cards: list,
		pick:  func(int) (int, error) { return 0, nil },
		ids:   orDefaultIDs(ids),
	}
}

func orDefaultIDs(ids IDGenerator) IDGenerator {
	if ids == nil {
		return SnowlakeNode
	}
	return ids
}

func (s *Shoe) Remaining() int {
	return s.cards.Size()
}

// DealOne removes one uniformly chosen card and returns it with a fresh ID.
func (s *Shoe) DealOne() (Card, error) {
	n := s.cards.Size()
	if n == 0 {
		return Card{}, ErrEmptyShoe
	}
	idx, err := s.pick(n)
	if err != nil {
		return Card{}, err
	}
	v, ok := s.cards.Get(idx)
	if !ok {
		return Card{}, fmt.Errorf("shoe.deal.index-out-of-range: %d/%d", idx, n)
	}
	s.cards.Remove(idx)
	c := v.(Card)
	c.ID = s.ids.Generate().Int64()
	return c, nil
}

// Deal deals n cards or none at all.
func (s *Shoe) Deal(n int) ([]Card, error) {
	if s.cards.Size() < n {
		return nil, fmt.Errorf("deal %d of %d: %w", n, s.cards.Size(), ErrEmptyShoe)
	}
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, err := s.DealOne()
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
