package entity

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoeDealsEveryCardOnce(t *testing.T) {
	for _, decks := range []int{1, 2, 6} {
		t.Run(fmt.Sprintf("%d-decks", decks), func(t *testing.T) {
			shoe, err := NewShoe(decks, nil, nil)
			require.NoError(t, err)
			require.Equal(t, decks*52, shoe.Remaining())

			seen := map[[2]string]int{}
			ids := map[int64]bool{}
			for shoe.Remaining() > 0 {
				before := shoe.Remaining()
				c, err := shoe.DealOne()
				require.NoError(t, err)
				require.Equal(t, before-1, shoe.Remaining())
				seen[[2]string{string(c.Suit), string(c.Rank)}]++
				assert.False(t, ids[c.ID], "duplicate card id")
				ids[c.ID] = true
			}
			assert.Len(t, seen, 52)
			for k, n := range seen {
				assert.Equal(t, decks, n, "card %v", k)
			}

			_, err = shoe.DealOne()
			assert.ErrorIs(t, err, ErrEmptyShoe)
		})
	}
}

func TestNewShoeRejectsZeroDecks(t *testing.T) {
	_, err := NewShoe(0, nil, nil)
	assert.Error(t, err)
}

func TestShoeDealIsAllOrNothing(t *testing.T) {
	shoe := NewOrderedShoe(MustParseCards("As", "Kd", "7c"), nil)
	_, err := shoe.Deal(4)
	assert.ErrorIs(t, err, ErrEmptyShoe)
	assert.Equal(t, 3, shoe.Remaining())

	cards, err := shoe.Deal(3)
	require.NoError(t, err)
	assert.Equal(t, RankA, cards[0].Rank)
	assert.Equal(t, RankK, cards[1].Rank)
	assert.Equal(t, Rank7, cards[2].Rank)
}

func TestRandomIndexRejectsBiasedBytes(t *testing.T) {
	// 256 % 3 == 1, so 255 falls outside the unbiased range and is redrawn.
	idx, err := RandomIndex(bytes.NewReader([]byte{255, 4}), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	// 312 cards need two bytes.
	idx, err = RandomIndex(bytes.NewReader([]byte{0x01, 0x00}), 312)
	require.NoError(t, err)
	assert.Equal(t, 256, idx)

	_, err = RandomIndex(bytes.NewReader(nil), 3)
	assert.Error(t, err)

	_, err = RandomIndex(bytes.NewReader(nil), 0)
	assert.Error(t, err)
}

func TestRandomIndexSingleChoiceReadsNothing(t *testing.T) {
	idx, err := RandomIndex(bytes.NewReader(nil), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}
