package main

import (
	"testing"

	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/usecase/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestParseCards(t *testing.T) {
	cards, err := parseCards("As, 10h,Kd")
	require.NoError(t, err)
	assert.Equal(t, entity.MustParseCards("As", "10h", "Kd"), cards)

	cards, err = parseCards("")
	require.NoError(t, err)
	assert.Nil(t, cards)

	_, err = parseCards("As,Zz")
	assert.Error(t, err)
}

func TestSeededReaderRepeats(t *testing.T) {
	assert.Nil(t, seededReader(0))

	a, b := make([]byte, 16), make([]byte, 16)
	_, err := seededReader(7).Read(a)
	require.NoError(t, err)
	_, err = seededReader(7).Read(b)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSeededReaderIsShared(t *testing.T) {
	r := seededReader(7)
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			buf := make([]byte, 64)
			for range 100 {
				if _, err := r.Read(buf); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestTotals(t *testing.T) {
	totals := Totals{Outcomes: make(map[entity.Outcome]int)}
	totals.Add(service.Stats{Rounds: 2, Wagered: 2000, Returned: 2500, Net: 500, Outcomes: map[entity.Outcome]int{entity.OutcomeBlackjack: 1, entity.OutcomeLose: 1}})
	totals.Add(service.Stats{Rounds: 1, Wagered: 1000, Returned: 1000, Outcomes: map[entity.Outcome]int{entity.OutcomePush: 1}})

	assert.Equal(t, 2, totals.Players)
	assert.Equal(t, 3, totals.Rounds)
	assert.Equal(t, int64(500), totals.Net)
	assert.InDelta(t, 3500.0/3000.0, totals.RTP(), 1e-9)
	assert.Equal(t, 1, totals.Outcomes[entity.OutcomePush])
	assert.Contains(t, renderTotals(totals), "RTP")
}
