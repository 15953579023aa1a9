package entity

import (
	"testing"
)

var playingActions = []ActionType{ActionHit, ActionStand, ActionDoubleDown, ActionSplit, ActionSurrender}

func TestAdviseBasicStrategy(t *testing.T) {
	tests := []struct {
		name     string
		player   []string
		dealer   string
		legal    []ActionType
		expected ActionType
	}{
		{name: "Blackjack - should stand", player: []string{"As", "Kh"}, dealer: "6d", legal: playingActions, expected: ActionStand},
		{name: "Hard 17 - should stand", player: []string{"10s", "7h"}, dealer: "6d", legal: playingActions, expected: ActionStand},
		{name: "Hard 11 - should double down", player: []string{"6s", "5h"}, dealer: "6d", legal: playingActions, expected: ActionDoubleDown},
		{name: "Hard 11 without double - should hit", player: []string{"6s", "5h"}, dealer: "6d", legal: []ActionType{ActionHit, ActionStand}, expected: ActionHit},
		{name: "Hard 16 vs 7 - should hit", player: []string{"10s", "6h"}, dealer: "7d", legal: playingActions, expected: ActionHit},
		{name: "Hard 16 vs 10 - should surrender", player: []string{"10s", "6h"}, dealer: "Kd", legal: playingActions, expected: ActionSurrender},
		{name: "Hard 12 vs 5 - should stand", player: []string{"10s", "2h"}, dealer: "5d", legal: playingActions, expected: ActionStand},
		{name: "Soft 18 vs 9 - should hit", player: []string{"As", "7h"}, dealer: "9d", legal: playingActions, expected: ActionHit},
		{name: "Soft 18 vs 8 - should stand", player: []string{"As", "7h"}, dealer: "8d", legal: playingActions, expected: ActionStand},
		{name: "Eights - should split", player: []string{"8s", "8h"}, dealer: "10d", legal: playingActions, expected: ActionSplit},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hand := NewHand(1000, MustParseCards(test.player...)...)
			dealer := MustParseCards(test.dealer)[0]
			action := Advise(hand, dealer, test.legal)
			if action.Type != test.expected {
				t.Errorf("Expected action %v, got %v", test.expected, action.Type)
			}
		})
	}
}

func TestAdviseOutsidePlay(t *testing.T) {
	if a := Advise(nil, Card{}, []ActionType{ActionPlaceBet}); a.Type != ActionPlaceBet {
		t.Errorf("Expected placeBet, got %v", a.Type)
	}
	a := Advise(NewHand(1000, MustParseCards("As", "Kh")...), MustParseCards("Ad")[0], []ActionType{ActionInsurance})
	if a.Type != ActionInsurance || a.BuyInsurance {
		t.Errorf("Expected declined insurance, got %+v", a)
	}
}

func TestShouldSplit(t *testing.T) {
	tests := []struct {
		name        string
		player      []string
		dealer      string
		shouldSplit bool
	}{
		{name: "Aces - should split", player: []string{"As", "Ah"}, dealer: "6d", shouldSplit: true},
		{name: "8s - should split", player: []string{"8s", "8h"}, dealer: "6d", shouldSplit: true},
		{name: "10s - should not split", player: []string{"10s", "10h"}, dealer: "6d", shouldSplit: false},
		{name: "Ten and king - cannot split", player: []string{"10s", "Kh"}, dealer: "6d", shouldSplit: false},
		{name: "9s vs 7 - should not split", player: []string{"9s", "9h"}, dealer: "7d", shouldSplit: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hand := NewHand(1000, MustParseCards(test.player...)...)
			shouldSplit := ShouldSplit(hand, MustParseCards(test.dealer)[0], playingActions)
			if shouldSplit != test.shouldSplit {
				t.Errorf("Expected should split %v, got %v", test.shouldSplit, shouldSplit)
			}
		})
	}
}

func TestShouldDoubleDown(t *testing.T) {
	tests := []struct {
		name         string
		player       []string
		dealer       string
		shouldDouble bool
	}{
		{name: "11 vs 6 - should double", player: []string{"6s", "5h"}, dealer: "6d", shouldDouble: true},
		{name: "10 vs 6 - should double", player: []string{"6s", "4h"}, dealer: "6d", shouldDouble: true},
		{name: "9 vs 6 - should double", player: []string{"6s", "3h"}, dealer: "6d", shouldDouble: true},
		{name: "8 vs 6 - should not double", player: []string{"6s", "2h"}, dealer: "6d", shouldDouble: false},
		{name: "10 vs 10 - should not double", player: []string{"6s", "4h"}, dealer: "Kd", shouldDouble: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hand := NewHand(1000, MustParseCards(test.player...)...)
			shouldDouble := ShouldDoubleDown(hand, MustParseCards(test.dealer)[0], playingActions)
			if shouldDouble != test.shouldDouble {
				t.Errorf("Expected should double %v, got %v", test.shouldDouble, shouldDouble)
			}
		})
	}
}

func TestBetSizerRiskLevels(t *testing.T) {
	for _, level := range []RiskLevel{RiskConservative, RiskModerate, RiskAggressive} {
		t.Run(string(level), func(t *testing.T) {
			b := NewBetSizer(level)
			if b.BaseBetPercentage <= 0 || b.BaseBetPercentage > 1 {
				t.Errorf("Base bet percentage should be 0-1, got %f", b.BaseBetPercentage)
			}
			if b.MaxBetPercentage < b.BaseBetPercentage {
				t.Errorf("Max bet percentage %f should be >= base bet percentage %f", b.MaxBetPercentage, b.BaseBetPercentage)
			}
			amount := b.Next(100000, 0, "")
			if amount <= 0 || amount > 100000 {
				t.Errorf("Bet amount %d out of range", amount)
			}
		})
	}
}

func TestBetSizerNext(t *testing.T) {
	b := NewBetSizer(RiskModerate)
	if got := b.Next(100000, 0, ""); got != 5000 {
		t.Errorf("Expected 5000, got %d", got)
	}
	if got := b.Next(100000, 5000, OutcomeLose); got != 10000 {
		t.Errorf("Expected martingale 10000, got %d", got)
	}
	if got := b.Next(100000, 20000, OutcomeLose); got != 10000 {
		t.Errorf("Expected cap at 20%% rounded to 10000, got %d", got)
	}
	if got := b.Next(50, 0, ""); got != 0 {
		t.Errorf("Expected 0 when no chip fits, got %d", got)
	}
}
