package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nk-nigeria/blackjack-engine/entity"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1B5E20")).
			Padding(0, 1).
			Bold(true)
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(10)
	redCard = lipgloss.NewStyle().
		Foreground(lipgloss.Color("9"))
	blackCard = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))
	hiddenCard = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)
	loseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
	pushStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

func renderCard(c entity.Card) string {
	switch {
	case c.Hidden:
		return hiddenCard.Render(c.String())
	case c.Suit == entity.SuitHearts || c.Suit == entity.SuitDiamonds:
		return redCard.Render(c.String())
	default:
		return blackCard.Render(c.String())
	}
}

func renderHand(label string, h entity.Hand) string {
	cards := make([]string, 0, len(h.Cards))
	for _, c := range h.Cards {
		cards = append(cards, renderCard(c))
	}
	line := labelStyle.Render(label) + strings.Join(cards, " ") + fmt.Sprintf("  (%d)", h.Total())
	if h.Bet > 0 {
		line += fmt.Sprintf("  bet %d", h.Bet)
	}
	return line
}

func renderStep(a entity.Action, res entity.Result) string {
	lines := []string{fmt.Sprintf("%s → %s", a.Type, res.State)}
	if !res.OK {
		lines = append(lines, loseStyle.Render(fmt.Sprintf("%s: %s", res.Error, res.Message)))
	}
	lines = append(lines, renderHand("Dealer", res.DealerHand))
	for i, h := range res.Hands {
		label := "You"
		if len(res.Hands) > 1 {
			label = fmt.Sprintf("Hand %d", i+1)
		}
		lines = append(lines, renderHand(label, h))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func outcomeStyle(o entity.Outcome) lipgloss.Style {
	switch o {
	case entity.OutcomeWin, entity.OutcomeBlackjack:
		return winStyle
	case entity.OutcomePush:
		return pushStyle
	}
	return loseStyle
}

func renderOutcome(res entity.Result) string {
	return fmt.Sprintf("%s  payout %d  profit %+d  balance %d",
		outcomeStyle(res.Result).Render(strings.ToUpper(string(res.Result))),
		res.Payout, res.Profit, res.Balance)
}

func renderTotals(t Totals) string {
	outcomes := make([]string, 0, len(t.Outcomes))
	for o := range t.Outcomes {
		outcomes = append(outcomes, string(o))
	}
	sort.Strings(outcomes)

	lines := []string{
		titleStyle.Render(" Simulation "),
		fmt.Sprintf("%s%d", labelStyle.Render("Players"), t.Players),
		fmt.Sprintf("%s%d", labelStyle.Render("Rounds"), t.Rounds),
		fmt.Sprintf("%s%d", labelStyle.Render("Aborted"), t.Aborted),
		fmt.Sprintf("%s%d", labelStyle.Render("Wagered"), t.Wagered),
		fmt.Sprintf("%s%d", labelStyle.Render("Returned"), t.Returned),
		fmt.Sprintf("%s%s", labelStyle.Render("Net"), outcomeStyle(netOutcome(t.Net)).Render(fmt.Sprintf("%+d", t.Net))),
		fmt.Sprintf("%s%.4f", labelStyle.Render("RTP"), t.RTP()),
	}
	for _, o := range outcomes {
		n := t.Outcomes[entity.Outcome(o)]
		share := 0.0
		if t.Rounds > 0 {
			share = 100 * float64(n) / float64(t.Rounds)
		}
		lines = append(lines, fmt.Sprintf("%s%d (%.1f%%)", labelStyle.Render(o), n, share))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func netOutcome(net int64) entity.Outcome {
	switch {
	case net > 0:
		return entity.OutcomeWin
	case net < 0:
		return entity.OutcomeLose
	}
	return entity.OutcomePush
}
