package entity

// RiskLevel tunes how much of its balance an automated player stakes.
type RiskLevel string

const (
	RiskConservative RiskLevel = "conservative"
	RiskModerate     RiskLevel = "moderate"
	RiskAggressive   RiskLevel = "aggressive"
)

// ChipValues are the stakes an automated player rounds to.
var ChipValues = []int64{100, 500, 1000, 5000, 10000}

// BetSizer decides stakes for automated play.
type BetSizer struct {
	Level             RiskLevel
	BaseBetPercentage float64
	MaxBetPercentage  float64
	// Progressive doubles the previous stake after a losing round.
	Progressive bool
}

func NewBetSizer(level RiskLevel) BetSizer {
	b := BetSizer{Level: level, Progressive: true}
	switch level {
	case RiskConservative:
		b.BaseBetPercentage = 0.02
		b.MaxBetPercentage = 0.10
		b.Progressive = false
	case RiskAggressive:
		b.BaseBetPercentage = 0.10
		b.MaxBetPercentage = 0.40
	default:
		b.Level = RiskModerate
		b.BaseBetPercentage = 0.05
		b.MaxBetPercentage = 0.20
	}
	return b
}

// Next returns the stake for the coming round, or 0 when nothing affordable fits.
func (b BetSizer) Next(balance, lastBet int64, lastOutcome Outcome) int64 {
	amount := int64(float64(balance) * b.BaseBetPercentage)
	if b.Progressive && lastBet > 0 && lastOutcome == OutcomeLose {
		amount = lastBet * 2
	}
	if max := int64(float64(balance) * b.MaxBetPercentage); amount > max {
		amount = max
	}
	amount = roundToChipValue(amount)
	if amount > balance {
		return 0
	}
	return amount
}

// roundToChipValue picks the largest chip not above amount, falling back to the
// smallest chip.
func roundToChipValue(amount int64) int64 {
	chip := ChipValues[0]
	for _, v := range ChipValues {
		if v <= amount {
			chip = v
		}
	}
	return chip
}

// Advise picks a basic-strategy action among the legal ones. Insurance is
// always declined.
func Advise(h *Hand, dealerUp Card, legal []ActionType) Action {
	if containsAction(legal, ActionInsurance) {
		return Action{Type: ActionInsurance, BuyInsurance: false}
	}
	if containsAction(legal, ActionPlaceBet) || h == nil {
		return Action{Type: ActionPlaceBet}
	}
	if ShouldSplit(h, dealerUp, legal) {
		return NewAction(ActionSplit)
	}
	if ShouldDoubleDown(h, dealerUp, legal) {
		return NewAction(ActionDoubleDown)
	}
	if ShouldSurrender(h, dealerUp, legal) {
		return NewAction(ActionSurrender)
	}
	var next ActionType
	if h.IsSoft() {
		next = softTotalStrategy(h.Total(), dealerUp.Point())
	} else {
		next = hardTotalStrategy(h.Total(), dealerUp.Point())
	}
	if !containsAction(legal, next) {
		next = ActionStand
	}
	return NewAction(next)
}

// ShouldSplit splits aces and eights always, and nines, sevens, threes and twos
// against a weak dealer. Tens, fives and fours are never split.
func ShouldSplit(h *Hand, dealerUp Card, legal []ActionType) bool {
	if !containsAction(legal, ActionSplit) || !h.PlayerCanSplit() {
		return false
	}
	dealer := dealerUp.Point()
	switch h.Cards[0].Rank {
	case RankA, Rank8:
		return true
	case Rank9:
		return dealer != 7 && dealer < 10
	case Rank7, Rank3, Rank2:
		return dealer <= 7
	case Rank6:
		return dealer <= 6
	}
	return false
}

// ShouldDoubleDown doubles hard 9 through 11 against a dealer that can bust.
func ShouldDoubleDown(h *Hand, dealerUp Card, legal []ActionType) bool {
	if !containsAction(legal, ActionDoubleDown) || len(h.Cards) != 2 || h.IsSoft() {
		return false
	}
	dealer := dealerUp.Point()
	switch h.Total() {
	case 11:
		return dealer < 11
	case 10:
		return dealer < 10
	case 9:
		return dealer >= 3 && dealer <= 6
	}
	return false
}

// ShouldSurrender gives up hard 16 against 9, 10 or ace and hard 15 against 10.
func ShouldSurrender(h *Hand, dealerUp Card, legal []ActionType) bool {
	if !containsAction(legal, ActionSurrender) || h.IsSoft() || h.PlayerCanSplit() {
		return false
	}
	dealer := dealerUp.Point()
	switch h.Total() {
	case 16:
		return dealer >= 9
	case 15:
		return dealer == 10
	}
	return false
}

func softTotalStrategy(playerPoints, dealerPoints int) ActionType {
	switch playerPoints {
	case 20, 21:
		return ActionStand
	case 19:
		if dealerPoints >= 6 {
			return ActionStand
		}
		return ActionHit
	case 18:
		if dealerPoints >= 9 {
			return ActionHit
		}
		return ActionStand
	case 17:
		if dealerPoints >= 7 {
			return ActionHit
		}
		return ActionStand
	default:
		return ActionHit
	}
}

func hardTotalStrategy(playerPoints, dealerPoints int) ActionType {
	switch {
	case playerPoints >= 17:
		return ActionStand
	case playerPoints >= 13:
		if dealerPoints >= 7 {
			return ActionHit
		}
		return ActionStand
	case playerPoints == 12:
		if dealerPoints >= 4 && dealerPoints <= 6 {
			return ActionStand
		}
		return ActionHit
	default:
		return ActionHit
	}
}

func containsAction(legal []ActionType, action ActionType) bool {
	for _, a := range legal {
		if a == action {
			return true
		}
	}
	return false
}
