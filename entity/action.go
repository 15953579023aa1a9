package entity

type ActionType string

const (
	ActionPlaceBet   ActionType = "placeBet"
	ActionHit        ActionType = "hit"
	ActionStand      ActionType = "stand"
	ActionDoubleDown ActionType = "doubleDown"
	ActionSplit      ActionType = "split"
	ActionSurrender  ActionType = "surrender"
	ActionInsurance  ActionType = "insurance"
)

var ActionTypes = []ActionType{
	ActionPlaceBet,
	ActionHit,
	ActionStand,
	ActionDoubleDown,
	ActionSplit,
	ActionSurrender,
	ActionInsurance,
}

func (a ActionType) Valid() bool {
	for _, t := range ActionTypes {
		if t == a {
			return true
		}
	}
	return false
}

// Action is one player request. HandIndex defaults to the active hand.
type Action struct {
	Type         ActionType `json:"type"`
	HandIndex    *int       `json:"handIndex,omitempty"`
	Amount       int64      `json:"amount,omitempty"`
	BuyInsurance bool       `json:"buyInsurance,omitempty"`
}

func NewAction(t ActionType) Action {
	return Action{Type: t}
}

func (a Action) WithHand(idx int) Action {
	a.HandIndex = &idx
	return a
}

func (a Action) WithAmount(amount int64) Action {
	a.Amount = amount
	return a
}

// Result is what a caller gets back for every action, success or not.
type Result struct {
	OK              bool         `json:"ok"`
	Error           ErrorKind    `json:"error,omitempty"`
	Message         string       `json:"message,omitempty"`
	SessionID       string       `json:"sessionId,omitempty"`
	RoundID         int64        `json:"roundId,omitempty"`
	State           GameState    `json:"state"`
	Hands           []Hand       `json:"hands"`
	DealerHand      Hand         `json:"dealerHand"`
	ActiveHandIndex int          `json:"activeHandIndex"`
	LegalActions    []ActionType `json:"legalActions,omitempty"`
	Insurance       Insurance    `json:"insurance"`
	Result          Outcome      `json:"result,omitempty"`
	Payout          int64        `json:"payout,omitempty"`
	Profit          int64        `json:"profit,omitempty"`
	Balance         int64        `json:"balance"`
}

// ErrorResult wraps err over the given snapshot, which the failed action left untouched.
func ErrorResult(snapshot Result, err error) Result {
	snapshot.OK = false
	snapshot.Error = KindOf(err)
	snapshot.Message = err.Error()
	return snapshot
}
