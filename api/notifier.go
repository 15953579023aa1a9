package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/usecase/ledger"
)

// Notification codes sent with each event; clients switch on these.
var NotificationCodes = map[ledger.EventType]int{
	ledger.EventRoundStarted:     3001,
	ledger.EventInsuranceOffered: 3002,
	ledger.EventHandUpdated:      3003,
	ledger.EventRoundFinished:    3004,
	ledger.EventRoundAborted:     3005,
}

var _ ledger.Notifier = &Notifier{}

// Notifier pushes round events as non-persistent Nakama notifications.
type Notifier struct {
	nk runtime.NakamaModule
}

func NewNotifier(nk runtime.NakamaModule) *Notifier {
	return &Notifier{nk: nk}
}

func (n *Notifier) Emit(ctx context.Context, playerID string, eventType ledger.EventType, payload entity.Result) error {
	code, ok := NotificationCodes[eventType]
	if !ok {
		return fmt.Errorf("unknown event %q", eventType)
	}
	content, err := toContent(payload)
	if err != nil {
		return err
	}
	return n.nk.NotificationSend(ctx, playerID, string(eventType), content, code, "", false)
}

func toContent(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	content := make(map[string]interface{})
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, err
	}
	return content, nil
}
