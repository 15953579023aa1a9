package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/usecase/ledger"
)

const walletChipsKey = "chips"

type Wallet struct {
	UserId string `json:"-"`
	Chips  int64  `json:"chips"`
}

func ParseWallet(payload string) (Wallet, error) {
	var w Wallet
	if payload == "" {
		return w, nil
	}
	if err := json.Unmarshal([]byte(payload), &w); err != nil {
		return w, fmt.Errorf("parse wallet: %w", err)
	}
	return w, nil
}

var _ ledger.PlayerStore = &WalletStore{}

// WalletStore keeps chip balances in the Nakama account wallet. Every change
// is written to the wallet ledger with the reason as metadata.
type WalletStore struct {
	nk runtime.NakamaModule
}

func NewWalletStore(nk runtime.NakamaModule) *WalletStore {
	return &WalletStore{nk: nk}
}

func (w *WalletStore) ReadWallet(ctx context.Context, userID string) (Wallet, error) {
	account, err := w.nk.AccountGetId(ctx, userID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return Wallet{}, fmt.Errorf("%s: %w", userID, entity.ErrPlayerNotFound)
		}
		return Wallet{}, fmt.Errorf("read account %s: %w", userID, err)
	}
	wallet, err := ParseWallet(account.GetWallet())
	if err != nil {
		return Wallet{}, err
	}
	wallet.UserId = userID
	return wallet, nil
}

func (w *WalletStore) GetBalance(ctx context.Context, playerID string) (int64, error) {
	wallet, err := w.ReadWallet(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return wallet.Chips, nil
}

func (w *WalletStore) Debit(ctx context.Context, playerID string, amount int64, reason ledger.Reason) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("negative debit %d", amount)
	}
	wallet, err := w.ReadWallet(ctx, playerID)
	if err != nil {
		return 0, err
	}
	if wallet.Chips < amount {
		return wallet.Chips, fmt.Errorf("balance %d < %d: %w", wallet.Chips, amount, entity.ErrInsufficientFunds)
	}
	balance, err := w.update(ctx, playerID, -amount, reason)
	if err != nil {
		// The wallet refuses to go negative; a concurrent spend elsewhere lands here.
		if now, rerr := w.GetBalance(ctx, playerID); rerr == nil && now < amount {
			return now, fmt.Errorf("balance %d < %d: %w", now, amount, entity.ErrInsufficientFunds)
		}
		return 0, err
	}
	return balance, nil
}

func (w *WalletStore) Credit(ctx context.Context, playerID string, amount int64, reason ledger.Reason) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("negative credit %d", amount)
	}
	return w.update(ctx, playerID, amount, reason)
}

func (w *WalletStore) update(ctx context.Context, playerID string, delta int64, reason ledger.Reason) (int64, error) {
	changeset := map[string]int64{walletChipsKey: delta}
	metadata := map[string]interface{}{
		"game":   entity.ModuleName,
		"reason": string(reason),
	}
	updated, _, err := w.nk.WalletUpdate(ctx, playerID, changeset, metadata, true)
	if err != nil {
		return 0, fmt.Errorf("wallet update %s %+d: %w", playerID, delta, err)
	}
	return updated[walletChipsKey], nil
}
