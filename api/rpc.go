package api

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/nk-nigeria/blackjack-engine/entity"
	"github.com/nk-nigeria/blackjack-engine/usecase/ledger"
	"github.com/nk-nigeria/blackjack-engine/usecase/processor"
	"google.golang.org/grpc/codes"
)

const (
	RpcIdAction  = "blackjack_action"
	RpcIdState   = "blackjack_state"
	RpcIdHistory = "blackjack_history"

	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

var (
	ErrUnauthenticated = runtime.NewError("unauthenticated", int(codes.Unauthenticated))
	ErrBadPayload      = runtime.NewError("invalid payload", int(codes.InvalidArgument))
	ErrMarshal         = runtime.NewError("cannot marshal response", int(codes.Internal))
	ErrHistory         = runtime.NewError("cannot read history", int(codes.Unavailable))
)

type RpcFn func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error)

// HistoryReader lists a player's latest audit records, newest first.
type HistoryReader interface {
	Recent(ctx context.Context, playerID string, limit int) ([]ledger.AuditRecord, error)
}

func userID(ctx context.Context) (string, error) {
	id, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || id == "" {
		return "", ErrUnauthenticated
	}
	return id, nil
}

func respond(logger runtime.Logger, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.WithField("err", err).Error("rpc.marshal-response")
		return "", ErrMarshal
	}
	return string(data), nil
}

// RpcAction applies one action for the calling user. Rejected actions are
// still answered with a Result; only transport problems become RPC errors.
func RpcAction(game processor.Game) RpcFn {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		uid, err := userID(ctx)
		if err != nil {
			return "", err
		}
		var action entity.Action
		if err := json.Unmarshal([]byte(payload), &action); err != nil {
			logger.WithField("user", uid).WithField("err", err).Warn("rpc.action.bad-payload")
			return "", ErrBadPayload
		}
		res := game.ApplyAction(ctx, uid, action)
		if !res.OK && res.Error == entity.ErrorKindInternal {
			logger.WithField("user", uid).
				WithField("action", string(action.Type)).
				WithField("err", res.Message).
				Error("rpc.action.internal")
		}
		return respond(logger, res)
	}
}

func RpcState(game processor.Game) RpcFn {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		uid, err := userID(ctx)
		if err != nil {
			return "", err
		}
		return respond(logger, game.GetState(ctx, uid))
	}
}

type HistoryRequest struct {
	Limit int `json:"limit"`
}

type HistoryResponse struct {
	Records []ledger.AuditRecord `json:"records"`
}

func RpcHistory(history HistoryReader) RpcFn {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		uid, err := userID(ctx)
		if err != nil {
			return "", err
		}
		req := HistoryRequest{Limit: defaultHistoryLimit}
		if payload != "" {
			if err := json.Unmarshal([]byte(payload), &req); err != nil {
				return "", ErrBadPayload
			}
		}
		if req.Limit <= 0 || req.Limit > maxHistoryLimit {
			req.Limit = defaultHistoryLimit
		}
		records, err := history.Recent(ctx, uid, req.Limit)
		if err != nil {
			logger.WithField("user", uid).WithField("err", err).Error("rpc.history.read")
			return "", ErrHistory
		}
		return respond(logger, HistoryResponse{Records: records})
	}
}

// Register wires every RPC into the Nakama initializer.
func Register(initializer runtime.Initializer, game processor.Game, history HistoryReader) error {
	if err := initializer.RegisterRpc(RpcIdAction, RpcAction(game)); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcIdState, RpcState(game)); err != nil {
		return err
	}
	if history == nil {
		return nil
	}
	return initializer.RegisterRpc(RpcIdHistory, RpcHistory(history))
}
