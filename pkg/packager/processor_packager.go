package packager

import (
	"context"

	"github.com/nk-nigeria/blackjack-engine/entity"
	"go.uber.org/zap"
)

type processorPackagerKey struct{}

// ShoeFactory hands every new round its own shoe.
type ShoeFactory func() (*entity.Shoe, error)

// ProcessorPackager carries what state handlers need for one fired action.
type ProcessorPackager struct {
	ctx     context.Context
	session *entity.GameSession
	logger  *zap.Logger
	shoes   ShoeFactory
	ids     entity.IDGenerator
}

func NewProcessorPackager(
	ctx context.Context,
	session *entity.GameSession,
	logger *zap.Logger,
	shoes ShoeFactory,
	ids entity.IDGenerator,
) *ProcessorPackager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ids == nil {
		ids = entity.SnowlakeNode
	}
	p := &ProcessorPackager{
		session: session,
		logger:  logger,
		shoes:   shoes,
		ids:     ids,
	}
	p.ctx = context.WithValue(ctx, processorPackagerKey{}, p)
	return p
}

func (p *ProcessorPackager) GetContext() context.Context {
	return p.ctx
}

func (p *ProcessorPackager) GetSession() *entity.GameSession {
	return p.session
}

func (p *ProcessorPackager) GetLogger() *zap.Logger {
	return p.logger
}

func (p *ProcessorPackager) NewShoe() (*entity.Shoe, error) {
	if p.shoes == nil {
		return entity.NewShoe(entity.DefaultDeckCount, nil, p.ids)
	}
	return p.shoes()
}

func (p *ProcessorPackager) NextRoundID() int64 {
	return p.ids.Generate().Int64()
}

// GetProcessorPackagerFromContext panics when ctx was not built by NewProcessorPackager.
func GetProcessorPackagerFromContext(ctx context.Context) *ProcessorPackager {
	return ctx.Value(processorPackagerKey{}).(*ProcessorPackager)
}
