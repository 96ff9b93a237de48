package engine

import (
	"context"
	"sync"

	"github.com/joripage/orderbook-lite/config"
	"github.com/joripage/orderbook-lite/pkg/logging"
	"github.com/joripage/orderbook-lite/pkg/orderbook"
	"github.com/joripage/orderbook-lite/pkg/sequence"
	"go.uber.org/zap"
)

// TopOfBook is the best price and aggregated size of each side. The Has
// flags are false when that side is empty.
type TopOfBook struct {
	BidPrice float64
	BidSize  int64
	HasBid   bool
	AskPrice float64
	AskSize  int64
	HasAsk   bool
}

// Engine serialises access to one order book and fans trades out to the
// registered callbacks.
type Engine struct {
	mu   sync.Mutex
	book *orderbook.OrderBook
	ids  *sequence.Sequence

	logger      *logging.Logger
	depthLevels int

	cbMu      sync.RWMutex
	callbacks []func([]orderbook.Trade)
}

// New builds an engine over an empty book. Zero fields of cfg take their
// defaults; an invalid epsilon or depth is rejected.
func New(cfg *orderbook.Config, logger *logging.Logger) (*Engine, error) {
	bookCfg := orderbook.DefaultConfig()
	if cfg != nil {
		*bookCfg = *cfg
	}
	if err := bookCfg.Validate(); err != nil {
		return nil, err
	}
	bookCfg.ApplyDefaults()

	if logger == nil {
		logger = logging.NewNop()
	}

	ids := sequence.New()
	return &Engine{
		book:        orderbook.NewOrderBook(ids, orderbook.WithConfig(bookCfg)),
		ids:         ids,
		logger:      logger,
		depthLevels: bookCfg.DepthLevels,
	}, nil
}

// NewFromConfig builds the engine and its logger from the app config.
func NewFromConfig(cfg *config.AppConfig) (*Engine, error) {
	logger, err := logging.NewLoggerFromConfig(cfg.Log)
	if err != nil {
		return nil, err
	}
	if cfg.ServiceName != "" {
		logger = logger.With(zap.String("service", cfg.ServiceName))
	}
	return New(cfg.Book, logger)
}

func (e *Engine) NewClient() *orderbook.Client {
	return orderbook.NewClient(e.ids)
}

// RegisterTradeCallback adds fn to the callbacks invoked with the trades of
// every submission that matched. Callbacks run after the book is unlocked, so
// they may call back into the engine.
func (e *Engine) RegisterTradeCallback(fn func([]orderbook.Trade)) {
	e.cbMu.Lock()
	defer e.cbMu.Unlock()

	e.callbacks = append(e.callbacks, fn)
}

func (e *Engine) Submit(
	ctx context.Context,
	side orderbook.Side,
	price float64,
	size int64,
	client *orderbook.Client,
) (orderbook.SubmitResult, error) {
	ctx = logging.EnsureRequestID(ctx)
	order := orderbook.NewOrder(e.ids, side, price, size, client)

	e.mu.Lock()
	result, err := e.book.Submit(order)
	e.mu.Unlock()

	if err != nil {
		e.logger.Warn(ctx, "order rejected",
			zap.Uint64("order_id", order.ID),
			zap.String("side", string(side)),
			zap.Float64("price", price),
			zap.Int64("size", size),
			zap.Error(err),
		)
		return result, err
	}

	e.logger.Info(ctx, "order accepted",
		zap.Uint64("order_id", result.OrderID),
		zap.String("side", string(side)),
		zap.Float64("price", price),
		zap.Int64("size", size),
		zap.Bool("resting", result.Resting),
		zap.Int("trades", len(result.Trades)),
		zap.Int64("matched_size", result.MatchedSize()),
	)
	for _, t := range result.Trades {
		e.logger.Debug(ctx, "trade",
			zap.Uint64("trade_id", t.ID),
			zap.Uint64("maker_order_id", t.MakerOrderID),
			zap.Uint64("taker_order_id", t.TakerOrderID),
			zap.Float64("price", t.Price),
			zap.Int64("size", t.Size),
			zap.String("notional", t.Notional().String()),
		)
	}

	if len(result.Trades) > 0 {
		e.cbMu.RLock()
		callbacks := e.callbacks
		e.cbMu.RUnlock()
		for _, cb := range callbacks {
			cb(result.Trades)
		}
	}

	return result, nil
}

func (e *Engine) Cancel(ctx context.Context, orderID uint64) error {
	ctx = logging.EnsureRequestID(ctx)

	e.mu.Lock()
	err := e.book.Cancel(orderID)
	e.mu.Unlock()

	if err != nil {
		e.logger.Warn(ctx, "cancel rejected", zap.Uint64("order_id", orderID), zap.Error(err))
		return err
	}

	e.logger.Info(ctx, "order canceled", zap.Uint64("order_id", orderID))
	return nil
}

func (e *Engine) TopOfBook() TopOfBook {
	e.mu.Lock()
	defer e.mu.Unlock()

	var top TopOfBook
	top.BidPrice, top.HasBid = e.book.BestBid()
	top.BidSize, _ = e.book.BestBidSize()
	top.AskPrice, top.HasAsk = e.book.BestAsk()
	top.AskSize, _ = e.book.BestAskSize()
	return top
}

// Depth returns the configured number of levels per side.
func (e *Engine) Depth() orderbook.Depth {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.book.Depth(e.depthLevels)
}

// Order returns a copy of a resting order.
func (e *Engine) Order(orderID uint64) (orderbook.Order, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.book.Order(orderID)
}
