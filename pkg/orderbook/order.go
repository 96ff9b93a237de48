package orderbook

import (
	"fmt"
	"time"

	"github.com/joripage/orderbook-lite/pkg/sequence"
)

type Side string

const (
	BID Side = "BID"
	ASK Side = "ASK"
)

func (s Side) Opposite() Side {
	if s == BID {
		return ASK
	}
	return BID
}

func (s Side) valid() bool {
	return s == BID || s == ASK
}

// IDGenerator supplies ids for clients, orders and trades.
type IDGenerator interface {
	Next(kind sequence.Kind) uint64
}

type Client struct {
	ID uint64
}

func NewClient(ids IDGenerator) *Client {
	return &Client{ID: ids.Next(sequence.Client)}
}

func (c *Client) String() string {
	return fmt.Sprintf("Client #%d", c.ID)
}

type Order struct {
	ID        uint64
	Side      Side
	Price     float64
	Size      int64 // remaining
	Client    *Client
	CreatedAt time.Time // set by the book on acceptance
}

func NewOrder(ids IDGenerator, side Side, price float64, size int64, client *Client) *Order {
	return &Order{
		ID:     ids.Next(sequence.Order),
		Side:   side,
		Price:  price,
		Size:   size,
		Client: client,
	}
}

func (o *Order) String() string {
	clientID := "-"
	if o.Client != nil {
		clientID = fmt.Sprint(o.Client.ID)
	}
	return fmt.Sprintf("%d@%v %s order id %d from client id %s", o.Size, o.Price, o.Side, o.ID, clientID)
}
