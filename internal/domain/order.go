package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OrderItem is a line of an open order. Quantity and UnitPrice are non-negative.
type OrderItem struct {
	SKU       string          `json:"sku"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Order is an open sales document awaiting a delivery day
type Order struct {
	ID             string      `json:"id"`
	DocumentNumber string      `json:"documentNumber"`
	Date           string      `json:"date"`
	CustomerName   string      `json:"customerName"`
	Items          []OrderItem `json:"items"`
}

// TotalQuantity sums the quantities of all items
func (o Order) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Quantity)
	}
	return total
}

// DisplayDate converts the provider's dd-mm-yyyy form into dd/mm/yyyy.
// Anything else is returned unchanged.
func (o Order) DisplayDate() string {
	parts := strings.Split(o.Date, "-")
	if len(parts) != 3 {
		return o.Date
	}
	return parts[0] + "/" + parts[1] + "/" + parts[2]
}

// OrderStore holds the open orders as fetched. It is read-only after construction.
type OrderStore struct {
	orders []Order
	byID   map[string]int
}

// NewOrderStore builds a store preserving arrival order.
// Orders without items get an empty item list; a repeated id keeps its first occurrence.
func NewOrderStore(orders []Order) *OrderStore {
	store := &OrderStore{
		orders: make([]Order, 0, len(orders)),
		byID:   make(map[string]int, len(orders)),
	}
	for _, o := range orders {
		if _, dup := store.byID[o.ID]; dup {
			continue
		}
		if o.Items == nil {
			o.Items = []OrderItem{}
		} else {
			items := make([]OrderItem, len(o.Items))
			copy(items, o.Items)
			o.Items = items
		}
		store.byID[o.ID] = len(store.orders)
		store.orders = append(store.orders, o)
	}
	return store
}

// All returns the orders in arrival order
func (s *OrderStore) All() []Order {
	if s == nil {
		return []Order{}
	}
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// ByID looks up an order by id
func (s *OrderStore) ByID(id string) (Order, bool) {
	if s == nil {
		return Order{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return Order{}, false
	}
	return s.orders[i], true
}

// Len returns the number of orders held
func (s *OrderStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.orders)
}
