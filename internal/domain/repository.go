package domain

import "context"

// CatalogSource loads the product catalog from the invoicing provider
type CatalogSource interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// OrderSource loads the open orders from the invoicing provider
type OrderSource interface {
	FetchOpenOrders(ctx context.Context) ([]Order, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}
