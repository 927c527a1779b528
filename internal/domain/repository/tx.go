package repository

import "context"

// Transactor runs fn inside a single database transaction. Repository calls
// made with the context passed to fn join that transaction, so a payment
// insert and the invoice status update commit or roll back together.
type Transactor interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
}
