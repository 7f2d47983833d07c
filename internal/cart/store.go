package cart

import (
	"context"
	"errors"
)

var ErrLineNotFound = errors.New("line not found in cart")

// Store defines the interface for the remote per-user cart collection.
// Consumers define this interface, not the Redis implementation.
//
// All operations are scoped to one user's collection. A user with no cart
// data reads as an empty Collection, not as an error.
type Store interface {
	// Lines reads the full collection for the user.
	Lines(ctx context.Context, userID string) (Collection, error)
	// Line reads a single line, or ErrLineNotFound when absent.
	Line(ctx context.Context, userID string, productID int64) (*Line, error)
	// Put writes a full line, replacing any existing one for the product.
	Put(ctx context.Context, userID string, line Line) error
	// UpdateQuantity rewrites the quantity of an existing line, or returns
	// ErrLineNotFound when the line is absent.
	UpdateQuantity(ctx context.Context, userID string, productID int64, quantity int) error
	// Remove deletes a line. Removing an absent line is not an error.
	Remove(ctx context.Context, userID string, productID int64) error
	// Watch delivers a snapshot of the collection whenever it changes,
	// starting with the current state. The stream stops and the channel is
	// closed when ctx is cancelled; no snapshots are delivered after that.
	Watch(ctx context.Context, userID string) (<-chan Collection, error)
}
