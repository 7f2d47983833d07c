package cart

import (
	"context"
	"errors"
	"fmt"

	"shopez/internal/catalog"
	"shopez/internal/session"
)

// ErrNoSession is returned for any cart intent that arrives without an
// authenticated identity. The operation is rejected up front; no store
// mutation is attempted.
var ErrNoSession = errors.New("login required to use the cart")

// Service translates user intents into mutations of the remote cart
// collection. The acting identity comes from the request context; there is
// no global current-user lookup.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) identity(ctx context.Context) (*session.Identity, error) {
	id, ok := session.FromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}
	return id, nil
}

// AddProduct handles the add-to-cart intent from a product detail view:
// read the current line, branch on presence, write. Either failure surfaces
// as a single error; there is no partial silent success.
//
// When a line already exists its quantity is incremented rather than
// overwritten. The increment is read-then-write because the store contract
// has no atomic increment: two concurrent adds for the same product can both
// read qty=N and both write qty=N+1, losing one increment. Known consistency
// gap, kept as-is.
func (s *Service) AddProduct(ctx context.Context, p catalog.Product) error {
	id, err := s.identity(ctx)
	if err != nil {
		return err
	}

	line, err := s.store.Line(ctx, id.UserID, p.ID)
	if err != nil && !errors.Is(err, ErrLineNotFound) {
		return fmt.Errorf("read cart line: %w", err)
	}

	if line != nil {
		if err := s.store.UpdateQuantity(ctx, id.UserID, p.ID, line.Quantity+1); err != nil {
			return fmt.Errorf("increment cart line: %w", err)
		}
		return nil
	}

	// Price is snapshotted at add time.
	err = s.store.Put(ctx, id.UserID, Line{
		ID:       p.ID,
		Title:    p.Title,
		Image:    p.Image,
		Price:    p.Price,
		Quantity: 1,
	})
	if err != nil {
		return fmt.Errorf("write cart line: %w", err)
	}
	return nil
}

// SetQuantity writes a new quantity for an existing line. A quantity of
// zero or below deletes the line entirely; a zero-quantity line is never
// stored.
func (s *Service) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	id, err := s.identity(ctx)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		if err := s.store.Remove(ctx, id.UserID, productID); err != nil {
			return fmt.Errorf("remove cart line: %w", err)
		}
		return nil
	}

	if err := s.store.UpdateQuantity(ctx, id.UserID, productID, quantity); err != nil {
		if errors.Is(err, ErrLineNotFound) {
			return err
		}
		return fmt.Errorf("update cart line: %w", err)
	}
	return nil
}

// Increase bumps a line's quantity by one.
func (s *Service) Increase(ctx context.Context, productID int64) error {
	return s.adjust(ctx, productID, +1)
}

// Decrease lowers a line's quantity by one, deleting the line when the
// quantity would reach zero.
func (s *Service) Decrease(ctx context.Context, productID int64) error {
	return s.adjust(ctx, productID, -1)
}

func (s *Service) adjust(ctx context.Context, productID int64, change int) error {
	id, err := s.identity(ctx)
	if err != nil {
		return err
	}

	line, err := s.store.Line(ctx, id.UserID, productID)
	if err != nil {
		if errors.Is(err, ErrLineNotFound) {
			return err
		}
		return fmt.Errorf("read cart line: %w", err)
	}

	return s.SetQuantity(ctx, productID, line.Quantity+change)
}

// Remove deletes a line regardless of quantity. Confirmation of the intent
// is the caller's responsibility; by the time Remove runs the user has
// already confirmed. Removing an absent line is a no-op.
func (s *Service) Remove(ctx context.Context, productID int64) error {
	id, err := s.identity(ctx)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, id.UserID, productID); err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}
	return nil
}

// Snapshot reads the current cart collection for the acting user.
func (s *Service) Snapshot(ctx context.Context) (Collection, error) {
	id, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := s.store.Lines(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	return lines, nil
}

// Watch streams cart snapshots for the acting user until ctx is cancelled.
func (s *Service) Watch(ctx context.Context) (<-chan Collection, error) {
	id, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.Watch(ctx, id.UserID)
}
