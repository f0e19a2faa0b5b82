package domain

import "context"

//go:generate mockgen -source=store.go -destination=store_mock.go -package=domain

// Subscription is a live listener registration on a store path.
// Cancel detaches the listener; it is safe to call more than once.
type Subscription interface {
	Cancel()
}

// Store is the keyed tree store the backend persists into. Paths are
// "/"-joined segments (see paths.go). Values are opaque strings: scalars
// are stored plain, composite records as JSON. The store guarantees
// last-write-wins per path and in-order delivery of subscription events
// per path; it does not order one-shot reads against a running stream.
type Store interface {
	// Get returns the value at path, or ErrPathNotFound.
	Get(ctx context.Context, path string) (string, error)

	// Set overwrites the value at path.
	Set(ctx context.Context, path string, value string) error

	// Update atomically overwrites every path in values.
	Update(ctx context.Context, values map[string]string) error

	// Remove deletes the value at path. Removing an absent path is not an error.
	Remove(ctx context.Context, path string) error

	// List returns the direct children of a collection path, keyed by
	// child id. An absent collection yields an empty map.
	List(ctx context.Context, path string) (map[string]string, error)

	// Subscribe registers a persistent listener for value changes at path.
	// onChange receives every subsequent value written to the path, in
	// store delivery order, on the store's own goroutine. onError receives
	// asynchronous access failures; the listener stays registered until
	// the returned Subscription is cancelled.
	Subscribe(ctx context.Context, path string, onChange func(value string), onError func(err error)) (Subscription, error)

	// GenerateChildID produces a unique opaque key for appending to the
	// collection at parentPath.
	GenerateChildID(parentPath string) string
}
