package domain

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeStore is an in-memory Store for tests. It round-trips values
// exactly, records every write attempt, and pushes Set values to
// subscribers synchronously so tests can assert delivery and release
// semantics without a live backend.
type FakeStore struct {
	mu     sync.Mutex
	values map[string]string
	subs   map[string][]*fakeSubscription
	nextID int

	// SetCalls records every path passed to Set or Update, in order,
	// including failed attempts.
	SetCalls []string

	// GetError, SetError, UpdateError, RemoveError, ListError and
	// SubscribeError, when set, are returned by the corresponding method.
	GetError       error
	SetError       error
	UpdateError    error
	RemoveError    error
	ListError      error
	SubscribeError error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		values: make(map[string]string),
		subs:   make(map[string][]*fakeSubscription),
	}
}

func (f *FakeStore) Get(_ context.Context, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.GetError != nil {
		return "", f.GetError
	}
	value, ok := f.values[path]
	if !ok {
		return "", ErrPathNotFound
	}
	return value, nil
}

func (f *FakeStore) Set(_ context.Context, path, value string) error {
	f.mu.Lock()
	f.SetCalls = append(f.SetCalls, path)
	if f.SetError != nil {
		f.mu.Unlock()
		return f.SetError
	}
	f.values[path] = value
	listeners := append([]*fakeSubscription(nil), f.subs[path]...)
	f.mu.Unlock()

	for _, sub := range listeners {
		sub.deliver(value)
	}
	return nil
}

func (f *FakeStore) Update(ctx context.Context, values map[string]string) error {
	if f.UpdateError != nil {
		f.mu.Lock()
		for path := range values {
			f.SetCalls = append(f.SetCalls, path)
		}
		f.mu.Unlock()
		return f.UpdateError
	}
	for path, value := range values {
		if err := f.Set(ctx, path, value); err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeStore) Remove(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.RemoveError != nil {
		return f.RemoveError
	}
	delete(f.values, path)
	return nil
}

func (f *FakeStore) List(_ context.Context, path string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ListError != nil {
		return nil, f.ListError
	}

	prefix := path + "/"
	children := make(map[string]string)
	for key, value := range f.values {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		child := strings.TrimPrefix(key, prefix)
		if strings.Contains(child, "/") {
			continue
		}
		children[child] = value
	}
	return children, nil
}

func (f *FakeStore) Subscribe(_ context.Context, path string, onChange func(string), onError func(error)) (Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SubscribeError != nil {
		return nil, f.SubscribeError
	}

	sub := &fakeSubscription{
		store:    f,
		path:     path,
		onChange: onChange,
		onError:  onError,
	}
	f.subs[path] = append(f.subs[path], sub)
	return sub, nil
}

func (f *FakeStore) GenerateChildID(string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	return fmt.Sprintf("fake-id-%d", f.nextID)
}

// EmitError pushes an asynchronous access failure to every listener on path.
func (f *FakeStore) EmitError(path string, err error) {
	f.mu.Lock()
	listeners := append([]*fakeSubscription(nil), f.subs[path]...)
	f.mu.Unlock()

	for _, sub := range listeners {
		sub.deliverError(err)
	}
}

// SubscriberCount reports the number of live listeners on path.
func (f *FakeStore) SubscriberCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs[path])
}

type fakeSubscription struct {
	store    *FakeStore
	path     string
	onChange func(string)
	onError  func(error)

	mu        sync.Mutex
	cancelled bool
}

func (s *fakeSubscription) deliver(value string) {
	s.mu.Lock()
	cancelled := s.cancelled
	s.mu.Unlock()
	if !cancelled {
		s.onChange(value)
	}
}

func (s *fakeSubscription) deliverError(err error) {
	s.mu.Lock()
	cancelled := s.cancelled
	s.mu.Unlock()
	if !cancelled {
		s.onError(err)
	}
}

func (s *fakeSubscription) Cancel() {
	s.mu.Lock()
	s.cancelled = true
	s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	remaining := s.store.subs[s.path][:0]
	for _, sub := range s.store.subs[s.path] {
		if sub != s {
			remaining = append(remaining, sub)
		}
	}
	s.store.subs[s.path] = remaining
}
