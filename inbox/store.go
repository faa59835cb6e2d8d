// Package inbox holds the single session-scoped store for pending incoming
// friend requests. Every badge display subscribes to this store instead of
// issuing its own fetch, so the navigation shell and the bell indicator can
// never disagree about the count.
package inbox

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"smartsimon/client/api"
)

// API is the slice of the service client the store needs
type API interface {
	GetFriendRequests(ctx context.Context) (*api.FriendRequests, error)
	AcceptFriendRequest(ctx context.Context, requestID int) error
	DeleteFriendRequest(ctx context.Context, requestID int) error
}

// Store owns the pending-request sequence for the lifetime of a session.
// The badge count is always derived from the held sequence, never fetched
// separately. Accept and Delete apply their removal optimistically and
// roll the sequence back if the service rejects the call.
type Store struct {
	mu      sync.Mutex
	api     API
	pending []api.FriendRequest

	subs    map[int]func(count int)
	nextSub int
}

// NewStore creates an empty store; call Refresh to populate it
func NewStore(a API) *Store {
	return &Store{api: a, subs: make(map[int]func(int))}
}

// Refresh replaces the held sequence with the service's current view,
// preserving whatever order the service returned.
func (s *Store) Refresh(ctx context.Context) error {
	requests, err := s.api.GetFriendRequests(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.pending = append([]api.FriendRequest(nil), requests.ReceivedRequests...)
	s.mu.Unlock()

	s.notify()
	return nil
}

// Pending returns a copy of the held sequence
func (s *Store) Pending() []api.FriendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.FriendRequest(nil), s.pending...)
}

// Count is the badge count: the length of the held sequence
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Subscribe registers fn to receive the badge count now and after every
// change. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(count int)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	count := len(s.pending)
	s.mu.Unlock()

	fn(count)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Accept asks the service to convert the request into a friendship edge.
// The local removal is applied up front and rolled back if the call fails,
// so the sequence never shows a request the server still considers pending
// for longer than the round trip.
func (s *Store) Accept(ctx context.Context, requestID int) error {
	cmd := uuid.New()
	prior, removed := s.remove(requestID)
	if removed {
		s.notify()
	}

	if err := s.api.AcceptFriendRequest(ctx, requestID); err != nil {
		log.Printf("inbox: accept command %s for request %d failed, rolling back: %v", cmd, requestID, err)
		if removed {
			s.restore(prior)
			s.notify()
		}
		return err
	}

	log.Printf("inbox: accept command %s confirmed for request %d", cmd, requestID)
	return nil
}

// Delete asks the service to discard the request with no edge created.
// On confirmation the sequence is re-fetched so the view reflects whatever
// else changed server-side; a failed re-fetch keeps the optimistic state.
func (s *Store) Delete(ctx context.Context, requestID int) error {
	cmd := uuid.New()
	prior, removed := s.remove(requestID)
	if removed {
		s.notify()
	}

	if err := s.api.DeleteFriendRequest(ctx, requestID); err != nil {
		log.Printf("inbox: delete command %s for request %d failed, rolling back: %v", cmd, requestID, err)
		if removed {
			s.restore(prior)
			s.notify()
		}
		return err
	}

	log.Printf("inbox: delete command %s confirmed for request %d", cmd, requestID)
	if err := s.Refresh(ctx); err != nil {
		log.Printf("inbox: refresh after delete failed: %v", err)
	}
	return nil
}

// remove takes the request with the given id out of the sequence and
// returns a snapshot of the prior sequence for rollback. Unknown ids leave
// the sequence untouched.
func (s *Store) remove(requestID int) ([]api.FriendRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prior := append([]api.FriendRequest(nil), s.pending...)
	for i, req := range s.pending {
		if req.ID == requestID {
			s.pending = append(s.pending[:i:i], s.pending[i+1:]...)
			return prior, true
		}
	}
	return prior, false
}

func (s *Store) restore(prior []api.FriendRequest) {
	s.mu.Lock()
	s.pending = prior
	s.mu.Unlock()
}

// notify calls every subscriber with the current count, outside the lock
func (s *Store) notify() {
	s.mu.Lock()
	count := len(s.pending)
	fns := make([]func(int), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(count)
	}
}
