// Package relation classifies the viewer's relationship to one other user
// and owns the two transitions that change it. A Resolver is scoped to a
// single (viewer, subject) pair and lives as long as the profile view that
// created it.
package relation

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"smartsimon/client/api"
)

// State is the four-valued relationship classification
type State int

const (
	Unknown State = iota
	Self
	Stranger
	RequestSent
	Friend
)

func (s State) String() string {
	switch s {
	case Self:
		return "self"
	case Stranger:
		return "stranger"
	case RequestSent:
		return "request-sent"
	case Friend:
		return "friend"
	default:
		return "unknown"
	}
}

// API is the slice of the service client the resolver needs
type API interface {
	GetUser(ctx context.Context, userID int) (*api.User, error)
	SendFriendRequest(ctx context.Context, receiverID int) (string, error)
	Unfriend(ctx context.Context, friendID int) (string, error)
}

// Resolver resolves and holds the relation state for one subject.
// RequestSent is purely client-held: the profile payload has no outgoing
// pending indicator, so a fresh Resolve after sending a request reports
// Stranger again. That reset is part of the contract, not a bug.
type Resolver struct {
	mu        sync.Mutex
	api       API
	viewerID  int
	subjectID int
	state     State
	stale     bool
	profile   *api.User
}

// NewResolver creates a resolver for the (viewer, subject) pair. The state
// is Unknown until the first Resolve succeeds.
func NewResolver(a API, viewerID, subjectID int) *Resolver {
	return &Resolver{api: a, viewerID: viewerID, subjectID: subjectID}
}

// Resolve fetches the subject's profile and classifies the relationship
// from server truth: Self when the subject is the viewer, Friend when the
// server says so, Stranger otherwise.
func (r *Resolver) Resolve(ctx context.Context) (State, error) {
	profile, err := r.api.GetUser(ctx, r.subjectID)
	if err != nil {
		return Unknown, err
	}

	state := Stranger
	switch {
	case r.subjectID == r.viewerID:
		state = Self
	case profile.IsFriend:
		state = Friend
	}

	r.mu.Lock()
	r.state = state
	r.profile = profile
	r.stale = false
	r.mu.Unlock()

	return state, nil
}

// State returns the current classification
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Profile returns the last fetched profile, or nil before the first
// successful Resolve
func (r *Resolver) Profile() *api.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profile
}

// MarkStale flags the held state as possibly outdated, e.g. after an inbox
// mutation elsewhere. Resolve clears the flag.
func (r *Resolver) MarkStale() {
	r.mu.Lock()
	r.stale = true
	r.mu.Unlock()
}

// Stale reports whether the held state has been flagged as outdated
func (r *Resolver) Stale() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stale
}

// SendRequest fires the Stranger→RequestSent transition. It only fires
// from Stranger; from any other state it is a logged no-op. The transition
// is optimistic: any successful response moves the state, whatever message
// came back. A failed call leaves the state at Stranger.
func (r *Resolver) SendRequest(ctx context.Context) (string, error) {
	r.mu.Lock()
	if r.state != Stranger {
		state := r.state
		r.mu.Unlock()
		log.Printf("relation: ignoring send request to user %d while %s", r.subjectID, state)
		return "", nil
	}
	r.mu.Unlock()

	message, err := r.api.SendFriendRequest(ctx, r.subjectID)
	if err != nil {
		log.Printf("relation: send request to user %d failed: %v", r.subjectID, err)
		return "", err
	}

	r.mu.Lock()
	if r.state == Stranger {
		r.state = RequestSent
	}
	r.mu.Unlock()

	return message, nil
}

// Unfriend fires the Friend→Stranger transition, applied only after the
// service confirms the removal. From any state but Friend it is a no-op.
func (r *Resolver) Unfriend(ctx context.Context) error {
	r.mu.Lock()
	if r.state != Friend {
		state := r.state
		r.mu.Unlock()
		log.Printf("relation: ignoring unfriend of user %d while %s", r.subjectID, state)
		return nil
	}
	r.mu.Unlock()

	detail, err := r.api.Unfriend(ctx, r.subjectID)
	if err != nil {
		log.Printf("relation: unfriend of user %d failed: %v", r.subjectID, err)
		return err
	}

	r.mu.Lock()
	if r.state == Friend {
		r.state = Stranger
	}
	r.mu.Unlock()

	log.Printf("relation: %s", detail)
	return nil
}

// Watch re-resolves periodically until ctx is cancelled, so a profile view
// can observe acceptance by the other side without a manual reload. A
// small random jitter keeps many open views from re-resolving in lockstep.
// interval <= 0 disables polling; the view then relies on MarkStale plus a
// manual Resolve.
func (r *Resolver) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
		for {
			wait := interval
			if n := int64(interval / 5); n > 0 {
				wait += time.Duration(rng.Int63n(n))
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
				if _, err := r.Resolve(ctx); err != nil {
					log.Printf("relation: periodic re-resolve of user %d failed: %v", r.subjectID, err)
				}
			}
		}
	}()
}
