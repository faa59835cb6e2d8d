package relation

import (
	"context"
	"errors"
	"testing"

	"smartsimon/client/api"
)

type stubAPI struct {
	user           *api.User
	getErr         error
	sendMessage    string
	sendErr        error
	unfriendDetail string
	unfriendErr    error

	sends     int
	unfriends int
}

func (s *stubAPI) GetUser(ctx context.Context, userID int) (*api.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.user, nil
}

func (s *stubAPI) SendFriendRequest(ctx context.Context, receiverID int) (string, error) {
	s.sends++
	if s.sendErr != nil {
		return "", s.sendErr
	}
	return s.sendMessage, nil
}

func (s *stubAPI) Unfriend(ctx context.Context, friendID int) (string, error) {
	s.unfriends++
	if s.unfriendErr != nil {
		return "", s.unfriendErr
	}
	return s.unfriendDetail, nil
}

func TestResolveClassifications(t *testing.T) {
	testCases := []struct {
		name      string
		viewerID  int
		subjectID int
		isFriend  bool
		want      State
	}{
		{"stranger", 1, 42, false, Stranger},
		{"friend", 1, 42, true, Friend},
		{"self", 1, 1, false, Self},
		{"self wins over is_friend", 1, 1, true, Self},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAPI{user: &api.User{ID: tc.subjectID, IsFriend: tc.isFriend}}
			r := NewResolver(stub, tc.viewerID, tc.subjectID)

			state, err := r.Resolve(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if state != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, state)
			}
		})
	}
}

func TestResolveFailureLeavesUnknown(t *testing.T) {
	stub := &stubAPI{getErr: errors.New("boom")}
	r := NewResolver(stub, 1, 42)

	if _, err := r.Resolve(context.Background()); err == nil {
		t.Fatalf("expected the fetch error to propagate")
	}
	if r.State() != Unknown {
		t.Errorf("expected Unknown before a successful resolve, got %s", r.State())
	}
}

// Sending a request moves the view to request-sent, but a fresh resolve
// reports whatever the server says, and the server has no outgoing-pending
// indicator: the state reverts to stranger. Documented behavior.
func TestSendRequestThenReResolveReverts(t *testing.T) {
	stub := &stubAPI{
		user:        &api.User{ID: 42, IsFriend: false},
		sendMessage: "Friend request sent successfully",
	}
	r := NewResolver(stub, 1, 42)

	if state, _ := r.Resolve(context.Background()); state != Stranger {
		t.Fatalf("expected Stranger, got %s", state)
	}

	message, err := r.SendRequest(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if message != "Friend request sent successfully" {
		t.Errorf("expected the server message back, got %q", message)
	}
	if r.State() != RequestSent {
		t.Fatalf("expected RequestSent after a successful send, got %s", r.State())
	}

	if state, _ := r.Resolve(context.Background()); state != Stranger {
		t.Fatalf("expected a fresh resolve to revert to Stranger, got %s", state)
	}
}

func TestSendRequestOnlyFiresFromStranger(t *testing.T) {
	stub := &stubAPI{user: &api.User{ID: 42, IsFriend: true}}
	r := NewResolver(stub, 1, 42)
	r.Resolve(context.Background())

	if _, err := r.SendRequest(context.Background()); err != nil {
		t.Fatalf("expected a silent no-op, got %v", err)
	}
	if stub.sends != 0 {
		t.Errorf("expected no call to the service from Friend, got %d", stub.sends)
	}
	if r.State() != Friend {
		t.Errorf("expected Friend untouched, got %s", r.State())
	}
}

func TestSendRequestFailureStaysStranger(t *testing.T) {
	stub := &stubAPI{
		user:    &api.User{ID: 42, IsFriend: false},
		sendErr: errors.New("connection refused"),
	}
	r := NewResolver(stub, 1, 42)
	r.Resolve(context.Background())

	if _, err := r.SendRequest(context.Background()); err == nil {
		t.Fatalf("expected the transport error to propagate")
	}
	if r.State() != Stranger {
		t.Errorf("expected Stranger after a failed send, got %s", r.State())
	}
}

func TestUnfriendThenSendRequest(t *testing.T) {
	stub := &stubAPI{
		user:           &api.User{ID: 7, IsFriend: true},
		unfriendDetail: "Successfully unfriended user with ID 7",
		sendMessage:    "Friend request sent successfully",
	}
	r := NewResolver(stub, 1, 7)
	r.Resolve(context.Background())

	if err := r.Unfriend(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if r.State() != Stranger {
		t.Fatalf("expected Stranger after unfriend, got %s", r.State())
	}

	// the pair is strangers again, so a new request is permitted
	if _, err := r.SendRequest(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if r.State() != RequestSent {
		t.Errorf("expected RequestSent, got %s", r.State())
	}
}

func TestUnfriendIsNoOpWhenNotFriend(t *testing.T) {
	stub := &stubAPI{user: &api.User{ID: 42, IsFriend: false}}
	r := NewResolver(stub, 1, 42)
	r.Resolve(context.Background())

	if err := r.Unfriend(context.Background()); err != nil {
		t.Fatalf("expected a silent no-op, got %v", err)
	}
	if stub.unfriends != 0 {
		t.Errorf("expected no call to the service from Stranger, got %d", stub.unfriends)
	}
}

func TestUnfriendFailureKeepsFriend(t *testing.T) {
	stub := &stubAPI{
		user:        &api.User{ID: 42, IsFriend: true},
		unfriendErr: errors.New("boom"),
	}
	r := NewResolver(stub, 1, 42)
	r.Resolve(context.Background())

	if err := r.Unfriend(context.Background()); err == nil {
		t.Fatalf("expected the service error to propagate")
	}
	if r.State() != Friend {
		t.Errorf("expected Friend kept until the service confirms, got %s", r.State())
	}
}

func TestMarkStaleClearedByResolve(t *testing.T) {
	stub := &stubAPI{user: &api.User{ID: 42}}
	r := NewResolver(stub, 1, 42)
	r.Resolve(context.Background())

	r.MarkStale()
	if !r.Stale() {
		t.Fatalf("expected the stale flag set")
	}
	r.Resolve(context.Background())
	if r.Stale() {
		t.Errorf("expected resolve to clear the stale flag")
	}
}
