package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"smartsimon/client/session"
)

// Client is the typed HTTP client for the Smart Simon service. All
// authenticated calls send the session's bearer token and return
// ErrUnauthorized without touching the network once the session is known
// to be expired.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *session.Session
}

// New creates a client for the service at baseURL. The session may be nil
// until Login succeeds.
func New(baseURL string, sess *session.Session) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Session:    sess,
	}
}

// Login authenticates with the service's OAuth2 password form and installs
// the resulting session on the client. This is the session bootstrap
// boundary; everything else in the module assumes a live session.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var body LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}

	sess, err := session.FromToken(body.AccessToken)
	if err != nil {
		return nil, err
	}
	c.Session = sess
	return sess, nil
}

// Logout tears the session down. In-flight calls are left to fail on their
// own; nothing is cancelled here.
func (c *Client) Logout() {
	c.Session = nil
}

// GetFriendRequests retrieves the pending requests addressed to and sent by
// the current user
func (c *Client) GetFriendRequests(ctx context.Context) (*FriendRequests, error) {
	var out FriendRequests
	if err := c.do(ctx, http.MethodGet, "/friend-requests/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptFriendRequest converts the identified request into a friendship edge
func (c *Client) AcceptFriendRequest(ctx context.Context, requestID int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/friend-requests/%d/accept", requestID), nil, nil, nil)
}

// DeleteFriendRequest discards the identified request with no edge created
func (c *Client) DeleteFriendRequest(ctx context.Context, requestID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/friend-requests/%d/delete", requestID), nil, nil, nil)
}

// SendFriendRequest creates a pending request to the given user id and
// returns the server's message
func (c *Client) SendFriendRequest(ctx context.Context, receiverID int) (string, error) {
	var out MessageResponse
	err := c.do(ctx, http.MethodPost, "/friend-request/", nil, FriendRequestPayload{ReceiverID: receiverID}, &out)
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

// SendFriendRequestByUsername resolves the target by username server-side.
// The username is sent as-is; unknown names come back as a 200 with a
// message rather than an error.
func (c *Client) SendFriendRequestByUsername(ctx context.Context, username string) (string, error) {
	query := url.Values{}
	query.Set("username", username)

	var out MessageResponse
	err := c.do(ctx, http.MethodPost, "/friend-request-by-username/", query, nil, &out)
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

// Unfriend removes the friendship edge with the given user and returns the
// server's confirmation detail
func (c *Client) Unfriend(ctx context.Context, friendID int) (string, error) {
	var out DetailResponse
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/unfriend/%d/", friendID), nil, nil, &out)
	if err != nil {
		return "", err
	}
	return out.Detail, nil
}

// GetMe fetches the current user's own profile, friends list included
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches another user's profile. The response carries the
// server-computed is_friend flag relative to the current user.
func (c *Client) GetUser(ctx context.Context, userID int) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/user/%d", userID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTopScores returns the ten best-scoring users
func (c *Client) GetTopScores(ctx context.Context) ([]LeaderboardUser, error) {
	var out []LeaderboardUser
	if err := c.do(ctx, http.MethodGet, "/leaderboard/top-scores", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTopPlayers returns the five best-scoring users
func (c *Client) GetTopPlayers(ctx context.Context) ([]LeaderboardUser, error) {
	var out []LeaderboardUser
	if err := c.do(ctx, http.MethodGet, "/leaderboard/top-players", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do issues one authenticated call. The session is checked before the
// request goes out so an expired credential fails fast as ErrUnauthorized.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if !c.Session.Valid() {
		return ErrUnauthorized
	}

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.Session.Bearer())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
	}
	return nil
}
