package api

import "time"

// Friend represents a user summary as it appears in friends lists
type Friend struct {
	ID             int     `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email,omitempty"`
	ProfilePicture *string `json:"profile_picture"`
	BestScore      *int    `json:"best_score,omitempty"`
}

// Score is a single recorded game result
type Score struct {
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// User represents the full profile payload returned by /me and /user/{id}.
// IsFriend is only populated on /user/{id} responses.
type User struct {
	ID             int      `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	BestScore      *int     `json:"best_score"`
	ProfilePicture *string  `json:"profile_picture"`
	IsFriend       bool     `json:"is_friend"`
	Friends        []Friend `json:"friends"`
	Scores         []Score  `json:"scores"`
}

// FriendRequest is a directed pending edge between two users
type FriendRequest struct {
	ID                      int       `json:"id"`
	RequesterID             int       `json:"requester_id"`
	RequesterUsername       string    `json:"requester_username"`
	RequesterProfilePicture *string   `json:"requester_profile_picture"`
	ReceiverID              int       `json:"receiver_id"`
	ReceiverProfilePicture  *string   `json:"receiver_profile_picture"`
	Status                  string    `json:"status"`
	Timestamp               time.Time `json:"timestamp"`
}

// FriendRequests is the response body of GET /friend-requests/
type FriendRequests struct {
	SentRequests     []FriendRequest `json:"sent_requests"`
	ReceivedRequests []FriendRequest `json:"received_requests"`
}

// LeaderboardUser is a ranked entry from the leaderboard endpoints
type LeaderboardUser struct {
	ID             int     `json:"id"`
	Username       string  `json:"username"`
	BestScore      *int    `json:"best_score"`
	ProfilePicture *string `json:"profile_picture"`
}

// FriendRequestPayload is the request body for POST /friend-request/
type FriendRequestPayload struct {
	ReceiverID int `json:"receiver_id"`
}

// MessageResponse is the generic {"message": ...} success body
type MessageResponse struct {
	Message string `json:"message"`
}

// DetailResponse is the generic {"detail": ...} body used by unfriend
// responses and by service-side rejections
type DetailResponse struct {
	Detail string `json:"detail"`
}

// LoginResponse is the token envelope returned by POST /login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
