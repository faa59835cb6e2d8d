// Package composer sends new friend requests by target username and
// surfaces the service's acceptance or rejection message.
package composer

import (
	"context"
	"errors"
	"log"
	"sync"

	"smartsimon/client/api"
)

// FailureMessage is shown when the request never reached the service
const FailureMessage = "Failed to send request."

// fallbackMessage covers a 2xx response with an empty message body
const fallbackMessage = "Friend request sent!"

// API is the slice of the service client the composer needs
type API interface {
	SendFriendRequestByUsername(ctx context.Context, username string) (string, error)
}

// Composer sends requests by free-form username. Nothing is validated
// locally: unknown names, self-requests and duplicates all come back as
// service messages and are surfaced verbatim. Repeated sends are not
// debounced; the service arbitrates duplicates.
type Composer struct {
	api API

	mu     sync.Mutex
	status string
}

// New creates a composer backed by the given client
func New(a API) *Composer {
	return &Composer{api: a}
}

// SendByUsername sends a request to the named user and returns the message
// to display: the service's own message on any response that carried one,
// or the fixed failure message when the call never got through.
func (c *Composer) SendByUsername(ctx context.Context, username string) string {
	message, err := c.api.SendFriendRequestByUsername(ctx, username)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			return c.setStatus(apiErr.Detail)
		}
		log.Printf("composer: send to %q failed: %v", username, err)
		return c.setStatus(FailureMessage)
	}

	if message == "" {
		message = fallbackMessage
	}
	return c.setStatus(message)
}

// Status returns the message from the most recent send, empty before the
// first one
func (c *Composer) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Composer) setStatus(message string) string {
	c.mu.Lock()
	c.status = message
	c.mu.Unlock()
	return message
}
