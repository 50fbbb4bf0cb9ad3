// Package email holds the provider-agnostic mail types and the decoding that
// turns a provider's MIME tree into display-ready summaries and details.
package email

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotConnected means there is no usable refresh token: the cookie is
	// missing or the provider refused to mint an access token from it.
	ErrNotConnected = errors.New("not connected")

	// ErrNotFound means the message id is unknown to the mailbox
	ErrNotFound = errors.New("message not found")

	// ErrNotConfigured means the OAuth client id or secret is missing
	ErrNotConfigured = errors.New("mail provider not configured")
)

// Provider reads a mailbox on behalf of the holder of a refresh token. No
// credential is kept between calls.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// ListInbox returns the most recent inbox messages, newest first
	ListInbox(ctx context.Context, refreshToken string) ([]Summary, error)

	// GetMessage returns one message with its decoded bodies
	GetMessage(ctx context.Context, refreshToken, id string) (*Detail, error)
}

// Options configures a Provider
type Options struct {
	ListLimit   int            // ids requested from the inbox listing
	DetailLimit int            // ids expanded into summaries
	Concurrency int            // parallel detail fetches
	Location    *time.Location // zone used for labels and dates
}

// DefaultOptions returns the inbox limits used by the hub
func DefaultOptions() Options {
	return Options{
		ListLimit:   20,
		DetailLimit: 15,
		Concurrency: 5,
		Location:    time.Local,
	}
}
