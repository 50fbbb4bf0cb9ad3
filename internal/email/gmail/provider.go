// Package gmail implements email.Provider on the Gmail REST API. Each call
// starts from the caller's refresh token; nothing is held between calls.
package gmail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/googleapi"

	"github.com/meadbax/hub/internal/email"
)

const inboxQuery = "in:inbox"

// Provider implements the email.Provider interface for Gmail
type Provider struct {
	oauth    *oauth2.Config
	opts     email.Options
	endpoint string
	now      func() time.Time
}

// Option customizes a Provider
type Option func(*Provider)

// WithEndpoint points the client at another API base URL
func WithEndpoint(url string) Option {
	return func(p *Provider) { p.endpoint = url }
}

// WithClock replaces time.Now for relative labels
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// New creates a Gmail provider. cfg supplies the client credentials and the
// token endpoint used for refreshes.
func New(cfg *oauth2.Config, opts email.Options, options ...Option) *Provider {
	defaults := email.DefaultOptions()
	if opts.ListLimit <= 0 {
		opts.ListLimit = defaults.ListLimit
	}
	if opts.DetailLimit <= 0 {
		opts.DetailLimit = defaults.DetailLimit
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaults.Concurrency
	}
	if opts.Location == nil {
		opts.Location = defaults.Location
	}

	p := &Provider{
		oauth: cfg,
		opts:  opts,
		now:   time.Now,
	}
	for _, o := range options {
		o(p)
	}
	return p
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "gmail"
}

// ListInbox lists the newest inbox ids and expands the first DetailLimit of
// them into summaries. Details are fetched in parallel; the result keeps the
// listing order. Any failed detail fails the whole listing.
func (p *Provider) ListInbox(ctx context.Context, refreshToken string) ([]email.Summary, error) {
	svc, err := p.service(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Users.Messages.List("me").
		Q(inboxQuery).
		MaxResults(int64(p.opts.ListLimit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	refs := resp.Messages
	if len(refs) > p.opts.DetailLimit {
		refs = refs[:p.opts.DetailLimit]
	}

	now := p.now()
	summaries := make([]email.Summary, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)

	for i, ref := range refs {
		g.Go(func() error {
			msg, err := svc.Users.Messages.Get("me", ref.Id).
				Format("metadata").
				MetadataHeaders("Subject", "From", "Date").
				Context(gctx).
				Do()
			if err != nil {
				return fmt.Errorf("failed to fetch message %s: %w", ref.Id, err)
			}
			summaries[i] = summarize(msg, now, p.opts.Location)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetMessage fetches one message in full and decodes its bodies
func (p *Provider) GetMessage(ctx context.Context, refreshToken, id string) (*email.Detail, error) {
	svc, err := p.service(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	msg, err := svc.Users.Messages.Get("me", id).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		if isNotFound(err) {
			return nil, email.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return detail(msg, p.opts.Location), nil
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == 404
}

var _ email.Provider = (*Provider)(nil)
