package gmail

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/meadbax/hub/internal/email"
)

// service mints a fresh access token from the refresh token and returns a
// Gmail client bound to it. The token is never cached; each call refreshes.
func (p *Provider) service(ctx context.Context, refreshToken string) (*gmail.Service, error) {
	if refreshToken == "" {
		return nil, email.ErrNotConnected
	}
	if p.oauth.ClientID == "" || p.oauth.ClientSecret == "" {
		return nil, email.ErrNotConfigured
	}

	source := p.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: refresh failed: %v", email.ErrNotConnected, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token", email.ErrNotConnected)
	}

	opts := []option.ClientOption{
		option.WithHTTPClient(oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))),
	}
	if p.endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.endpoint))
	}

	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return svc, nil
}
