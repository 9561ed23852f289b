package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pinehollow/cabin-bookings/internal/domain"
)

// Identity is what the provider vouches for: a stable subject identifier
// plus the profile attributes the booking site displays.
type Identity struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	FullName  string `json:"name"`
	AvatarURL string `json:"picture"`
}

// Provider verifies a token issued by the third-party identity provider
// and returns the identity behind it.
type Provider interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// HTTPProvider resolves identities against an OIDC userinfo endpoint.
// The provider itself is an opaque collaborator; all this client does is
// present the bearer token and decode the standard claims.
type HTTPProvider struct {
	userinfoURL string
	client      *http.Client
}

func NewHTTPProvider(userinfoURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		userinfoURL: userinfoURL,
		client:      &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) Verify(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: identity provider rejected token", domain.ErrUnauthenticated)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("identity provider returned status %d", res.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(res.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("decode userinfo response: %w", err)
	}
	if id.Subject == "" || id.Email == "" {
		return nil, fmt.Errorf("%w: identity provider response missing subject or email", domain.ErrUnauthenticated)
	}

	return &id, nil
}
