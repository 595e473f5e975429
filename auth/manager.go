package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/seolab/gapscout/session"
)

// ScopeWebmastersReadonly is the Search Console scope requested during consent.
const ScopeWebmastersReadonly = "https://www.googleapis.com/auth/webmasters.readonly"

// Config carries the OAuth2 client registration used for the consent flow.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Manager owns the one active Session and decides whether to reuse, refresh,
// or re-acquire it. A stored session is restored on first use; an expired
// session with a refresh token is refreshed in place; everything else falls
// back to the out-of-band authorization-code exchange. A failed refresh never
// deletes the stored session.
type Manager struct {
	store    session.Store
	oauthCfg *oauth2.Config
	nowTime  func() time.Time
	refresh  func(ctx context.Context, sess *session.Session) (*session.Session, error)
	exchange func(ctx context.Context, code string) (*session.Session, error)

	current *session.Session
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithRefreshFunc overrides the token refresh call (primarily for testing).
func WithRefreshFunc(refresh func(ctx context.Context, sess *session.Session) (*session.Session, error)) ManagerOption {
	return func(m *Manager) {
		m.refresh = refresh
	}
}

// WithExchangeFunc overrides the authorization-code exchange call (primarily
// for testing).
func WithExchangeFunc(exchange func(ctx context.Context, code string) (*session.Session, error)) ManagerOption {
	return func(m *Manager) {
		m.exchange = exchange
	}
}

// NewManager initializes a Manager with its session store and OAuth2 client
// registration.
func NewManager(store session.Store, cfg Config, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] store is required")
	}
	if cfg.ClientID == "" {
		return nil, errors.New("[NewManager] client ID is required")
	}

	m := &Manager{
		store: store,
		oauthCfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{ScopeWebmastersReadonly},
			Endpoint:     google.Endpoint,
		},
		nowTime: time.Now,
	}
	m.refresh = m.refreshWithOAuth
	m.exchange = m.exchangeWithOAuth

	for _, opt := range options {
		opt(m)
	}

	return m, nil
}

// GetSession returns a valid session. A valid unexpired session is returned
// as-is without touching the network. An expired session with a refresh token
// is refreshed and persisted. When neither is possible the caller receives an
// *AuthenticationRequiredError carrying the consent URL for the out-of-band
// code exchange.
func (m *Manager) GetSession(ctx context.Context) (*session.Session, error) {
	if m.current == nil {
		stored, err := m.store.Load()
		if err != nil {
			log.Debug().Err(err).Msg("no stored session")
		} else {
			m.current = stored
		}
	}

	if m.current == nil {
		return nil, &AuthenticationRequiredError{AuthURL: m.AuthURL()}
	}

	if m.current.Valid(m.nowTime()) {
		return m.current, nil
	}

	if m.current.RefreshToken == "" {
		return nil, &AuthenticationRequiredError{AuthURL: m.AuthURL()}
	}

	refreshed, err := m.refresh(ctx, m.current)
	if err != nil {
		log.Warn().Err(err).Msg("session refresh failed, re-authorization required")
		return nil, &AuthenticationRequiredError{AuthURL: m.AuthURL()}
	}
	// Refresh responses may omit the refresh token; carry the old one forward.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = m.current.RefreshToken
	}

	m.current = refreshed
	m.persist(refreshed)
	return m.current, nil
}

// Exchange redeems a one-time authorization code obtained out of band. On
// success the new session is persisted and becomes the active one. On failure
// the error wraps ErrAuthenticationFailed and the whole exchange may be
// retried with a fresh code.
func (m *Manager) Exchange(ctx context.Context, code string) (*session.Session, error) {
	sess, err := m.exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrapf(ErrAuthenticationFailed, "[Manager.Exchange] %v", err)
	}
	m.current = sess
	m.persist(sess)
	return sess, nil
}

// AuthURL returns the consent URL the user visits to obtain an authorization
// code. Offline access is requested so the session carries a refresh token.
func (m *Manager) AuthURL() string {
	return m.oauthCfg.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
}

// persist writes the session through the store. A persistence failure is
// logged but does not fail the transition: the in-memory session stays usable
// for the current process lifetime and storage catches up on the next save.
func (m *Manager) persist(sess *session.Session) {
	if err := m.store.Save(sess); err != nil {
		log.Error().Err(err).Msg("failed to persist session")
	}
}

func (m *Manager) refreshWithOAuth(ctx context.Context, sess *session.Session) (*session.Session, error) {
	src := m.oauthCfg.TokenSource(ctx, &oauth2.Token{
		AccessToken:  sess.AccessToken,
		TokenType:    sess.TokenType,
		RefreshToken: sess.RefreshToken,
		Expiry:       sess.Expiry,
	})
	tok, err := src.Token()
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.refreshWithOAuth] TokenSource.Token")
	}
	return fromToken(tok), nil
}

func (m *Manager) exchangeWithOAuth(ctx context.Context, code string) (*session.Session, error) {
	tok, err := m.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.exchangeWithOAuth] oauthCfg.Exchange")
	}
	return fromToken(tok), nil
}

func fromToken(tok *oauth2.Token) *session.Session {
	return &session.Session{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}
}
