package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/seolab/gapscout/auth"
	"github.com/seolab/gapscout/session"
	"github.com/seolab/gapscout/session/storefakes"
)

const (
	testClientID     = "test-client-1"
	testClientSecret = "test-secret-1"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

type managerFixture struct {
	store         *storefakes.FakeStore
	refreshCalls  int
	exchangeCalls int
	refreshErr    error
	exchangeErr   error
	manager       *auth.Manager
}

func setupManager(t *testing.T) *managerFixture {
	t.Helper()

	f := &managerFixture{store: storefakes.NewFakeStore()}

	manager, err := auth.NewManager(f.store, auth.Config{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
	},
		auth.WithNowTime(func() time.Time { return testNow }),
		auth.WithRefreshFunc(func(_ context.Context, sess *session.Session) (*session.Session, error) {
			f.refreshCalls++
			if f.refreshErr != nil {
				return nil, f.refreshErr
			}
			return &session.Session{
				AccessToken: "refreshed-token",
				Expiry:      testNow.Add(time.Hour),
			}, nil
		}),
		auth.WithExchangeFunc(func(_ context.Context, code string) (*session.Session, error) {
			f.exchangeCalls++
			if f.exchangeErr != nil {
				return nil, f.exchangeErr
			}
			return &session.Session{
				AccessToken:  "exchanged-token",
				RefreshToken: "refresh-token",
				Expiry:       testNow.Add(time.Hour),
			}, nil
		}),
	)
	require.NoError(t, err)

	f.manager = manager
	return f
}

func TestNewManager_Validation(t *testing.T) {
	t.Run("missing store", func(t *testing.T) {
		_, err := auth.NewManager(nil, auth.Config{ClientID: testClientID})
		require.Error(t, err)
	})

	t.Run("missing client ID", func(t *testing.T) {
		_, err := auth.NewManager(storefakes.NewFakeStore(), auth.Config{})
		require.Error(t, err)
	})
}

func TestManager_GetSession(t *testing.T) {
	t.Run("no stored session requires authorization", func(t *testing.T) {
		f := setupManager(t)

		_, err := f.manager.GetSession(context.Background())

		var authErr *auth.AuthenticationRequiredError
		require.ErrorAs(t, err, &authErr)
		require.Contains(t, authErr.AuthURL, "access_type=offline")
		require.Contains(t, authErr.AuthURL, "prompt=consent")
	})

	t.Run("valid stored session returned without refresh", func(t *testing.T) {
		f := setupManager(t)
		f.store.Seed(&session.Session{
			AccessToken:  "stored-token",
			RefreshToken: "refresh-token",
			Expiry:       testNow.Add(time.Hour),
		})

		sess, err := f.manager.GetSession(context.Background())
		require.NoError(t, err)
		require.Equal(t, "stored-token", sess.AccessToken)
		require.Zero(t, f.refreshCalls)
		require.Zero(t, f.exchangeCalls)

		// Repeat call stays idempotent.
		again, err := f.manager.GetSession(context.Background())
		require.NoError(t, err)
		require.Equal(t, sess, again)
		require.Zero(t, f.refreshCalls)
	})

	t.Run("expired session with refresh token is refreshed and persisted", func(t *testing.T) {
		f := setupManager(t)
		f.store.Seed(&session.Session{
			AccessToken:  "stale-token",
			RefreshToken: "refresh-token",
			Expiry:       testNow.Add(-time.Minute),
		})

		sess, err := f.manager.GetSession(context.Background())
		require.NoError(t, err)
		require.Equal(t, "refreshed-token", sess.AccessToken)
		require.Equal(t, 1, f.refreshCalls)
		require.Equal(t, 1, f.store.SaveCalls)

		// The refresh response omitted the refresh token; the old one carries
		// forward so the session stays refreshable.
		require.Equal(t, "refresh-token", sess.RefreshToken)
		require.Equal(t, "refresh-token", f.store.Stored().RefreshToken)
	})

	t.Run("expired session without refresh token requires authorization", func(t *testing.T) {
		f := setupManager(t)
		f.store.Seed(&session.Session{
			AccessToken: "stale-token",
			Expiry:      testNow.Add(-time.Minute),
		})

		_, err := f.manager.GetSession(context.Background())

		var authErr *auth.AuthenticationRequiredError
		require.ErrorAs(t, err, &authErr)
		require.Zero(t, f.refreshCalls)
	})

	t.Run("refresh failure falls back to authorization without deleting the stored session", func(t *testing.T) {
		f := setupManager(t)
		f.refreshErr = errors.New("refresh rejected")
		f.store.Seed(&session.Session{
			AccessToken:  "stale-token",
			RefreshToken: "refresh-token",
			Expiry:       testNow.Add(-time.Minute),
		})

		_, err := f.manager.GetSession(context.Background())

		var authErr *auth.AuthenticationRequiredError
		require.ErrorAs(t, err, &authErr)
		require.Equal(t, 1, f.refreshCalls)
		require.NotNil(t, f.store.Stored())
		require.Equal(t, "stale-token", f.store.Stored().AccessToken)
	})

	t.Run("persistence failure does not fail the transition", func(t *testing.T) {
		f := setupManager(t)
		f.store.Seed(&session.Session{
			AccessToken:  "stale-token",
			RefreshToken: "refresh-token",
			Expiry:       testNow.Add(-time.Minute),
		})
		f.store.SaveErr = errors.New("disk full")

		sess, err := f.manager.GetSession(context.Background())
		require.NoError(t, err)
		require.Equal(t, "refreshed-token", sess.AccessToken)

		// The in-memory session stays usable on subsequent calls.
		again, err := f.manager.GetSession(context.Background())
		require.NoError(t, err)
		require.Equal(t, sess, again)
	})
}

func TestManager_Exchange(t *testing.T) {
	t.Run("successful exchange persists and activates the session", func(t *testing.T) {
		f := setupManager(t)

		sess, err := f.manager.Exchange(context.Background(), "one-time-code")
		require.NoError(t, err)
		require.Equal(t, "exchanged-token", sess.AccessToken)
		require.Equal(t, 1, f.store.SaveCalls)

		got, err := f.manager.GetSession(context.Background())
		require.NoError(t, err)
		require.Equal(t, sess, got)
	})

	t.Run("failed exchange is transient and retryable", func(t *testing.T) {
		f := setupManager(t)
		f.exchangeErr = errors.New("code already redeemed")

		_, err := f.manager.Exchange(context.Background(), "bad-code")
		require.ErrorIs(t, err, auth.ErrAuthenticationFailed)

		// Still awaiting a user code.
		_, err = f.manager.GetSession(context.Background())
		var authErr *auth.AuthenticationRequiredError
		require.ErrorAs(t, err, &authErr)

		// A fresh code succeeds.
		f.exchangeErr = nil
		_, err = f.manager.Exchange(context.Background(), "fresh-code")
		require.NoError(t, err)
	})
}
