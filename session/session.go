package session

import "time"

// Session is the live credential used to authorise Search Console queries.
// It is owned by the auth.Manager; a fetcher borrows it for the duration of
// one fetch and never mutates or persists it.
type Session struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
}

// Valid reports whether the session can authorise a request at time now:
// it holds an access token and has not expired.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return false
	}
	if s.Expiry.IsZero() {
		return true
	}
	return now.Before(s.Expiry)
}
