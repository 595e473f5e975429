package session

// Store persists a single opaque credential bundle. Implementations must
// round-trip the full Session shape losslessly, refresh token and expiry
// included.
type Store interface {
	Load() (*Session, error)
	Save(*Session) error
}
