package model

// TokenBackend persists the session token across restarts. Implementations
// must treat an absent token as the empty string, not an error.
type TokenBackend interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
