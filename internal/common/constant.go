package common

// Storage keys for the persisted session. These names must stay stable
// across versions: changing either one invalidates every existing session.
const (
	UserStorageKey  = "auth_user"
	TokenStorageKey = "auth_token"
)
