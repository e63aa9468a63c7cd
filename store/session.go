package store

// Session is a server-side login session. Only the SHA-256 hash of the
// opaque session token is stored; the raw token lives in the client cookie.
type Session struct {
	ID        int32
	UserID    int32
	TokenHash string
	CreatedTs int64
	ExpiresTs int64
}

type FindSession struct {
	ID        *int32
	UserID    *int32
	TokenHash *string
}

type DeleteSession struct {
	ID        *int32
	UserID    *int32
	TokenHash *string
}
