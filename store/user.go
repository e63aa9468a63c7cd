package store

// User is a registered account, created either locally (email + password) or
// through the GitHub OAuth flow (password hash empty, github id set).
type User struct {
	ID              int32
	Email           string
	Username        string
	PasswordHash    string
	GithubID        string
	GithubAvatarURL string
	CreatedTs       int64
	UpdatedTs       int64
}

// Provider reports how the account authenticates.
func (u *User) Provider() string {
	if u.GithubID != "" {
		return "github"
	}
	return "local"
}

type FindUser struct {
	ID       *int32
	Email    *string
	Username *string
	GithubID *string
}

type UpdateUser struct {
	ID              int32
	Username        *string
	PasswordHash    *string
	GithubID        *string
	GithubAvatarURL *string
	UpdatedTs       *int64
}

type DeleteUser struct {
	ID int32
}
