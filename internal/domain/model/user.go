package model

// Level governs access to administrative capabilities.
type Level string

const (
	LevelAdmin    Level = "admin"
	LevelOperator Level = "operador"
)

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	return l == LevelAdmin || l == LevelOperator
}

// User is an account able to sign in and record withdrawals.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Level        Level
}

// IsAdmin reports whether the user has administrative level.
func (u User) IsAdmin() bool {
	return u.Level == LevelAdmin
}

// Identity is the authenticated caller as carried by a session token.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Level  Level
}

// IsAdmin reports whether the identity belongs to an administrator.
func (i Identity) IsAdmin() bool {
	return i.Level == LevelAdmin
}

// Identity returns the session view of the user.
func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Level: u.Level}
}
