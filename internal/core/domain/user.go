package domain

import "errors"

var ErrUserNotFound = errors.New("email not found")
var ErrInvalidCredentials = errors.New("incorrect password")
var ErrEmailTaken = errors.New("email already registered")

// User models a registered account. Password always holds the bcrypt hash,
// never the plaintext, and is excluded from any rendered view.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// Password is the bcrypt hash of the account password.
	Password string `json:"-"`
}
