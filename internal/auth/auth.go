// Package auth checks interactive login credentials against the stored user
// records. Passwords are persisted as bcrypt hashes, never in the clear.
package auth

import "golang.org/x/crypto/bcrypt"

// User is a single login record from the users file.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Verify reports whether the username/password pair matches one of the known
// users.
func Verify(username, password string, users []User) bool {
	for _, u := range users {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
			return true
		}
	}

	return false
}
