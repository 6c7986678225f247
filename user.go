package userconfig

import (
	"context"

	j "github.com/goccy/go-json"
)

// User is a validated user record. Its fields are unexported: the only ways
// to obtain a non-zero User are the validators in this package, including
// UnmarshalJSON, which runs the same checks.
type User struct {
	id    string
	email string
	role  Role
}

func (u User) ID() string    { return u.id }
func (u User) Email() string { return u.email }
func (u User) Role() Role    { return u.role }

// wireUser is the JSON form of User.
type wireUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// MarshalJSON emits {"id","email","role"}.
func (u User) MarshalJSON() ([]byte, error) {
	return j.Marshal(wireUser{ID: u.id, Email: u.email, Role: u.role})
}

// UnmarshalJSON validates b with UserSchema and fails with Issues on any
// violation, leaving u untouched.
func (u *User) UnmarshalJSON(b []byte) error {
	v, err := ParseFrom(context.Background(), UserSchema(), JSONBytes(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}
