package model

import (
	"time"

	"github.com/suar-net/iberbanco-go/internal/validation"
)

type AuthLogin struct {
	Username *string `mapstructure:"username"`
	Password *string `mapstructure:"password"`
}

func (d *AuthLogin) RequiredFields() []string {
	return []string{"username", "password"}
}

func (d *AuthLogin) fields() []field {
	return []field{
		opt("username", d.Username),
		opt("password", d.Password),
	}
}

func (d *AuthLogin) Validate(time.Time) error {
	if err := requireFields(d); err != nil {
		return err
	}
	if err := validation.Length(*d.Username, 3, 255, "username"); err != nil {
		return err
	}
	return validation.MinLength(*d.Password, 6, "password")
}

// String never prints the password.
func (d *AuthLogin) String() string {
	user := ""
	if d.Username != nil {
		user = *d.Username
	}
	return "AuthLogin{username: " + user + ", password: ***}"
}

// LoginResponse is the data block returned by a successful login.
type LoginResponse struct {
	Token     string `json:"token" mapstructure:"token"`
	ExpiresAt string `json:"expires_at,omitempty" mapstructure:"expires_at"`
}
