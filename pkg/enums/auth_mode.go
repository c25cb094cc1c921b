package enums

import "fmt"

// AuthMode selects which form the auth modal shows.
type AuthMode string

const (
	AuthModeLogin  AuthMode = "login"
	AuthModeSignup AuthMode = "signup"
)

// String implements fmt.Stringer.
func (m AuthMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known AuthMode.
func (m AuthMode) IsValid() bool {
	return m == AuthModeLogin || m == AuthModeSignup
}

// ParseAuthMode converts raw input into an AuthMode.
func ParseAuthMode(value string) (AuthMode, error) {
	switch AuthMode(value) {
	case AuthModeLogin:
		return AuthModeLogin, nil
	case AuthModeSignup:
		return AuthModeSignup, nil
	}
	return "", fmt.Errorf("invalid auth mode %q", value)
}
