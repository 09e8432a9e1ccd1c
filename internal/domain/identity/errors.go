package identity

import (
	"errors"
	"fmt"

	"pet-grooming/internal/ports/auth"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleMismatch       = errors.New("access denied")
	ErrProvider           = errors.New("identity provider error")
)

func roleMismatch(role auth.Role) error {
	label := "ADMIN"
	if role == auth.RoleClient {
		label = "CLIENT"
	}
	return fmt.Errorf("%w: user is not %s", ErrRoleMismatch, label)
}
