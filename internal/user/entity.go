// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/drycleaning-api/internal/auth"
)

type Account struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (a *Account) IsOwner() bool {
	return a.Role == auth.RoleOwner
}

const (
	emailConstraint       = "users_email_key"
	singleOwnerConstraint = "users_single_owner"
)
