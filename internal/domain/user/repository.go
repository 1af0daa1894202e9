package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
	List(ctx context.Context) ([]User, error)

	// Update writes name, email and role. The service resolves partial
	// requests against the current row before calling.
	Update(ctx context.Context, u User) (User, error)
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
