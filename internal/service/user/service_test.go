package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/contracthq/contracts-backend-go/internal/domain/contract"
	"github.com/contracthq/contracts-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo keeps users in memory, standing in for the postgres
// repository.
type fakeUserRepo struct {
	user.UserRepository

	users  map[string]user.User
	nextID int
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	f.nextID++
	newUser.ID = fmt.Sprintf("u%d", f.nextID)
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) (user.User, error) {
	if _, ok := f.users[u.ID]; !ok {
		return user.User{}, user.ErrUserNotFound
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = &passwordHash
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeContractRepo struct {
	contract.ContractRepository

	byEmployee map[string][]contract.Contract
}

func (f *fakeContractRepo) ListByEmployee(ctx context.Context, employeeID string) ([]contract.Contract, error) {
	return f.byEmployee[employeeID], nil
}

func hashOf(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(hash)
	return &s
}

func testUser(id, email string, role user.Role, passwordHash *string) user.User {
	return user.User{
		ID:           id,
		Name:         "User " + id,
		Email:        email,
		Role:         role,
		PasswordHash: passwordHash,
	}
}

func TestCreateUserDefaultsToEmployee(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, &fakeContractRepo{})

	created, err := svc.Create(context.Background(), user.CreateUserRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, user.RoleEmployee, created.Role)
	require.NotNil(t, created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte("s3cret-pass")))
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo(testUser("u1", "ana@example.com", user.RoleEmployee, nil))
	svc := NewService(repo, &fakeContractRepo{})

	_, err := svc.Create(context.Background(), user.CreateUserRequest{
		Name:     "Ana Again",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUpdateUserPartialFields(t *testing.T) {
	repo := newFakeUserRepo(testUser("u1", "ana@example.com", user.RoleEmployee, nil))
	svc := NewService(repo, &fakeContractRepo{})

	role := string(user.RoleAdmin)
	updated, err := svc.Update(context.Background(), user.UpdateUserRequest{
		ID:   "u1",
		Role: &role,
	})
	require.NoError(t, err)

	assert.Equal(t, user.RoleAdmin, updated.Role)
	// Untouched fields keep their current values.
	assert.Equal(t, "ana@example.com", updated.Email)
	assert.Equal(t, "User u1", updated.Name)
}

func TestUpdateUserRejectsTakenEmail(t *testing.T) {
	repo := newFakeUserRepo(
		testUser("u1", "ana@example.com", user.RoleEmployee, nil),
		testUser("u2", "bob@example.com", user.RoleEmployee, nil),
	)
	svc := NewService(repo, &fakeContractRepo{})

	email := "bob@example.com"
	_, err := svc.Update(context.Background(), user.UpdateUserRequest{
		ID:    "u1",
		Email: &email,
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	// Re-submitting the user's own email is not a conflict.
	same := "ana@example.com"
	_, err = svc.Update(context.Background(), user.UpdateUserRequest{
		ID:    "u1",
		Email: &same,
	})
	assert.NoError(t, err)
}

func TestChangeOwnPasswordVerifiesCurrent(t *testing.T) {
	repo := newFakeUserRepo(testUser("u1", "ana@example.com", user.RoleEmployee, hashOf(t, "old-password")))
	svc := NewService(repo, &fakeContractRepo{})

	err := svc.ChangePassword(context.Background(), "u1", user.RoleEmployee, user.ChangePasswordRequest{
		UserID:          "u1",
		CurrentPassword: "wrong-password",
		NewPassword:     "new-password",
	})
	assert.ErrorIs(t, err, user.ErrPasswordIncorrect)

	err = svc.ChangePassword(context.Background(), "u1", user.RoleEmployee, user.ChangePasswordRequest{
		UserID:          "u1",
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	})
	require.NoError(t, err)

	stored := repo.users["u1"]
	require.NotNil(t, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("new-password")))
}

func TestChangePasswordOAuthOnlyAccount(t *testing.T) {
	repo := newFakeUserRepo(testUser("u1", "ana@example.com", user.RoleEmployee, nil))
	svc := NewService(repo, &fakeContractRepo{})

	err := svc.ChangePassword(context.Background(), "u1", user.RoleEmployee, user.ChangePasswordRequest{
		UserID:      "u1",
		NewPassword: "new-password",
	})
	assert.ErrorIs(t, err, user.ErrPasswordIncorrect)
}

func TestAdminResetsPasswordWithoutCurrent(t *testing.T) {
	repo := newFakeUserRepo(
		testUser("admin", "hr@example.com", user.RoleAdmin, nil),
		testUser("u1", "ana@example.com", user.RoleEmployee, hashOf(t, "old-password")),
	)
	svc := NewService(repo, &fakeContractRepo{})

	err := svc.ChangePassword(context.Background(), "admin", user.RoleAdmin, user.ChangePasswordRequest{
		UserID:      "u1",
		NewPassword: "reset-password",
	})
	require.NoError(t, err)

	stored := repo.users["u1"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("reset-password")))
}

func TestChangePasswordForAnotherUserRequiresAdmin(t *testing.T) {
	repo := newFakeUserRepo(
		testUser("u1", "ana@example.com", user.RoleEmployee, nil),
		testUser("u2", "bob@example.com", user.RoleEmployee, hashOf(t, "old-password")),
	)
	svc := NewService(repo, &fakeContractRepo{})

	err := svc.ChangePassword(context.Background(), "u1", user.RoleEmployee, user.ChangePasswordRequest{
		UserID:      "u2",
		NewPassword: "hijacked",
	})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestGetWithContracts(t *testing.T) {
	repo := newFakeUserRepo(testUser("u1", "ana@example.com", user.RoleEmployee, nil))
	contracts := &fakeContractRepo{byEmployee: map[string][]contract.Contract{
		"u1": {{ID: "c1", EmployeeID: "u1"}, {ID: "c2", EmployeeID: "u1"}},
	}}
	svc := NewService(repo, contracts)

	u, list, err := svc.GetWithContracts(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Len(t, list, 2)

	_, _, err = svc.GetWithContracts(context.Background(), "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
