package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shop-backend/internal/apperr"
	"shop-backend/internal/core/auth"
	"shop-backend/internal/domain"
	"shop-backend/pkg/utils"
)

func testJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "shop-backend", TTL: 4 * time.Hour}
}

func newUserSvc() (*UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUserService(repo, testJWTer(), bcrypt.MinCost), repo
}

func TestSignupThenLogin(t *testing.T) {
	svc, repo := newUserSvc()

	out, err := svc.Signup(SignupInput{Name: "alice", Email: "Alice@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "alice@example.com", out.Email)
	assert.Equal(t, domain.RoleUser, out.Role)

	stored, err := repo.FindByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, utils.CheckPassword("secret1", stored.PasswordHash))

	logged, err := svc.Login("alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, out.ID, logged.ID)

	_, err = svc.Login("alice@example.com", "wrongpw")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidCredentials))

	_, err = svc.Login("nobody@example.com", "secret1")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidCredentials))
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newUserSvc()

	_, err := svc.Signup(SignupInput{Name: "alice", Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Signup(SignupInput{Name: "bob", Email: "a@b.com", Password: "secret2"})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestListExcludesAdmins(t *testing.T) {
	svc, repo := newUserSvc()

	_, err := svc.Signup(SignupInput{Name: "alice", Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(&domain.User{ID: utils.NewID(), Name: "root", Email: "root@b.com", Role: domain.RoleAdmin}))

	users, err := svc.List()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@b.com", users[0].Email)
}

func TestGetUser(t *testing.T) {
	svc, _ := newUserSvc()

	_, err := svc.Get("not-a-uuid")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Get(utils.NewID())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateUserPartialMerge(t *testing.T) {
	svc, repo := newUserSvc()

	out, err := svc.Signup(SignupInput{Name: "alice", Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	before, _ := repo.FindByID(out.ID)

	about := "hello"
	u, err := svc.Update(out.ID, UpdateUserInput{About: &about})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Name)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, "hello", u.About)
	// password untouched when not supplied
	after, _ := repo.FindByID(out.ID)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	// a supplied password is stored hashed, never verbatim
	newPw := "newsecret"
	_, err = svc.Update(out.ID, UpdateUserInput{Password: &newPw})
	require.NoError(t, err)
	after, _ = repo.FindByID(out.ID)
	assert.NotEqual(t, "newsecret", after.PasswordHash)
	assert.True(t, utils.CheckPassword("newsecret", after.PasswordHash))
}

func TestUpdateUserRole(t *testing.T) {
	svc, _ := newUserSvc()

	out, err := svc.Signup(SignupInput{Name: "alice", Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	bad := "superuser"
	_, err = svc.Update(out.ID, UpdateUserInput{Role: &bad})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	admin := domain.RoleAdmin
	u, err := svc.Update(out.ID, UpdateUserInput{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newUserSvc()

	assert.True(t, apperr.IsKind(svc.Delete("bogus"), apperr.KindValidation))
	assert.True(t, apperr.IsKind(svc.Delete(utils.NewID()), apperr.KindNotFound))

	out, err := svc.Signup(SignupInput{Name: "alice", Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(out.ID))

	_, err = svc.Get(out.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
