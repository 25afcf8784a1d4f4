package service

import (
	"context"
	"testing"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService() (*AuthService, *fakeCustomerRepo, *fakeAdminRepo) {
	customers := newFakeCustomerRepo()
	admins := newFakeAdminRepo()
	svc := NewAuthService(customers, admins, []byte("test-secret"), 7*24*time.Hour, zap.NewNop().Sugar())
	return svc, customers, admins
}

func TestRegisterAndLoginCustomer(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	customer, err := svc.RegisterCustomer(ctx, "Priya", "priya@svce.edu.in", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, customer.ID)
	assert.NotEqual(t, "hunter22", customer.Password, "password must be stored hashed")

	token, logged, err := svc.LoginCustomer(ctx, "priya@svce.edu.in", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, customer.ID, logged.ID)
}

func TestLogin_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.RegisterCustomer(ctx, "Priya", "priya@svce.edu.in", "hunter22")
	require.NoError(t, err)

	_, _, errWrongPass := svc.LoginCustomer(ctx, "priya@svce.edu.in", "not-it")
	_, _, errNoUser := svc.LoginCustomer(ctx, "ghost@svce.edu.in", "whatever")

	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.RegisterCustomer(ctx, "Priya", "priya@svce.edu.in", "hunter22")
	require.NoError(t, err)

	_, err = svc.RegisterCustomer(ctx, "Other Priya", "priya@svce.edu.in", "different")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCustomerAndAdminEmailNamespacesAreDisjoint(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.RegisterCustomer(ctx, "Priya", "shared@svce.edu.in", "customerpass")
	require.NoError(t, err)

	// same email as an admin is fine: different collection
	_, err = svc.RegisterAdmin(ctx, "Priya the Admin", "shared@svce.edu.in", "adminpass")
	require.NoError(t, err)

	// each login resolves against its own namespace
	_, _, err = svc.LoginCustomer(ctx, "shared@svce.edu.in", "customerpass")
	require.NoError(t, err)
	_, _, err = svc.LoginAdmin(ctx, "shared@svce.edu.in", "adminpass")
	require.NoError(t, err)

	// and the wrong password for that namespace fails even though it is
	// valid in the other one
	_, _, err = svc.LoginCustomer(ctx, "shared@svce.edu.in", "adminpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken_KindMismatchRejected(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.RegisterCustomer(ctx, "Priya", "priya@svce.edu.in", "hunter22")
	require.NoError(t, err)

	token, _, err := svc.LoginCustomer(ctx, "priya@svce.edu.in", "hunter22")
	require.NoError(t, err)

	// customer token on a customer check: fine
	customer, admin, err := svc.VerifyToken(ctx, token, domain.KindCustomer)
	require.NoError(t, err)
	assert.NotNil(t, customer)
	assert.Nil(t, admin)

	// customer token presented for an admin check: rejected
	_, _, err = svc.VerifyToken(ctx, token, domain.KindAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken_GarbageRejected(t *testing.T) {
	svc, _, _ := newAuthService()

	_, _, err := svc.VerifyToken(context.Background(), "not.a.token", domain.KindCustomer)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken_DeletedPrincipalRejected(t *testing.T) {
	svc, customers, _ := newAuthService()
	ctx := context.Background()

	c, err := svc.RegisterCustomer(ctx, "Priya", "priya@svce.edu.in", "hunter22")
	require.NoError(t, err)

	token, _, err := svc.LoginCustomer(ctx, "priya@svce.edu.in", "hunter22")
	require.NoError(t, err)

	// remove the account behind the still-valid token
	customers.mu.Lock()
	delete(customers.customers, c.ID)
	customers.mu.Unlock()

	_, _, err = svc.VerifyToken(ctx, token, domain.KindCustomer)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
