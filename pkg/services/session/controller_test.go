package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/de-tools/report-desk/pkg/store/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Login(ctx context.Context, username, password string) (domain.Credential, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.Credential), args.Error(1)
}

func newTestStore(t *testing.T) credential.Store {
	t.Helper()
	return credential.NewFileStore(filepath.Join(t.TempDir(), credential.DefaultFileName))
}

func TestLoginValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "secret"},
		{"empty password", "analyst", ""},
		{"whitespace username", "   ", "secret"},
		{"whitespace password", "analyst", "  \t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthenticator{}
			ctrl := NewController(context.Background(), auth, newTestStore(t))

			err := ctrl.Login(context.Background(), tt.username, tt.password)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.False(t, ctrl.Authenticated())
			auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestLoginSuccessPersistsCredential(t *testing.T) {
	store := newTestStore(t)
	auth := &mockAuthenticator{}
	auth.On("Login", mock.Anything, "analyst", "secret").
		Return(domain.Credential{Username: "analyst", Token: "tok-1"}, nil)

	ctrl := NewController(context.Background(), auth, store)
	require.NoError(t, ctrl.Login(context.Background(), "analyst", "secret"))

	assert.True(t, ctrl.Authenticated())
	assert.Equal(t, "analyst", ctrl.Username())
	token, ok := ctrl.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-1", token)

	// Simulated reload: a fresh controller over the same store starts
	// authenticated.
	restored := NewController(context.Background(), &mockAuthenticator{}, store)
	assert.True(t, restored.Authenticated())
	assert.Equal(t, "analyst", restored.Username())
}

func TestLoginFailureKeepsState(t *testing.T) {
	auth := &mockAuthenticator{}
	auth.On("Login", mock.Anything, "analyst", "wrong").
		Return(domain.Credential{}, errors.New("Invalid username or password"))

	ctrl := NewController(context.Background(), auth, newTestStore(t))
	err := ctrl.Login(context.Background(), "analyst", "wrong")

	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid username or password", authErr.Error())
	assert.False(t, ctrl.Authenticated())
}

func TestLogoutClearsPersistedCredential(t *testing.T) {
	store := newTestStore(t)
	auth := &mockAuthenticator{}
	auth.On("Login", mock.Anything, "analyst", "secret").
		Return(domain.Credential{Username: "analyst", Token: "tok-1"}, nil)

	ctrl := NewController(context.Background(), auth, store)
	require.NoError(t, ctrl.Login(context.Background(), "analyst", "secret"))
	require.NoError(t, ctrl.Logout(context.Background()))

	assert.False(t, ctrl.Authenticated())
	_, ok := ctrl.Token()
	assert.False(t, ok)

	// Simulated reload after logout starts unauthenticated.
	restored := NewController(context.Background(), &mockAuthenticator{}, store)
	assert.False(t, restored.Authenticated())
}

func TestLoginTrimsUsername(t *testing.T) {
	auth := &mockAuthenticator{}
	auth.On("Login", mock.Anything, "analyst", "secret").
		Return(domain.Credential{Username: "analyst", Token: "tok-1"}, nil)

	ctrl := NewController(context.Background(), auth, newTestStore(t))
	require.NoError(t, ctrl.Login(context.Background(), "  analyst  ", "secret"))
	assert.Equal(t, "analyst", ctrl.Username())
}
