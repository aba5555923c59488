package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/softasistence/internal/client/client"
	"github.com/dmitrijs2005/softasistence/internal/client/config"
	"github.com/dmitrijs2005/softasistence/internal/common"
	"github.com/dmitrijs2005/softasistence/internal/server/dto"
	"github.com/dmitrijs2005/softasistence/internal/server/models"
	"github.com/dmitrijs2005/softasistence/internal/server/validators"
)

type fakeClient struct {
	gotLogin *dto.LoginRequest
	gotToken string
	login    *dto.LoginData
	me       *dto.Identity
	err      error
	closed   bool
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func (f *fakeClient) Login(_ context.Context, in *dto.LoginRequest) (*dto.LoginData, error) {
	f.gotLogin = in
	if f.err != nil {
		return nil, f.err
	}
	return f.login, nil
}

func (f *fakeClient) Me(_ context.Context, token string) (*dto.Identity, error) {
	f.gotToken = token
	if f.err != nil {
		return nil, f.err
	}
	return f.me, nil
}

type fakeCreator struct {
	got    validators.NewUser
	active bool
	err    error
}

func (f *fakeCreator) CreateUser(_ context.Context, u validators.NewUser, active bool) (*models.User, error) {
	f.got = u
	f.active = active
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: 12345678, Role: models.NormalizeRole(u.Role), Active: active}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func ptr[T any](v T) *T { return &v }

func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(io.Writer, string) ([]byte, error) {
		if i >= len(pws) {
			return nil, errors.New("no more passwords")
		}
		pw := []byte(pws[i])
		i++
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func newTestApp(fc *fakeClient, fcr *fakeCreator) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	a := NewApp(strings.NewReader(""), &out, io.Discard)
	a.newClient = func(*config.Config) (client.Client, error) { return fc, nil }
	a.openUsers = func(context.Context, string) (UserCreator, io.Closer, error) { return fcr, nopCloser{}, nil }
	return a, &out
}

func sampleLogin() *dto.LoginData {
	return &dto.LoginData{
		User:  &models.PublicUser{ID: 12345678, Email: ptr("prueba.auth@sena.edu.co"), Role: models.RoleInstructor, Active: true},
		Token: "header.payload.sig",
	}
}

func TestLoginCmd(t *testing.T) {
	stubPasswords(t, "Password123")
	fc := &fakeClient{login: sampleLogin()}
	a, out := newTestApp(fc, nil)

	err := a.Execute(context.Background(), []string{"login", "--cedula", "12345678"})
	require.NoError(t, err)

	assert.Equal(t, "header.payload.sig\n", out.String())
	require.NotNil(t, fc.gotLogin.Cedula)
	assert.Equal(t, dto.IDString("12345678"), *fc.gotLogin.Cedula)
	assert.Nil(t, fc.gotLogin.Email)
	assert.Equal(t, "Password123", *fc.gotLogin.Password)
	assert.True(t, fc.closed)
}

func TestLoginCmd_PasswordFromEnv(t *testing.T) {
	t.Setenv(passwordEnv, "FromEnv123")
	fc := &fakeClient{login: sampleLogin()}
	a, _ := newTestApp(fc, nil)

	require.NoError(t, a.Execute(context.Background(), []string{"login", "--email", "prueba.auth@sena.edu.co"}))
	assert.Equal(t, "FromEnv123", *fc.gotLogin.Password)
}

func TestLoginCmd_PromptsForIdentifier(t *testing.T) {
	stubPasswords(t, "Password123")
	fc := &fakeClient{login: sampleLogin()}
	a, _ := newTestApp(fc, nil)
	a.reader = bufio.NewReader(strings.NewReader("prueba.auth@sena.edu.co\n"))

	require.NoError(t, a.Execute(context.Background(), []string{"login"}))
	require.NotNil(t, fc.gotLogin.Email)
	assert.Equal(t, "prueba.auth@sena.edu.co", *fc.gotLogin.Email)
	assert.Nil(t, fc.gotLogin.Cedula)
}

func TestLoginCmd_RequiresIdentifier(t *testing.T) {
	fc := &fakeClient{}
	a, _ := newTestApp(fc, nil)
	err := a.Execute(context.Background(), []string{"login"})
	require.Error(t, err)
	assert.Nil(t, fc.gotLogin)
}

func TestLoginCmd_ServerError(t *testing.T) {
	stubPasswords(t, "Password123")
	fc := &fakeClient{err: &client.APIError{Kind: client.ErrUnauthorized, Message: common.MsgInvalidCredentials}}
	a, _ := newTestApp(fc, nil)

	err := a.Execute(context.Background(), []string{"login", "--cedula", "12345678"})
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestMeCmd(t *testing.T) {
	fc := &fakeClient{me: &dto.Identity{ID: 12345678, Role: "instrutor"}}
	a, out := newTestApp(fc, nil)

	require.NoError(t, a.Execute(context.Background(), []string{"me", "--token", "tok"}))
	assert.Equal(t, "tok", fc.gotToken)
	assert.Contains(t, out.String(), `"cedula": 12345678`)
	assert.Contains(t, out.String(), `"rol": "instrutor"`)
}

func TestMeCmd_TokenRequired(t *testing.T) {
	t.Setenv(tokenEnv, "")
	a, _ := newTestApp(&fakeClient{}, nil)
	require.Error(t, a.Execute(context.Background(), []string{"me"}))
}

func TestSmokeCmd(t *testing.T) {
	stubPasswords(t, "Password123")
	fc := &fakeClient{
		login: sampleLogin(),
		me:    &dto.Identity{ID: 12345678, Email: ptr("prueba.auth@sena.edu.co"), Role: "instrutor"},
	}
	a, out := newTestApp(fc, nil)

	require.NoError(t, a.Execute(context.Background(), []string{"smoke", "--cedula", "12345678"}))
	assert.Equal(t, "header.payload.sig", fc.gotToken)
	assert.Contains(t, out.String(), fmt.Sprintf("token length: %d", len("header.payload.sig")))
	assert.Contains(t, out.String(), "[auth-smoke] ok")
}

func TestSmokeCmd_Mismatch(t *testing.T) {
	tests := []struct {
		name string
		me   dto.Identity
		want string
	}{
		{"cedula", dto.Identity{ID: 1, Email: ptr("prueba.auth@sena.edu.co"), Role: "instrutor"}, "cedula mismatch"},
		{"email", dto.Identity{ID: 12345678, Role: "instrutor"}, "email mismatch"},
		{"rol", dto.Identity{ID: 12345678, Email: ptr("prueba.auth@sena.edu.co"), Role: "administrador"}, "rol mismatch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubPasswords(t, "Password123")
			me := tt.me
			a, _ := newTestApp(&fakeClient{login: sampleLogin(), me: &me}, nil)

			err := a.Execute(context.Background(), []string{"smoke", "--cedula", "12345678"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUseraddCmd(t *testing.T) {
	stubPasswords(t, "Password123", "Password123")
	fcr := &fakeCreator{}
	a, out := newTestApp(nil, fcr)

	err := a.Execute(context.Background(), []string{"useradd", "--dsn", "postgres://x", "--cedula", "12345678",
		"--nombre", "Prueba", "--apellido", "Auth", "--email", "prueba.auth@sena.edu.co"})
	require.NoError(t, err)

	assert.Equal(t, "Password123", fcr.got.Password)
	assert.Equal(t, "instrutor", fcr.got.Role)
	assert.True(t, fcr.active)
	assert.Equal(t, "created user 12345678 (instrutor)\n", out.String())
}

func TestUseraddCmd_Failures(t *testing.T) {
	args := []string{"useradd", "--dsn", "postgres://x", "--cedula", "12345678", "--nombre", "Prueba", "--apellido", "Auth"}

	t.Run("passwords differ", func(t *testing.T) {
		stubPasswords(t, "Password123", "Password124")
		fcr := &fakeCreator{}
		a, _ := newTestApp(nil, fcr)
		require.Error(t, a.Execute(context.Background(), args))
		assert.Empty(t, fcr.got.Cedula)
	})

	t.Run("weak password", func(t *testing.T) {
		stubPasswords(t, "short", "short")
		fcr := &fakeCreator{}
		a, _ := newTestApp(nil, fcr)
		err := a.Execute(context.Background(), args)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Empty(t, fcr.got.Cedula)
	})

	t.Run("duplicate", func(t *testing.T) {
		stubPasswords(t, "Password123", "Password123")
		a, _ := newTestApp(nil, &fakeCreator{err: common.ErrorAlreadyExists})
		err := a.Execute(context.Background(), args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("inactive flag", func(t *testing.T) {
		stubPasswords(t, "Password123", "Password123")
		fcr := &fakeCreator{}
		a, _ := newTestApp(nil, fcr)
		require.NoError(t, a.Execute(context.Background(), append(args, "--inactive")))
		assert.False(t, fcr.active)
	})
}

func TestRoot_InvalidTransport(t *testing.T) {
	a, _ := newTestApp(&fakeClient{}, nil)
	err := a.Execute(context.Background(), []string{"--transport", "carrier", "me", "--token", "x"})
	require.Error(t, err)
}
