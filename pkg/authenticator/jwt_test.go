package authenticator_test

import (
	"testing"
	"time"

	"github.com/parnaso/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, "abc")
	require.Nil(t, err)

	var msg string
	err = engine.Verify(token, &msg)
	require.NoError(t, err)
	require.Equal(t, "abc", msg)
}

func TestJWTObject(t *testing.T) {
	type info struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}

	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, info{ID: "user1", Role: "admin"})
	require.Nil(t, err)

	var got info
	err = engine.Verify(token, &got)
	require.NoError(t, err)
	require.Equal(t, info{ID: "user1", Role: "admin"}, got)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(-time.Minute, "abc")
	require.Nil(t, err)

	var msg string
	err = engine.Verify(token, &msg)
	require.Error(t, err)
}

func TestJWTBadSecret(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, "abc")
	require.Nil(t, err)

	var msg string
	err = authenticator.NewTokenEngine("another-secret").Verify(token, &msg)
	require.Error(t, err)
}
