package utils

import (
	"testing"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasetoRoundTrip(t *testing.T) {
	maker, err := NewPasetoMaker(GenerateSymmetricKey())
	require.NoError(t, err)

	token, err := maker.CreateToken("manager-1", entity.RoleManager, "jti-1", time.Minute)
	require.NoError(t, err)

	payload, err := maker.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, entity.Actor{ID: "manager-1", Role: entity.RoleManager}, payload.Actor())
	assert.Equal(t, "jti-1", payload.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Minute), payload.ExpiresAt, 5*time.Second)
}

func TestPasetoRejectsExpired(t *testing.T) {
	maker, err := NewPasetoMaker(GenerateSymmetricKey())
	require.NoError(t, err)

	token, err := maker.CreateToken("employee-1", entity.RoleEmployee, "jti-2", -time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(token)
	assert.Error(t, err)
}

func TestPasetoRejectsForeignKey(t *testing.T) {
	issuer, _ := NewPasetoMaker(GenerateSymmetricKey())
	verifier, _ := NewPasetoMaker(GenerateSymmetricKey())

	token, err := issuer.CreateToken("employee-1", entity.RoleEmployee, "jti-3", time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestPasetoRejectsUnknownRole(t *testing.T) {
	maker, _ := NewPasetoMaker(GenerateSymmetricKey())

	token, err := maker.CreateToken("x-1", entity.ActorRole("Admin"), "jti-4", time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(token)
	assert.ErrorContains(t, err, "unknown role")
}

func TestNewPasetoMaker_InvalidKey(t *testing.T) {
	_, err := NewPasetoMaker("not-hex")
	assert.Error(t, err)
}
