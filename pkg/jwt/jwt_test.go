package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Logistica-api/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "u-1", "ana", "logistica-test", 5)
	require.NoError(t, err)

	userID, username, err := pkgjwt.Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "ana", username)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "u-1", "ana", "logistica-test", 5)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "u-1", "ana", "logistica-test", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("s3cret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "ana", "logistica-test", 5)
	assert.Error(t, err)
}
