package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SecretBox_RoundTrip(t *testing.T) {
	box, err := NewSecretBox("base-secret-for-testing")
	require.NoError(t, err)

	for _, plaintext := range []string{
		"",
		"short",
		"a shared verification token with spaces and symbols !@#$%",
		strings.Repeat("long", 1000),
	} {
		envelope, err := box.Encrypt(plaintext)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(envelope, "encrypted:"))

		decrypted, err := box.Decrypt(envelope)
		require.NoError(t, err)
		require.Equal(t, plaintext, decrypted)
	}
}

func Test_SecretBox_FreshIVPerCall(t *testing.T) {
	box, err := NewSecretBox("base-secret-for-testing")
	require.NoError(t, err)

	first, err := box.Encrypt("same plaintext")
	require.NoError(t, err)
	second, err := box.Encrypt("same plaintext")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func Test_SecretBox_LegacyEnvelope(t *testing.T) {
	box, err := NewSecretBox("base-secret-for-testing")
	require.NoError(t, err)

	envelope, err := box.Encrypt("legacy value")
	require.NoError(t, err)

	legacy := strings.TrimPrefix(envelope, "encrypted:")
	decrypted, err := box.Decrypt(legacy)
	require.NoError(t, err)
	require.Equal(t, "legacy value", decrypted)
}

func Test_SecretBox_Tampered(t *testing.T) {
	box, err := NewSecretBox("base-secret-for-testing")
	require.NoError(t, err)

	envelope, err := box.Encrypt("authentic value")
	require.NoError(t, err)

	parts := strings.Split(strings.TrimPrefix(envelope, "encrypted:"), ":")
	require.Len(t, parts, 3)

	flip := func(s string) string {
		c := "0"
		if s[0] == '0' {
			c = "1"
		}
		return c + s[1:]
	}

	tampered := []string{
		"encrypted:" + flip(parts[0]) + ":" + parts[1] + ":" + parts[2],
		"encrypted:" + parts[0] + ":" + flip(parts[1]) + ":" + parts[2],
		"encrypted:" + parts[0] + ":" + parts[1] + ":" + flip(parts[2]),
	}

	for _, envelope := range tampered {
		_, err := box.Decrypt(envelope)
		require.ErrorIs(t, err, ErrDecryptFailed)
	}
}

func Test_SecretBox_MalformedEnvelope(t *testing.T) {
	box, err := NewSecretBox("base-secret-for-testing")
	require.NoError(t, err)

	for _, envelope := range []string{
		"",
		"encrypted:",
		"encrypted:deadbeef",
		"encrypted:aa:bb",
		"encrypted:aa:bb:cc:dd",
		"encrypted:zz:bb:cc",
		"not an envelope at all",
	} {
		_, err := box.Decrypt(envelope)
		require.ErrorIs(t, err, ErrDecryptFailed)
	}
}

func Test_SecretBox_WrongBaseSecret(t *testing.T) {
	box, err := NewSecretBox("base-secret-for-testing")
	require.NoError(t, err)

	other, err := NewSecretBox("another-base-secret")
	require.NoError(t, err)

	envelope, err := box.Encrypt("secret value")
	require.NoError(t, err)

	_, err = other.Decrypt(envelope)
	require.ErrorIs(t, err, ErrDecryptFailed)
}

func Test_NewSecretBox_EmptyBaseSecret(t *testing.T) {
	_, err := NewSecretBox("")
	require.Error(t, err)
}
