package encryption

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, alg := range []Algorithm{AESGCM, ChaCha20Poly1305} {
		t.Run(string(alg), func(t *testing.T) {
			c, err := New("passphrase", WithAlgorithm(alg))
			require.NoError(t, err)
			assert.Equal(t, alg, c.Algorithm())

			for _, plain := range []string{"", "eyJhbGciOiJIUzI1NiJ9.e30.sig", `{"token":"t","userInfo":"{\"nickname\":\"茶友\"}"}`} {
				sealed, err := c.Encrypt(plain)
				require.NoError(t, err)
				if plain != "" {
					assert.NotContains(t, sealed, plain)
				}
				got, err := c.Decrypt(sealed)
				require.NoError(t, err)
				assert.Equal(t, plain, got)
			}
		})
	}
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	c, err := New("k")
	require.NoError(t, err)
	a, _ := c.Encrypt("same")
	b, _ := c.Encrypt("same")
	assert.NotEqual(t, a, b)
}

func TestDecryptRejects(t *testing.T) {
	c, err := New("key-one")
	require.NoError(t, err)
	sealed, err := c.Encrypt("secret")
	require.NoError(t, err)

	other, _ := New("key-two")
	_, err = other.Decrypt(sealed)
	assert.Error(t, err, "wrong key")

	chacha, _ := New("key-one", WithAlgorithm(ChaCha20Poly1305))
	_, err = chacha.Decrypt(sealed)
	assert.Error(t, err, "wrong algorithm")

	bound, _ := New("key-one", WithContext("credentials"))
	_, err = bound.Decrypt(sealed)
	assert.Error(t, err, "wrong context")

	_, err = c.Decrypt("not base64!")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = c.Decrypt("AAAA")
	assert.ErrorIs(t, err, ErrMalformed)

	tampered := []byte(sealed)
	i := strings.IndexFunc(sealed[20:], func(r rune) bool { return r != 'A' }) + 20
	tampered[i] = 'A'
	_, err = c.Decrypt(string(tampered))
	assert.Error(t, err, "tampered")
}

func TestNewValidates(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, err = New("k", WithAlgorithm("rot13"))
	assert.Error(t, err)
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"", AESGCM, false},
		{"AES-256-GCM", AESGCM, false},
		{" chacha20-poly1305 ", ChaCha20Poly1305, false},
		{"des", "", true},
	}
	for _, tc := range tests {
		got, err := ParseAlgorithm(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}
