package admanagerclient

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/ad-revenue-api/internal/config"
)

func writeServiceAccountKey(t *testing.T, dir, name string) *rsa.PrivateKey {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pemKey := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	raw, err := json.Marshal(map[string]string{
		"type":           "service_account",
		"client_email":   "reports@project.iam.gserviceaccount.com",
		"private_key":    string(pemKey),
		"private_key_id": "kid-1",
		"token_uri":      "https://oauth2.googleapis.com/token",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), raw, 0o600))

	return privateKey
}

func TestServiceAccountTokenProvider_TrocaEArmazenaEmCache(t *testing.T) {
	dir := t.TempDir()
	privateKey := writeServiceAccountKey(t, dir, "publisher-a.json")

	var hits int32
	var assertion, grantType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_ = r.ParseForm()
		grantType = r.PostForm.Get("grant_type")
		assertion = r.PostForm.Get("assertion")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"ya29.token","expires_in":3600,"token_type":"Bearer"}`))
	}))
	defer server.Close()

	provider := NewServiceAccountTokenProvider(config.ServiceAccount{
		KeyDir:   dir,
		TokenURL: server.URL,
		Scope:    "https://www.googleapis.com/auth/dfp",
	}, server.Client())

	first, err := provider.GetAccessToken(context.Background(), "publisher-a")
	require.NoError(t, err)
	second, err := provider.GetAccessToken(context.Background(), "publisher-a")
	require.NoError(t, err)

	assert.Equal(t, "ya29.token", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, "urn:ietf:params:oauth:grant-type:jwt-bearer", grantType)

	parsed, err := jwt.Parse(assertion, func(token *jwt.Token) (interface{}, error) {
		return &privateKey.PublicKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "reports@project.iam.gserviceaccount.com", claims["iss"])
	assert.Equal(t, "https://www.googleapis.com/auth/dfp", claims["scope"])
	assert.Equal(t, "kid-1", parsed.Header["kid"])
}

func TestServiceAccountTokenProvider_Erros(t *testing.T) {
	dir := t.TempDir()
	writeServiceAccountKey(t, dir, "default.json")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	t.Run("chave inexistente", func(t *testing.T) {
		provider := NewServiceAccountTokenProvider(config.ServiceAccount{KeyFile: filepath.Join(dir, "nope.json")}, nil)
		_, err := provider.GetAccessToken(context.Background(), "")
		require.Error(t, err)

		var transportErr *TransportError
		assert.False(t, errors.As(err, &transportErr))
	})

	t.Run("token endpoint recusa", func(t *testing.T) {
		provider := NewServiceAccountTokenProvider(config.ServiceAccount{
			KeyFile:  filepath.Join(dir, "default.json"),
			TokenURL: server.URL,
		}, server.Client())

		_, err := provider.GetAccessToken(context.Background(), "")

		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Equal(t, http.StatusUnauthorized, transportErr.StatusCode)
	})
}
