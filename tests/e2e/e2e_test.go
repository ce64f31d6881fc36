//go:build e2e

// End-to-end tests against a running accessgate instance. Start the server
// (with or without the postgres/redis backends) and run:
//
//	go test -tags e2e ./tests/e2e/...
//
// ACCESSGATE_API_URL overrides the default endpoint.
package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseURL = getEnv("ACCESSGATE_API_URL", "http://127.0.0.1:8080")

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

var client = &http.Client{Timeout: 10 * time.Second}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("e2e-secret"))
	require.NoError(t, err)
	return token
}

func checkAccess(t *testing.T, path, token string) map[string]any {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"path": path, "token": token})
	require.NoError(t, err)

	resp, err := client.Post(baseURL+"/v1/access/check", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decision map[string]any
	require.NoError(t, json.Unmarshal(body, &decision))
	return decision
}

func TestHealth(t *testing.T) {
	resp, err := client.Get(baseURL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCheckFlow(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":                     "e2e-user",
		"roles":                   []any{"admin"},
		"permissions":             []any{"product:view"},
		"accessibleBusinessUnits": []any{"bu-e2e"},
		"exp":                     time.Now().Add(time.Hour).Unix(),
	})

	decision := checkAccess(t, "/admin/bu-e2e/products", token)
	assert.Equal(t, "allowed", decision["outcome"])

	decision = checkAccess(t, "/admin/bu-other/products", token)
	assert.Equal(t, "tenant_mismatch", decision["outcome"])

	decision = checkAccess(t, "/admin/bu-e2e/settings/roles", token)
	assert.Equal(t, "forbidden", decision["outcome"])

	decision = checkAccess(t, "/admin/bu-e2e/products", "")
	assert.Equal(t, "unauthenticated", decision["outcome"])
}

func TestExpiredSession(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":                     "e2e-user",
		"roles":                   []any{"admin"},
		"accessibleBusinessUnits": []any{"bu-e2e"},
		"exp":                     time.Now().Add(-time.Hour).Unix(),
	})

	decision := checkAccess(t, "/admin/bu-e2e/overview", token)
	assert.Equal(t, "unauthenticated", decision["outcome"])
	assert.Equal(t, "session_expired", decision["reason"])
}

func TestOperatorRoutesRequireAuth(t *testing.T) {
	resp, err := client.Get(baseURL + "/v1/access/routes")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
