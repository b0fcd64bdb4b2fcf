package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/contact-cache/internal/api/middleware"
)

func generateKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)

	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return privateKey, string(publicPEM)
}

func signToken(t *testing.T, key *rsa.PrivateKey, method jwt.SigningMethod, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	privateKey, publicPEM := generateKeyPair(t)
	otherKey, _ := generateKeyPair(t)

	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      []string{"backend-key", ""},
	})

	validToken := signToken(t, privateKey, jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	tests := []struct {
		name        string
		header      string
		wantType    string
		wantSubject string
		wantErr     string
	}{
		{name: "valid jwt", header: "Bearer " + validToken, wantType: middleware.AUTH_TYPE_JWT, wantSubject: "user-1"},
		{name: "scheme is case insensitive", header: "bearer " + validToken, wantType: middleware.AUTH_TYPE_JWT, wantSubject: "user-1"},
		{name: "valid api key", header: "ApiKey backend-key", wantType: middleware.AUTH_TYPE_APIKEY},
		{name: "missing header", header: "", wantErr: "missing Authorization header"},
		{name: "no credentials", header: "Bearer", wantErr: "invalid Authorization header format"},
		{name: "unknown scheme", header: "Basic dXNlcjpwYXNz", wantErr: "unsupported authorization type: Basic"},
		{name: "wrong api key", header: "ApiKey nope", wantErr: "invalid API key"},
		{
			name:    "expired jwt",
			header:  "Bearer " + signToken(t, privateKey, jwt.SigningMethodRS256, jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}),
			wantErr: "failed to parse token",
		},
		{
			name:    "jwt signed by another key",
			header:  "Bearer " + signToken(t, otherKey, jwt.SigningMethodRS256, jwt.RegisteredClaims{Subject: "user-1"}),
			wantErr: "failed to parse token",
		},
		{
			name:    "jwt without subject",
			header:  "Bearer " + signToken(t, privateKey, jwt.SigningMethodRS256, jwt.RegisteredClaims{}),
			wantErr: "token has no subject",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authenticator.Authenticate(tt.header)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, result.AuthType)
			assert.Equal(t, tt.wantSubject, result.AuthSubject)
		})
	}
}

func TestAuthenticate_NotConfigured(t *testing.T) {
	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{})

	_, err := authenticator.Authenticate("Bearer abc.def.ghi")
	assert.EqualError(t, err, "JWT public key not configured")

	_, err = authenticator.Authenticate("ApiKey anything")
	assert.EqualError(t, err, "no API keys configured")
}

func TestResolveUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	privateKey, publicPEM := generateKeyPair(t)
	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      []string{"backend-key"},
	})
	token := signToken(t, privateKey, jwt.SigningMethodRS256, jwt.RegisteredClaims{Subject: "user-1"})

	router := gin.New()
	router.GET("/whoami", middleware.Auth(authenticator), func(c *gin.Context) {
		userID, apiErr := middleware.ResolveUserID(c, c.Query("user_id"))
		if apiErr != nil {
			c.JSON(apiErr.StatusCode(), apiErr)
			return
		}
		c.String(http.StatusOK, userID)
	})

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
		wantBody   string
	}{
		{name: "jwt subject", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "jwt same user", header: "Bearer " + token, query: "?user_id=user-1", wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "jwt other user", header: "Bearer " + token, query: "?user_id=user-2", wantStatus: http.StatusForbidden},
		{name: "api key explicit user", header: "ApiKey backend-key", query: "?user_id=user-2", wantStatus: http.StatusOK, wantBody: "user-2"},
		{name: "api key without user", header: "ApiKey backend-key", wantStatus: http.StatusUnprocessableEntity},
		{name: "unauthenticated", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.REQUEST_ID_KEY))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(middleware.REQUEST_ID_HEADER))
	assert.Equal(t, w.Header().Get(middleware.REQUEST_ID_HEADER), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.REQUEST_ID_HEADER, "caller-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "caller-id", w.Header().Get(middleware.REQUEST_ID_HEADER))
}
