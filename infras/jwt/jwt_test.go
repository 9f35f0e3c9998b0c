package jwt_test

import (
	"testing"
	"time"

	"turfbook/config"
	"turfbook/infras/jwt"

	goJwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-access-secret"

func sign(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()

	token, err := goJwt.NewWithClaims(goJwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func claimsFor(userID string, tokenType jwt.TokenType, expiresAt time.Time) jwt.Claims {
	now := time.Now()

	return jwt.Claims{
		UserID:  userID,
		Email:   "player@example.com",
		Role:    "user",
		TokenID: "token-1",
		Type:    tokenType,
		RegisteredClaims: goJwt.RegisteredClaims{
			ExpiresAt: goJwt.NewNumericDate(expiresAt),
			IssuedAt:  goJwt.NewNumericDate(now),
			Subject:   userID,
		},
	}
}

func TestValidateToken(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = testSecret

	svc := jwt.New(cfg)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:  "valid access token",
			token: sign(t, testSecret, claimsFor("user-1", jwt.AccessToken, future)),
		},
		{
			name:    "expired token",
			token:   sign(t, testSecret, claimsFor("user-1", jwt.AccessToken, time.Now().Add(-time.Minute))),
			wantErr: jwt.ErrExpiredToken,
		},
		{
			name:    "wrong secret",
			token:   sign(t, "another-secret", claimsFor("user-1", jwt.AccessToken, future)),
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name:    "refresh token is rejected",
			token:   sign(t, testSecret, claimsFor("user-1", jwt.TokenType("refresh"), future)),
			wantErr: jwt.ErrInvalidClaim,
		},
		{
			name:    "missing user id",
			token:   sign(t, testSecret, claimsFor("", jwt.AccessToken, future)),
			wantErr: jwt.ErrInvalidClaim,
		},
		{
			name:    "garbage",
			token:   "not-a-token",
			wantErr: jwt.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "user-1", claims.UserID)
			assert.Equal(t, "user", claims.Role)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingHeader)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, jwt.ErrInvalidScheme)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.ErrorIs(t, err, jwt.ErrInvalidScheme)
}
