// Package session issues and validates the hub client's session tokens.
// Tokens carry the tenant and user identity the filter API scopes its
// timezone lookups to.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"daybound/internal/platform/middleware"
	id "daybound/pkg/domain"
	dErrors "daybound/pkg/domain-errors"
)

const issuer = "daybound"

// Claims represents the JWT claims for hub session tokens.
type Claims struct {
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager handles session token creation and validation.
type Manager struct {
	signingKey []byte
}

func NewManager(signingKey string) *Manager {
	return &Manager{signingKey: []byte(signingKey)}
}

// Issue creates a signed session token for a tenant user.
func (m *Manager) Issue(tenantID id.TenantID, userID id.UserID, expiresIn time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TenantID: tenantID.String(),
		UserID:   userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(m.signingKey)
}

// ValidateToken parses and verifies a session token, returning the tenant
// and user identity for the middleware to put into request context.
func (m *Manager) ValidateToken(tokenString string) (*middleware.SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return m.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "session has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}

	tenantID, err := id.ParseTenantID(claims.TenantID)
	if err != nil || tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session carries no tenant")
	}
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session carries no user")
	}

	return &middleware.SessionClaims{TenantID: tenantID, UserID: userID}, nil
}
