// Package session issues and verifies the signed tokens carried by the
// user_id and user_role cookies and by bearer Authorization headers.
package session

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Cookie names
const (
	UserCookie = "user_id"
	RoleCookie = "user_role"
)

const (
	issuer   = "billing-api"
	kindUser = "user"
	kindRole = "role"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session has expired")
	ErrMismatch     = errors.New("session cookies do not match")
)

// Claims represents the JWT claims structure
type Claims struct {
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
	ClientID *uint  `json:"client_id,omitempty"`
	Kind     string `json:"kind"`
	jwt.RegisteredClaims
}

// Tokens is a freshly issued session.
type Tokens struct {
	User      string
	Role      string
	ExpiresAt time.Time
}

// Manager signs and verifies session tokens with an HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a session manager
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns how long issued sessions last.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a user token and a role token for the account.
func (m *Manager) Issue(userID uint, role string, clientID *uint) (*Tokens, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	userToken, err := m.sign(Claims{UserID: userID, Role: role, ClientID: clientID, Kind: kindUser}, now, expiresAt)
	if err != nil {
		return nil, err
	}
	roleToken, err := m.sign(Claims{UserID: userID, Role: role, Kind: kindRole}, now, expiresAt)
	if err != nil {
		return nil, err
	}

	return &Tokens{User: userToken, Role: roleToken, ExpiresAt: expiresAt}, nil
}

func (m *Manager) sign(claims Claims, now, expiresAt time.Time) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseUser validates a user token, as sent in a bearer header.
func (m *Manager) ParseUser(token string) (*Claims, error) {
	return m.parse(token, kindUser)
}

// ParseCookies validates the user_id and user_role cookie pair. Both must
// be valid and describe the same account.
func (m *Manager) ParseCookies(userToken, roleToken string) (*Claims, error) {
	user, err := m.parse(userToken, kindUser)
	if err != nil {
		return nil, err
	}
	role, err := m.parse(roleToken, kindRole)
	if err != nil {
		return nil, err
	}
	if user.UserID != role.UserID || user.Role != role.Role {
		return nil, ErrMismatch
	}
	return user, nil
}

// parse parses and validates a token string of the given kind
func (m *Manager) parse(tokenString, kind string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Kind != kind || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
