package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const (
	RoleCandidate = "candidate"
	RoleAdmin     = "admin"

	issuer = "fnct-hackathon"
)

// Claims identifies the actor behind a request. For candidates ActorID is
// the candidate id; for admins it is an operator id.
type Claims struct {
	ActorID uuid.UUID `json:"actorId"`
	Email   string    `json:"email,omitempty"`
	Role    string    `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs and validates HS256 bearer tokens.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

var signJWTToken = func(token *jwt.Token, secret []byte) (string, error) {
	return token.SignedString(secret)
}

func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// GenerateToken issues a token for actorID with the given role.
func (s *JWTService) GenerateToken(actorID uuid.UUID, email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		ActorID: actorID,
		Email:   email,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actorID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return signJWTToken(token, s.secret)
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ActorID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleCandidate && claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
