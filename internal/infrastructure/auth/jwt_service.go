package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jhonDavid20/steady-vitality/domain"
)

// refreshTokenType is the discriminator claim that keeps refresh tokens from
// being accepted where access tokens are expected and vice versa.
const refreshTokenType = "refresh"

// JWTServiceImpl implements domain.TokenService with HMAC-SHA256 signing
type JWTServiceImpl struct {
	secretKey       []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService creates a new JWT service. TTLs are given as duration
// strings with s/m/h/d suffixes; unparseable values fall back to 1h access
// and 7d refresh.
func NewJWTService(secretKey, issuer, accessTTL, refreshTTL string) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		accessTokenTTL:  ParseTTL(accessTTL, time.Hour),
		refreshTokenTTL: ParseTTL(refreshTTL, 7*24*time.Hour),
	}
}

// ParseTTL parses a duration string supporting the s/m/h suffixes of
// time.ParseDuration plus a d suffix for days. Unparseable input returns
// the fallback.
func ParseTTL(s string, fallback time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days <= 0 {
			return fallback
		}
		return time.Duration(days) * 24 * time.Hour
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(userID uint, email, role, sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"email":      email,
		"role":       role,
		"session_id": sessionID,
		"iss":        j.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(j.accessTokenTTL).Unix(),
		"jti":        j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// GenerateRefreshToken implements domain.TokenService. Refresh tokens carry
// only the identifiers needed to re-issue a pair plus a type discriminator.
func (j *JWTServiceImpl) GenerateRefreshToken(userID uint, sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"session_id": sessionID,
		"type":       refreshTokenType,
		"iss":        j.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(j.refreshTokenTTL).Unix(),
		"jti":        j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	sessionID, ok := claims["session_id"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.TokenClaims{
		UserID:    uint(userID),
		Email:     email,
		Role:      role,
		SessionID: sessionID,
		IssuedAt:  asInt64(claims["iat"]),
		ExpiresAt: asInt64(claims["exp"]),
	}, nil
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrRefreshTokenExpired
		}
		return nil, domain.ErrRefreshTokenInvalid
	}

	if typ, _ := claims["type"].(string); typ != refreshTokenType {
		return nil, domain.ErrRefreshTokenInvalid
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, domain.ErrRefreshTokenInvalid
	}
	sessionID, ok := claims["session_id"].(string)
	if !ok {
		return nil, domain.ErrRefreshTokenInvalid
	}

	return &domain.TokenClaims{
		UserID:    uint(userID),
		SessionID: sessionID,
		IssuedAt:  asInt64(claims["iat"]),
		ExpiresAt: asInt64(claims["exp"]),
	}, nil
}

// ExtractBearerToken implements domain.TokenService. Any header shape other
// than exactly "Bearer <token>" yields an empty string.
func (j *JWTServiceImpl) ExtractBearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AccessTokenLifetime implements domain.TokenService
func (j *JWTServiceImpl) AccessTokenLifetime() int64 {
	return int64(j.accessTokenTTL.Seconds())
}

func (j *JWTServiceImpl) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	return claims, nil
}

func asInt64(v interface{}) int64 {
	f, _ := v.(float64)
	return int64(f)
}
