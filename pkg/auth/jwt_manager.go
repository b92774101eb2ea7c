package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/jessupi/jessbook/internal/models"
)

const (
	// SessionTTL срок жизни сессионного токена
	SessionTTL = 7 * 24 * time.Hour
	// ResetTTL срок жизни токена восстановления пароля
	ResetTTL = time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// tokenClaims общая форма claims: у сессионного токена role заполнен,
// у токена восстановления отсутствует
type tokenClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// SessionClaims проверенная личность вызывающего
type SessionClaims struct {
	UserID uint
	Role   models.Role
}

type JWTManager struct {
	secretKey  string
	sessionTTL time.Duration
	resetTTL   time.Duration
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secretKey: secret, sessionTTL: SessionTTL, resetTTL: ResetTTL}
}

// NewJWTManagerWithTTL используется в тестах для коротких сроков жизни
func NewJWTManagerWithTTL(secret string, sessionTTL, resetTTL time.Duration) *JWTManager {
	return &JWTManager{secretKey: secret, sessionTTL: sessionTTL, resetTTL: resetTTL}
}

// GenerateSession создаёт сессионный JWT с ролью
func (m *JWTManager) GenerateSession(userID uint, role models.Role) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// GenerateReset создаёт токен восстановления пароля, несёт только userID
func (m *JWTManager) GenerateReset(userID uint) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.resetTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// VerifySession парсит и проверяет сессионный токен.
// Токен восстановления здесь не проходит: у него нет claim role.
func (m *JWTManager) VerifySession(accessToken string) (*SessionClaims, error) {
	claims, err := m.parse(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.Role == "" {
		return nil, ErrInvalidToken
	}
	userID, err := parseSubject(claims.Subject)
	if err != nil {
		return nil, err
	}
	return &SessionClaims{UserID: userID, Role: models.Role(claims.Role)}, nil
}

// VerifyReset парсит и проверяет токен восстановления.
// Сессионный токен здесь не проходит: claim role должен отсутствовать.
func (m *JWTManager) VerifyReset(resetToken string) (uint, error) {
	claims, err := m.parse(resetToken)
	if err != nil {
		return 0, err
	}
	if claims.Role != "" {
		return 0, ErrInvalidToken
	}
	return parseSubject(claims.Subject)
}

// Expiry возвращает время истечения токена любого класса
func (m *JWTManager) Expiry(token string) (time.Time, error) {
	claims, err := m.parse(token)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt.Time, nil
}

func (m *JWTManager) parse(token string) (*tokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func parseSubject(sub string) (uint, error) {
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
