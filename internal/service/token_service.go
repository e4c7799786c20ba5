package service

import (
	"fmt"
	"time"

	"digital-asset-gateway/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTTokenService implements ports.TokenService using HS256 JWT. The
// token carries the holder's date of birth rather than a fixed age, so
// the user context derived at validation time never goes stale.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewJWTTokenService creates a new JWT token service.
func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate creates a signed JWT for the given account.
func (s *JWTTokenService) Generate(account *domain.Account) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := jwt.MapClaims{
		"sub":    account.ID.String(),
		"dob":    account.DateOfBirth.Format(time.RFC3339),
		"kyc":    string(account.KYCStatus),
		"region": account.Region,
		"iat":    now.Unix(),
		"exp":    expiresAt.Unix(),
		"iss":    s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate parses and validates a JWT token, deriving the user context
// from its claims.
func (s *JWTTokenService) Validate(tokenString string) (*domain.UserContext, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("missing subject claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	dobStr, ok := claims["dob"].(string)
	if !ok {
		return nil, fmt.Errorf("missing date-of-birth claim")
	}
	dob, err := time.Parse(time.RFC3339, dobStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth in token: %w", err)
	}

	kyc, _ := claims["kyc"].(string)
	region, _ := claims["region"].(string)

	account := domain.Account{ID: userID, DateOfBirth: dob, KYCStatus: domain.KYCStatus(kyc), Region: region}
	userCtx := account.Context(time.Now().UTC())
	return &userCtx, nil
}
