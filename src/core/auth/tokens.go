package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Payload is the decoded claim set returned to GraphQL clients.
type Payload map[string]interface{}

// Token is the result of issuing or refreshing a token.
type Token struct {
	Token            string
	Payload          Payload
	RefreshExpiresIn int64
}

// Issuer signs and checks HS256 tokens. Claims follow the graphql_jwt layout
// (username, exp, origIat) plus sub for the user id.
type Issuer struct {
	secret            []byte
	expiration        time.Duration
	refreshExpiration time.Duration
	now               func() time.Time
}

func NewIssuer(secret string, expiration, refreshExpiration time.Duration) *Issuer {
	return &Issuer{
		secret:            []byte(secret),
		expiration:        expiration,
		refreshExpiration: refreshExpiration,
		now:               time.Now,
	}
}

// Secret exposes the signing key to the HTTP middleware.
func (i *Issuer) Secret() []byte { return i.secret }

// Issue creates a fresh token for the user.
func (i *Issuer) Issue(userID uuid.UUID, username string) (*Token, error) {
	return i.sign(userID.String(), username, i.now().Unix())
}

func (i *Issuer) sign(sub, username string, origIat int64) (*Token, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"sub":      sub,
		"username": username,
		"exp":      now.Add(i.expiration).Unix(),
		"origIat":  origIat,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{
		Token:            signed,
		Payload:          Payload(claims),
		RefreshExpiresIn: origIat + int64(i.refreshExpiration/time.Second),
	}, nil
}

// Verify checks the signature and expiry and returns the claims.
func (i *Issuer) Verify(token string) (Payload, error) {
	claims, err := i.parse(token, true)
	if err != nil {
		return nil, err
	}
	return Payload(claims), nil
}

// Refresh issues a new token with the same origIat, as long as the refresh
// window that started at origIat has not closed. An expired access token can
// still be refreshed.
func (i *Issuer) Refresh(token string) (*Token, error) {
	claims, err := i.parse(token, false)
	if err != nil {
		return nil, err
	}
	origIat, ok := numericClaim(claims["origIat"])
	if !ok {
		return nil, apperrors.New(apperrors.Unauthenticated, "origIat field is required")
	}
	if i.now().Unix() > origIat+int64(i.refreshExpiration/time.Second) {
		return nil, apperrors.New(apperrors.Unauthenticated, "Refresh has expired")
	}
	sub, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	return i.sign(sub, username, origIat)
}

// IdentityFromClaims extracts the identity carried by already-verified claims.
func IdentityFromClaims(claims jwt.MapClaims) (Identity, error) {
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, apperrors.Wrap(apperrors.Unauthenticated, "Invalid payload", err)
	}
	username, _ := claims["username"].(string)
	return Identity{UserID: userID, Username: username}, nil
}

func (i *Issuer) parse(token string, checkExpiry bool) (jwt.MapClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	}
	if checkExpiry {
		opts = append(opts, jwt.WithExpirationRequired())
	} else {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, apperrors.Wrap(apperrors.Unauthenticated, "Signature has expired", err)
	case err != nil:
		return nil, apperrors.Wrap(apperrors.Unauthenticated, "Error decoding signature", err)
	}
	return claims, nil
}

func numericClaim(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
