package identity

import (
	"context"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Identity проверенная личность сотрудника
type Identity struct {
	SubjectID string
	Email     string
}

// Claims полезная нагрузка токена сотрудника
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier проверяет HS256 токены сотрудников
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewVerifier создает верификатор; пустой issuer отключает проверку издателя
func NewVerifier(secret string, issuer string, leeway time.Duration) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		issuer: issuer,
		leeway: leeway,
	}
}

// Verify возвращает личность из токена или ErrInvalidToken
func (v *Verifier) Verify(_ context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{SubjectID: claims.Subject, Email: claims.Email}, nil
}

// Issue подписывает токен сотрудника (используется утилитами и тестами)
func (v *Verifier) Issue(subjectID, email string, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
