package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

	"github.com/konris39/TrainGymAppCalendar/internal/model"
)

// TokenKind selects which signing domain a token belongs to. Access and
// refresh tokens are signed with independent secrets, so a token of one
// kind can never be verified as the other.
type TokenKind int

const (
	KindAccess TokenKind = iota
	KindRefresh
)

// ErrInvalidToken is returned when a token is malformed, carries the wrong
// signature for the requested kind, or is already expired.
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer mints and verifies both token kinds. It is stateless: a
// token's validity is purely a function of its signature and expiry at the
// moment of verification, nothing is persisted server-side.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenIssuer builds an issuer from the two secrets and the per-kind
// TTLs in minutes. The refresh TTL is normally the longer of the two.
func NewTokenIssuer(accessSecret, refreshSecret string, accessTTLMin, refreshTTLMin int) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     time.Duration(accessTTLMin) * time.Minute,
		refreshTTL:    time.Duration(refreshTTLMin) * time.Minute,
	}
}

// AccessTTL reports the configured access token lifetime. Handlers use it
// to align cookie max-age with token expiry.
func (i *TokenIssuer) AccessTTL() time.Duration { return i.accessTTL }

// RefreshTTL reports the configured refresh token lifetime.
func (i *TokenIssuer) RefreshTTL() time.Duration { return i.refreshTTL }

// NewAccessToken signs an HS256 JWT for the user with subject = mail and
// the admin/trainer role flags embedded as claims. The flags are a
// snapshot: a role change after minting is not reflected until the next
// issuance at login or refresh.
func (i *TokenIssuer) NewAccessToken(u model.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":     u.Mail,
		"admin":   u.IsAdmin,
		"trainer": u.IsTrainer,
		"iat":     now.Unix(),
		"exp":     now.Add(i.accessTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.accessSecret)
}

// NewRefreshToken signs a refresh JWT carrying the subject only. Refresh
// tokens deliberately hold no role claims so they are useless for
// authorization and only good for minting a new pair.
func (i *TokenIssuer) NewRefreshToken(u model.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": u.Mail,
		"iat": now.Unix(),
		"exp": now.Add(i.refreshTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.refreshSecret)
}

// ExtractSubject parses and signature-verifies the token against the
// secret for kind and returns the subject mail. Any parse, signature or
// expiry failure comes back as ErrInvalidToken.
func (i *TokenIssuer) ExtractSubject(token string, kind TokenKind) (string, error) {
	claims, err := i.parse(token, kind)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// Valid reports whether the token verifies in the given kind's domain,
// recovers the expected subject and has not expired. An expired but
// well-signed token is simply invalid, not an error.
func (i *TokenIssuer) Valid(token string, kind TokenKind, expectedSubject string) bool {
	sub, err := i.ExtractSubject(token, kind)
	return err == nil && sub == expectedSubject
}

// IsAdmin reads the admin claim from an access token. Calling it with a
// refresh token fails: refresh tokens carry no role claims.
func (i *TokenIssuer) IsAdmin(token string) (bool, error) {
	return i.boolClaim(token, "admin")
}

// IsTrainer reads the trainer claim from an access token.
func (i *TokenIssuer) IsTrainer(token string) (bool, error) {
	return i.boolClaim(token, "trainer")
}

func (i *TokenIssuer) boolClaim(token, name string) (bool, error) {
	claims, err := i.parse(token, KindAccess)
	if err != nil {
		return false, err
	}
	v, ok := claims[name].(bool)
	if !ok {
		return false, ErrInvalidToken
	}
	return v, nil
}

// parse verifies signature, structure and expiry for the kind's secret.
func (i *TokenIssuer) parse(token string, kind TokenKind) (jwt.MapClaims, error) {
	secret := i.accessSecret
	if kind == KindRefresh {
		secret = i.refreshSecret
	}
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
