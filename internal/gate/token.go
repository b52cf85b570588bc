package gate

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"log/slog"
	"time"

	"github.com/contratoseguro/contratos/internal/errl"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// TokenService signs the session token set as a cookie once the gate
// opens. The EC key pair is ephemeral and only valid while the server
// is up, on purpose: the token asserts nothing beyond "this session
// passed the gate", so losing it on restart just re-prompts the
// ceremony.
type TokenService struct {
	privateKey *ecdsa.PrivateKey
	publicKey  *ecdsa.PublicKey
	issuer     string
}

const tokenLifetime = 12 * time.Hour

// NewTokenService generates the signing key pair.
func NewTokenService(issuer string) (*TokenService, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, errl.Errorf("generating session key: %w", err)
	}

	slog.Info("Gate token service initialized", "issuer", issuer)
	return &TokenService{
		privateKey: privateKey,
		publicKey:  &privateKey.PublicKey,
		issuer:     issuer,
	}, nil
}

// Generate signs a session token for the given gate session.
func (s *TokenService) Generate(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", errl.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token, returning the session
// identifier it was issued for.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) { return s.publicKey, nil },
		jwt.WithValidMethods([]string{"ES256"}),
		jwt.WithIssuer(s.issuer),
	)
	if err != nil {
		return "", errl.Errorf("parsing session token: %w", err)
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errl.Errorf("session token without subject")
	}
	return sub, nil
}

// PublicJWKS exposes the verification key as a JWK set, serialized by
// the caller. Useful when a reverse proxy wants to check the cookie
// without asking this process.
func (s *TokenService) PublicJWKS() (jwk.Set, error) {
	key, err := jwk.FromRaw(s.publicKey)
	if err != nil {
		return nil, errl.Errorf("converting public key to JWK: %w", err)
	}
	if err := key.Set(jwk.KeyUsageKey, "sig"); err != nil {
		return nil, errl.Error(err)
	}
	if err := key.Set(jwk.AlgorithmKey, "ES256"); err != nil {
		return nil, errl.Error(err)
	}
	set := jwk.NewSet()
	if err := set.AddKey(key); err != nil {
		return nil, errl.Error(err)
	}
	return set, nil
}
