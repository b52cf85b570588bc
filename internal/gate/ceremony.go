package gate

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/contratoseguro/contratos/internal/errl"
	"github.com/google/uuid"
)

// The ceremony option structures mirror the browser's
// navigator.credentials surface. The server fills them in and the page
// script passes them to the platform API as-is; the response is only
// mined for the credential handle.

type RelyingParty struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type CeremonyUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type CredentialParam struct {
	Type string `json:"type"`
	Alg  int    `json:"alg"`
}

type AuthenticatorSelection struct {
	AuthenticatorAttachment string `json:"authenticatorAttachment"`
	RequireResidentKey      bool   `json:"requireResidentKey"`
	UserVerification        string `json:"userVerification"`
}

type AllowedCredential struct {
	Type       string   `json:"type"`
	ID         string   `json:"id"`
	Transports []string `json:"transports"`
}

// CreationOptions parametrizes the create-credential ceremony.
type CreationOptions struct {
	Challenge              string                 `json:"challenge"`
	RP                     RelyingParty           `json:"rp"`
	User                   CeremonyUser           `json:"user"`
	PubKeyCredParams       []CredentialParam      `json:"pubKeyCredParams"`
	AuthenticatorSelection AuthenticatorSelection `json:"authenticatorSelection"`
	Timeout                int                    `json:"timeout"`
}

// RequestOptions parametrizes the get-credential ceremony, with the
// stored handle as the only allowed credential.
type RequestOptions struct {
	Challenge        string              `json:"challenge"`
	AllowCredentials []AllowedCredential `json:"allowCredentials"`
	UserVerification string              `json:"userVerification"`
	Timeout          int                 `json:"timeout"`
}

const ceremonyTimeoutMillis = 60000

// NewChallenge returns 32 random bytes, base64url-encoded. The
// challenge exists to satisfy the platform API shape; it is never
// verified server-side.
func NewChallenge() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errl.Errorf("generating challenge: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewCreationOptions builds the options for registering this device.
func NewCreationOptions(rpID, rpName, challenge string) CreationOptions {
	return CreationOptions{
		Challenge: challenge,
		RP:        RelyingParty{Name: rpName, ID: rpID},
		User: CeremonyUser{
			ID:          base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString()[:16])),
			Name:        "user",
			DisplayName: "Usuário Autorizado",
		},
		PubKeyCredParams: []CredentialParam{{Type: "public-key", Alg: -7}}, // ES256
		AuthenticatorSelection: AuthenticatorSelection{
			AuthenticatorAttachment: "platform",
			RequireResidentKey:      false,
			UserVerification:        "preferred",
		},
		Timeout: ceremonyTimeoutMillis,
	}
}

// NewRequestOptions builds the options for authenticating with the
// stored handle.
func NewRequestOptions(challenge, handle string) RequestOptions {
	return RequestOptions{
		Challenge: challenge,
		AllowCredentials: []AllowedCredential{
			{Type: "public-key", ID: handle, Transports: []string{"internal"}},
		},
		UserVerification: "preferred",
		Timeout:          ceremonyTimeoutMillis,
	}
}
