// Package issuer implements the CertMe issuance pipeline: it resolves the Vault AppRole
// credentials, authenticates, generates a key pair and a certificate request, has Vault sign
// it, imports the result into the certificate manager and optionally persists the material.
package issuer

import (
	"context"
	"time"

	"github.com/AbsaOSS/CertMe/pkg/certificate"
	"github.com/AbsaOSS/CertMe/pkg/certificate/pem"
	"github.com/AbsaOSS/CertMe/pkg/certstore"
	"github.com/AbsaOSS/CertMe/pkg/logger"
)

var log = logger.New("issuer")

// CredentialSource reads decrypted secret values, ex. the SSM parameter store.
type CredentialSource interface {
	GetDecryptedParameter(ctx context.Context, name string) (string, error)
}

// Authenticator exchanges AppRole credentials for a Vault client token.
type Authenticator interface {
	Login(ctx context.Context, roleID, secretID string) (string, error)
}

// Signer has a certificate authority sign a certificate request.
type Signer interface {
	SignCSR(ctx context.Context, token string, csr pem.CertificateRequest, cn certificate.CommonName) (*certificate.Bundle, error)
}

// Importer imports a signed certificate into the certificate manager and returns its ARN.
type Importer interface {
	Import(ctx context.Context, req certstore.ImportRequest) (string, error)
}

// Persister writes an encrypted value to the parameter store.
type Persister interface {
	PutEncryptedParameter(ctx context.Context, name, value, kmsKeyID string) error
}

// KeyGenerator generates an RSA key pair of the given length.
type KeyGenerator func(bits int) (*certificate.KeyPair, error)

// Credentials are the Vault AppRole identifiers, used once per run.
type Credentials struct {
	RoleID   string
	SecretID string
}

// Options configure an Issuer.
type Options struct {
	// RoleIDParameter is the name of the parameter holding the AppRole role ID.
	RoleIDParameter string

	// SecretIDParameter is the name of the parameter holding the AppRole secret ID.
	SecretIDParameter string

	// KeyBits is the RSA key length.
	KeyBits int

	// OutputParameterPrefix enables persistence of the certificate material under this prefix.
	OutputParameterPrefix string

	// OutputKMSKeyID is the KMS key encrypting the persisted material.
	OutputKMSKeyID string

	// Debug logs the signed certificate and the CA chain.
	Debug bool
}

// Issuer runs the issuance pipeline against its collaborators.
type Issuer struct {
	options     Options
	credentials CredentialSource
	auth        Authenticator
	signer      Signer
	importer    Importer
	persister   Persister
	newKeyPair  KeyGenerator
}

// Result describes a successful run.
type Result struct {
	// InvocationID correlates the log lines of the run.
	InvocationID string

	CommonName certificate.CommonName

	// ARN of the imported certificate.
	ARN string

	Mode certstore.ImportMode

	// OutputParameter is the name of the parameter the material was written to, empty when
	// persistence is disabled.
	OutputParameter string

	State    State
	Duration time.Duration
}
