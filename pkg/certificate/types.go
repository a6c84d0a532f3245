// Package certificate generates the key material and certificate signing requests handled by
// CertMe, and models the certificate bundle returned by the signing authority.
package certificate

import (
	"crypto/rsa"

	"github.com/AbsaOSS/CertMe/pkg/certificate/pem"
)

const (
	// TypeCertificate is a string constant to be used in the generation of a certificate.
	TypeCertificate = "CERTIFICATE"

	// TypePrivateKey is a string constant to be used in the generation of a private key for a certificate.
	TypePrivateKey = "PRIVATE KEY"

	// TypeCertificateRequest is a string constant to be used in the generation
	// of a certificate requests.
	TypeCertificateRequest = "CERTIFICATE REQUEST"
)

// CommonName is the Subject Common Name from a given SSL certificate.
type CommonName string

func (cn CommonName) String() string {
	return string(cn)
}

// KeyPair is a freshly generated RSA private key together with its PEM encoding.
// It only lives in memory for the duration of one invocation.
type KeyPair struct {
	// PrivateKey is the RSA key, the public half is PrivateKey.PublicKey.
	PrivateKey *rsa.PrivateKey

	// PrivateKeyPEM is the PKCS#8 PEM encoding of PrivateKey.
	PrivateKeyPEM pem.PrivateKey
}

// Bits returns the length of the key modulus.
func (kp *KeyPair) Bits() int {
	return kp.PrivateKey.N.BitLen()
}

// Bundle is the signing authority response: the signed leaf certificate and the CA chain
// in the order the authority returned it, nearest to the leaf first.
type Bundle struct {
	// Certificate is the signed leaf certificate.
	Certificate pem.Certificate

	// CAChain is the ordered chain of issuing certificates.
	CAChain []pem.Certificate
}
