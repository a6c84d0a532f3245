package certificate

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"strings"

	"github.com/pkg/errors"

	"github.com/AbsaOSS/CertMe/pkg/certificate/pem"
	"github.com/AbsaOSS/CertMe/pkg/constants"
)

// NewKeyPair generates a fresh RSA key pair of the given length. Every call draws new
// randomness, two calls never return the same key.
func NewKeyPair(bits int) (*KeyPair, error) {
	if bits < constants.MinKeyBits || bits > constants.MaxKeyBits {
		return nil, errors.Wrapf(ErrInvalidKeySize, "%d bits, expected between %d and %d", bits, constants.MinKeyBits, constants.MaxKeyBits)
	}

	privKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, errors.Wrapf(err, "generating %d bit RSA key", bits)
	}

	privKeyPEM, err := EncodeKeyDERtoPEM(privKey)
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		PrivateKey:    privKey,
		PrivateKeyPEM: privKeyPEM,
	}, nil
}

// NewCertificateRequest builds a PKCS#10 request for cn signed by the key pair. The subject
// carries the common name only and the request has no subject alternative names.
func NewCertificateRequest(cn CommonName, kp *KeyPair) (pem.CertificateRequest, error) {
	if strings.TrimSpace(cn.String()) == "" {
		return nil, ErrEmptyCommonName
	}
	if kp == nil || kp.PrivateKey == nil {
		return nil, errors.New("certificate request requires a key pair")
	}

	template := &x509.CertificateRequest{
		SignatureAlgorithm: x509.SHA256WithRSA,
		PublicKeyAlgorithm: x509.RSA,
		Subject: pkix.Name{
			CommonName: cn.String(),
		},
	}

	csrDER, err := x509.CreateCertificateRequest(rand.Reader, template, kp.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "error creating x509 certificate request")
	}

	csrPEM, err := EncodeCertReqDERtoPEM(csrDER)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode certificate request DER to PEM CN=%s", cn)
	}

	return csrPEM, nil
}

// CommonNameOf returns the subject common name encoded in a PEM certificate request.
func CommonNameOf(csrPEM pem.CertificateRequest) (CommonName, error) {
	csr, err := DecodePEMCertificateRequest(csrPEM)
	if err != nil {
		return "", err
	}
	return CommonName(csr.Subject.CommonName), nil
}

// VerifyCertificate returns an error unless certPEM is a certificate issued for the public key
// of the key pair.
func (kp *KeyPair) VerifyCertificate(certPEM pem.Certificate) error {
	cert, err := DecodePEMCertificate(certPEM)
	if err != nil {
		return err
	}
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok || !kp.PrivateKey.PublicKey.Equal(pub) {
		return errors.Wrapf(ErrPublicKeyMismatch, "certificate for CN=%s, serial %s", cert.Subject.CommonName, cert.SerialNumber)
	}
	return nil
}
