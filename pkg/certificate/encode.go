package certificate

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	pemEnc "encoding/pem"

	"github.com/pkg/errors"

	"github.com/AbsaOSS/CertMe/pkg/certificate/pem"
)

// EncodeKeyDERtoPEM converts a DER encoded private key into a PEM encoded key
func EncodeKeyDERtoPEM(priv *rsa.PrivateKey) (pem.PrivateKey, error) {
	keyOut := &bytes.Buffer{}
	privBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, errors.Wrap(err, errMarshalPrivateKey.Error())
	}
	block := pemEnc.Block{
		Type:  TypePrivateKey,
		Bytes: privBytes,
	}
	if err := pemEnc.Encode(keyOut, &block); err != nil {
		return nil, errors.Wrap(err, errEncodeKey.Error())
	}
	return keyOut.Bytes(), nil
}

// EncodeCertReqDERtoPEM encodes the certificate request provided in DER format
// into PEM format.
func EncodeCertReqDERtoPEM(derBytes []byte) (pem.CertificateRequest, error) {
	csrPEM := bytes.NewBuffer([]byte{})
	block := pemEnc.Block{
		Type:  TypeCertificateRequest,
		Bytes: derBytes,
	}
	if err := pemEnc.Encode(csrPEM, &block); err != nil {
		return nil, errors.Wrap(err, errEncodeCertReq.Error())
	}
	return csrPEM.Bytes(), nil
}

// DecodePEMCertificate converts a certificate from PEM to x509 encoding
func DecodePEMCertificate(certPEM []byte) (*x509.Certificate, error) {
	for len(certPEM) > 0 {
		var block *pemEnc.Block
		block, certPEM = pemEnc.Decode(certPEM)
		if block == nil {
			return nil, errNoCertificateInPEM
		}
		if block.Type != TypeCertificate || len(block.Headers) != 0 {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			continue
		}

		return cert, nil
	}

	return nil, errNoCertificateInPEM
}

// DecodePEMCertificateRequest converts a certificate request from PEM to x509 encoding and
// verifies its signature.
func DecodePEMCertificateRequest(csrPEM []byte) (*x509.CertificateRequest, error) {
	block, _ := pemEnc.Decode(csrPEM)
	if block == nil || block.Type != TypeCertificateRequest {
		return nil, errNoCertReqInPEM
	}
	csr, err := x509.ParseCertificateRequest(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, errNoCertReqInPEM.Error())
	}
	if err := csr.CheckSignature(); err != nil {
		return nil, errors.Wrap(err, "certificate request signature")
	}
	return csr, nil
}
