package certificate

import (
	"errors"
)

var (
	errEncodeKey          = errors.New("encode key")
	errEncodeCertReq      = errors.New("encode certificate request")
	errMarshalPrivateKey  = errors.New("marshal private key")
	errNoCertificateInPEM = errors.New("no certificate in PEM")
	errNoCertReqInPEM     = errors.New("no certificate request in PEM")

	// ErrEmptyCommonName is returned when a certificate request is built without a common name.
	ErrEmptyCommonName = errors.New("common name must not be empty")

	// ErrInvalidKeySize is returned for RSA key lengths outside the accepted range.
	ErrInvalidKeySize = errors.New("invalid RSA key size")

	// ErrCommonNameMismatch is returned when a generated request does not carry the requested common name.
	ErrCommonNameMismatch = errors.New("certificate request common name does not match the requested common name")

	// ErrPublicKeyMismatch is returned when a signed certificate does not carry the public key of the key pair.
	ErrPublicKeyMismatch = errors.New("certificate public key does not match the key pair")
)
