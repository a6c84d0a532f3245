// Package pem defines the PEM encoded byte slices that flow through the issuance pipeline.
package pem

// PrivateKey is the type for a PEM encoded private key
type PrivateKey []byte

// Certificate is the type for a PEM encoded certificate
type Certificate []byte

// CertificateRequest is the type for a PEM encoded certificate signing request
type CertificateRequest []byte

// String returns the PEM text of the private key
func (k PrivateKey) String() string {
	return string(k)
}

// String returns the PEM text of the certificate
func (c Certificate) String() string {
	return string(c)
}

// String returns the PEM text of the certificate request
func (c CertificateRequest) String() string {
	return string(c)
}
