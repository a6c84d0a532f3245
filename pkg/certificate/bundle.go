package certificate

import (
	"bytes"
	"strings"

	"github.com/AbsaOSS/CertMe/pkg/certificate/pem"
)

// ChainPEM joins the CA chain, in order, into the single PEM document the certificate
// manager expects as the certificate chain.
func (b *Bundle) ChainPEM() []byte {
	parts := make([][]byte, 0, len(b.CAChain))
	for _, c := range b.CAChain {
		parts = append(parts, bytes.TrimRight(c, "\n"))
	}
	if len(parts) == 0 {
		return nil
	}
	return append(bytes.Join(parts, []byte("\n")), '\n')
}

// NewBundle builds a Bundle from the PEM strings returned by a signing authority.
func NewBundle(cert string, chain []string) *Bundle {
	b := &Bundle{
		Certificate: pem.Certificate(cert),
	}
	for _, c := range chain {
		if strings.TrimSpace(c) == "" {
			continue
		}
		b.CAChain = append(b.CAChain, pem.Certificate(c))
	}
	return b
}
