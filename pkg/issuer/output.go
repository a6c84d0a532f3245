package issuer

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/AbsaOSS/CertMe/pkg/certificate"
	"github.com/AbsaOSS/CertMe/pkg/certificate/pem"
)

const wildcardLabel = "*."

// outputDocument is the JSON document persisted for each issued certificate.
type outputDocument struct {
	CommonName  string `json:"commonName"`
	PrivateKey  string `json:"privateKey"`
	CAChain     string `json:"caChain"`
	Certificate string `json:"certificate"`
}

// OutputParameterName returns the name of the parameter the material of cn is persisted
// under. The leading wildcard label of a wildcard name is spelled out as "wildcard.", since
// parameter names cannot contain '*'.
func OutputParameterName(prefix string, cn certificate.CommonName) string {
	name := cn.String()
	if strings.HasPrefix(name, wildcardLabel) {
		name = "wildcard." + strings.TrimPrefix(name, wildcardLabel)
	}
	return strings.TrimSuffix(prefix, "/") + "/" + name
}

func marshalOutput(cn certificate.CommonName, key pem.PrivateKey, bundle *certificate.Bundle) (string, error) {
	doc := outputDocument{
		CommonName:  cn.String(),
		PrivateKey:  string(key),
		CAChain:     string(bundle.ChainPEM()),
		Certificate: bundle.Certificate.String(),
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrapf(err, "Error encoding the output document for CN=%s", cn)
	}
	return string(out), nil
}
