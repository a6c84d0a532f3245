package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"

	"github.com/AbsaOSS/CertMe/pkg/certificate"
	"github.com/AbsaOSS/CertMe/pkg/certificate/pem"
)

func getLoginPath(appRoleMount string) string {
	return fmt.Sprintf("auth/%s/login", appRoleMount)
}

func getLoginData(roleID, secretID string) map[string]interface{} {
	return map[string]interface{}{
		roleIDField:   roleID,
		secretIDField: secretID,
	}
}

func getSigningData(csr pem.CertificateRequest, cn certificate.CommonName) map[string]interface{} {
	return map[string]interface{}{
		csrField:        csr.String(),
		commonNameField: cn.String(),
	}
}

// newBundle builds the certificate bundle out of a PKI sign response. The CA chain keeps the
// order Vault returned; a response without ca_chain falls back to the issuing CA alone.
func newBundle(secret *api.Secret) (*certificate.Bundle, error) {
	if secret == nil || secret.Data == nil {
		return nil, errEmptySignResponse
	}

	cert, ok := secret.Data[certificateField].(string)
	if !ok || cert == "" {
		return nil, errors.Wrapf(errMalformedSignResponse, "field %q is missing or not a string", certificateField)
	}

	var chain []string
	switch rawChain := secret.Data[caChainField].(type) {
	case nil:
		if issuingCA, ok := secret.Data[issuingCAField].(string); ok && issuingCA != "" {
			chain = []string{issuingCA}
		}
	case []interface{}:
		for i, item := range rawChain {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Wrapf(errMalformedSignResponse, "%s[%d] is not a string", caChainField, i)
			}
			chain = append(chain, s)
		}
	default:
		return nil, errors.Wrapf(errMalformedSignResponse, "field %q is not a list", caChainField)
	}

	return certificate.NewBundle(cert, chain), nil
}

var (
	errEmptyCredentials      = errors.New("AppRole login requires a role ID and a secret ID")
	errNoClientToken         = errors.New("Vault login response did not include a client token")
	errEmptyToken            = errors.New("signing requires a Vault client token")
	errEmptySignResponse     = errors.New("Vault sign response is empty")
	errMalformedSignResponse = errors.New("Vault sign response is malformed")
)
