// Package vault authenticates to Hashicorp Vault with AppRole and has the Vault PKI
// certificate authority sign certificate requests.
package vault

import (
	"net/url"
	"time"

	"github.com/hashicorp/vault/api"

	"github.com/AbsaOSS/CertMe/pkg/logger"
)

var log = logger.New("vault")

const (
	// apiVersion prefixes every Vault HTTP API path.
	apiVersion = "v1"

	// Request fields
	// See: https://developer.hashicorp.com/vault/api-docs/auth/approle#login-with-approle
	roleIDField   = "role_id"
	secretIDField = "secret_id"

	// See: https://developer.hashicorp.com/vault/api-docs/secret/pki#sign-certificate
	csrField        = "csr"
	commonNameField = "common_name"

	// Response fields
	certificateField  = "certificate"
	caChainField      = "ca_chain"
	issuingCAField    = "issuing_ca"
	serialNumberField = "serial_number"
)

// Options configure the Vault client.
type Options struct {
	// Address is the base URL of the Vault server, ex. https://vault.example.com:8200
	Address string

	// MountPoint is the path of the PKI signing endpoint relative to /v1/,
	// ex. pki/sign/my-role
	MountPoint string

	// AppRoleMount is the path the AppRole auth method is mounted at.
	AppRoleMount string

	// TLSSkipVerify disables verification of the Vault server certificate.
	TLSSkipVerify bool

	// ProxyURL routes Vault traffic through an explicit proxy. When nil the
	// proxy environment variables apply.
	ProxyURL *url.URL

	// Timeout bounds a single HTTP request to Vault.
	Timeout time.Duration
}

// Client implements AppRole login and CSR signing against a Hashi Vault.
type Client struct {
	// Hashicorp Vault client
	client *api.Client

	// Path of the PKI signing endpoint
	mountPoint string

	// Path of the AppRole auth method
	appRoleMount string
}
