// Package errcode defines the error codes for error messages and an explanation
// of what the error signifies.
package errcode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/AbsaOSS/CertMe/pkg/metricsstore"
)

// ErrCode defines the type to represent error codes
type ErrCode int

const (
	// Kind defines the kind for the error code constants
	Kind = "error_code"
)

// Range 1000-1050 is reserved for errors related to application startup or bootstrapping
const (
	// ErrInvalidCLIArgument indicates an invalid CLI argument
	ErrInvalidCLIArgument ErrCode = iota + 1000

	// ErrSettingLogLevel indicates the specified log level could not be set
	ErrSettingLogLevel

	// ErrInvalidConfig indicates the configuration is missing a value or carries an invalid one
	ErrInvalidConfig

	// ErrLoadingConfigFile indicates the configuration file could not be read or parsed
	ErrLoadingConfigFile

	// ErrLoadingAWSConfig indicates the AWS SDK configuration could not be resolved
	ErrLoadingAWSConfig

	// ErrCreatingVaultClient indicates the Vault API client could not be created
	ErrCreatingVaultClient

	// ErrInvalidEvent indicates the triggering event is missing a required field
	ErrInvalidEvent

	// ErrPushingMetrics indicates the metrics could not be pushed to the Pushgateway
	ErrPushingMetrics
)

// Range 4000-4100 reserved for errors related to the issuance pipeline
const (
	// ErrFetchingCredentials indicates the Vault role ID or secret ID could not be read from the parameter store
	ErrFetchingCredentials ErrCode = iota + 4000

	// ErrVaultLogin indicates the Vault AppRole login was rejected or returned no client token
	ErrVaultLogin

	// ErrGeneratingPrivateKey indicates a private key could not be generated
	ErrGeneratingPrivateKey

	// ErrCreatingCertReq indicates a certificate request could not be created
	ErrCreatingCertReq

	// ErrSigningCert indicates the Vault certificate authority did not sign the certificate request
	ErrSigningCert

	// ErrImportingCert indicates the certificate manager rejected the certificate material or ARN
	ErrImportingCert

	// ErrPersistingCert indicates the certificate material could not be written to the parameter store
	ErrPersistingCert

	// ErrImportedNotPersisted indicates a certificate was imported but its material was not persisted
	ErrImportedNotPersisted
)

// String returns the error code as a string, ex. E1000
func (e ErrCode) String() string {
	return fmt.Sprintf("E%d", e)
}

// GetErrCodeWithMetric increments the ErrCodeCounter metric for the given error code
// Returns the error code as a string
func GetErrCodeWithMetric(e ErrCode) string {
	metricsstore.DefaultMetricsStore.ErrCodeCounter.WithLabelValues(e.String()).Inc()
	return e.String()
}

// FromStr returns the ErrCode representation for the given error code string
// Ex. E1000 is converted to ErrInvalidCLIArgument
func FromStr(e string) (ErrCode, error) {
	errStr := strings.TrimLeft(e, "E")
	errInt, err := strconv.Atoi(errStr)
	if err != nil {
		return ErrCode(0), errors.Errorf("error code '%s' is not a valid error code format, should be of the form Exxxx, ex. E1000", e)
	}
	return ErrCode(errInt), nil
}

// ErrCodeMap defines the mapping of error codes to their description.
// Note: error code description mappings must be defined in the same order
// as they appear in the error code definitions - from lowest to highest
// ranges in the order they appear within the range.
var ErrCodeMap = map[ErrCode]string{
	//
	// Range 1000-1050
	//
	ErrInvalidCLIArgument: `
An invalid command line argument was passed to the application.
`,

	ErrSettingLogLevel: `
The specified log level could not be set in the system.
`,

	ErrInvalidConfig: `
A required configuration value is missing or a configured value is invalid.
The validation message lists every offending key.
`,

	ErrLoadingConfigFile: `
The YAML configuration file pointed to by --config or CERTME_CONFIG could not
be read or parsed.
`,

	ErrLoadingAWSConfig: `
The AWS SDK could not resolve its configuration (region, credentials chain or
shared config files).
`,

	ErrCreatingVaultClient: `
The Vault API client could not be created from the configured address and TLS
settings.
`,

	ErrInvalidEvent: `
The event that triggered the function does not carry the required 'cn' field.
`,

	ErrPushingMetrics: `
The invocation metrics could not be pushed to the configured Prometheus
Pushgateway. The certificate workflow itself is not affected.
`,

	//
	// Range 4000-4100
	//
	ErrFetchingCredentials: `
The Vault AppRole role ID or secret ID could not be read and decrypted from the
SSM parameter store. Check the parameter names and the IAM permissions for
ssm:GetParameter and kms:Decrypt.
`,

	ErrVaultLogin: `
The Vault AppRole login was rejected, failed in transit, or the response did not
contain a client token. No key material was generated.
`,

	ErrGeneratingPrivateKey: `
The RSA private key could not be generated.
`,

	ErrCreatingCertReq: `
The certificate signing request could not be created from the private key and
the common name.
`,

	ErrSigningCert: `
The Vault certificate authority rejected or failed to sign the certificate
request. Signing is not retried automatically.
`,

	ErrImportingCert: `
AWS Certificate Manager rejected the certificate, private key, chain or the
existing certificate ARN.
`,

	ErrPersistingCert: `
The certificate material could not be written to the SSM parameter store.
`,

	ErrImportedNotPersisted: `
The certificate was imported into AWS Certificate Manager but its material could
not be persisted to the SSM parameter store. The certificate is live; reconcile
the parameter store manually using the ARN reported with the error.
`,
}
