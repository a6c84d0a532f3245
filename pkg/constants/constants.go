// Package constants defines the constants that are used by multiple other packages within CertMe.
package constants

import "time"

const (
	// CertMeName is the name of the project, used as metrics namespace and log prefix.
	CertMeName = "certme"

	// IssueCertCLIName is the name of the command line entry point.
	IssueCertCLIName = "issue-cert"

	// IssueCertLambdaName is the name of the event-triggered entry point.
	IssueCertLambdaName = "issue-cert-lambda"
)

// Environment variables
const (
	// EnvVarHumanReadableLogMessages is an environment variable, which when set to "true" enables colorful human-readable log messages.
	EnvVarHumanReadableLogMessages = "CERTME_HUMAN_READABLE_LOG_MESSAGES"

	// EnvVarConfigFile is the path of an optional YAML configuration file.
	EnvVarConfigFile = "CERTME_CONFIG"

	EnvVarVaultAddress       = "CERTME_VAULT_ADDRESS"
	EnvVarVaultMountPoint    = "CERTME_VAULT_MOUNT_POINT"
	EnvVarVaultAppRoleMount  = "CERTME_VAULT_APPROLE_MOUNT"
	EnvVarVaultTLSSkipVerify = "CERTME_VAULT_TLS_SKIP_VERIFY"
	EnvVarKeyBits            = "CERTME_KEY_BITS"
	EnvVarRoleIDParameter    = "CERTME_ROLE_ID_PARAMETER"
	EnvVarSecretIDParameter  = "CERTME_SECRET_ID_PARAMETER"
	EnvVarOutputPrefix       = "CERTME_OUTPUT_PARAMETER_PREFIX"
	EnvVarOutputKMSKeyID     = "CERTME_OUTPUT_KMS_KEY_ID"
	EnvVarOutputTier         = "CERTME_OUTPUT_PARAMETER_TIER"
	EnvVarTeamCode           = "CERTME_TEAM_CODE"
	EnvVarTagKey             = "CERTME_TAG_KEY"
	EnvVarTagPolicy          = "CERTME_TAG_POLICY"
	EnvVarAWSRegion          = "CERTME_AWS_REGION"
	EnvVarProxyURL           = "CERTME_PROXY_URL"
	EnvVarTimeout            = "CERTME_TIMEOUT"
	EnvVarDebug              = "CERTME_DEBUG"
	EnvVarVerbosity          = "CERTME_VERBOSITY"
	EnvVarPushgatewayURL     = "CERTME_PUSHGATEWAY_URL"
)

// Defaults
const (
	// DefaultKeyBits is the default RSA key length in bits.
	DefaultKeyBits = 2048

	// MinKeyBits is the smallest RSA key length accepted.
	MinKeyBits = 2048

	// MaxKeyBits is the largest RSA key length accepted.
	MaxKeyBits = 8192

	// DefaultVaultAppRoleMount is the path the AppRole auth method is mounted at.
	DefaultVaultAppRoleMount = "approle"

	// DefaultTagKey is the key of the ownership tag attached to newly imported certificates.
	DefaultTagKey = "TeamCode"

	// DefaultOutputParameterTier is the SSM tier used for the persisted certificate material.
	// The material of a 4096 bit key with a chain does not fit in a Standard (4KB) parameter.
	DefaultOutputParameterTier = "Intelligent-Tiering"

	// DefaultTimeout is the overall deadline of a single invocation.
	DefaultTimeout = 2 * time.Minute

	// DefaultVerbosity is the default log level.
	DefaultVerbosity = "info"
)
