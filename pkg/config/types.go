// Package config loads the CertMe configuration from defaults, an optional YAML file,
// CERTME_* environment variables and command line flags, in that order of precedence.
package config

import (
	"encoding/json"
	"time"

	"github.com/AbsaOSS/CertMe/pkg/logger"
)

var log = logger.New("config")

// Config is the configuration of an issue-cert process. It is loaded once at start up.
type Config struct {
	Vault       VaultConfig       `json:"vault"`
	KeyBits     int               `json:"keyBits"`
	Credentials CredentialsConfig `json:"credentials"`
	Output      OutputConfig      `json:"output"`
	Tags        TagsConfig        `json:"tags"`
	AWS         AWSConfig         `json:"aws"`
	Proxy       ProxyConfig       `json:"proxy"`
	Metrics     MetricsConfig     `json:"metrics"`
	Timeout     Duration          `json:"timeout"`
	Debug       bool              `json:"debug"`
	Verbosity   string            `json:"verbosity"`
}

// VaultConfig locates the Vault server and its PKI signing endpoint.
type VaultConfig struct {
	Address       string `json:"address"`
	MountPoint    string `json:"mountPoint"`
	AppRoleMount  string `json:"appRoleMount"`
	TLSSkipVerify bool   `json:"tlsSkipVerify"`
}

// CredentialsConfig names the SSM parameters holding the Vault AppRole credentials.
type CredentialsConfig struct {
	RoleIDParameter   string `json:"roleIdParameter"`
	SecretIDParameter string `json:"secretIdParameter"`
}

// OutputConfig enables persistence of the issued material to SSM.
type OutputConfig struct {
	ParameterPrefix string `json:"parameterPrefix"`
	KMSKeyID        string `json:"kmsKeyId"`
	ParameterTier   string `json:"parameterTier"`
}

// TagsConfig controls the ownership tag of imported certificates.
type TagsConfig struct {
	TeamCode string `json:"teamCode"`
	Key      string `json:"key"`
	Policy   string `json:"policy"`
}

// AWSConfig overrides the AWS SDK defaults.
type AWSConfig struct {
	Region string `json:"region"`
}

// ProxyConfig routes outbound traffic through a proxy.
type ProxyConfig struct {
	URL string `json:"url"`
}

// MetricsConfig enables pushing the invocation metrics.
type MetricsConfig struct {
	PushgatewayURL string `json:"pushgatewayUrl"`
}

// Duration is a time.Duration written as a Go duration string, ex. 90s or 2m.
type Duration struct {
	time.Duration
}

// MarshalJSON writes the duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}
