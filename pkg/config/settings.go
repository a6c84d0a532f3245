package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/AbsaOSS/CertMe/pkg/certstore"
	"github.com/AbsaOSS/CertMe/pkg/constants"
)

type kind int

const (
	kindString kind = iota
	kindBool
	kindInt
	kindDuration
)

// setting binds one configuration key to its environment variable and flag.
type setting struct {
	key   string
	env   string
	flag  string
	usage string
	kind  kind
}

var settings = []setting{
	{
		key: "vault.address", env: constants.EnvVarVaultAddress, flag: "vault-address",
		usage: "Vault server address, ex. https://vault.example.com:8200",
	},
	{
		key: "vault.mountPoint", env: constants.EnvVarVaultMountPoint, flag: "vault-mount-point",
		usage: "Vault PKI signing path, ex. pki/sign/my-role",
	},
	{
		key: "vault.appRoleMount", env: constants.EnvVarVaultAppRoleMount, flag: "vault-approle-mount",
		usage: "Path the Vault AppRole auth method is mounted at",
	},
	{
		key: "vault.tlsSkipVerify", env: constants.EnvVarVaultTLSSkipVerify, flag: "vault-tls-skip-verify",
		usage: "Do not verify the Vault server certificate", kind: kindBool,
	},
	{
		key: "keyBits", env: constants.EnvVarKeyBits, flag: "key-bits",
		usage: "RSA key length in bits", kind: kindInt,
	},
	{
		key: "credentials.roleIdParameter", env: constants.EnvVarRoleIDParameter, flag: "role-id-parameter",
		usage: "SSM parameter holding the Vault AppRole role ID",
	},
	{
		key: "credentials.secretIdParameter", env: constants.EnvVarSecretIDParameter, flag: "secret-id-parameter",
		usage: "SSM parameter holding the Vault AppRole secret ID",
	},
	{
		key: "output.parameterPrefix", env: constants.EnvVarOutputPrefix, flag: "output-parameter-prefix",
		usage: "SSM parameter prefix to persist the issued material under, empty disables persistence",
	},
	{
		key: "output.kmsKeyId", env: constants.EnvVarOutputKMSKeyID, flag: "output-kms-key-id",
		usage: "KMS key encrypting the persisted material",
	},
	{
		key: "output.parameterTier", env: constants.EnvVarOutputTier, flag: "output-parameter-tier",
		usage: "SSM tier of the persisted parameter",
	},
	{
		key: "tags.teamCode", env: constants.EnvVarTeamCode, flag: "team-code",
		usage: "Team code tagged on newly imported certificates",
	},
	{
		key: "tags.key", env: constants.EnvVarTagKey, flag: "tag-key",
		usage: "Key of the team tag",
	},
	{
		key: "tags.policy", env: constants.EnvVarTagPolicy, flag: "tag-policy",
		usage: "When to tag imported certificates: on-create or never",
	},
	{
		key: "aws.region", env: constants.EnvVarAWSRegion, flag: "aws-region",
		usage: "AWS region, defaults to the SDK resolution chain",
	},
	{
		key: "proxy.url", env: constants.EnvVarProxyURL, flag: "proxy-url",
		usage: "Proxy for Vault and AWS traffic, defaults to the proxy environment variables",
	},
	{
		key: "timeout", env: constants.EnvVarTimeout, flag: "timeout",
		usage: "Deadline of the whole invocation", kind: kindDuration,
	},
	{
		key: "debug", env: constants.EnvVarDebug, flag: "debug",
		usage: "Log at debug level and include the signed certificate and CA chain", kind: kindBool,
	},
	{
		key: "verbosity", env: constants.EnvVarVerbosity, flag: "verbosity",
		usage: "Log level",
	},
	{
		key: "metrics.pushgatewayUrl", env: constants.EnvVarPushgatewayURL, flag: "pushgateway-url",
		usage: "Prometheus Pushgateway to push the invocation metrics to",
	},
}

// configFileKey holds the path of the YAML configuration file.
const configFileKey = "config"

func setDefaults(v *viper.Viper) {
	v.SetDefault("vault.appRoleMount", constants.DefaultVaultAppRoleMount)
	v.SetDefault("keyBits", constants.DefaultKeyBits)
	v.SetDefault("output.parameterTier", constants.DefaultOutputParameterTier)
	v.SetDefault("tags.key", constants.DefaultTagKey)
	v.SetDefault("tags.policy", string(certstore.TagOnCreate))
	v.SetDefault("timeout", constants.DefaultTimeout)
	v.SetDefault("verbosity", constants.DefaultVerbosity)
}

// newViper returns a viper instance resolving every setting from the flags set in fs, the
// environment and the defaults, in that order. fs may be nil.
func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if err := v.BindEnv(configFileKey, constants.EnvVarConfigFile); err != nil {
		return nil, err
	}
	for _, s := range settings {
		if err := v.BindEnv(s.key, s.env); err != nil {
			return nil, err
		}
		if fs == nil {
			continue
		}
		if f := fs.Lookup(s.flag); f != nil {
			if err := v.BindPFlag(s.key, f); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

// AddFlags binds a flag for every configuration key to the given flagset. Flags take
// precedence over the environment when they are set on the command line.
func AddFlags(fs *pflag.FlagSet) {
	for _, s := range settings {
		usage := s.usage + " [" + s.env + "]"
		switch s.kind {
		case kindBool:
			fs.Bool(s.flag, false, usage)
		case kindInt:
			fs.Int(s.flag, 0, usage)
		case kindDuration:
			fs.Duration(s.flag, 0, usage)
		default:
			fs.String(s.flag, "", usage)
		}
	}
}

// EnvVars returns the name of every environment variable the configuration is read from.
func EnvVars() []string {
	vars := []string{constants.EnvVarConfigFile}
	for _, s := range settings {
		vars = append(vars, s.env)
	}
	return vars
}
