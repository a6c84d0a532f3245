package config

import (
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/AbsaOSS/CertMe/pkg/certificate/providers/vault"
	"github.com/AbsaOSS/CertMe/pkg/certstore"
	"github.com/AbsaOSS/CertMe/pkg/constants"
	"github.com/AbsaOSS/CertMe/pkg/logger"
	"github.com/AbsaOSS/CertMe/pkg/parameterstore"
)

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Vault: VaultConfig{
			AppRoleMount: constants.DefaultVaultAppRoleMount,
		},
		KeyBits: constants.DefaultKeyBits,
		Output: OutputConfig{
			ParameterTier: constants.DefaultOutputParameterTier,
		},
		Tags: TagsConfig{
			Key:    constants.DefaultTagKey,
			Policy: string(certstore.TagOnCreate),
		},
		Timeout:   Duration{constants.DefaultTimeout},
		Verbosity: constants.DefaultVerbosity,
	}
}

// Load builds the configuration from the defaults, the YAML file at path (or the file named by
// CERTME_CONFIG when path is empty), the environment and the flags set in fs, which may be nil.
// Every value that cannot be decoded is reported. The result is not validated.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v, err := newViper(fs)
	if err != nil {
		return nil, errors.Wrap(err, "Error binding configuration settings")
	}

	if path == "" {
		path = v.GetString(configFileKey)
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "Error reading config file %s", path)
		}
		log.Debug().Msgf("Loaded config file %s", path)
	}

	c := &Config{}
	if err := v.Unmarshal(c, viper.DecodeHook(mapstructure.DecodeHookFuncType(decodeDuration))); err != nil {
		return nil, decodeErrors(err)
	}
	return c, nil
}

// decodeDuration turns a duration string, ex. 90s, into a Duration.
func decodeDuration(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(Duration{}) {
		return data, nil
	}
	switch d := data.(type) {
	case time.Duration:
		return Duration{d}, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid duration %q, use a value such as 90s or 2m", d)
		}
		return Duration{parsed}, nil
	}
	return data, nil
}

// decodeErrors returns one error per configuration value that could not be decoded.
func decodeErrors(err error) error {
	var derr *mapstructure.Error
	if !errors.As(err, &derr) {
		return errors.Wrap(err, "Error decoding configuration")
	}
	var errs error
	for _, msg := range derr.Errors {
		errs = multierror.Append(errs, errors.New(msg))
	}
	return errs
}

// Validate returns every invalid or missing value at once.
func (c *Config) Validate() error {
	var errs error
	add := func(format string, args ...interface{}) {
		errs = multierror.Append(errs, errors.Errorf(format, args...))
	}

	if c.Vault.Address == "" {
		add("vault.address is required")
	} else if u, err := url.Parse(c.Vault.Address); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		add("vault.address %q must be an http or https URL", c.Vault.Address)
	}
	if vault.NormalizePath(c.Vault.MountPoint) == "" {
		add("vault.mountPoint is required")
	}

	if c.Credentials.RoleIDParameter == "" {
		add("credentials.roleIdParameter is required")
	}
	if c.Credentials.SecretIDParameter == "" {
		add("credentials.secretIdParameter is required")
	}

	if c.KeyBits < constants.MinKeyBits || c.KeyBits > constants.MaxKeyBits {
		add("keyBits %d must be between %d and %d", c.KeyBits, constants.MinKeyBits, constants.MaxKeyBits)
	}

	if c.Output.ParameterPrefix != "" && c.Output.KMSKeyID == "" {
		add("output.kmsKeyId is required when output.parameterPrefix is set")
	}
	if c.Output.ParameterTier != "" && !contains(parameterstore.ValidTiers(), c.Output.ParameterTier) {
		add("output.parameterTier %q must be one of %v", c.Output.ParameterTier, parameterstore.ValidTiers())
	}

	if _, err := certstore.ParseTagPolicy(c.Tags.Policy); err != nil {
		add("tags.policy: %s", err)
	}

	if c.Proxy.URL != "" {
		if _, err := c.ProxyURL(); err != nil {
			add("proxy.url: %s", err)
		}
	}
	if c.Metrics.PushgatewayURL != "" {
		if u, err := url.Parse(c.Metrics.PushgatewayURL); err != nil || u.Host == "" {
			add("metrics.pushgatewayUrl %q is not a valid URL", c.Metrics.PushgatewayURL)
		}
	}

	if c.Timeout.Duration <= 0 {
		add("timeout must be positive")
	}
	if !contains(logger.AllowedLevels, strings.ToLower(c.Verbosity)) {
		add("verbosity %q must be one of %v", c.Verbosity, logger.AllowedLevels)
	}

	return errs
}

// ProxyURL returns the configured proxy, or nil when none is configured.
func (c *Config) ProxyURL() (*url.URL, error) {
	if c.Proxy.URL == "" {
		return nil, nil
	}
	u, err := url.Parse(c.Proxy.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid proxy URL %q", c.Proxy.URL)
	}
	if u.Host == "" {
		return nil, errors.Errorf("proxy URL %q has no host", c.Proxy.URL)
	}
	return u, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
