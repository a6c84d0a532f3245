package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	tassert "github.com/stretchr/testify/assert"
	trequire "github.com/stretchr/testify/require"

	"github.com/AbsaOSS/CertMe/pkg/constants"
)

func validConfig() *Config {
	c := Default()
	c.Vault.Address = "https://vault.example.com:8200"
	c.Vault.MountPoint = "pki/sign/team"
	c.Credentials.RoleIDParameter = "/vault/role-id"
	c.Credentials.SecretIDParameter = "/vault/secret-id"
	return c
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "certme.yaml")
	trequire.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefault(t *testing.T) {
	assert := tassert.New(t)

	c := Default()
	assert.Equal(2048, c.KeyBits)
	assert.Equal("approle", c.Vault.AppRoleMount)
	assert.Equal("Intelligent-Tiering", c.Output.ParameterTier)
	assert.Equal("TeamCode", c.Tags.Key)
	assert.Equal("on-create", c.Tags.Policy)
	assert.Equal(2*time.Minute, c.Timeout.Duration)
	assert.Equal("info", c.Verbosity)
	assert.False(c.Debug)
	assert.False(c.Vault.TLSSkipVerify)
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("", nil)
	trequire.NoError(t, err)
	tassert.Equal(t, Default(), c)
}

func TestLoadFile(t *testing.T) {
	assert := tassert.New(t)
	require := trequire.New(t)

	path := writeConfig(t, `
vault:
  address: https://vault.example.com:8200
  mountPoint: pki/sign/team
credentials:
  roleIdParameter: /vault/role-id
  secretIdParameter: /vault/secret-id
output:
  parameterPrefix: /certs
  kmsKeyId: alias/certs
tags:
  teamCode: FOO
timeout: 45s
keyBits: 4096
`)

	c, err := Load(path, nil)
	require.NoError(err)
	assert.Equal("https://vault.example.com:8200", c.Vault.Address)
	assert.Equal("pki/sign/team", c.Vault.MountPoint)
	assert.Equal("approle", c.Vault.AppRoleMount)
	assert.Equal("/vault/role-id", c.Credentials.RoleIDParameter)
	assert.Equal("/certs", c.Output.ParameterPrefix)
	assert.Equal("alias/certs", c.Output.KMSKeyID)
	assert.Equal("Intelligent-Tiering", c.Output.ParameterTier)
	assert.Equal("FOO", c.Tags.TeamCode)
	assert.Equal("TeamCode", c.Tags.Key)
	assert.Equal(45*time.Second, c.Timeout.Duration)
	assert.Equal(4096, c.KeyBits)
	assert.NoError(c.Validate())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(err)

	_, err = Load(writeConfig(t, "timeout: soon\n"), nil)
	assert.Error(err)

	_, err = Load(writeConfig(t, "vault: [unclosed\n"), nil)
	assert.Error(err)
}

func TestLoadEnv(t *testing.T) {
	assert := tassert.New(t)

	t.Setenv(constants.EnvVarVaultAddress, "http://127.0.0.1:8200")
	t.Setenv(constants.EnvVarVaultTLSSkipVerify, "true")
	t.Setenv(constants.EnvVarKeyBits, "3072")
	t.Setenv(constants.EnvVarTeamCode, "BAR")
	t.Setenv(constants.EnvVarTimeout, "30s")
	t.Setenv(constants.EnvVarDebug, "1")

	c, err := Load("", nil)
	assert.NoError(err)
	assert.Equal("http://127.0.0.1:8200", c.Vault.Address)
	assert.True(c.Vault.TLSSkipVerify)
	assert.Equal(3072, c.KeyBits)
	assert.Equal("BAR", c.Tags.TeamCode)
	assert.Equal(30*time.Second, c.Timeout.Duration)
	assert.True(c.Debug)
}

func TestLoadReportsEveryDecodeError(t *testing.T) {
	assert := tassert.New(t)

	t.Setenv(constants.EnvVarKeyBits, "many")
	t.Setenv(constants.EnvVarTimeout, "later")
	t.Setenv(constants.EnvVarDebug, "maybe")

	c, err := Load("", nil)
	assert.Nil(c)
	merr, ok := err.(*multierror.Error)
	trequire.True(t, ok)
	assert.Len(merr.Errors, 3)
}

func TestFlagsOverrideEnv(t *testing.T) {
	assert := tassert.New(t)
	require := trequire.New(t)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(fs.Parse([]string{"--team-code", "FLAG", "--debug", "--key-bits=4096"}))

	t.Setenv(constants.EnvVarTeamCode, "ENV")
	t.Setenv(constants.EnvVarTagKey, "Owner")

	c, err := Load("", fs)
	require.NoError(err)
	assert.Equal("FLAG", c.Tags.TeamCode)
	assert.Equal("Owner", c.Tags.Key)
	assert.True(c.Debug)
	assert.Equal(4096, c.KeyBits)
	assert.Equal(2*time.Minute, c.Timeout.Duration)

	fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs)
	assert.Error(fs.Parse([]string{"--timeout", "forever"}))
}

func TestLoad(t *testing.T) {
	assert := tassert.New(t)
	require := trequire.New(t)

	path := writeConfig(t, "tags:\n  teamCode: FILE\n  key: Owner\ntimeout: 10s\n")

	t.Setenv(constants.EnvVarTeamCode, "ENV")

	c, err := Load(path, nil)
	require.NoError(err)
	assert.Equal("ENV", c.Tags.TeamCode)
	assert.Equal("Owner", c.Tags.Key)
	assert.Equal(10*time.Second, c.Timeout.Duration)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(fs.Parse([]string{"--timeout", "5s"}))

	t.Setenv(constants.EnvVarConfigFile, path)
	c, err = Load("", fs)
	require.NoError(err)
	assert.Equal("Owner", c.Tags.Key)
	assert.Equal(5*time.Second, c.Timeout.Duration)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(c *Config)
		expectErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:      "missing vault address",
			mutate:    func(c *Config) { c.Vault.Address = "" },
			expectErr: true,
		},
		{
			name:      "vault address without scheme",
			mutate:    func(c *Config) { c.Vault.Address = "vault.example.com" },
			expectErr: true,
		},
		{
			name:      "missing mount point",
			mutate:    func(c *Config) { c.Vault.MountPoint = "/" },
			expectErr: true,
		},
		{
			name:      "mount point of the API version only",
			mutate:    func(c *Config) { c.Vault.MountPoint = "/v1/" },
			expectErr: true,
		},
		{
			name:      "missing role ID parameter",
			mutate:    func(c *Config) { c.Credentials.RoleIDParameter = "" },
			expectErr: true,
		},
		{
			name:      "missing secret ID parameter",
			mutate:    func(c *Config) { c.Credentials.SecretIDParameter = "" },
			expectErr: true,
		},
		{
			name:      "key too short",
			mutate:    func(c *Config) { c.KeyBits = 1024 },
			expectErr: true,
		},
		{
			name:      "key too long",
			mutate:    func(c *Config) { c.KeyBits = 16384 },
			expectErr: true,
		},
		{
			name:      "output prefix without KMS key",
			mutate:    func(c *Config) { c.Output.ParameterPrefix = "/certs" },
			expectErr: true,
		},
		{
			name: "output enabled",
			mutate: func(c *Config) {
				c.Output.ParameterPrefix = "/certs"
				c.Output.KMSKeyID = "alias/certs"
			},
		},
		{
			name:      "unknown tier",
			mutate:    func(c *Config) { c.Output.ParameterTier = "Premium" },
			expectErr: true,
		},
		{
			name:      "unknown tag policy",
			mutate:    func(c *Config) { c.Tags.Policy = "always" },
			expectErr: true,
		},
		{
			name:   "tag policy never",
			mutate: func(c *Config) { c.Tags.Policy = "never" },
		},
		{
			name:      "proxy without host",
			mutate:    func(c *Config) { c.Proxy.URL = "http://" },
			expectErr: true,
		},
		{
			name:   "proxy",
			mutate: func(c *Config) { c.Proxy.URL = "http://proxy.internal:3128" },
		},
		{
			name:      "zero timeout",
			mutate:    func(c *Config) { c.Timeout.Duration = 0 },
			expectErr: true,
		},
		{
			name:      "unknown verbosity",
			mutate:    func(c *Config) { c.Verbosity = "loud" },
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)
			err := c.Validate()
			if tc.expectErr {
				tassert.Error(t, err)
			} else {
				tassert.NoError(t, err)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	err := Default().Validate()
	merr, ok := err.(*multierror.Error)
	trequire.True(t, ok)
	tassert.Len(t, merr.Errors, 4)
}

func TestProxyURL(t *testing.T) {
	assert := tassert.New(t)

	c := validConfig()
	u, err := c.ProxyURL()
	assert.NoError(err)
	assert.Nil(u)

	c.Proxy.URL = "http://proxy.internal:3128"
	u, err = c.ProxyURL()
	assert.NoError(err)
	assert.Equal("proxy.internal:3128", u.Host)
}

func TestEnvVars(t *testing.T) {
	vars := EnvVars()
	tassert.Contains(t, vars, constants.EnvVarConfigFile)
	tassert.Contains(t, vars, constants.EnvVarVaultAddress)
	tassert.Len(t, vars, len(settings)+1)
}
