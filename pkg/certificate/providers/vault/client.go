package vault

import (
	"context"
	"net/http"

	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"

	"github.com/AbsaOSS/CertMe/pkg/certificate"
	"github.com/AbsaOSS/CertMe/pkg/certificate/pem"
	"github.com/AbsaOSS/CertMe/pkg/constants"
)

// NewClient creates a Vault client for the given options. No request is sent until Login.
func NewClient(options Options) (*Client, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	config := api.DefaultConfig()
	if config.Error != nil {
		return nil, errors.Wrap(config.Error, "Error reading Vault environment")
	}
	config.Address = options.Address

	// Signing is not idempotent, the client must never replay a request on its own.
	config.MaxRetries = 0

	if options.Timeout > 0 {
		config.Timeout = options.Timeout
	}

	if options.TLSSkipVerify {
		log.Warn().Msgf("TLS verification of the Vault server at %s is disabled", options.Address)
		if err := config.ConfigureTLS(&api.TLSConfig{Insecure: true}); err != nil {
			return nil, errors.Wrap(err, "Error configuring Vault TLS")
		}
	}

	if options.ProxyURL != nil {
		transport, ok := config.HttpClient.Transport.(*http.Transport)
		if !ok {
			return nil, errors.Errorf("Vault HTTP transport %T does not support proxies", config.HttpClient.Transport)
		}
		transport.Proxy = http.ProxyURL(options.ProxyURL)
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, errors.Wrapf(err, "Error creating Vault client at %s", options.Address)
	}

	// A token picked up from VAULT_TOKEN must not leak into the AppRole login.
	client.ClearToken()

	appRoleMount := NormalizePath(options.AppRoleMount)
	if appRoleMount == "" {
		appRoleMount = constants.DefaultVaultAppRoleMount
	}

	log.Debug().Msgf("Created Vault client at %s, signing with %q", options.Address, NormalizePath(options.MountPoint))

	return &Client{
		client:       client,
		mountPoint:   NormalizePath(options.MountPoint),
		appRoleMount: appRoleMount,
	}, nil
}

// Login exchanges an AppRole role ID and secret ID for a Vault client token.
func (c *Client) Login(ctx context.Context, roleID, secretID string) (string, error) {
	if roleID == "" || secretID == "" {
		return "", errEmptyCredentials
	}

	c.client.ClearToken()
	secret, err := c.client.Logical().WriteWithContext(ctx, getLoginPath(c.appRoleMount), getLoginData(roleID, secretID))
	if err != nil {
		return "", errors.Wrapf(err, "Error logging in to Vault with AppRole at auth/%s", c.appRoleMount)
	}
	if secret == nil || secret.Auth == nil || secret.Auth.ClientToken == "" {
		return "", errNoClientToken
	}

	log.Debug().Msgf("Logged in to Vault with AppRole, token lease %ds, renewable=%t", secret.Auth.LeaseDuration, secret.Auth.Renewable)
	return secret.Auth.ClientToken, nil
}

// SignCSR has the Vault certificate authority at the configured mount point sign csr for cn.
// It sends exactly one request; a failure is returned as is and never retried.
func (c *Client) SignCSR(ctx context.Context, token string, csr pem.CertificateRequest, cn certificate.CommonName) (*certificate.Bundle, error) {
	if token == "" {
		return nil, errEmptyToken
	}

	c.client.SetToken(token)
	defer c.client.ClearToken()

	secret, err := c.client.Logical().WriteWithContext(ctx, c.mountPoint, getSigningData(csr, cn))
	if err != nil {
		return nil, errors.Wrapf(err, "Error signing certificate request for CN=%s at %s", cn, c.mountPoint)
	}

	bundle, err := newBundle(secret)
	if err != nil {
		return nil, err
	}

	log.Debug().Msgf("Vault signed certificate for CN=%s SerialNumber=%v with %d CA certificate(s)", cn, secret.Data[serialNumberField], len(bundle.CAChain))
	return bundle, nil
}
