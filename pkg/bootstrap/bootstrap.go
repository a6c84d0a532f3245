// Package bootstrap builds the issuance pipeline and its AWS and Vault clients from the
// configuration, once per process.
package bootstrap

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/pkg/errors"

	"github.com/AbsaOSS/CertMe/pkg/certificate/providers/vault"
	"github.com/AbsaOSS/CertMe/pkg/certstore"
	"github.com/AbsaOSS/CertMe/pkg/config"
	"github.com/AbsaOSS/CertMe/pkg/errcode"
	"github.com/AbsaOSS/CertMe/pkg/issuer"
	"github.com/AbsaOSS/CertMe/pkg/logger"
	"github.com/AbsaOSS/CertMe/pkg/parameterstore"
)

var log = logger.New("bootstrap")

// NewIssuer validates cfg and returns an Issuer wired to the real SSM, ACM and Vault clients.
func NewIssuer(ctx context.Context, cfg *config.Config) (*issuer.Issuer, error) {
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Str(errcode.Kind, errcode.GetErrCodeWithMetric(errcode.ErrInvalidConfig)).
			Msg("Invalid configuration")
		return nil, &issuer.Error{Kind: issuer.ConfigurationError, State: issuer.StateStart, Code: errcode.ErrInvalidConfig, Err: err}
	}

	awsCfg, err := LoadAWSConfig(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str(errcode.Kind, errcode.GetErrCodeWithMetric(errcode.ErrLoadingAWSConfig)).
			Msg("Error loading the AWS configuration")
		return nil, &issuer.Error{Kind: issuer.ConfigurationError, State: issuer.StateStart, Code: errcode.ErrLoadingAWSConfig, Err: err}
	}

	vaultOptions, err := VaultOptions(cfg)
	if err != nil {
		return nil, &issuer.Error{Kind: issuer.ConfigurationError, State: issuer.StateStart, Code: errcode.ErrInvalidConfig, Err: err}
	}
	vaultClient, err := vault.NewClient(vaultOptions)
	if err != nil {
		log.Error().Err(err).Str(errcode.Kind, errcode.GetErrCodeWithMetric(errcode.ErrCreatingVaultClient)).
			Msgf("Error creating the Vault client for %s", cfg.Vault.Address)
		return nil, &issuer.Error{Kind: issuer.ConfigurationError, State: issuer.StateStart, Code: errcode.ErrCreatingVaultClient, Err: err}
	}

	params := parameterstore.NewClient(ssm.NewFromConfig(awsCfg), cfg.Output.ParameterTier)

	storeOptions, err := CertStoreOptions(cfg)
	if err != nil {
		return nil, &issuer.Error{Kind: issuer.ConfigurationError, State: issuer.StateStart, Code: errcode.ErrInvalidConfig, Err: err}
	}
	store := certstore.NewClient(acm.NewFromConfig(awsCfg), storeOptions)

	var persister issuer.Persister
	if cfg.Output.ParameterPrefix != "" {
		persister = params
	}

	log.Debug().Msgf("Bootstrapped issuer: vault=%s region=%s persistence=%t", cfg.Vault.Address, awsCfg.Region, persister != nil)
	return issuer.New(IssuerOptions(cfg), params, vaultClient, vaultClient, store, persister)
}

// LoadAWSConfig resolves the AWS SDK configuration, applying the configured region and proxy.
func LoadAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWS.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWS.Region))
	}

	proxy, err := cfg.ProxyURL()
	if err != nil {
		return aws.Config{}, err
	}
	if proxy != nil {
		httpClient := awshttp.NewBuildableClient().WithTransportOptions(func(tr *http.Transport) {
			tr.Proxy = http.ProxyURL(proxy)
		})
		opts = append(opts, awsconfig.WithHTTPClient(httpClient))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "Error loading AWS SDK config")
	}
	return awsCfg, nil
}

// VaultOptions returns the Vault client options of cfg.
func VaultOptions(cfg *config.Config) (vault.Options, error) {
	proxy, err := cfg.ProxyURL()
	if err != nil {
		return vault.Options{}, err
	}
	return vault.Options{
		Address:       cfg.Vault.Address,
		MountPoint:    cfg.Vault.MountPoint,
		AppRoleMount:  cfg.Vault.AppRoleMount,
		TLSSkipVerify: cfg.Vault.TLSSkipVerify,
		ProxyURL:      proxy,
		Timeout:       cfg.Timeout.Duration,
	}, nil
}

// CertStoreOptions returns the certificate store tagging options of cfg.
func CertStoreOptions(cfg *config.Config) (certstore.Options, error) {
	policy, err := certstore.ParseTagPolicy(cfg.Tags.Policy)
	if err != nil {
		return certstore.Options{}, err
	}
	return certstore.Options{
		TagPolicy: policy,
		TagKey:    cfg.Tags.Key,
		TeamCode:  cfg.Tags.TeamCode,
	}, nil
}

// IssuerOptions returns the pipeline options of cfg.
func IssuerOptions(cfg *config.Config) issuer.Options {
	return issuer.Options{
		RoleIDParameter:       cfg.Credentials.RoleIDParameter,
		SecretIDParameter:     cfg.Credentials.SecretIDParameter,
		KeyBits:               cfg.KeyBits,
		OutputParameterPrefix: cfg.Output.ParameterPrefix,
		OutputKMSKeyID:        cfg.Output.KMSKeyID,
		Debug:                 cfg.Debug,
	}
}
