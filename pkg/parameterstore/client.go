package parameterstore

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

var (
	errEmptyName  = errors.New("parameter name must not be empty")
	errEmptyValue = errors.New("parameter has no value")
	errNoKMSKey   = errors.New("a KMS key ID is required to encrypt the parameter")
)

// NewClient returns a parameter store client writing parameters in the given tier.
// An empty tier leaves the choice to SSM.
func NewClient(api SSMAPI, tier string) *Client {
	return &Client{
		ssm:  api,
		tier: tier,
	}
}

// GetDecryptedParameter returns the plaintext value of the SecureString parameter name.
func (c *Client) GetDecryptedParameter(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errEmptyName
	}

	log.Debug().Msgf("Getting the value of secret parameter %s", name)

	out, err := c.ssm.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", errors.Wrapf(err, "Error getting parameter %s", name)
	}
	if out == nil || out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", errors.Wrapf(errEmptyValue, "parameter %s", name)
	}

	return aws.ToString(out.Parameter.Value), nil
}

// PutEncryptedParameter writes value to name as a SecureString encrypted with kmsKeyID,
// overwriting any previous value.
func (c *Client) PutEncryptedParameter(ctx context.Context, name, value, kmsKeyID string) error {
	if strings.TrimSpace(name) == "" {
		return errEmptyName
	}
	if strings.TrimSpace(kmsKeyID) == "" {
		return errNoKMSKey
	}

	input := &ssm.PutParameterInput{
		Name:      aws.String(name),
		Value:     aws.String(value),
		Type:      types.ParameterTypeSecureString,
		KeyId:     aws.String(kmsKeyID),
		Overwrite: aws.Bool(true),
	}
	if c.tier != "" {
		input.Tier = types.ParameterTier(c.tier)
	}

	out, err := c.ssm.PutParameter(ctx, input)
	if err != nil {
		return errors.Wrapf(err, "Error putting parameter %s (%s)", name, humanize.Bytes(uint64(len(value))))
	}

	var version int64
	if out != nil {
		version = out.Version
	}
	log.Debug().Msgf("Wrote %s to parameter %s, version %d", humanize.Bytes(uint64(len(value))), name, version)
	return nil
}

// ValidTiers lists the accepted parameter tiers.
func ValidTiers() []string {
	var tiers []string
	for _, t := range types.ParameterTier("").Values() {
		tiers = append(tiers, string(t))
	}
	return tiers
}
