package certstore

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/acm/types"
	"github.com/pkg/errors"

	"github.com/AbsaOSS/CertMe/pkg/constants"
)

var (
	errNoCertificate = errors.New("certificate and private key are required")
	errNoARN         = errors.New("certificate manager returned no certificate ARN")
)

// ParseTagPolicy returns the TagPolicy named by s. An empty string selects TagOnCreate.
func ParseTagPolicy(s string) (TagPolicy, error) {
	switch TagPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", TagOnCreate:
		return TagOnCreate, nil
	case TagNever:
		return TagNever, nil
	default:
		return "", errors.Errorf("invalid tag policy %q, must be one of %q or %q", s, TagOnCreate, TagNever)
	}
}

// NewClient returns a certificate store importing through api.
func NewClient(api ACMAPI, options Options) *Client {
	if options.TagPolicy == "" {
		options.TagPolicy = TagOnCreate
	}
	if options.TagKey == "" {
		options.TagKey = constants.DefaultTagKey
	}
	return &Client{
		acm:     api,
		options: options,
	}
}

// Import imports the certificate, creating a new ACM certificate or replacing the material of
// req.ExistingARN, and returns the certificate ARN.
func (c *Client) Import(ctx context.Context, req ImportRequest) (string, error) {
	if len(req.Certificate) == 0 || len(req.PrivateKey) == 0 {
		return "", errNoCertificate
	}

	input := &acm.ImportCertificateInput{
		Certificate: req.Certificate,
		PrivateKey:  req.PrivateKey,
	}
	if len(req.CertificateChain) > 0 {
		input.CertificateChain = req.CertificateChain
	}

	mode := req.Mode()
	switch mode {
	case ModeReimport:
		input.CertificateArn = aws.String(req.ExistingARN)
	case ModeCreate:
		input.Tags = c.tags()
	}

	out, err := c.acm.ImportCertificate(ctx, input)
	if err != nil {
		if mode == ModeReimport {
			return "", errors.Wrapf(err, "Error reimporting certificate %s", req.ExistingARN)
		}
		return "", errors.Wrap(err, "Error importing certificate")
	}
	if out == nil || aws.ToString(out.CertificateArn) == "" {
		return "", errNoARN
	}

	arn := aws.ToString(out.CertificateArn)
	log.Debug().Str("mode", string(mode)).Int("tags", len(input.Tags)).Msgf("Imported certificate %s", arn)
	return arn, nil
}

func (c *Client) tags() []types.Tag {
	if c.options.TagPolicy != TagOnCreate || c.options.TeamCode == "" {
		return nil
	}
	return []types.Tag{
		{
			Key:   aws.String(c.options.TagKey),
			Value: aws.String(c.options.TeamCode),
		},
	}
}
