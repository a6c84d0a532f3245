// Package certstore imports signed certificates into AWS Certificate Manager.
package certstore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/acm"

	"github.com/AbsaOSS/CertMe/pkg/certificate/pem"
	"github.com/AbsaOSS/CertMe/pkg/logger"
)

var log = logger.New("certstore")

// ACMAPI is the subset of the ACM client used to import certificates.
type ACMAPI interface {
	ImportCertificate(ctx context.Context, params *acm.ImportCertificateInput, optFns ...func(*acm.Options)) (*acm.ImportCertificateOutput, error)
}

// TagPolicy decides when the team tag is attached to an imported certificate.
type TagPolicy string

const (
	// TagOnCreate tags certificates when they are first imported. ACM rejects tags on reimport.
	TagOnCreate TagPolicy = "on-create"

	// TagNever never tags certificates.
	TagNever TagPolicy = "never"
)

// ImportMode tells whether an import created a new certificate or replaced an existing one.
type ImportMode string

const (
	// ModeCreate is an import without an existing ARN.
	ModeCreate ImportMode = "create"

	// ModeReimport replaces the material of an existing certificate in place.
	ModeReimport ImportMode = "reimport"
)

// ImportRequest is the material of one certificate import.
type ImportRequest struct {
	Certificate      pem.Certificate
	PrivateKey       pem.PrivateKey
	CertificateChain []byte

	// ExistingARN selects reimport mode when set.
	ExistingARN string
}

// Mode returns the import mode of the request.
func (r ImportRequest) Mode() ImportMode {
	if r.ExistingARN != "" {
		return ModeReimport
	}
	return ModeCreate
}

// Options configure the tags attached to newly created certificates.
type Options struct {
	TagPolicy TagPolicy
	TagKey    string
	TeamCode  string
}

// Client imports certificates into ACM.
type Client struct {
	acm     ACMAPI
	options Options
}
