// Package trigger handles the events that trigger a certificate issuance in AWS Lambda.
package trigger

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/AbsaOSS/CertMe/pkg/certificate"
	"github.com/AbsaOSS/CertMe/pkg/errcode"
	"github.com/AbsaOSS/CertMe/pkg/issuer"
	"github.com/AbsaOSS/CertMe/pkg/logger"
)

var log = logger.New("trigger")

// ErrMissingCommonName is returned for events without a common name. No collaborator is called.
var ErrMissingCommonName = errors.New("the event must contain a string attribute 'cn' with the common name, and optionally an 'existingArn' attribute for reimports")

// Event is the payload of an issuance request.
type Event struct {
	// CN is the common name of the certificate.
	CN string `json:"cn"`

	// ExistingARN is the ARN of a certificate to reimport. A new certificate is created when empty.
	ExistingARN string `json:"existingArn,omitempty"`
}

// CertificateIssuer runs the issuance pipeline.
type CertificateIssuer interface {
	GenerateAndImport(ctx context.Context, cn certificate.CommonName, existingARN string) (*issuer.Result, error)
}

// Handler handles issuance events.
type Handler struct {
	issuer  CertificateIssuer
	timeout time.Duration
}

// NewHandler returns a Handler issuing certificates with i. A positive timeout bounds each
// invocation in addition to the deadline of the incoming context.
func NewHandler(i CertificateIssuer, timeout time.Duration) *Handler {
	return &Handler{
		issuer:  i,
		timeout: timeout,
	}
}

// Handle issues the certificate requested by event and returns its ARN.
func (h *Handler) Handle(ctx context.Context, event Event) (string, error) {
	cn := strings.TrimSpace(event.CN)
	if cn == "" {
		log.Error().Str(errcode.Kind, errcode.GetErrCodeWithMetric(errcode.ErrInvalidEvent)).
			Msg("Received an event without a common name")
		return "", ErrMissingCommonName
	}
	log.Info().Str("cn", cn).Str("existingArn", event.ExistingARN).Msg("Received issuance event")

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.issuer.GenerateAndImport(ctx, certificate.CommonName(cn), strings.TrimSpace(event.ExistingARN))
	if err != nil {
		return "", errors.Wrapf(err, "Error issuing certificate for CN=%s", cn)
	}
	return result.ARN, nil
}
