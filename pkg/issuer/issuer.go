package issuer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/AbsaOSS/CertMe/pkg/certificate"
	"github.com/AbsaOSS/CertMe/pkg/certstore"
	"github.com/AbsaOSS/CertMe/pkg/constants"
	"github.com/AbsaOSS/CertMe/pkg/errcode"
	"github.com/AbsaOSS/CertMe/pkg/metricsstore"
)

var (
	errEmptyCommonName     = errors.New("common name must not be empty")
	errMissingParameter    = errors.New("role ID and secret ID parameter names must not be empty")
	errMissingPersister    = errors.New("an output parameter prefix requires a parameter store")
	errMissingOutputKMSKey = errors.New("an output parameter prefix requires a KMS key ID")
	errEmptyToken          = errors.New("Vault login returned an empty client token")
	errEmptyBundle         = errors.New("certificate authority returned no certificate")
)

// New returns an Issuer running the pipeline against the given collaborators. The persister
// may be nil when no output parameter prefix is configured.
func New(options Options, credentials CredentialSource, auth Authenticator, signer Signer, importer Importer, persister Persister) (*Issuer, error) {
	if strings.TrimSpace(options.RoleIDParameter) == "" || strings.TrimSpace(options.SecretIDParameter) == "" {
		return nil, newError(ConfigurationError, StateStart, errMissingParameter)
	}
	if options.OutputParameterPrefix != "" {
		if persister == nil {
			return nil, newError(ConfigurationError, StateStart, errMissingPersister)
		}
		if options.OutputKMSKeyID == "" {
			return nil, newError(ConfigurationError, StateStart, errMissingOutputKMSKey)
		}
	}
	if options.KeyBits == 0 {
		options.KeyBits = constants.DefaultKeyBits
	}
	if options.KeyBits < constants.MinKeyBits || options.KeyBits > constants.MaxKeyBits {
		return nil, newError(ConfigurationError, StateStart, errors.Wrapf(certificate.ErrInvalidKeySize, "%d bits", options.KeyBits))
	}

	return &Issuer{
		options:     options,
		credentials: credentials,
		auth:        auth,
		signer:      signer,
		importer:    importer,
		persister:   persister,
		newKeyPair:  certificate.NewKeyPair,
	}, nil
}

// PersistenceEnabled returns true if the certificate material is written to the parameter store.
func (i *Issuer) PersistenceEnabled() bool {
	return i.options.OutputParameterPrefix != ""
}

// GenerateAndImport issues a certificate for cn and imports it into the certificate manager,
// replacing the material of existingARN when it is set. Every failure aborts the run; nothing
// is retried and nothing already done is undone.
func (i *Issuer) GenerateAndImport(ctx context.Context, cn certificate.CommonName, existingARN string) (*Result, error) {
	id := uuid.New().String()
	r := &run{
		id:      id,
		log:     log.With().Str("invocation", id).Str("cn", cn.String()).Logger(),
		state:   StateStart,
		started: time.Now(),
	}
	r.stageStarted = r.started

	mode := certstore.ImportRequest{ExistingARN: existingARN}.Mode()
	r.log.Info().Str("mode", string(mode)).Msgf("Issuing certificate for CN=%s", cn)

	if strings.TrimSpace(cn.String()) == "" {
		return nil, r.fail(ConfigurationError, errEmptyCommonName)
	}

	creds, err := i.resolveCredentials(ctx)
	if err != nil {
		return nil, r.fail(CredentialRetrievalError, err)
	}
	r.advance(StateCredentialsResolved)

	token, err := i.auth.Login(ctx, creds.RoleID, creds.SecretID)
	if err == nil && token == "" {
		err = errEmptyToken
	}
	if err != nil {
		return nil, r.fail(AuthenticationError, err)
	}
	r.advance(StateAuthenticated)

	keyPair, err := i.newKeyPair(i.options.KeyBits)
	if err != nil {
		return nil, r.fail(KeyGenerationError, err)
	}
	r.log.Debug().Msgf("Generated a %d bit RSA key", keyPair.Bits())
	r.advance(StateKeyPairGenerated)

	csr, err := certificate.NewCertificateRequest(cn, keyPair)
	if err != nil {
		return nil, r.failWithCode(KeyGenerationError, errcode.ErrCreatingCertReq, err)
	}
	if csrCN, err := certificate.CommonNameOf(csr); err != nil || csrCN != cn {
		if err == nil {
			err = errors.Wrapf(certificate.ErrCommonNameMismatch, "requested %q, got %q", cn, csrCN)
		}
		return nil, r.failWithCode(KeyGenerationError, errcode.ErrCreatingCertReq, err)
	}
	r.advance(StateCSRBuilt)

	bundle, err := i.signer.SignCSR(ctx, token, csr, cn)
	if err == nil && (bundle == nil || len(bundle.Certificate) == 0) {
		err = errEmptyBundle
	}
	if err == nil {
		err = keyPair.VerifyCertificate(bundle.Certificate)
	}
	if err != nil {
		return nil, r.fail(SigningError, err)
	}
	r.advance(StateSigned)

	if i.options.Debug {
		r.log.Debug().Msgf("Signed certificate:\n%s", bundle.Certificate)
		r.log.Debug().Msgf("CA chain:\n%s", bundle.ChainPEM())
	}

	arn, err := i.importer.Import(ctx, certstore.ImportRequest{
		Certificate:      bundle.Certificate,
		PrivateKey:       keyPair.PrivateKeyPEM,
		CertificateChain: bundle.ChainPEM(),
		ExistingARN:      existingARN,
	})
	if err != nil {
		return nil, r.fail(ImportError, err)
	}
	r.advance(StateImported)
	r.log.Info().Str("mode", string(mode)).Msgf("Imported certificate %s", arn)

	metricsstore.DefaultMetricsStore.CertIssuedCount.WithLabelValues(string(mode)).Inc()
	metricsstore.DefaultMetricsStore.CertIssuedTime.WithLabelValues().Observe(time.Since(r.started).Seconds())

	result := &Result{
		InvocationID: r.id,
		CommonName:   cn,
		ARN:          arn,
		Mode:         mode,
	}

	if i.PersistenceEnabled() {
		name := OutputParameterName(i.options.OutputParameterPrefix, cn)
		if err := i.persist(ctx, name, cn, keyPair, bundle); err != nil {
			return nil, r.failImported(arn, errors.Wrapf(err, "Error persisting to %s", name))
		}
		result.OutputParameter = name
		r.advance(StatePersisted)
		r.log.Info().Msgf("Persisted certificate material to %s", name)
	}

	r.advance(StateDone)
	result.State = r.state
	result.Duration = time.Since(r.started)
	return result, nil
}

func (i *Issuer) resolveCredentials(ctx context.Context) (*Credentials, error) {
	roleID, err := i.credentials.GetDecryptedParameter(ctx, i.options.RoleIDParameter)
	if err != nil {
		return nil, errors.Wrap(err, "Error resolving the AppRole role ID")
	}
	secretID, err := i.credentials.GetDecryptedParameter(ctx, i.options.SecretIDParameter)
	if err != nil {
		return nil, errors.Wrap(err, "Error resolving the AppRole secret ID")
	}
	return &Credentials{RoleID: roleID, SecretID: secretID}, nil
}

func (i *Issuer) persist(ctx context.Context, name string, cn certificate.CommonName, keyPair *certificate.KeyPair, bundle *certificate.Bundle) error {
	value, err := marshalOutput(cn, keyPair.PrivateKeyPEM, bundle)
	if err != nil {
		return err
	}
	return i.persister.PutEncryptedParameter(ctx, name, value, i.options.OutputKMSKeyID)
}

// run tracks the state and stage timings of one pipeline execution.
type run struct {
	id           string
	log          zerolog.Logger
	state        State
	started      time.Time
	stageStarted time.Time
}

func (r *run) advance(to State) {
	elapsed := time.Since(r.stageStarted)
	metricsstore.DefaultMetricsStore.StageDuration.WithLabelValues(to.String(), "true").Observe(elapsed.Seconds())
	r.log.Debug().Str("from", r.state.String()).Str("to", to.String()).Dur("took", elapsed).Msg("Pipeline state transition")
	r.state = to
	r.stageStarted = time.Now()
}

func (r *run) fail(kind ErrorKind, err error) *Error {
	return r.failWithCode(kind, kindErrCodes[kind], err)
}

func (r *run) failWithCode(kind ErrorKind, code errcode.ErrCode, err error) *Error {
	e := newError(kind, r.state, err)
	e.Code = code
	return r.record(e)
}

// failImported records a persistence failure of a certificate already imported under arn.
func (r *run) failImported(arn string, err error) *Error {
	e := newError(ImportedButNotPersisted, r.state, newError(PersistenceError, r.state, err))
	e.ARN = arn
	return r.record(e)
}

func (r *run) record(e *Error) *Error {
	elapsed := time.Since(r.stageStarted)
	metricsstore.DefaultMetricsStore.StageDuration.WithLabelValues(r.state.String(), "false").Observe(elapsed.Seconds())

	ev := r.log.Error().Err(e.Err).Str(errcode.Kind, errcode.GetErrCodeWithMetric(e.Code)).
		Str("kind", string(e.Kind)).Str("state", r.state.String())
	if e.ARN != "" {
		ev = ev.Str("arn", e.ARN)
	}
	ev.Msgf("Certificate issuance failed after %s", r.state)

	r.state = StateFailed
	return e
}
