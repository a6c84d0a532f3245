package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	tassert "github.com/stretchr/testify/assert"

	"github.com/AbsaOSS/CertMe/pkg/certificate"
	"github.com/AbsaOSS/CertMe/pkg/certstore"
	"github.com/AbsaOSS/CertMe/pkg/config"
	"github.com/AbsaOSS/CertMe/pkg/constants"
	"github.com/AbsaOSS/CertMe/pkg/errcode"
	"github.com/AbsaOSS/CertMe/pkg/issuer"
	"github.com/AbsaOSS/CertMe/pkg/metricsstore"
	"github.com/AbsaOSS/CertMe/pkg/trigger"
)

const testARN = "arn:aws:acm:eu-west-1:123456789012:certificate/abc"

func executeRoot(t *testing.T, factory issuerFactory, args ...string) (string, error) {
	out := new(bytes.Buffer)
	cmd := newRootCmd(out, out, factory)
	for _, c := range cmd.Commands() {
		c.SetOut(out)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func factoryFor(i certIssuer, seen **config.Config) issuerFactory {
	return func(_ context.Context, cfg *config.Config) (certIssuer, error) {
		if seen != nil {
			*seen = cfg
		}
		return i, nil
	}
}

func TestRootWithoutArgsPrintsUsage(t *testing.T) {
	assert := tassert.New(t)

	called := false
	factory := func(context.Context, *config.Config) (certIssuer, error) {
		called = true
		return nil, nil
	}

	out, err := executeRoot(t, factory)
	assert.NoError(err)
	assert.Contains(out, "issue-cert <commonName> [existingArn]")
	assert.False(called)
}

func invalidArgCount() float64 {
	return testutil.ToFloat64(metricsstore.DefaultMetricsStore.ErrCodeCounter.WithLabelValues(errcode.ErrInvalidCLIArgument.String()))
}

func TestRootTooManyArgs(t *testing.T) {
	before := invalidArgCount()
	_, err := executeRoot(t, factoryFor(nil, nil), "a.example.com", testARN, "extra")
	tassert.Error(t, err)
	tassert.Equal(t, before+1, invalidArgCount())
}

func TestRootIssues(t *testing.T) {
	testCases := []struct {
		name        string
		args        []string
		existingARN string
		mode        certstore.ImportMode
	}{
		{
			name: "create",
			args: []string{"svc.example.com"},
			mode: certstore.ModeCreate,
		},
		{
			name:        "reimport",
			args:        []string{"svc.example.com", testARN},
			existingARN: testARN,
			mode:        certstore.ModeReimport,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := tassert.New(t)
			mockCtrl := gomock.NewController(t)
			defer mockCtrl.Finish()

			mockIssuer := trigger.NewMockCertificateIssuer(mockCtrl)
			mockIssuer.EXPECT().GenerateAndImport(gomock.Any(), certificate.CommonName("svc.example.com"), tc.existingARN).
				Return(&issuer.Result{
					CommonName: "svc.example.com",
					ARN:        testARN,
					Mode:       tc.mode,
					State:      issuer.StateDone,
					Duration:   1500 * time.Millisecond,
				}, nil).Times(1)

			var cfg *config.Config
			args := append(tc.args, "--team-code", "FOO", "--timeout", "30s")
			out, err := executeRoot(t, factoryFor(mockIssuer, &cfg), args...)
			assert.NoError(err)
			assert.Contains(out, testARN)
			assert.Contains(out, string(tc.mode))
			assert.Contains(out, "DONE")
			assert.Equal("FOO", cfg.Tags.TeamCode)
			assert.Equal(30*time.Second, cfg.Timeout.Duration)
		})
	}
}

func TestRootReportsPartialFailure(t *testing.T) {
	assert := tassert.New(t)
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockIssuer := trigger.NewMockCertificateIssuer(mockCtrl)
	mockIssuer.EXPECT().GenerateAndImport(gomock.Any(), gomock.Any(), "").Return(nil, &issuer.Error{
		Kind:  issuer.ImportedButNotPersisted,
		State: issuer.StateImported,
		Code:  errcode.ErrImportedNotPersisted,
		ARN:   testARN,
		Err:   errors.New("AccessDeniedException"),
	})

	out, err := executeRoot(t, factoryFor(mockIssuer, nil), "svc.example.com")
	assert.Error(err)
	assert.Contains(out, "ImportedButNotPersisted after IMPORTED")
	assert.Contains(out, testARN)
	assert.Contains(out, errcode.ErrImportedNotPersisted.String())
}

func TestRootReportsBootstrapFailure(t *testing.T) {
	assert := tassert.New(t)

	factory := func(context.Context, *config.Config) (certIssuer, error) {
		return nil, errors.New("vault.address is required")
	}

	out, err := executeRoot(t, factory, "svc.example.com")
	assert.Error(err)
	assert.Contains(out, "vault.address is required")
}

func TestRootRejectsInvalidFlag(t *testing.T) {
	before := invalidArgCount()
	_, err := executeRoot(t, factoryFor(nil, nil), "svc.example.com", "--key-bits", "lots")
	tassert.Error(t, err)
	tassert.Equal(t, before+1, invalidArgCount())
}

func TestConfigCmd(t *testing.T) {
	assert := tassert.New(t)

	t.Setenv(constants.EnvVarVaultAddress, "https://vault.example.com:8200")

	out, err := executeRoot(t, factoryFor(nil, nil), "config", "--team-code", "FOO", "--timeout", "45s")
	assert.NoError(err)
	assert.Contains(out, "https://vault.example.com:8200")
	assert.Contains(out, "teamCode: FOO")
	assert.Contains(out, "timeout: 45s")
	assert.Contains(out, "keyBits: 2048")

	out, err = executeRoot(t, factoryFor(nil, nil), "config", "--env")
	assert.NoError(err)
	assert.Contains(out, constants.EnvVarVaultAddress+`="https://vault.example.com:8200"`)
	assert.Contains(out, constants.EnvVarConfigFile+`=""`)

	_, err = executeRoot(t, factoryFor(nil, nil), "config", "--timeout", "soon")
	assert.Error(err)
}
