// Package parameterstore reads the Vault AppRole credentials from, and persists issued
// certificate material to, the AWS SSM Parameter Store.
package parameterstore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/AbsaOSS/CertMe/pkg/logger"
)

var log = logger.New("parameterstore")

// SSMAPI defines the SSM operations needed by the parameter store client.
type SSMAPI interface {
	GetParameter(ctx context.Context,
		params *ssm.GetParameterInput,
		optFns ...func(*ssm.Options),
	) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context,
		params *ssm.PutParameterInput,
		optFns ...func(*ssm.Options),
	) (*ssm.PutParameterOutput, error)
}

// Client reads and writes SecureString parameters.
type Client struct {
	ssm  SSMAPI
	tier string
}
