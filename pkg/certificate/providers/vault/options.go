package vault

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Validate validates the options for the Hashi Vault client
func (options *Options) Validate() error {
	if options.Address == "" {
		return errors.New("Vault address not specified in Hashi Vault options")
	}

	u, err := url.Parse(options.Address)
	if err != nil {
		return errors.Wrapf(err, "Vault address %q is not a valid URL", options.Address)
	}
	if _, ok := map[string]interface{}{"http": nil, "https": nil}[u.Scheme]; !ok {
		return errors.Errorf("Vault address scheme must be one of [http, https], got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.Errorf("Vault address %q has no host", options.Address)
	}

	if NormalizePath(options.MountPoint) == "" {
		return errors.New("Vault signing mount point not specified in Hashi Vault options")
	}

	return nil
}

// NormalizePath trims the slashes and an optional API version prefix off a Vault path, so
// "/v1/pki/sign/role/" and "pki/sign/role" address the same endpoint. A path made only of the
// version prefix normalizes to "".
func NormalizePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == apiVersion {
		return ""
	}
	p = strings.TrimPrefix(p, apiVersion+"/")
	return strings.Trim(p, "/")
}
