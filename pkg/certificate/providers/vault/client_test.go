package vault

import (
	"context"
	"net/http"
	"net/url"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/AbsaOSS/CertMe/pkg/certificate"
	"github.com/AbsaOSS/CertMe/pkg/certificate/pem"
)

const (
	signPath  = "/v1/certificate_authority/sign/team-space"
	loginPath = "/v1/auth/approle/login"
)

var _ = Describe("Test Vault client", func() {
	var (
		server *fakeVault
		client *Client
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		server = newFakeVault()

		var err error
		client, err = NewClient(Options{
			Address:    server.URL,
			MountPoint: "/v1/certificate_authority/sign/team-space/",
		})
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	Context("Test Login()", func() {
		It("exchanges the role ID and secret ID for a client token", func() {
			server.respond(loginPath, http.StatusOK, map[string]interface{}{
				"auth": map[string]interface{}{
					"client_token":   "s.token",
					"lease_duration": 1200,
					"renewable":      true,
				},
			})

			token, err := client.Login(ctx, "role-id", "secret-id")
			Expect(err).ToNot(HaveOccurred())
			Expect(token).To(Equal("s.token"))

			requests := server.received()
			Expect(requests).To(HaveLen(1))
			Expect(requests[0].method).To(Or(Equal(http.MethodPut), Equal(http.MethodPost)))
			Expect(requests[0].path).To(Equal(loginPath))
			Expect(requests[0].token).To(BeEmpty())
			Expect(requests[0].body).To(Equal(map[string]interface{}{
				"role_id":   "role-id",
				"secret_id": "secret-id",
			}))
		})

		It("returns an error when Vault rejects the credentials", func() {
			server.respond(loginPath, http.StatusBadRequest, map[string]interface{}{
				"errors": []string{"invalid role or secret ID"},
			})

			token, err := client.Login(ctx, "role-id", "wrong")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid role or secret ID"))
			Expect(token).To(BeEmpty())
		})

		It("returns an error when the response has no client token", func() {
			server.respond(loginPath, http.StatusOK, map[string]interface{}{
				"auth": map[string]interface{}{"client_token": ""},
			})

			_, err := client.Login(ctx, "role-id", "secret-id")
			Expect(err).To(MatchError(errNoClientToken))
		})

		It("returns an error when the response has no auth object", func() {
			server.respond(loginPath, http.StatusOK, map[string]interface{}{
				"data": map[string]interface{}{"foo": "bar"},
			})

			_, err := client.Login(ctx, "role-id", "secret-id")
			Expect(err).To(MatchError(errNoClientToken))
		})

		It("refuses empty identifiers without calling Vault", func() {
			_, err := client.Login(ctx, "", "secret-id")
			Expect(err).To(MatchError(errEmptyCredentials))

			_, err = client.Login(ctx, "role-id", "")
			Expect(err).To(MatchError(errEmptyCredentials))

			Expect(server.received()).To(BeEmpty())
		})

		It("uses a custom AppRole mount", func() {
			custom, err := NewClient(Options{
				Address:      server.URL,
				MountPoint:   "pki/sign/role",
				AppRoleMount: "approle-team",
			})
			Expect(err).ToNot(HaveOccurred())

			server.respond("/v1/auth/approle-team/login", http.StatusOK, map[string]interface{}{
				"auth": map[string]interface{}{"client_token": "s.custom"},
			})

			token, err := custom.Login(ctx, "role-id", "secret-id")
			Expect(err).ToNot(HaveOccurred())
			Expect(token).To(Equal("s.custom"))
		})
	})

	Context("Test SignCSR()", func() {
		csr := pem.CertificateRequest("-----BEGIN CERTIFICATE REQUEST-----\nMIIB\n-----END CERTIFICATE REQUEST-----\n")
		cn := certificate.CommonName("svc.example.com")

		It("signs the request with the token and keeps the CA chain order", func() {
			server.respond(signPath, http.StatusOK, map[string]interface{}{
				"data": map[string]interface{}{
					"certificate":   "leaf",
					"ca_chain":      []string{"intermediate", "root"},
					"issuing_ca":    "intermediate",
					"serial_number": "39:dd:2e",
				},
			})

			bundle, err := client.SignCSR(ctx, "s.token", csr, cn)
			Expect(err).ToNot(HaveOccurred())
			Expect(bundle.Certificate).To(Equal(pem.Certificate("leaf")))
			Expect(bundle.CAChain).To(Equal([]pem.Certificate{pem.Certificate("intermediate"), pem.Certificate("root")}))

			requests := server.received()
			Expect(requests).To(HaveLen(1))
			Expect(requests[0].path).To(Equal(signPath))
			Expect(requests[0].token).To(Equal("s.token"))
			Expect(requests[0].body).To(Equal(map[string]interface{}{
				"csr":         csr.String(),
				"common_name": "svc.example.com",
			}))
		})

		It("does not reorder a chain returned root first", func() {
			server.respond(signPath, http.StatusOK, map[string]interface{}{
				"data": map[string]interface{}{
					"certificate": "leaf",
					"ca_chain":    []string{"root", "intermediate"},
				},
			})

			bundle, err := client.SignCSR(ctx, "s.token", csr, cn)
			Expect(err).ToNot(HaveOccurred())
			Expect(bundle.CAChain).To(Equal([]pem.Certificate{pem.Certificate("root"), pem.Certificate("intermediate")}))
		})

		It("falls back to the issuing CA when there is no chain", func() {
			server.respond(signPath, http.StatusOK, map[string]interface{}{
				"data": map[string]interface{}{
					"certificate": "leaf",
					"issuing_ca":  "root",
				},
			})

			bundle, err := client.SignCSR(ctx, "s.token", csr, cn)
			Expect(err).ToNot(HaveOccurred())
			Expect(bundle.CAChain).To(Equal([]pem.Certificate{pem.Certificate("root")}))
		})

		It("sends a single request when the CA fails", func() {
			server.respond(signPath, http.StatusInternalServerError, map[string]interface{}{
				"errors": []string{"internal error"},
			})

			_, err := client.SignCSR(ctx, "s.token", csr, cn)
			Expect(err).To(HaveOccurred())
			Expect(server.received()).To(HaveLen(1))
		})

		It("returns an error when the CA rejects the request", func() {
			server.respond(signPath, http.StatusBadRequest, map[string]interface{}{
				"errors": []string{"common name not allowed by this role"},
			})

			_, err := client.SignCSR(ctx, "s.token", csr, cn)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("common name not allowed by this role"))
		})

		It("returns an error when the response has no certificate", func() {
			server.respond(signPath, http.StatusOK, map[string]interface{}{
				"data": map[string]interface{}{"ca_chain": []string{"root"}},
			})

			_, err := client.SignCSR(ctx, "s.token", csr, cn)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("malformed"))
		})

		It("refuses to sign without a token", func() {
			_, err := client.SignCSR(ctx, "", csr, cn)
			Expect(err).To(MatchError(errEmptyToken))
			Expect(server.received()).To(BeEmpty())
		})
	})

	Context("Test NewClient()", func() {
		It("routes requests through the configured proxy", func() {
			proxied := newFakeVault()
			defer proxied.Close()
			proxied.respond(loginPath, http.StatusOK, map[string]interface{}{
				"auth": map[string]interface{}{"client_token": "s.proxied"},
			})

			proxyURL, err := url.Parse(proxied.URL)
			Expect(err).ToNot(HaveOccurred())

			viaProxy, err := NewClient(Options{
				Address:    "http://vault.invalid:8200",
				MountPoint: "pki/sign/role",
				ProxyURL:   proxyURL,
			})
			Expect(err).ToNot(HaveOccurred())

			token, err := viaProxy.Login(ctx, "role-id", "secret-id")
			Expect(err).ToNot(HaveOccurred())
			Expect(token).To(Equal("s.proxied"))
		})

		It("rejects invalid options", func() {
			_, err := NewClient(Options{Address: "foo://bar", MountPoint: "pki/sign/role"})
			Expect(err).To(HaveOccurred())
		})
	})
})
