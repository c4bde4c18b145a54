package didweb

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
)

const defaultTimeout = 5 * time.Second

// maxDocumentBytes bounds how much of a DID document response this
// resolver will read, independent of the CPOE oversize checks in
// verifier, since a hostile or misconfigured DID host is untrusted input.
const maxDocumentBytes = 256 * 1024

// Resolver resolves did:web identifiers to Ed25519 verification keys.
type Resolver struct {
	client  *http.Client
	timeout time.Duration
	log     logger.Logger
}

// NewResolver builds a Resolver whose default HTTP client follows zero
// redirects and dials only through the SSRF-guarded DialContext of
// ssrf.go.
func NewResolver(log logger.Logger, opts ...Option) *Resolver {
	if log == nil {
		log = logger.Sugar.WithServiceName("didweb")
	}
	r := &Resolver{
		timeout: defaultTimeout,
		log:     log,
	}
	r.client = &http.Client{
		Timeout: r.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return ErrRedirectBlocked
		},
		Transport: &http.Transport{
			DialContext: guardedDialContext(&net.Dialer{Timeout: r.timeout}),
		},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve normalizes did, fetches its did:web document, and returns the
// first Ed25519 verification method found. It retries the network fetch
// at most once, per §5/§7.
func (r *Resolver) Resolve(ctx context.Context, did string) (*ResolvedKey, error) {
	docURL, err := documentURL(did)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc, err := r.fetchWithRetry(ctx, docURL)
	if err != nil {
		return nil, err
	}

	for _, vm := range doc.VerificationMethod {
		if vm.PublicKeyJwk.Kty == "OKP" && vm.PublicKeyJwk.Crv == "Ed25519" {
			raw, err := base64.RawURLEncoding.DecodeString(vm.PublicKeyJwk.X)
			if err != nil {
				continue
			}
			return &ResolvedKey{
				DID:          did,
				KeyFragment:  fragmentOf(vm.ID),
				PublicKeyRaw: raw,
			}, nil
		}
	}
	return nil, ErrNoSuitableKey
}

func (r *Resolver) fetchWithRetry(ctx context.Context, docURL string) (*Document, error) {
	doc, err := r.fetch(ctx, docURL)
	if err == nil {
		return doc, nil
	}
	if errors.Is(err, ErrBlockedHost) || errors.Is(err, ErrInvalidDIDDocument) || errors.Is(err, ErrNoSuitableKey) {
		return nil, err
	}
	r.log.Debugf("didweb: retrying fetch of %s after error: %v", docURL, err)
	return r.fetch(ctx, docURL)
}

func (r *Resolver) fetch(ctx context.Context, docURL string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	req.Header.Set("Accept", "application/did+ld+json, application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		if errors.Is(err, ErrBlockedHost) || strings.Contains(err.Error(), ErrBlockedHost.Error()) {
			return nil, ErrBlockedHost
		}
		if strings.Contains(err.Error(), ErrRedirectBlocked.Error()) {
			return nil, ErrRedirectBlocked
		}
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrNetworkError, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	if len(body) > maxDocumentBytes {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", ErrInvalidDIDDocument, maxDocumentBytes)
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDIDDocument, err)
	}
	if doc.ID == "" || len(doc.VerificationMethod) == 0 {
		return nil, ErrInvalidDIDDocument
	}
	return &doc, nil
}

// documentURL normalizes a did:web identifier into the HTTPS URL of its
// document, per §4.3: replace ":" with "/" after the method, appending
// "/.well-known/did.json" when there is no path component or "/did.json"
// when there is.
func documentURL(did string) (string, error) {
	const prefix = "did:web:"
	if !strings.HasPrefix(did, prefix) {
		return "", ErrInvalidDID
	}
	rest := strings.TrimPrefix(did, prefix)
	if rest == "" {
		return "", ErrInvalidDID
	}

	parts := strings.Split(rest, ":")
	for i, p := range parts {
		decoded, err := url.PathUnescape(p)
		if err != nil {
			return "", ErrInvalidDID
		}
		parts[i] = decoded
	}

	host := parts[0]
	if host == "" {
		return "", ErrInvalidDID
	}

	var u string
	if len(parts) == 1 {
		u = fmt.Sprintf("https://%s/.well-known/did.json", host)
	} else {
		u = fmt.Sprintf("https://%s/%s/did.json", host, strings.Join(parts[1:], "/"))
	}
	return u, nil
}

func fragmentOf(verificationMethodID string) string {
	if i := strings.IndexByte(verificationMethodID, '#'); i >= 0 {
		return verificationMethodID[i+1:]
	}
	return verificationMethodID
}
