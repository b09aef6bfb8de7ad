package security

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// CredentialFetcher obtains a short-lived delegated credential from an
// identity provider on the caller's behalf, scoped to one request's
// working directory. Implementations must bound the call with a
// timeout: the fetch sits on the request's critical path and a failure
// aborts the request.
type CredentialFetcher interface {
	// Fetch retrieves a credential from endpoint using the delegation
	// token, stores it under workdir and returns the directory to use as
	// the credential root.
	Fetch(ctx context.Context, endpoint, token, workdir string) (string, error)
}

const credentialFileName = "credentials.pem"

// SLCSCredentialFetcher fetches a certificate from a short-lived
// credential service over HTTP.
type SLCSCredentialFetcher struct {
	client *http.Client
}

func NewSLCSCredentialFetcher(timeout time.Duration) *SLCSCredentialFetcher {
	return &SLCSCredentialFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *SLCSCredentialFetcher) Fetch(ctx context.Context, endpoint, token, workdir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("building credential request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching credential from %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("credential service %s returned status %d", endpoint, resp.StatusCode)
	}

	if err := os.MkdirAll(workdir, 0o700); err != nil {
		return "", fmt.Errorf("preparing credential workdir: %w", err)
	}
	out, err := os.OpenFile(filepath.Join(workdir, credentialFileName), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("writing credential file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("writing credential file: %w", err)
	}
	return workdir, nil
}

var _ CredentialFetcher = (*SLCSCredentialFetcher)(nil)
