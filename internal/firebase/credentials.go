package firebase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
)

// ErrCredentials marks every failure to read or parse the service-account
// credential. Startup treats it as fatal.
var ErrCredentials = errors.New("firebase credentials")

// serviceAccountType is the only key type accepted for the Admin SDK.
const serviceAccountType = "service_account"

// firebaseScopes mirrors the Admin SDK's default scope list.
var firebaseScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/datastore",
	"https://www.googleapis.com/auth/devstorage.full_control",
	"https://www.googleapis.com/auth/firebase",
	"https://www.googleapis.com/auth/identitytoolkit",
	"https://www.googleapis.com/auth/userinfo.email",
}

// openCredentials resolves a credential locator to a byte stream.
// Supported forms: "<path>", "file:<path>" and "env:<VAR>" (raw JSON held in
// an environment variable, as on Cloud Run secrets).
func openCredentials(location string) (io.ReadCloser, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, errors.New("credentials location is empty")
	case strings.HasPrefix(location, "env:"):
		name := strings.TrimPrefix(location, "env:")
		raw, ok := os.LookupEnv(name)
		if !ok || strings.TrimSpace(raw) == "" {
			return nil, fmt.Errorf("environment variable %s is not set", name)
		}
		return io.NopCloser(strings.NewReader(raw)), nil
	default:
		return os.Open(strings.TrimPrefix(location, "file:"))
	}
}

// LoadCredentials opens the credential resource and builds a credential
// object from it. Only service-account keys are accepted. Errors wrap
// ErrCredentials; a missing file also matches fs.ErrNotExist.
func LoadCredentials(ctx context.Context, location string) (*google.Credentials, error) {
	r, err := openCredentials(location)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %w", ErrCredentials, location, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %w", ErrCredentials, location, err)
	}

	var key struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("%w: parse %q: %w", ErrCredentials, location, err)
	}
	if key.Type != serviceAccountType {
		return nil, fmt.Errorf("%w: %q holds credential type %q, want %q", ErrCredentials, location, key.Type, serviceAccountType)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, firebaseScopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %q: %w", ErrCredentials, location, err)
	}
	return creds, nil
}
