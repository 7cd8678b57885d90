package repository

// CredentialsRepository defines the interface for loading the admin API key.
type CredentialsRepository interface {
	// LoadAPIKey returns the admin API key, or ErrMissingCredential when no
	// credential source provides one.
	LoadAPIKey() (string, error)
}
