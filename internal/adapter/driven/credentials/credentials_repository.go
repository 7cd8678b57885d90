package credentials

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/anthropic-cost-report-go/internal/domain/repository"
	"github.com/diillson/anthropic-cost-report-go/internal/shared/types"
)

const envKey = "ANTHROPIC_ADMIN_KEY"

// CredentialsRepositoryImpl implementa o CredentialsRepository.
type CredentialsRepositoryImpl struct {
	envFilePath string
}

// NewCredentialsRepository cria uma nova implementação do
// CredentialsRepository lendo de ~/.env.
func NewCredentialsRepository() repository.CredentialsRepository {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &CredentialsRepositoryImpl{envFilePath: filepath.Join(home, ".env")}
}

// NewCredentialsRepositoryWithPath creates a CredentialsRepository backed by
// a specific env file. Used by tests.
func NewCredentialsRepositoryWithPath(envFilePath string) repository.CredentialsRepository {
	return &CredentialsRepositoryImpl{envFilePath: envFilePath}
}

// LoadAPIKey resolves the admin API key: the ANTHROPIC_ADMIN_KEY environment
// variable wins, then the matching line of the env file. Absence on both
// paths is ErrMissingCredential.
func (r *CredentialsRepositoryImpl) LoadAPIKey() (string, error) {
	if key := strings.TrimSpace(os.Getenv(envKey)); key != "" {
		return key, nil
	}

	file, err := os.Open(r.envFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", types.ErrMissingCredential
		}
		return "", fmt.Errorf("reading %s: %w", r.envFilePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, envKey+"=") {
			continue
		}
		value := strings.TrimPrefix(line, envKey+"=")
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if value != "" {
			return value, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading %s: %w", r.envFilePath, err)
	}

	return "", types.ErrMissingCredential
}
