package auth

import (
	"fmt"

	"github.com/iot-kit/sensor-gateway/internal/config"
	"github.com/iot-kit/sensor-gateway/internal/domain"
)

// CredentialStore holds the static username -> credential table. It is
// populated once at startup and never mutated afterwards, so reads need
// no locking.
type CredentialStore struct {
	records map[string]domain.CredentialRecord
}

// NewCredentialStore builds the store from configured entries, hashing
// each secret with bcrypt. Usernames and secrets are matched exactly,
// case-sensitive, with no normalization.
func NewCredentialStore(entries []config.CredentialEntry, bcryptCost int) (*CredentialStore, error) {
	records := make(map[string]domain.CredentialRecord, len(entries))
	for _, entry := range entries {
		role := domain.Role(entry.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("unknown role %q for user %q", entry.Role, entry.Username)
		}
		if _, exists := records[entry.Username]; exists {
			return nil, fmt.Errorf("duplicate user %q", entry.Username)
		}
		hash, err := HashSecret(entry.Secret, bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash secret for %q: %w", entry.Username, err)
		}
		records[entry.Username] = domain.CredentialRecord{
			Username:   entry.Username,
			SecretHash: hash,
			Role:       role,
		}
	}
	return &CredentialStore{records: records}, nil
}

// Lookup returns the record for username.
func (s *CredentialStore) Lookup(username string) (domain.CredentialRecord, bool) {
	record, ok := s.records[username]
	return record, ok
}

// Verify checks username and secret against the table.
func (s *CredentialStore) Verify(username, secret string) (domain.CredentialRecord, bool) {
	record, ok := s.records[username]
	if !ok {
		return domain.CredentialRecord{}, false
	}
	if err := CompareSecret(record.SecretHash, secret); err != nil {
		return domain.CredentialRecord{}, false
	}
	return record, true
}

// Len reports the number of configured credentials.
func (s *CredentialStore) Len() int {
	return len(s.records)
}
