package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
	"github.com/goliatone/go-clouds/security"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LoginCredentialStore keeps node login credentials in SQL. Payloads are
// sealed by the configured secret provider before they reach the database.
type LoginCredentialStore struct {
	db         *bun.DB
	repo       repository.Repository[*loginCredentialRecord]
	secrets    core.SecretProvider
	providerID string
}

// DBProvider is satisfied by go-persistence-bun clients.
type DBProvider interface {
	DB() *bun.DB
}

// NewLoginCredentialStore builds a store over db. secrets seals every
// payload written.
func NewLoginCredentialStore(db *bun.DB, secrets core.SecretProvider) (*LoginCredentialStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	if secrets == nil {
		return nil, fmt.Errorf("sqlstore: secret provider is required")
	}
	repo := repository.NewRepository[*loginCredentialRecord](db, loginCredentialHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: login credential repository: %w", err)
		}
	}
	return &LoginCredentialStore{db: db, repo: repo, secrets: secrets}, nil
}

// OpenLoginCredentialStore builds a store over the database of client.
func OpenLoginCredentialStore(client DBProvider, secrets core.SecretProvider) (*LoginCredentialStore, error) {
	if client == nil {
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	}
	return NewLoginCredentialStore(client.DB(), secrets)
}

// ForProvider returns a store that tags new rows with providerID.
func (s *LoginCredentialStore) ForProvider(providerID string) *LoginCredentialStore {
	if s == nil {
		return nil
	}
	scoped := *s
	scoped.providerID = strings.TrimSpace(providerID)
	return &scoped
}

func (s *LoginCredentialStore) Get(ctx context.Context, key string) (compute.LoginCredentials, bool, error) {
	if s == nil || s.repo == nil || s.secrets == nil {
		return compute.LoginCredentials{}, false, fmt.Errorf("sqlstore: login credential store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return compute.LoginCredentials{}, false, compute.ErrCredentialKeyRequired
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("credential_key", "=", key),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return compute.LoginCredentials{}, false, err
	}
	if len(records) == 0 {
		return compute.LoginCredentials{}, false, nil
	}

	plaintext, err := s.secrets.Decrypt(ctx, records[0].EncryptedPayload)
	if err != nil {
		return compute.LoginCredentials{}, false, fmt.Errorf("sqlstore: decrypt login credentials %q: %w", key, err)
	}
	var credentials compute.LoginCredentials
	if err := json.Unmarshal(plaintext, &credentials); err != nil {
		return compute.LoginCredentials{}, false, fmt.Errorf("sqlstore: decode login credentials %q: %w", key, err)
	}
	return credentials, true, nil
}

func (s *LoginCredentialStore) Put(ctx context.Context, key string, credentials compute.LoginCredentials) error {
	if s == nil || s.repo == nil || s.db == nil || s.secrets == nil {
		return fmt.Errorf("sqlstore: login credential store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return compute.ErrCredentialKeyRequired
	}

	payload, err := json.Marshal(credentials)
	if err != nil {
		return fmt.Errorf("sqlstore: encode login credentials %q: %w", key, err)
	}
	sealed, err := s.secrets.Encrypt(ctx, payload)
	if err != nil {
		return fmt.Errorf("sqlstore: encrypt login credentials %q: %w", key, err)
	}
	keyID, keyVersion := sealedKeyMetadata(s.secrets, sealed)
	now := time.Now().UTC()

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, updateErr := tx.NewUpdate().
			Model((*loginCredentialRecord)(nil)).
			Set("encrypted_payload = ?", sealed).
			Set("encryption_key_id = ?", keyID).
			Set("encryption_version = ?", keyVersion).
			Set("updated_at = ?", now).
			Where("credential_key = ?", key).
			Exec(ctx)
		if updateErr != nil {
			return updateErr
		}
		if affected, _ := res.RowsAffected(); affected > 0 {
			return nil
		}

		_, createErr := s.repo.CreateTx(ctx, tx, &loginCredentialRecord{
			ID:                uuid.NewString(),
			CredentialKey:     key,
			ProviderID:        s.providerID,
			EncryptedPayload:  sealed,
			EncryptionKeyID:   keyID,
			EncryptionVersion: keyVersion,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		return createErr
	})
}

func (s *LoginCredentialStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: login credential store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return compute.ErrCredentialKeyRequired
	}
	_, err := s.db.NewDelete().
		Model((*loginCredentialRecord)(nil)).
		Where("credential_key = ?", key).
		Exec(ctx)
	return err
}

// Keys lists stored credential keys in ascending order.
func (s *LoginCredentialStore) Keys(ctx context.Context) ([]string, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: login credential store is not configured")
	}
	records, _, err := s.repo.List(ctx, repository.OrderBy("credential_key ASC"))
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(records))
	for _, record := range records {
		keys = append(keys, record.CredentialKey)
	}
	return keys, nil
}

// sealedKeyMetadata reads the key id and version from the sealed envelope,
// falling back to the provider's own metadata for non-envelope ciphertexts.
func sealedKeyMetadata(secrets core.SecretProvider, sealed []byte) (string, int) {
	if meta, err := security.ParseEnvelopeMetadata(sealed); err == nil {
		return meta.KeyID, meta.Version
	}
	if described, ok := secrets.(interface{ Metadata() (string, int) }); ok {
		return described.Metadata()
	}
	return "", 0
}

var _ compute.CredentialStore = (*LoginCredentialStore)(nil)
