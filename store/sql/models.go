package sqlstore

import (
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type loginCredentialRecord struct {
	bun.BaseModel `bun:"table:clouds_login_credentials,alias:clc"`

	ID                string    `bun:"id,pk"`
	CredentialKey     string    `bun:"credential_key,notnull"`
	ProviderID        string    `bun:"provider_id,notnull"`
	EncryptedPayload  []byte    `bun:"encrypted_payload,notnull"`
	EncryptionKeyID   string    `bun:"encryption_key_id,notnull"`
	EncryptionVersion int       `bun:"encryption_version,notnull"`
	CreatedAt         time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt         time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// loginCredentialHandlers wires the record into go-repository-bun. Rows are
// addressed by credential_key; ids are uuid strings.
func loginCredentialHandlers() repository.ModelHandlers[*loginCredentialRecord] {
	return repository.ModelHandlers[*loginCredentialRecord]{
		NewRecord: func() *loginCredentialRecord { return new(loginCredentialRecord) },
		GetID: func(r *loginCredentialRecord) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			id, err := uuid.Parse(r.ID)
			if err != nil {
				return uuid.Nil
			}
			return id
		},
		SetID: func(r *loginCredentialRecord, id uuid.UUID) {
			if r != nil {
				r.ID = id.String()
			}
		},
		GetIdentifier: func() string { return "credential_key" },
		GetIdentifierValue: func(r *loginCredentialRecord) string {
			if r == nil {
				return ""
			}
			return r.CredentialKey
		},
	}
}
