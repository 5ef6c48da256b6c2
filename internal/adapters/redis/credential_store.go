package redis

// Package redis provides Redis-based adapters for the dashboard.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/brandreach/ambassador-ui-api/internal/domain/auth"
	"github.com/brandreach/ambassador-ui-api/internal/ports"
)

const defaultCredentialTTL = 24 * time.Hour

// CredentialStore keeps each session's bearer token and cached identity
// as a single value, so the pair can never be observed half-written.
// Missing, expired, or malformed records all read back as
// ports.ErrNoCredentials; the caller treats them as "not logged in".
type CredentialStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewCredentialStore creates a credential store with the default key
// prefix and TTL.
func NewCredentialStore(client redis.UniversalClient) *CredentialStore {
	return &CredentialStore{
		client: client,
		prefix: "credentials:",
		ttl:    defaultCredentialTTL,
	}
}

// NewCredentialStoreWithOptions creates a credential store with a custom
// key prefix and TTL. Zero values fall back to the defaults.
func NewCredentialStoreWithOptions(client redis.UniversalClient, prefix string, ttl time.Duration) *CredentialStore {
	if prefix == "" {
		prefix = "credentials:"
	}
	if ttl <= 0 {
		ttl = defaultCredentialTTL
	}
	return &CredentialStore{client: client, prefix: prefix, ttl: ttl}
}

// Save overwrites the session's credential pair in one write. Incomplete
// records are refused so a half-pair can never be persisted.
func (s *CredentialStore) Save(ctx context.Context, sessionID string, rec domainauth.CredentialRecord) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	if !rec.Complete() {
		return errors.New("credential record is incomplete")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal credential record: %w", err)
	}

	return s.client.Set(ctx, s.prefix+sessionID, data, s.ttl).Err()
}

// Load returns the session's credential pair. Absent keys, unparseable
// values, and records missing either half all report ErrNoCredentials;
// only Redis transport failures surface as distinct errors.
func (s *CredentialStore) Load(ctx context.Context, sessionID string) (domainauth.CredentialRecord, error) {
	var zero domainauth.CredentialRecord
	if sessionID == "" {
		return zero, ports.ErrNoCredentials
	}

	data, err := s.client.Get(ctx, s.prefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ports.ErrNoCredentials
		}
		return zero, fmt.Errorf("redis get: %w", err)
	}

	rec, ok := domainauth.ParseCredentialRecord([]byte(data))
	if !ok {
		return zero, ports.ErrNoCredentials
	}
	return rec, nil
}

// Clear removes the pair. Idempotent: clearing an absent key succeeds.
func (s *CredentialStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+sessionID).Err()
}

var _ ports.CredentialStore = (*CredentialStore)(nil)
