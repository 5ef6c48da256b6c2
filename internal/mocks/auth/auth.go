package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/brandreach/ambassador-ui-api/internal/adapters/backend"
	domainauth "github.com/brandreach/ambassador-ui-api/internal/domain/auth"
	"github.com/brandreach/ambassador-ui-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialStore     = (*MemoryCredentialStore)(nil)
	_ ports.AuthGateway         = (*MockAuthGateway)(nil)
	_ ports.PasswordResetSender = (*MockPasswordResetSender)(nil)
)

// MemoryCredentialStore is an in-memory ports.CredentialStore with the
// same absence semantics as the Redis adapter. Optional error fields
// inject failures.
type MemoryCredentialStore struct {
	mu      sync.Mutex
	records map[string]domainauth.CredentialRecord

	SaveErr  error
	LoadErr  error
	ClearErr error
}

// NewMemoryCredentialStore creates an empty in-memory store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{records: make(map[string]domainauth.CredentialRecord)}
}

func (s *MemoryCredentialStore) Save(_ context.Context, sessionID string, rec domainauth.CredentialRecord) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sessionID] = rec
	return nil
}

func (s *MemoryCredentialStore) Load(_ context.Context, sessionID string) (domainauth.CredentialRecord, error) {
	if s.LoadErr != nil {
		return domainauth.CredentialRecord{}, s.LoadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[sessionID]
	if !ok || !rec.Complete() {
		return domainauth.CredentialRecord{}, ports.ErrNoCredentials
	}
	return rec, nil
}

func (s *MemoryCredentialStore) Clear(_ context.Context, sessionID string) error {
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sessionID)
	return nil
}

// Put seeds a record directly, bypassing completeness checks.
func (s *MemoryCredentialStore) Put(sessionID string, rec domainauth.CredentialRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sessionID] = rec
}

// Has reports whether a record is stored for the session.
func (s *MemoryCredentialStore) Has(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[sessionID]
	return ok
}

// MockAuthGateway simulates the remote authority with deterministic
// defaults and per-call overrides. Call counters are safe to read
// concurrently.
type MockAuthGateway struct {
	LoginFunc  func(ctx context.Context, email, password string) (domainauth.CredentialRecord, error)
	VerifyFunc func(ctx context.Context, token string) (domainauth.Identity, error)
	LogoutFunc func(ctx context.Context, token string) error

	// DefaultIdentity is returned by the default Login and VerifyRole
	// behaviors.
	DefaultIdentity domainauth.Identity
	// DefaultToken is the token minted by the default Login behavior.
	DefaultToken string

	loginCalls  atomic.Int64
	verifyCalls atomic.Int64
	logoutCalls atomic.Int64
}

// NewMockAuthGateway creates a MockAuthGateway with sensible defaults.
func NewMockAuthGateway() *MockAuthGateway {
	return &MockAuthGateway{
		DefaultToken: "mock-token-1",
		DefaultIdentity: domainauth.Identity{
			SubjectID: "mock-user-1",
			Email:     "mock.user@example.com",
			Role:      domainauth.RoleAdmin,
			FirstName: "Mock",
			LastName:  "User",
		},
	}
}

func (m *MockAuthGateway) Login(ctx context.Context, email, password string) (domainauth.CredentialRecord, error) {
	m.loginCalls.Add(1)
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return domainauth.CredentialRecord{Token: m.DefaultToken, Identity: m.DefaultIdentity}, nil
}

func (m *MockAuthGateway) VerifyRole(ctx context.Context, token string) (domainauth.Identity, error) {
	m.verifyCalls.Add(1)
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return m.DefaultIdentity, nil
}

func (m *MockAuthGateway) Logout(ctx context.Context, token string) error {
	m.logoutCalls.Add(1)
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

// LoginCalls returns how many times Login was invoked.
func (m *MockAuthGateway) LoginCalls() int64 { return m.loginCalls.Load() }

// VerifyCalls returns how many times VerifyRole was invoked.
func (m *MockAuthGateway) VerifyCalls() int64 { return m.verifyCalls.Load() }

// LogoutCalls returns how many times Logout was invoked.
func (m *MockAuthGateway) LogoutCalls() int64 { return m.logoutCalls.Load() }

// RejectVerify configures VerifyRole to fail with the given error.
func (m *MockAuthGateway) RejectVerify(err error) {
	m.VerifyFunc = func(context.Context, string) (domainauth.Identity, error) {
		return domainauth.Identity{}, err
	}
}

// Unreachable configures VerifyRole to fail as a connectivity outage.
func (m *MockAuthGateway) Unreachable() {
	m.RejectVerify(backend.ErrNetwork)
}

// MockPasswordResetSender records reset requests.
type MockPasswordResetSender struct {
	SendFunc func(ctx context.Context, email string) error

	mu     sync.Mutex
	emails []string
}

func (m *MockPasswordResetSender) SendPasswordReset(ctx context.Context, email string) error {
	m.mu.Lock()
	m.emails = append(m.emails, email)
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(ctx, email)
	}
	return nil
}

// Sent returns the addresses reset emails were requested for.
func (m *MockPasswordResetSender) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.emails...)
}
