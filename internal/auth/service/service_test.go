package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"quotation_backend/internal/auth/repository"
	"quotation_backend/internal/events"
	"quotation_backend/platform/apperr"
	platformevents "quotation_backend/platform/events"
	"quotation_backend/platform/logger"
)

type fakeRepo struct {
	admins   map[string]repository.AdminUser
	byID     map[uuid.UUID]repository.AdminUser
	otps     []repository.CreateOTPParams
	sessions map[string]repository.Session

	consumeErr      error
	revoked         []uuid.UUID
	expiredOTPs     int64
	expiredSessions int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		admins:   make(map[string]repository.AdminUser),
		byID:     make(map[uuid.UUID]repository.AdminUser),
		sessions: make(map[string]repository.Session),
	}
}

func (r *fakeRepo) addAdmin(email string) repository.AdminUser {
	admin := repository.AdminUser{
		ID:     uuid.New(),
		Email:  email,
		Name:   "Test Admin",
		Status: repository.StatusActive,
	}
	r.admins[email] = admin
	r.byID[admin.ID] = admin
	return admin
}

func (r *fakeRepo) GetAdminByEmail(ctx context.Context, email string) (repository.AdminUser, error) {
	admin, ok := r.admins[email]
	if !ok {
		return repository.AdminUser{}, apperr.NotFound("admin not found")
	}
	return admin, nil
}

func (r *fakeRepo) GetAdminByID(ctx context.Context, id uuid.UUID) (repository.AdminUser, error) {
	admin, ok := r.byID[id]
	if !ok {
		return repository.AdminUser{}, apperr.NotFound("admin not found")
	}
	return admin, nil
}

func (r *fakeRepo) CreateOTP(ctx context.Context, params repository.CreateOTPParams) (uuid.UUID, error) {
	r.otps = append(r.otps, params)
	return uuid.New(), nil
}

func (r *fakeRepo) ConsumeOTP(ctx context.Context, adminID uuid.UUID, codeHash string) error {
	if r.consumeErr != nil {
		return r.consumeErr
	}
	for i, otp := range r.otps {
		if otp.AdminID == adminID && otp.CodeHash == codeHash {
			r.otps = append(r.otps[:i], r.otps[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("code not found")
}

func (r *fakeRepo) DeleteExpiredOTPs(ctx context.Context) (int64, error) {
	return r.expiredOTPs, nil
}

func (r *fakeRepo) CreateSession(ctx context.Context, session repository.Session) error {
	r.sessions[session.TokenHash] = session
	return nil
}

func (r *fakeRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (repository.Session, error) {
	session, ok := r.sessions[tokenHash]
	if !ok {
		return repository.Session{}, apperr.Unauthorized("session not found")
	}
	return session, nil
}

func (r *fakeRepo) RevokeSession(ctx context.Context, id uuid.UUID) error {
	r.revoked = append(r.revoked, id)
	return nil
}

func (r *fakeRepo) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	return r.expiredSessions, nil
}

var _ repository.Repository = (*fakeRepo)(nil)

// fakeBus records published events synchronously.
type fakeBus struct {
	published []platformevents.Event
}

func (b *fakeBus) Publish(ctx context.Context, event platformevents.Event) {
	b.published = append(b.published, event)
}

func (b *fakeBus) PublishSync(ctx context.Context, event platformevents.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *fakeBus) Subscribe(eventName string, handler platformevents.Handler) {}

type fakeSessionConfig struct{}

func (fakeSessionConfig) GetSessionSecret() string     { return "test-secret" }
func (fakeSessionConfig) GetSessionTTL() time.Duration { return time.Hour }
func (fakeSessionConfig) GetOTPTTL() time.Duration     { return 10 * time.Minute }

func newTestService() (*Service, *fakeRepo, *fakeBus) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc := New(repo, fakeSessionConfig{}, bus, logger.New("development"))
	return svc, repo, bus
}

func TestRequestOTPUnknownEmailSucceedsSilently(t *testing.T) {
	svc, repo, bus := newTestService()

	if err := svc.RequestOTP(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	if len(repo.otps) != 0 {
		t.Fatalf("expected no code stored, got %d", len(repo.otps))
	}
	if len(bus.published) != 0 {
		t.Fatalf("expected no event published, got %d", len(bus.published))
	}
}

func TestRequestOTPStoresHashAndPublishesCode(t *testing.T) {
	svc, repo, bus := newTestService()
	admin := repo.addAdmin("admin@example.com")

	if err := svc.RequestOTP(context.Background(), "  Admin@Example.com "); err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}

	if len(repo.otps) != 1 {
		t.Fatalf("expected one code stored, got %d", len(repo.otps))
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected one event, got %d", len(bus.published))
	}
	event, ok := bus.published[0].(events.AdminOTPRequested)
	if !ok {
		t.Fatalf("expected AdminOTPRequested, got %T", bus.published[0])
	}
	if event.AdminID != admin.ID {
		t.Errorf("event admin = %s, want %s", event.AdminID, admin.ID)
	}
	if len(event.Code) != 6 {
		t.Errorf("code length = %d, want 6", len(event.Code))
	}
	if event.ExpiryMinutes != 10 {
		t.Errorf("expiry minutes = %d, want 10", event.ExpiryMinutes)
	}
	// Only the hash reaches the repository.
	if repo.otps[0].CodeHash == event.Code {
		t.Error("code stored in the clear")
	}
	if repo.otps[0].CodeHash != hashToken(event.Code) {
		t.Error("stored hash does not match the emailed code")
	}
}

func TestVerifyOTPIssuesSession(t *testing.T) {
	svc, repo, bus := newTestService()
	repo.addAdmin("admin@example.com")

	if err := svc.RequestOTP(context.Background(), "admin@example.com"); err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	code := bus.published[0].(events.AdminOTPRequested).Code

	resp, err := svc.VerifyOTP(context.Background(), "admin@example.com", code)
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a session token")
	}
	if resp.Admin.Email != "admin@example.com" {
		t.Errorf("admin email = %q", resp.Admin.Email)
	}

	session, ok := repo.sessions[hashToken(resp.Token)]
	if !ok {
		t.Fatal("session row not stored under the token hash")
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims["type"] != tokenType {
		t.Errorf("token type = %v, want %q", claims["type"], tokenType)
	}
	if claims["sid"] != session.ID.String() {
		t.Errorf("token sid = %v, want %s", claims["sid"], session.ID)
	}
}

func TestVerifyOTPIsSingleUse(t *testing.T) {
	svc, repo, bus := newTestService()
	repo.addAdmin("admin@example.com")

	if err := svc.RequestOTP(context.Background(), "admin@example.com"); err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	code := bus.published[0].(events.AdminOTPRequested).Code

	if _, err := svc.VerifyOTP(context.Background(), "admin@example.com", code); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	_, err := svc.VerifyOTP(context.Background(), "admin@example.com", code)
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("second verify error = %v, want unauthorized", err)
	}
}

func TestVerifyOTPWrongCodeAndUnknownEmailLookAlike(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.addAdmin("admin@example.com")

	_, errWrong := svc.VerifyOTP(context.Background(), "admin@example.com", "000000")
	_, errUnknown := svc.VerifyOTP(context.Background(), "nobody@example.com", "000000")

	if !apperr.Is(errWrong, apperr.KindUnauthorized) {
		t.Fatalf("wrong code error = %v, want unauthorized", errWrong)
	}
	if !apperr.Is(errUnknown, apperr.KindUnauthorized) {
		t.Fatalf("unknown email error = %v, want unauthorized", errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Error("wrong code and unknown email produce distinguishable errors")
	}
}

func TestCheckSession(t *testing.T) {
	svc, repo, _ := newTestService()

	revokedAt := time.Now()
	repo.sessions[hashToken("live")] = repository.Session{
		ID:        uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	repo.sessions[hashToken("revoked")] = repository.Session{
		ID:        uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour),
		RevokedAt: &revokedAt,
	}
	repo.sessions[hashToken("expired")] = repository.Session{
		ID:        uuid.New(),
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	if err := svc.CheckSession("live"); err != nil {
		t.Errorf("live session rejected: %v", err)
	}
	if err := svc.CheckSession("revoked"); err == nil {
		t.Error("revoked session accepted")
	}
	if err := svc.CheckSession("expired"); err == nil {
		t.Error("expired session accepted")
	}
	if err := svc.CheckSession("unknown"); err == nil {
		t.Error("unknown token accepted")
	}
}

func TestSignOutRevokesSession(t *testing.T) {
	svc, repo, _ := newTestService()
	sessionID := uuid.New()

	if err := svc.SignOut(context.Background(), sessionID); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if len(repo.revoked) != 1 || repo.revoked[0] != sessionID {
		t.Fatalf("revoked = %v, want [%s]", repo.revoked, sessionID)
	}
}

func TestDeleteExpiredOTPsCountsBothTables(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.expiredOTPs = 3
	repo.expiredSessions = 2

	purged, err := svc.DeleteExpiredOTPs(context.Background())
	if err != nil {
		t.Fatalf("DeleteExpiredOTPs: %v", err)
	}
	if purged != 5 {
		t.Fatalf("purged = %d, want 5", purged)
	}
}
