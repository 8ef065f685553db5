package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"quotation_backend/internal/quotation/domain"
	"quotation_backend/platform/apperr"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, 24*time.Hour), mr
}

func TestRedisStore_CreateAndGet(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.CurrentStep != domain.StepPersonalInfo {
		t.Errorf("expected step %d, got %d", domain.StepPersonalInfo, created.CurrentStep)
	}

	loaded, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.ID != created.ID {
		t.Errorf("expected ID %s, got %s", created.ID, loaded.ID)
	}
	if loaded.FormErrors == nil {
		t.Error("expected non-nil FormErrors map")
	}
}

func TestRedisStore_SaveRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	session, err := s.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	qty := int64(3)
	session.Data.Name = "Jane Smith"
	session.Data.SelectedServices = []domain.ServiceSelection{
		{ServiceID: uuid.New(), SubServiceID: uuid.New(), Quantity: &qty},
	}
	session.CurrentStep = domain.StepServices
	session.FormErrors["email"] = "Email is required"

	if err := s.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Data.Name != "Jane Smith" {
		t.Errorf("expected name to round-trip, got %q", loaded.Data.Name)
	}
	if len(loaded.Data.SelectedServices) != 1 || *loaded.Data.SelectedServices[0].Quantity != 3 {
		t.Errorf("expected selection to round-trip, got %+v", loaded.Data.SelectedServices)
	}
	if loaded.CurrentStep != domain.StepServices {
		t.Errorf("expected step %d, got %d", domain.StepServices, loaded.CurrentStep)
	}
	if loaded.FormErrors["email"] != "Email is required" {
		t.Errorf("expected form errors to round-trip, got %v", loaded.FormErrors)
	}
}

func TestRedisStore_GetUnknownSessionIsGone(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Get(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindGone) {
		t.Fatalf("expected gone error, got %v", err)
	}
}

func TestRedisStore_ExpiredSessionIsGone(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	session, err := s.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.FastForward(25 * time.Hour)

	_, err = s.Get(ctx, session.ID)
	if !apperr.Is(err, apperr.KindGone) {
		t.Fatalf("expected gone error after expiry, got %v", err)
	}
}

func TestRedisStore_Delete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	session, err := s.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Delete(ctx, session.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := s.Get(ctx, session.ID); !apperr.Is(err, apperr.KindGone) {
		t.Fatalf("expected gone after delete, got %v", err)
	}
}
