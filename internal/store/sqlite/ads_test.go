package sqlite

import (
	"context"
	"testing"

	"github.com/altusecase/altuse-server/internal/domain"
	"github.com/altusecase/altuse-server/internal/store"
)

func TestUpsertAdSetting_InsertThenUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.UpsertAdSetting(ctx, &domain.AdSetting{
		SettingKey:   domain.AdKeyHeader,
		SettingValue: "slot-123",
		IsEnabled:    true,
	})
	if err != nil {
		t.Fatalf("UpsertAdSetting insert: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated ID")
	}
	if created.SettingValue != "slot-123" || !created.IsEnabled {
		t.Errorf("unexpected row: %+v", created)
	}

	updated, err := s.UpsertAdSetting(ctx, &domain.AdSetting{
		SettingKey:   domain.AdKeyHeader,
		SettingValue: "slot-456",
		IsEnabled:    false,
	})
	if err != nil {
		t.Fatalf("UpsertAdSetting update: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("update changed ID: %q -> %q", created.ID, updated.ID)
	}
	if updated.SettingValue != "slot-456" || updated.IsEnabled {
		t.Errorf("unexpected row after update: %+v", updated)
	}
}

func TestGetAdSetting_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAdSetting(context.Background(), "missing_ad")
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListAdSettings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{domain.AdKeySidebar, domain.AdKeyFooter, domain.AdKeyHeader} {
		if _, err := s.UpsertAdSetting(ctx, &domain.AdSetting{SettingKey: key}); err != nil {
			t.Fatalf("UpsertAdSetting %s: %v", key, err)
		}
	}

	settings, err := s.ListAdSettings(ctx)
	if err != nil {
		t.Fatalf("ListAdSettings: %v", err)
	}
	if len(settings) != 3 {
		t.Fatalf("expected 3 settings, got %d", len(settings))
	}
	// Ordered by key.
	if settings[0].SettingKey != domain.AdKeyFooter {
		t.Errorf("expected footer_ad first, got %s", settings[0].SettingKey)
	}
}
