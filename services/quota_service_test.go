package services

import (
	"errors"
	"testing"
	"time"
)

func TestQuotaStatusEmptyDay(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "oak")

	quota := NewQuotaService(db, 5)

	status, err := quota.Status(user.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.OpenedToday != 0 {
		t.Errorf("opened today = %d, want 0", status.OpenedToday)
	}
	if status.Remaining != 5 {
		t.Errorf("remaining = %d, want 5", status.Remaining)
	}
	if status.LastOpenedAt != nil {
		t.Errorf("last opened = %v, want nil", status.LastOpenedAt)
	}
	if status.TimeUntilReset == "" {
		t.Error("time until reset not set")
	}
}

func TestQuotaConsumeAndRemainingBounds(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "elm")

	quota := NewQuotaService(db, 3)
	now := time.Now().UTC()

	for i := 1; i <= 3; i++ {
		opened, err := quota.ConsumeOne(db, user.ID, now)
		if err != nil {
			t.Fatalf("consume %d: %v", i, err)
		}
		if opened != i {
			t.Errorf("opened after consume %d = %d", i, opened)
		}

		status, err := quota.Status(user.ID)
		if err != nil {
			t.Fatalf("Status: %v", err)
		}
		if status.Remaining < 0 || status.Remaining > 3 {
			t.Errorf("remaining %d out of [0,3]", status.Remaining)
		}
		if status.Remaining != 3-i {
			t.Errorf("remaining = %d, want %d", status.Remaining, 3-i)
		}
	}

	if _, err := quota.ConsumeOne(db, user.ID, now); !errors.Is(err, ErrDailyLimitReached) {
		t.Fatalf("consume past limit error = %v, want ErrDailyLimitReached", err)
	}
}

func TestTimeUntilReset(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"start of day", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), "24h 0m"},
		{"afternoon", time.Date(2026, 3, 14, 20, 19, 0, 0, time.UTC), "3h 41m"},
		{"minutes only", time.Date(2026, 3, 14, 23, 48, 0, 0, time.UTC), "12m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeUntilReset(tt.now); got != tt.want {
				t.Errorf("TimeUntilReset(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}
