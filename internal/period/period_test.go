package period

import (
	"testing"
	"time"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sheet(id int64, endDate, createdAt time.Time) *domain.Timesheet {
	return &domain.Timesheet{ID: id, EndDate: endDate, CreatedAt: createdAt}
}

func TestFriday(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ref  time.Time
		want time.Time
	}{
		{"monday", date(2024, time.January, 8), date(2024, time.January, 12)},
		{"friday itself", date(2024, time.January, 12), date(2024, time.January, 12)},
		{"saturday maps back", date(2024, time.January, 13), date(2024, time.January, 12)},
		{"sunday maps back", date(2024, time.January, 14), date(2024, time.January, 12)},
		{"time of day ignored", time.Date(2024, time.January, 10, 23, 59, 0, 0, time.UTC), date(2024, time.January, 12)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Friday(c.ref); !got.Equal(c.want) {
				t.Fatalf("Friday(%v) = %v, want %v", c.ref, got, c.want)
			}
		})
	}
}

func TestEditable(t *testing.T) {
	t.Parallel()

	now := date(2024, time.January, 10) // Wednesday, week ends Friday the 12th

	if !Editable(date(2024, time.January, 12), now) {
		t.Error("current week should be editable")
	}
	if !Editable(date(2024, time.January, 19), now) {
		t.Error("future week should be editable")
	}
	if Editable(date(2024, time.January, 5), now) {
		t.Error("past week should not be editable")
	}
}

func TestResolveCurrent_ExactMatch(t *testing.T) {
	t.Parallel()

	now := date(2024, time.January, 10)
	far := sheet(1, date(2024, time.January, 5), now)
	exact := sheet(2, date(2024, time.January, 12), now)

	got := ResolveCurrent(now, []*domain.Timesheet{far, exact})
	if got != exact {
		t.Fatalf("expected the sheet ending this Friday, got id %d", got.ID)
	}
}

func TestResolveCurrent_ExactMatchDuplicates(t *testing.T) {
	t.Parallel()

	now := date(2024, time.January, 10)
	friday := date(2024, time.January, 12)

	older := sheet(1, friday, date(2024, time.January, 8))
	newer := sheet(2, friday, date(2024, time.January, 9))

	got := ResolveCurrent(now, []*domain.Timesheet{older, newer})
	if got != newer {
		t.Fatalf("expected the newest created duplicate, got id %d", got.ID)
	}

	// same creation instant: the higher id wins
	twinA := sheet(3, friday, date(2024, time.January, 9))
	twinB := sheet(4, friday, date(2024, time.January, 9))
	got = ResolveCurrent(now, []*domain.Timesheet{twinB, twinA})
	if got != twinB {
		t.Fatalf("expected the highest id duplicate, got id %d", got.ID)
	}
}

func TestResolveCurrent_NearestFallback(t *testing.T) {
	t.Parallel()

	now := date(2024, time.January, 10)
	near := sheet(1, date(2024, time.January, 5), now)
	far := sheet(2, date(2023, time.December, 1), now)

	got := ResolveCurrent(now, []*domain.Timesheet{far, near})
	if got != near {
		t.Fatalf("expected the nearest sheet, got id %d", got.ID)
	}
}

func TestResolveCurrent_EquidistantPrefersFuture(t *testing.T) {
	t.Parallel()

	now := date(2024, time.January, 10)
	past := sheet(1, date(2024, time.January, 3), now)
	future := sheet(2, date(2024, time.January, 17), now)

	got := ResolveCurrent(now, []*domain.Timesheet{past, future})
	if got != future {
		t.Fatalf("expected the upcoming sheet on a distance tie, got id %d", got.ID)
	}
}

func TestResolveCurrent_Empty(t *testing.T) {
	t.Parallel()

	if got := ResolveCurrent(date(2024, time.January, 10), nil); got != nil {
		t.Fatalf("expected nil for an empty candidate set, got id %d", got.ID)
	}
}
