package memory

import (
	"context"
	"testing"

	"github.com/hamed0406/uptimealert/internal/domain"
)

func TestMemoryStore_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New(10)

	for _, title := range []string{"a", "b", "c"} {
		if err := s.Append(ctx, domain.Event{Title: title}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 || got[0].Title != "c" || got[2].Title != "a" {
		t.Fatalf("unexpected order: %+v", got)
	}

	got, _ = s.Recent(ctx, 2)
	if len(got) != 2 || got[0].Title != "c" || got[1].Title != "b" {
		t.Fatalf("limit not honored: %+v", got)
	}
}

func TestMemoryStore_Wraps(t *testing.T) {
	ctx := context.Background()
	s := New(2)
	for _, title := range []string{"a", "b", "c"} {
		_ = s.Append(ctx, domain.Event{Title: title})
	}

	got, _ := s.Recent(ctx, 10)
	if len(got) != 2 || got[0].Title != "c" || got[1].Title != "b" {
		t.Fatalf("expected oldest entry dropped, got %+v", got)
	}
}

func TestMemoryStore_Empty(t *testing.T) {
	got, err := New(0).Recent(context.Background(), 5)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty, got %v %v", got, err)
	}
}
