package country

import (
	"sync"
	"testing"
)

func TestDirectory_LastWriteWins(t *testing.T) {
	dir := NewDirectory([]Entry{
		{ID: 12, Name: "Brasil"},
		{ID: 5, Name: "Serbia"},
		{ID: 12, Name: "Brazil"},
	})

	if dir.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", dir.Len())
	}
	if got := dir.Name(12); got != "Brazil" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}

func TestDirectory_UnknownFallback(t *testing.T) {
	dir := NewDirectory([]Entry{{ID: 12, Name: "Brazil"}})

	if got := dir.Name(999); got != UnknownName {
		t.Fatalf("expected %q, got %q", UnknownName, got)
	}
	if dir.Len() != 1 {
		t.Fatalf("unknown lookups must not add entries, got %d", dir.Len())
	}

	var zero Directory
	if got := zero.Name(1); got != UnknownName {
		t.Fatalf("zero directory should resolve to %q, got %q", UnknownName, got)
	}
}

func TestDirectory_ConcurrentReads(t *testing.T) {
	entries := make([]Entry, 0, 100)
	for i := int64(0); i < 100; i++ {
		entries = append(entries, Entry{ID: i, Name: "country"})
	}
	dir := NewDirectory(entries)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := int64(0); i < 200; i++ {
				_ = dir.Name(i)
			}
		}()
	}
	wg.Wait()
}
