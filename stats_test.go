package bongocat

import (
	"testing"
	"time"
)

func openTestStats(t *testing.T) *KeyStats {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	s, err := OpenKeyStats()
	if err != nil {
		t.Skipf("gdata storage unavailable: %v", err)
	}
	return s
}

func TestKeyStatsMemoryOnly(t *testing.T) {
	s := NewKeyStats(nil)
	s.Record("a")
	s.Record("a")
	s.Record("b")
	if s.Count("a") != 2 || s.Count("b") != 1 || s.Count("c") != 0 {
		t.Errorf("counts = a:%d b:%d c:%d", s.Count("a"), s.Count("b"), s.Count("c"))
	}
	if s.Total() != 3 {
		t.Errorf("Total = %d, want 3", s.Total())
	}
	if err := s.Save(); err != nil {
		t.Errorf("Save without storage: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Errorf("Load without storage: %v", err)
	}
}

func TestKeyStatsTop(t *testing.T) {
	s := NewKeyStats(nil)
	for _, k := range []string{"a", "b", "b", "c", "c", "c", "d", "d"} {
		s.Record(k)
	}
	top := s.Top(3)
	want := []KeyCount{{"c", 3}, {"b", 2}, {"d", 2}}
	if len(top) != len(want) {
		t.Fatalf("Top(3) = %v", top)
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("Top[%d] = %v, want %v", i, top[i], want[i])
		}
	}
	if all := s.Top(0); len(all) != 4 {
		t.Errorf("Top(0) returned %d rows, want 4", len(all))
	}
}

func TestKeyStatsPersist(t *testing.T) {
	s := openTestStats(t)
	s.Record("space")
	s.Record("space")
	s.Record("j")
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenKeyStats()
	if err != nil {
		t.Fatal(err)
	}
	if reopened.Count("space") != 2 || reopened.Count("j") != 1 {
		t.Errorf("reloaded counts = space:%d j:%d", reopened.Count("space"), reopened.Count("j"))
	}
}

func TestKeyStatsMaybeSave(t *testing.T) {
	s := openTestStats(t)
	s.interval = time.Minute
	start := s.lastSave

	s.MaybeSave(start.Add(2 * time.Minute))
	if reopened, _ := OpenKeyStats(); reopened.Total() != 0 {
		t.Error("clean stats were saved")
	}

	s.Record("k")
	s.MaybeSave(start.Add(30 * time.Second))
	if reopened, _ := OpenKeyStats(); reopened.Total() != 0 {
		t.Error("saved before the interval elapsed")
	}

	s.MaybeSave(start.Add(2 * time.Minute))
	if reopened, _ := OpenKeyStats(); reopened.Count("k") != 1 {
		t.Error("dirty stats not saved after the interval")
	}
}
