package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some runs
	_, err = store.SaveRun(RunRecord{Seed: 1, SurvivalSecs: 90, Chips: 4, NPCsDefeated: 2})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	_, err = store.SaveRun(RunRecord{Seed: 2, SurvivalSecs: 45, Berries: 3})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	_, err = store.SaveRun(RunRecord{Seed: 3, SurvivalSecs: 210, Gems: 1, AbilitiesUnlocked: 5})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	// Retrieve top runs
	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted by survival descending
	if runs[0].SurvivalSecs != 210 {
		t.Errorf("Expected longest run to be 210s, got %v", runs[0].SurvivalSecs)
	}
	if runs[1].SurvivalSecs != 90 {
		t.Errorf("Expected second run to be 90s, got %v", runs[1].SurvivalSecs)
	}
	if runs[2].SurvivalSecs != 45 {
		t.Errorf("Expected third run to be 45s, got %v", runs[2].SurvivalSecs)
	}

	// Columns should round-trip
	if runs[0].Seed != 3 || runs[0].AbilitiesUnlocked != 5 {
		t.Errorf("Run columns did not round-trip: %+v", runs[0])
	}
	if runs[1].Chips != 4 || runs[1].NPCsDefeated != 2 {
		t.Errorf("Run columns did not round-trip: %+v", runs[1])
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 runs
	for i := 0; i < 5; i++ {
		store.SaveRun(RunRecord{Seed: int64(i), SurvivalSecs: float64((i + 1) * 60)})
	}

	// Request only top 3
	runs, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Should be 300, 240, 180 (top 3)
	if runs[0].SurvivalSecs != 300 || runs[1].SurvivalSecs != 240 || runs[2].SurvivalSecs != 180 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(RunRecord{Seed: 10, SurvivalSecs: 500})
	store.SaveRun(RunRecord{Seed: 20, SurvivalSecs: 5})
	store.SaveRun(RunRecord{Seed: 30, SurvivalSecs: 50})

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Most recent insert first, regardless of survival time
	if runs[0].Seed != 30 || runs[2].Seed != 10 {
		t.Errorf("Runs not in recency order: %v, %v, %v", runs[0].Seed, runs[1].Seed, runs[2].Seed)
	}
}

func TestStoreBestSurvival(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No runs yet
	best, err := store.BestSurvival()
	if err != nil {
		t.Fatalf("BestSurvival() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best survival of 0 for empty table, got %v", best)
	}

	// Add runs
	store.SaveRun(RunRecord{Seed: 1, SurvivalSecs: 100})
	store.SaveRun(RunRecord{Seed: 2, SurvivalSecs: 300})
	store.SaveRun(RunRecord{Seed: 3, SurvivalSecs: 200})

	best, err = store.BestSurvival()
	if err != nil {
		t.Fatalf("BestSurvival() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best survival of 300, got %v", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(RunRecord{Seed: 1, SurvivalSecs: 100})
	store.SaveRun(RunRecord{Seed: 2, SurvivalSecs: 200})

	err = store.ClearRuns()
	if err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns(10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
}

func TestStoreLifetime(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Empty table aggregates to zeros
	stats, err := store.Lifetime()
	if err != nil {
		t.Fatalf("Lifetime() failed: %v", err)
	}
	if stats.RunsCount != 0 || stats.BestSurvivalSecs != 0 {
		t.Errorf("Expected empty lifetime stats, got %+v", stats)
	}

	store.SaveRun(RunRecord{Seed: 1, SurvivalSecs: 60, NPCsDefeated: 3, Deaths: 1})
	store.SaveRun(RunRecord{Seed: 2, SurvivalSecs: 120, NPCsDefeated: 5, Deaths: 0})
	store.SaveRun(RunRecord{Seed: 3, SurvivalSecs: 30, NPCsDefeated: 0, Deaths: 2})

	stats, err = store.Lifetime()
	if err != nil {
		t.Fatalf("Lifetime() failed: %v", err)
	}

	if stats.RunsCount != 3 {
		t.Errorf("Expected 3 runs counted, got %d", stats.RunsCount)
	}
	if stats.BestSurvivalSecs != 120 {
		t.Errorf("Expected best survival 120, got %v", stats.BestSurvivalSecs)
	}
	if stats.AvgSurvivalSecs != 70 {
		t.Errorf("Expected average survival 70, got %v", stats.AvgSurvivalSecs)
	}
	if stats.TotalNPCsDefeated != 8 {
		t.Errorf("Expected 8 total npcs defeated, got %d", stats.TotalNPCsDefeated)
	}
	if stats.TotalDeaths != 3 {
		t.Errorf("Expected 3 total deaths, got %d", stats.TotalDeaths)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
