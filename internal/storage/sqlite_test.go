package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/jsgotchi/internal/pet"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

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

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.RegisterPet("pet-1", "Bit"); err != nil {
		t.Fatalf("RegisterPet() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	p, err := store.Pet("pet-1")
	if err != nil {
		t.Fatalf("Pet() failed: %v", err)
	}
	if p == nil || p.Name != "Bit" {
		t.Errorf("Pet() = %+v, expected Bit", p)
	}
}

func TestRegisterPetRename(t *testing.T) {
	store := openTestStore(t)

	if err := store.RegisterPet("pet-1", "Bit"); err != nil {
		t.Fatal(err)
	}
	if err := store.RegisterPet("pet-1", "Byte"); err != nil {
		t.Fatal(err)
	}

	pets, err := store.ListPets()
	if err != nil {
		t.Fatalf("ListPets() failed: %v", err)
	}
	if len(pets) != 1 || pets[0].Name != "Byte" {
		t.Errorf("ListPets() = %+v, expected one pet named Byte", pets)
	}

	if p, err := store.Pet("unknown"); err != nil || p != nil {
		t.Errorf("Pet(unknown) = %+v, %v; expected nil, nil", p, err)
	}
}

func TestRecentFrameworks(t *testing.T) {
	store := openTestStore(t)
	store.RegisterPet("pet-1", "Bit")
	store.RegisterPet("pet-2", "Byte")

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		_, err := store.SaveFramework(FrameworkRecord{
			PetID:     "pet-1",
			Number:    int64(i),
			Quality:   i,
			State:     "resting",
			Level:     1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveFramework() failed: %v", err)
		}
	}
	store.SaveFramework(FrameworkRecord{PetID: "pet-2", Number: 1, Quality: 2, State: "tired", Level: 1, CreatedAt: base})

	recent, err := store.RecentFrameworks("pet-1", 3)
	if err != nil {
		t.Fatalf("RecentFrameworks() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 frameworks with limit, got %d", len(recent))
	}

	// Newest first
	if recent[0].Number != 5 || recent[1].Number != 4 || recent[2].Number != 3 {
		t.Errorf("Frameworks not in expected order: %+v", recent)
	}
	if !recent[0].CreatedAt.Equal(base.Add(5 * time.Minute)) {
		t.Errorf("CreatedAt = %v, expected %v", recent[0].CreatedAt, base.Add(5*time.Minute))
	}
}

func TestRecordEvent(t *testing.T) {
	store := openTestStore(t)
	store.RegisterPet("pet-1", "Bit")
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	events := []pet.Event{
		{Kind: pet.EventFrameworkCompleted, At: at, State: pet.StateHyperactive, Quality: 5, Framework: 1, Level: 1},
		{Kind: pet.EventLevelUp, At: at, State: pet.StateHyperactive, Level: 2},
		{Kind: pet.EventEnergyDrink, At: at, Pending: 200},
	}
	for _, e := range events {
		if err := store.RecordEvent("pet-1", e); err != nil {
			t.Fatalf("RecordEvent(%s) failed: %v", e.Kind, err)
		}
	}

	recent, err := store.RecentFrameworks("pet-1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].Quality != 5 || recent[0].State != "hyperactive" {
		t.Errorf("RecentFrameworks() = %+v", recent)
	}

	stats, err := store.GetPetStats("pet-1")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Level != 2 {
		t.Errorf("Level = %d, expected 2", stats.Level)
	}
}

func TestGetPetStats(t *testing.T) {
	store := openTestStore(t)
	store.RegisterPet("pet-1", "Bit")

	// No history yet
	empty, err := store.GetPetStats("pet-1")
	if err != nil {
		t.Fatalf("GetPetStats() failed: %v", err)
	}
	if empty.Frameworks != 0 || empty.Level != 1 || !empty.LastFramework.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, q := range []int{2, 4, 4, 5} {
		store.SaveFramework(FrameworkRecord{
			PetID:     "pet-1",
			Number:    int64(i + 1),
			Quality:   q,
			State:     "resting",
			Level:     1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	store.SaveLevelUp(LevelUpRecord{PetID: "pet-1", Level: 2, State: "resting", CreatedAt: base})
	store.SaveLevelUp(LevelUpRecord{PetID: "pet-1", Level: 3, State: "resting", CreatedAt: base.Add(time.Hour)})

	stats, err := store.GetPetStats("pet-1")
	if err != nil {
		t.Fatalf("GetPetStats() failed: %v", err)
	}
	if stats.Frameworks != 4 {
		t.Errorf("Frameworks = %d, expected 4", stats.Frameworks)
	}
	if stats.AverageQuality != 3.75 {
		t.Errorf("AverageQuality = %v, expected 3.75", stats.AverageQuality)
	}
	if stats.BestQuality != 5 {
		t.Errorf("BestQuality = %d, expected 5", stats.BestQuality)
	}
	if stats.Level != 3 {
		t.Errorf("Level = %d, expected 3", stats.Level)
	}
	if stats.QualityCounts[4] != 2 || stats.QualityCounts[2] != 1 {
		t.Errorf("QualityCounts = %v", stats.QualityCounts)
	}
	if !stats.LastFramework.Equal(base.Add(3 * time.Minute)) {
		t.Errorf("LastFramework = %v, expected %v", stats.LastFramework, base.Add(3*time.Minute))
	}
}

func TestTopLevels(t *testing.T) {
	store := openTestStore(t)
	store.RegisterPet("pet-1", "Bit")
	store.RegisterPet("pet-2", "Byte")
	store.RegisterPet("pet-3", "Nibble")

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store.SaveLevelUp(LevelUpRecord{PetID: "pet-1", Level: 2, State: "resting", CreatedAt: base})
	store.SaveLevelUp(LevelUpRecord{PetID: "pet-2", Level: 2, State: "resting", CreatedAt: base})
	store.SaveLevelUp(LevelUpRecord{PetID: "pet-2", Level: 3, State: "resting", CreatedAt: base.Add(time.Hour)})
	store.SaveLevelUp(LevelUpRecord{PetID: "pet-3", Level: 2, State: "tired", CreatedAt: base.Add(-time.Hour)})

	top, err := store.TopLevels(10)
	if err != nil {
		t.Fatalf("TopLevels() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 pets, got %d", len(top))
	}
	if top[0].Name != "Byte" || top[0].Level != 3 {
		t.Errorf("top[0] = %+v, expected Byte at level 3", top[0])
	}
	// Ties go to whoever got there first.
	if top[1].Name != "Nibble" || top[2].Name != "Bit" {
		t.Errorf("tie order = %s, %s; expected Nibble, Bit", top[1].Name, top[2].Name)
	}

	limited, _ := store.TopLevels(1)
	if len(limited) != 1 {
		t.Errorf("Expected 1 entry with limit, got %d", len(limited))
	}
}
