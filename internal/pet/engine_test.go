package pet

import (
	"reflect"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func fixedRoller(v int) QualityRoller {
	return RollerFunc(func(int) int { return v })
}

func TestNewEngineInitialState(t *testing.T) {
	e := NewEngine(DefaultTuning(), epoch, fixedRoller(3))
	snap := e.Snapshot(epoch)

	if snap.Level != 1 || snap.Experience != 0 {
		t.Errorf("level=%d exp=%d; expected 1, 0", snap.Level, snap.Experience)
	}
	if snap.Energy != 1000 || snap.EnergyMultiplier != 1 {
		t.Errorf("energy=%d multiplier=%d; expected 1000, 1", snap.Energy, snap.EnergyMultiplier)
	}
	if snap.ActiveTab != 1 {
		t.Errorf("ActiveTab = %d, expected 1", snap.ActiveTab)
	}
	if snap.LastFrameworkLevel != -1 {
		t.Errorf("LastFrameworkLevel = %d, expected -1", snap.LastFrameworkLevel)
	}
	if snap.AvatarState != StateResting {
		t.Errorf("AvatarState = %v, expected resting", snap.AvatarState)
	}
}

func TestFirstTick(t *testing.T) {
	e := NewEngine(DefaultTuning(), epoch, fixedRoller(3))

	res := e.Advance(epoch.Add(800 * time.Millisecond))
	snap := e.Snapshot(epoch.Add(800 * time.Millisecond))

	// Full energy is above the hyperactive threshold.
	if snap.AvatarState != StateHyperactive {
		t.Errorf("AvatarState = %v, expected hyperactive", snap.AvatarState)
	}
	if !res.Has(EventStateChanged) {
		t.Error("expected state_changed event")
	}
	if snap.Energy != 999 {
		t.Errorf("Energy = %d, expected 999", snap.Energy)
	}
	// floor(10 * 1.5 + 1)
	if snap.ActiveFrameworkProgress != 16 {
		t.Errorf("ActiveFrameworkProgress = %d, expected 16", snap.ActiveFrameworkProgress)
	}
	if res.Tick != 1 || snap.Tick != 1 {
		t.Errorf("tick = %d/%d, expected 1", res.Tick, snap.Tick)
	}
}

func TestFrameworkCadence(t *testing.T) {
	g := newGame(DefaultTuning(), epoch, fixedRoller(3))
	g.frameworkSpeedMultiplier = 1.0

	for i := 1; i <= 45; i++ {
		if events := g.progressFramework(epoch); events != nil {
			t.Fatalf("framework completed early at call %d", i)
		}
	}
	if g.activeFrameworkProgress != 495 {
		t.Fatalf("progress after 45 calls = %d, expected 495", g.activeFrameworkProgress)
	}

	events := g.progressFramework(epoch)
	if len(events) == 0 || events[0].Kind != EventFrameworkCompleted {
		t.Fatalf("expected completion on call 46, got %+v", events)
	}
	if g.framework != 1 || g.activeFrameworkProgress != 0 {
		t.Errorf("framework=%d progress=%d; expected 1, 0", g.framework, g.activeFrameworkProgress)
	}
	if g.lastFrameworkLevel != 3 {
		t.Errorf("lastFrameworkLevel = %d, expected 3", g.lastFrameworkLevel)
	}
	// 3 * 10 * 1.0
	if g.experience != 30 {
		t.Errorf("experience = %d, expected 30", g.experience)
	}
}

func TestFrameworkQualityClamped(t *testing.T) {
	tests := []struct {
		name     string
		roll     int
		mult     float64
		expected int
	}{
		{"scaled above max", 5, 1.5, 5},
		{"rounds half away from zero", 3, 1.5, 5},
		{"rounds to nearest", 3, 1.25, 4},
		{"rounds down", 1, 1.25, 1},
		{"never zero", 1, 0.25, 1},
		{"bad roller high", 99, 1.0, 5},
		{"bad roller low", -3, 1.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(DefaultTuning(), epoch, fixedRoller(tt.roll))
			g.frameworkQualityMultiplier = tt.mult
			g.completeFramework(epoch)

			if g.lastFrameworkLevel != tt.expected {
				t.Errorf("quality = %d, expected %d", g.lastFrameworkLevel, tt.expected)
			}
			if latest, _ := g.quality.Latest(); latest != tt.expected {
				t.Errorf("logged quality = %d, expected %d", latest, tt.expected)
			}
		})
	}
}

func TestLevelUpBoundary(t *testing.T) {
	g := newGame(DefaultTuning(), epoch, fixedRoller(1))

	if g.grantExperience(99) {
		t.Fatal("99 points should not level up")
	}
	if g.level != 1 || g.experience != 99 {
		t.Fatalf("level=%d exp=%d; expected 1, 99", g.level, g.experience)
	}

	if !g.grantExperience(1) {
		t.Fatal("reaching 100 should level up")
	}
	if g.level != 2 || g.experience != 0 {
		t.Fatalf("level=%d exp=%d; expected 2, 0", g.level, g.experience)
	}

	// A single grant never skips levels, whatever its size.
	if !g.grantExperience(1000) {
		t.Fatal("expected level up")
	}
	if g.level != 3 || g.experience != 0 {
		t.Errorf("level=%d exp=%d; expected 3, 0", g.level, g.experience)
	}
}

func TestNextLevelExperience(t *testing.T) {
	tun := DefaultTuning()

	tests := []struct {
		level    int
		expected int
	}{
		{1, 100},
		{2, 282},
		{4, 800},
	}

	for _, tt := range tests {
		if got := NextLevelExperience(tt.level, tun); got != tt.expected {
			t.Errorf("NextLevelExperience(%d) = %d, expected %d", tt.level, got, tt.expected)
		}
	}
}

func TestLevelUpEvent(t *testing.T) {
	g := newGame(DefaultTuning(), epoch, fixedRoller(5))
	g.frameworkQualityMultiplier = 1.0
	g.stateExperienceMultiplier = 2.0

	// 5 * 10 * 2 = 100
	events := g.completeFramework(epoch)
	if len(events) != 2 || events[1].Kind != EventLevelUp {
		t.Fatalf("events = %+v, expected completion then level_up", events)
	}
	if events[1].Level != 2 {
		t.Errorf("level_up event level = %d, expected 2", events[1].Level)
	}
}

func TestEnergyDrink(t *testing.T) {
	e := NewEngine(DefaultTuning(), epoch, fixedRoller(3))
	now := epoch

	events := e.DrinkEnergy(now)
	if len(events) != 1 || events[0].Pending != 200 {
		t.Fatalf("DrinkEnergy events = %+v", events)
	}

	snap := e.Snapshot(now)
	if snap.EnergyMultiplier != 2 || snap.EnergyIncrease != 200 {
		t.Fatalf("multiplier=%d pending=%d; expected 2, 200", snap.EnergyMultiplier, snap.EnergyIncrease)
	}

	now = now.Add(800 * time.Millisecond)
	e.Advance(now)
	snap = e.Snapshot(now)
	if snap.Energy != 1000 {
		t.Errorf("Energy = %d, expected 1000 (clamped)", snap.Energy)
	}
	if snap.EnergyIncrease != 194 || snap.EnergyMultiplier != 2 {
		t.Errorf("pending=%d multiplier=%d; expected 194, 2", snap.EnergyIncrease, snap.EnergyMultiplier)
	}

	// 194 more in steps of 6: 32 full steps then a final 2.
	for i := 0; i < 33; i++ {
		now = now.Add(800 * time.Millisecond)
		e.Advance(now)
	}
	snap = e.Snapshot(now)
	if snap.EnergyIncrease != 0 || snap.EnergyMultiplier != 1 {
		t.Errorf("pending=%d multiplier=%d; expected 0, 1", snap.EnergyIncrease, snap.EnergyMultiplier)
	}
	if snap.Energy != 1000 {
		t.Errorf("Energy = %d, expected 1000", snap.Energy)
	}

	// Back to draining.
	now = now.Add(800 * time.Millisecond)
	e.Advance(now)
	if snap := e.Snapshot(now); snap.Energy != 999 {
		t.Errorf("Energy = %d, expected 999", snap.Energy)
	}
}

func TestDrinksStack(t *testing.T) {
	tun := DefaultTuning()
	e := NewEngine(tun, epoch, nil)

	for i := 0; i < 10; i++ {
		e.DrinkEnergy(epoch)
	}
	snap := e.Snapshot(epoch)
	if snap.EnergyIncrease != tun.MaxEnergy {
		t.Errorf("pending = %d, expected capped at %d", snap.EnergyIncrease, tun.MaxEnergy)
	}
	if snap.EnergyMultiplier != 11 {
		t.Errorf("multiplier = %d, expected 11", snap.EnergyMultiplier)
	}
}

func TestEnergyNeverLeavesBounds(t *testing.T) {
	tun := DefaultTuning()
	e := NewEngine(tun, epoch, NewRandRoller(7))
	now := epoch

	for i := 0; i < 3000; i++ {
		now = now.Add(800 * time.Millisecond)
		if i%250 == 0 {
			e.DrinkEnergy(now)
		}
		e.Advance(now)

		snap := e.Snapshot(now)
		if snap.Energy < 0 || snap.Energy > tun.MaxEnergy {
			t.Fatalf("tick %d: energy %d out of bounds", i, snap.Energy)
		}
		if snap.Level < 1 {
			t.Fatalf("tick %d: level %d", i, snap.Level)
		}
	}
}

func TestEnergyBottomsOut(t *testing.T) {
	g := newGame(DefaultTuning(), epoch, fixedRoller(1))
	g.energy = 1

	g.advance(epoch)
	g.advance(epoch)
	if g.energy != 0 {
		t.Errorf("energy = %d, expected 0", g.energy)
	}
	if g.avatarState != StateExhausted {
		t.Errorf("state = %v, expected exhausted", g.avatarState)
	}
}

func TestNextTab(t *testing.T) {
	e := NewEngine(DefaultTuning(), epoch, nil)

	expected := []int{2, 0, 1, 2}
	for i, w := range expected {
		if got := e.NextTab(); got != w {
			t.Errorf("NextTab() #%d = %d, expected %d", i, got, w)
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() Snapshot {
		e := NewEngine(DefaultTuning(), epoch, NewRandRoller(1234))
		now := epoch
		for i := 0; i < 500; i++ {
			now = now.Add(800 * time.Millisecond)
			switch i {
			case 40:
				e.DrinkEnergy(now)
			case 100:
				e.SetSocial(2, now)
			case 200:
				e.SetProximity(true, now)
			}
			e.Advance(now)
		}
		return e.Snapshot(now)
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("replays diverged:\n%+v\n%+v", a, b)
	}
	if a.Framework == 0 {
		t.Error("expected at least one framework after 500 ticks")
	}
}

func TestSnapshotProgressRatio(t *testing.T) {
	tests := []struct {
		progress, total int
		expected        float64
	}{
		{0, 500, 0},
		{250, 500, 0.5},
		{600, 500, 1},
		{10, 0, 0},
	}

	for _, tt := range tests {
		s := Snapshot{ActiveFrameworkProgress: tt.progress, FrameworkCreationExp: tt.total}
		if got := s.ProgressRatio(); got != tt.expected {
			t.Errorf("ProgressRatio(%d/%d) = %v, expected %v", tt.progress, tt.total, got, tt.expected)
		}
	}
}
