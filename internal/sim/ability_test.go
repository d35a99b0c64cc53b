package sim

import (
	"math"
	"testing"

	"github.com/magoocas/life-of-a-burrb/internal/core"
)

func TestActivateGates(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)

	if res := g.abilities.Activate(g, AbilityFreeze); res != ActivationNotUnlocked {
		t.Errorf("Locked ability should report not unlocked, got %s", res)
	}

	g.abilities.Unlock(AbilityFreeze)
	if res := g.abilities.Activate(g, AbilityFreeze); res != ActivationOK {
		t.Errorf("Unlocked ability should cast, got %s", res)
	}
	if res := g.abilities.Activate(g, AbilityFreeze); res != ActivationOnCooldown {
		t.Errorf("Running ability should report cooldown, got %s", res)
	}

	if res := g.abilities.Activate(g, AbilityID(-1)); res != ActivationNotUnlocked {
		t.Errorf("Out of range id should report not unlocked, got %s", res)
	}
}

func TestRejectedActivateKeepsClocks(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = nil
	g.abilities.Unlock(AbilityFreeze)
	g.abilities.Activate(g, AbilityFreeze)
	g.abilities.Tick(g, 0.25)

	before := g.abilities.states
	if res := g.abilities.Activate(g, AbilityFreeze); res != ActivationOnCooldown {
		t.Fatalf("Mid-cooldown activation should be rejected, got %s", res)
	}
	if g.abilities.states != before {
		t.Error("A rejected activation must leave every clock untouched")
	}

	if res := g.abilities.Activate(g, AbilityTeleport); res != ActivationNotUnlocked {
		t.Fatalf("Locked activation should be rejected, got %s", res)
	}
	if g.abilities.states != before {
		t.Error("A locked activation must leave every clock untouched")
	}
}

func TestCooldownDecayAdditive(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	freshCast := func() *Game {
		g := New()
		g.Reset(cfg)
		g.npcs = nil
		g.abilities.Unlock(AbilityFreeze)
		g.abilities.Activate(g, AbilityFreeze)
		return g
	}

	cases := []struct {
		name  string
		parts []float64
	}{
		{"two even", []float64{0.3, 0.3}},
		{"uneven", []float64{0.04, 0.56}},
		{"many small", []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			split := freshCast()
			whole := freshCast()

			sum := 0.0
			for _, dt := range tc.parts {
				split.abilities.Tick(split, dt)
				sum += dt
			}
			whole.abilities.Tick(whole, sum)

			sc := split.abilities.CooldownLeft(AbilityFreeze)
			wc := whole.abilities.CooldownLeft(AbilityFreeze)
			if math.Abs(sc-wc) > 1e-9 {
				t.Errorf("Split ticks should decay the cooldown like one tick: %f vs %f", sc, wc)
			}
			sa := split.abilities.ActiveLeft(AbilityFreeze)
			wa := whole.abilities.ActiveLeft(AbilityFreeze)
			if math.Abs(sa-wa) > 1e-9 {
				t.Errorf("Split ticks should decay the window like one tick: %f vs %f", sa, wa)
			}
		})
	}
}

func TestActiveAndCooldownClocksIndependent(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = nil

	// A long cooldown outlives a short effect window: after 3.5 s the
	// effect is over while 6.5 s of cooldown remain.
	st := &g.abilities.states[AbilityFreeze]
	st.Unlocked = true
	st.Active = 3.0
	st.Cooldown = 10.0

	for i := 0; i < 7; i++ {
		g.abilities.Tick(g, 0.5)
	}

	if g.abilities.IsActive(AbilityFreeze) {
		t.Error("The effect window should have closed")
	}
	if got := g.abilities.ActiveLeft(AbilityFreeze); got != 0 {
		t.Errorf("ActiveLeft should clamp at zero, got %f", got)
	}
	if got := g.abilities.CooldownLeft(AbilityFreeze); math.Abs(got-6.5) > 1e-9 {
		t.Errorf("CooldownLeft should be 6.5, got %f", got)
	}
	if res := g.abilities.Activate(g, AbilityFreeze); res != ActivationOnCooldown {
		t.Errorf("The ability should still be cooling, got %s", res)
	}
}

func TestOutdoorOnlyAbilities(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.world.Buildings = []*Building{NewBuilding(4000, 4000, 100, 80)}
	g.interiors = make([]interiorState, 1)
	g.abilities.Unlock(AbilityEarthquake)
	g.abilities.Unlock(AbilityMagnet)

	g.player.Building = 0
	g.player.InteriorX, g.player.InteriorY = g.world.Buildings[0].InteriorSpawn()

	if res := g.abilities.Activate(g, AbilityEarthquake); res != ActivationNotHere {
		t.Errorf("Earthquake indoors should be rejected, got %s", res)
	}
	if res := g.abilities.CastSodaCans(g); res != ActivationNotHere {
		t.Errorf("Soda cans indoors should be rejected, got %s", res)
	}
	// The magnet works anywhere.
	if res := g.abilities.Activate(g, AbilityMagnet); res != ActivationOK {
		t.Errorf("Magnet indoors should cast, got %s", res)
	}

	g.player.Building = -1
	if res := g.abilities.Activate(g, AbilityEarthquake); res != ActivationOK {
		t.Errorf("Earthquake outdoors should cast, got %s", res)
	}
}

func TestFreezeHaltsNPCs(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = []NPC{
		{X: 5300, Y: 5300, Type: NPCBurrb, Alive: true, HP: 3, Speed: 60, DirTimer: 50},
	}
	g.abilities.Unlock(AbilityFreeze)

	res := g.Step(Intent{Casts: []AbilityID{AbilityFreeze}}, testDT)
	if !g.abilities.FreezeActive() {
		t.Fatal("Freeze should be active after casting")
	}
	cast := false
	for _, ev := range res.Events {
		if ev.Kind == EventAbilityCast && ev.Ability == AbilityFreeze && ev.Result == ActivationOK {
			cast = true
		}
	}
	if !cast {
		t.Error("Expected a cast event for freeze")
	}

	for i := 0; i < 30; i++ {
		g.Step(Intent{}, testDT)
	}
	if g.npcs[0].X != 5300 || g.npcs[0].Y != 5300 {
		t.Errorf("Frozen npc should not move, got (%f, %f)", g.npcs[0].X, g.npcs[0].Y)
	}
}

func TestShieldBlocksBites(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = []NPC{
		{X: g.player.X + 5, Y: g.player.Y, Type: NPCBurrb, Alive: true, Aggressive: true, HP: 3, DirTimer: 100},
	}
	g.abilities.Unlock(AbilityFreeze)

	g.Step(Intent{Casts: []AbilityID{AbilityFreeze}}, testDT)
	for i := 0; i < 30; i++ {
		g.Step(Intent{}, testDT)
	}
	if g.player.Health != g.cfg.Gameplay.MaxHealth {
		t.Errorf("No bites should land while shielded, health %d", g.player.Health)
	}
}

func TestInvisibilityBreaksChase(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.world.Buildings = nil
	g.interiors = nil
	// The safe square suppresses chasing on its own, so the hunt happens
	// south of it.
	g.player.X, g.player.Y = 5000, 5400
	g.npcs = []NPC{
		{X: 5000, Y: 5300, Type: NPCBurrb, Alive: true, HP: 3,
			Aggressive: true, ChaseSpeed: 150, Speed: 60, DirTimer: 100},
	}
	g.abilities.Unlock(AbilityInvisibility)

	g.Step(Intent{Casts: []AbilityID{AbilityInvisibility}}, testDT)
	for i := 0; i < 30; i++ {
		g.Step(Intent{}, testDT)
	}
	if g.npcs[0].Chasing {
		t.Error("Nobody can chase what nobody can see")
	}
	if g.npcs[0].Y != 5300 {
		t.Errorf("The hunter should wander its own way, not approach, got y %f", g.npcs[0].Y)
	}

	// Reappearing puts the hunter straight back on the scent.
	g.abilities.states[AbilityInvisibility].Active = 0
	for i := 0; i < 30; i++ {
		g.Step(Intent{}, testDT)
	}
	if !g.npcs[0].Chasing {
		t.Error("A visible player inside sight range should be chased")
	}
	if g.npcs[0].Y <= 5300 {
		t.Errorf("The hunter should close in, got y %f", g.npcs[0].Y)
	}

	// Camouflage hides through the same sight gate.
	g.abilities.Unlock(AbilityCamouflage)
	if res := g.abilities.Activate(g, AbilityCamouflage); res != ActivationOK {
		t.Fatalf("Camouflage should cast, got %s", res)
	}
	if !g.abilities.PlayerHidden() {
		t.Error("Camouflage should hide the player")
	}
	if !g.abilities.DamageShielded() {
		t.Error("Camouflage should shield against bites")
	}
}

func TestCastRejectedEvent(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)

	res := g.Step(Intent{Casts: []AbilityID{AbilityTeleport}}, testDT)
	rejected := false
	for _, ev := range res.Events {
		if ev.Kind == EventAbilityRejected && ev.Ability == AbilityTeleport &&
			ev.Result == ActivationNotUnlocked {
			rejected = true
		}
	}
	if !rejected {
		t.Error("Casting a locked ability should raise a rejected event")
	}
}

func TestTeleportBlinksForward(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.world.Buildings = nil
	g.abilities.Unlock(AbilityTeleport)
	g.player.Angle = 0 // facing east

	x0 := g.player.X
	if res := g.abilities.Activate(g, AbilityTeleport); res != ActivationOK {
		t.Fatalf("Teleport should cast, got %s", res)
	}
	if g.player.X != x0+teleportDistance {
		t.Errorf("Teleport should blink a full step east, got %f, want %f", g.player.X, x0+teleportDistance)
	}
	if g.abilities.TeleportFlash <= 0 {
		t.Error("Teleport should raise the flash")
	}

	// A wall ahead shortens the blink instead of cancelling it.
	g2 := New()
	g2.Reset(cfg)
	g2.world.Buildings = []*Building{NewBuilding(5150, 4850, 200, 200)}
	g2.interiors = make([]interiorState, 1)
	g2.abilities.Unlock(AbilityTeleport)
	g2.player.Angle = 0

	x0 = g2.player.X
	if res := g2.abilities.Activate(g2, AbilityTeleport); res != ActivationOK {
		t.Fatalf("Teleport into a wall should still cast, got %s", res)
	}
	if g2.player.X <= x0 || g2.player.X >= x0+teleportDistance {
		t.Errorf("Blocked teleport should land short of the wall, got %f", g2.player.X)
	}
	if !CanMoveTo(g2.player.X, g2.player.Y, g2.world.Buildings) {
		t.Error("Teleport should never land inside a wall")
	}
}

func TestEarthquakeRootsAndStalls(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = []NPC{
		{X: 5100, Y: 5000, Type: NPCBurrb, Alive: true, HP: 3, Speed: 50, DirTimer: 100},
	}
	g.cars = []Car{{X: 5050, Y: 5000, Dir: CarEast, Speed: 100}}
	g.abilities.Unlock(AbilityEarthquake)

	if res := g.abilities.Activate(g, AbilityEarthquake); res != ActivationOK {
		t.Fatalf("Earthquake should cast, got %s", res)
	}
	if g.npcs[0].X <= 5100 {
		t.Errorf("The shock should push the npc away, got %f", g.npcs[0].X)
	}
	if g.npcs[0].Speed != 0 {
		t.Errorf("The shock should root the npc, speed %f", g.npcs[0].Speed)
	}
	if g.cars[0].Speed != 0 {
		t.Errorf("The shock should stall nearby cars, speed %f", g.cars[0].Speed)
	}
	if g.abilities.QuakeShake <= 0 {
		t.Error("Earthquake should shake the camera")
	}
}

func TestVineTrapRootsAndReleases(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = []NPC{
		{X: g.player.X + 150, Y: g.player.Y, Type: NPCBurrb, Alive: true, HP: 3, Speed: 70, DirTimer: 100},
		{X: g.player.X + 400, Y: g.player.Y, Type: NPCBurrb, Alive: true, HP: 3, Speed: 70, DirTimer: 100},
	}
	g.abilities.Unlock(AbilityVineTrap)

	if res := g.abilities.Activate(g, AbilityVineTrap); res != ActivationOK {
		t.Fatalf("Vine trap should cast, got %s", res)
	}
	if g.npcs[0].Speed != 0 {
		t.Errorf("A burrb inside the vines should be rooted, speed %f", g.npcs[0].Speed)
	}
	if g.npcs[0].DirTimer != vineRootTime {
		t.Errorf("The root should hold for %f s, got %f", vineRootTime, g.npcs[0].DirTimer)
	}
	if g.npcs[1].Speed != 70 {
		t.Errorf("A burrb beyond the vines should keep its stride, speed %f", g.npcs[1].Speed)
	}

	// Closing the window frees the rooted burrb with a fresh wander.
	for i := 0; i < 5; i++ {
		g.abilities.Tick(g, 1.0)
	}
	if s := g.npcs[0].Speed; s < npcWanderSpeedMin || s > npcWanderSpeedMax {
		t.Errorf("A released burrb should wander again, speed %f", s)
	}
}

func TestSandstormSlowsAndReleases(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = []NPC{
		{X: g.player.X + 150, Y: g.player.Y, Type: NPCBurrb, Alive: true, HP: 3, Speed: 70, DirTimer: 100},
		{X: g.player.X + 400, Y: g.player.Y, Type: NPCBurrb, Alive: true, HP: 3, Speed: 70, DirTimer: 100},
	}
	g.abilities.Unlock(AbilitySandstorm)

	if res := g.abilities.Activate(g, AbilitySandstorm); res != ActivationOK {
		t.Fatalf("Sandstorm should cast, got %s", res)
	}
	if g.npcs[0].Speed != sandstormSlowSpeed {
		t.Errorf("Grit should slow the near burrb to %f, got %f", sandstormSlowSpeed, g.npcs[0].Speed)
	}
	if g.npcs[1].Speed != 70 {
		t.Errorf("A burrb outside the storm should keep its stride, speed %f", g.npcs[1].Speed)
	}

	for i := 0; i < 5; i++ {
		g.abilities.Tick(g, 1.0)
	}
	if s := g.npcs[0].Speed; s < npcWanderSpeedMin || s > npcWanderSpeedMax {
		t.Errorf("The storm's end should free the crawler, speed %f", s)
	}
}

func TestBlizzardRootsAndShoves(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	px, py := g.player.X, g.player.Y
	g.npcs = []NPC{
		{X: px + 100, Y: py, Type: NPCBurrb, Alive: true, HP: 3, Speed: 70, DirTimer: 100},
		{X: px + 400, Y: py, Type: NPCBurrb, Alive: true, HP: 3, Speed: 70, DirTimer: 100},
	}
	g.abilities.Unlock(AbilityBlizzard)

	if res := g.abilities.Activate(g, AbilityBlizzard); res != ActivationOK {
		t.Fatalf("Blizzard should cast, got %s", res)
	}
	if g.npcs[0].Speed != 0 {
		t.Errorf("The whiteout should root the near burrb, speed %f", g.npcs[0].Speed)
	}
	if g.npcs[0].DirTimer != blizzardRootTime {
		t.Errorf("The root should hold for %f s, got %f", blizzardRootTime, g.npcs[0].DirTimer)
	}
	if g.npcs[0].X != px+100+blizzardPush {
		t.Errorf("The gust should shove the burrb to %f, got %f", px+100+blizzardPush, g.npcs[0].X)
	}
	if g.npcs[1].Speed != 70 || g.npcs[1].X != px+400 {
		t.Error("A burrb outside the whiteout should be untouched")
	}

	for i := 0; i < 4; i++ {
		g.abilities.Tick(g, 1.0)
	}
	if s := g.npcs[0].Speed; s < npcWanderSpeedMin || s > npcWanderSpeedMax {
		t.Errorf("The thaw should free the burrb, speed %f", s)
	}
}

func TestNatureHealPushesCrowd(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	px, py := g.player.X, g.player.Y
	g.npcs = []NPC{
		{X: px + 100, Y: py, Type: NPCBurrb, Alive: true, HP: 3, Speed: 50, DirTimer: 100},
		{X: px, Y: py - 200, Type: NPCBurrb, Alive: true, HP: 3, Speed: 50, DirTimer: 100},
		{X: px + 400, Y: py, Type: NPCBurrb, Alive: true, HP: 3, Speed: 50, DirTimer: 100},
		{X: px + 60, Y: py, Type: NPCRock, Alive: true, HP: 1, DirTimer: 100},
	}
	g.abilities.Unlock(AbilityNatureHeal)

	if res := g.abilities.Activate(g, AbilityNatureHeal); res != ActivationOK {
		t.Fatalf("Nature heal should cast, got %s", res)
	}
	if g.npcs[0].X != px+100+healPush {
		t.Errorf("The pulse should shove the east burrb to %f, got %f", px+100+healPush, g.npcs[0].X)
	}
	if g.npcs[1].Y != py-200-healPush {
		t.Errorf("The pulse should shove the north burrb to %f, got %f", py-200-healPush, g.npcs[1].Y)
	}
	if g.npcs[2].X != px+400 {
		t.Error("A burrb beyond the pulse should stand still")
	}
	if g.npcs[3].X != px+60 {
		t.Error("Rocks never budge")
	}
	if g.player.Health != g.cfg.Gameplay.MaxHealth {
		t.Errorf("The pulse shoves the crowd, it does not change health, got %d", g.player.Health)
	}
}

func TestIceWallRaisesSegments(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = nil
	g.abilities.Unlock(AbilityIceWall)
	g.player.Angle = 0 // the wall rises east, spread north to south

	if res := g.abilities.Activate(g, AbilityIceWall); res != ActivationOK {
		t.Fatalf("Ice wall should cast, got %s", res)
	}
	if len(g.abilities.IceWalls) != iceWallSegments {
		t.Fatalf("The wall should raise %d segments, got %d", iceWallSegments, len(g.abilities.IceWalls))
	}
	cx := g.player.X + iceWallAhead
	for i, seg := range g.abilities.IceWalls {
		if seg.TTL != iceWallLife {
			t.Errorf("Segment %d should start with %f s left, got %f", i, iceWallLife, seg.TTL)
		}
		if math.Abs(seg.X-cx) > 1e-9 {
			t.Errorf("Segment %d should stand %f ahead of the caster, got x %f", i, iceWallAhead, seg.X)
		}
		want := g.player.Y + float64(i-iceWallSegments/2)*iceWallSpacing
		if math.Abs(seg.Y-want) > 1e-9 {
			t.Errorf("Segment %d y = %f, want %f", i, seg.Y, want)
		}
	}

	for i := 0; i < 500; i++ {
		g.abilities.Tick(g, testDT)
	}
	if len(g.abilities.IceWalls) != 0 {
		t.Errorf("The wall should melt away, %d segments left", len(g.abilities.IceWalls))
	}
}

func TestFireDashLaysTrail(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = nil
	g.world.Buildings = nil
	g.interiors = nil
	g.abilities.Unlock(AbilityFireDash)

	if res := g.abilities.Activate(g, AbilityFireDash); res != ActivationOK {
		t.Fatalf("Fire dash should cast, got %s", res)
	}
	if m := g.abilities.SpeedMultiplier(false); m != fireDashMult {
		t.Errorf("The dash should multiply speed by %f, got %f", fireDashMult, m)
	}

	for i := 0; i < 5; i++ {
		g.Step(Intent{Move: core.Vec2{X: 1}}, testDT)
	}
	if len(g.abilities.FireTrail) != 5 {
		t.Fatalf("Five burning ticks should leave five segments, got %d", len(g.abilities.FireTrail))
	}
	last := g.abilities.FireTrail[4]
	if last.X != g.player.X || last.Y != g.player.Y {
		t.Error("The newest segment should sit under the runner")
	}

	// The window closes and the trail burns out behind it.
	for i := 0; i < 100; i++ {
		g.Step(Intent{}, testDT)
	}
	if g.abilities.IsActive(AbilityFireDash) {
		t.Error("The dash window should have closed")
	}
	if len(g.abilities.FireTrail) != 0 {
		t.Errorf("The trail should burn out, %d segments left", len(g.abilities.FireTrail))
	}
}

func TestPoisonCloudLingers(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = []NPC{
		{X: g.player.X + 30, Y: g.player.Y, Type: NPCBurrb, Alive: true, HP: 3, DirTimer: 100},
	}
	g.abilities.Unlock(AbilityPoisonCloud)

	if res := g.abilities.Activate(g, AbilityPoisonCloud); res != ActivationOK {
		t.Fatalf("Poison cloud should cast, got %s", res)
	}
	if len(g.abilities.PoisonClouds) != 1 {
		t.Fatalf("One cast should drop one cloud, got %d", len(g.abilities.PoisonClouds))
	}
	pc := g.abilities.PoisonClouds[0]
	if pc.X != g.player.X || pc.Y != g.player.Y {
		t.Errorf("The cloud should drop at the caster's feet, got (%f, %f)", pc.X, pc.Y)
	}
	if pc.TTL != poisonCloudLife {
		t.Errorf("The cloud should last %f s, got %f", poisonCloudLife, pc.TTL)
	}

	x0 := g.npcs[0].X
	g.abilities.Tick(g, testDT)
	if g.npcs[0].X <= x0 {
		t.Errorf("The stink should push the burrb out, got %f", g.npcs[0].X)
	}

	for i := 0; i < 400; i++ {
		g.abilities.Tick(g, testDT)
	}
	if len(g.abilities.PoisonClouds) != 0 {
		t.Errorf("The cloud should blow over, %d left", len(g.abilities.PoisonClouds))
	}
}

func TestShadowStepFindsAnchor(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = nil
	px, py := g.player.X, g.player.Y
	g.world.Objects = []WorldObject{
		{Kind: ObjectTree, X: px + 30, Y: py, Size: 18},    // inside the dead zone
		{Kind: ObjectFlower, X: px + 100, Y: py, Size: 8},  // casts no shadow
		{Kind: ObjectTree, X: px + 300, Y: py, Size: 18},   // nearest real shadow
		{Kind: ObjectCactus, X: px + 450, Y: py, Size: 14}, // farther anchor
	}
	g.abilities.Unlock(AbilityShadowStep)

	if res := g.abilities.Activate(g, AbilityShadowStep); res != ActivationOK {
		t.Fatalf("Shadow step should cast, got %s", res)
	}
	if g.player.X != px+320 || g.player.Y != py+20 {
		t.Errorf("The step should land beside the nearest tree, got (%f, %f), want (%f, %f)",
			g.player.X, g.player.Y, px+320, py+20)
	}
	if g.abilities.TeleportFlash <= 0 {
		t.Error("Shadow step should raise the flash")
	}

	// Every shadow out of range: the step fizzles in place.
	g.abilities.states[AbilityShadowStep].Cooldown = 0
	g.abilities.TeleportFlash = 0
	g.world.Objects = []WorldObject{
		{Kind: ObjectTree, X: g.player.X + 600, Y: g.player.Y, Size: 18},
	}
	if res := g.abilities.Activate(g, AbilityShadowStep); res != ActivationOK {
		t.Fatalf("A fizzled step still spends the cast, got %s", res)
	}
	if g.player.X != px+320 || g.player.Y != py+20 {
		t.Error("With no shadow in reach the player should stay put")
	}
	if g.abilities.TeleportFlash != 0 {
		t.Error("A fizzled step should not flash")
	}
}

func TestSwampMonsterChasesBurrbs(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = []NPC{
		{X: g.player.X + 200, Y: g.player.Y + 30, Type: NPCBurrb, Alive: true, HP: 3, DirTimer: 100},
	}
	g.abilities.Unlock(AbilitySwampMonster)

	if res := g.abilities.Activate(g, AbilitySwampMonster); res != ActivationOK {
		t.Fatalf("Swamp monster should cast, got %s", res)
	}
	m := g.abilities.Monster
	if !m.Active {
		t.Fatal("The monster should rise on cast")
	}
	if m.X != g.player.X+30 || m.Y != g.player.Y+30 {
		t.Errorf("The monster should rise beside the caster, got (%f, %f)", m.X, m.Y)
	}

	d0 := core.Dist(g.npcs[0].X, g.npcs[0].Y, m.X, m.Y)
	for i := 0; i < 30; i++ {
		g.abilities.Tick(g, testDT)
	}
	d1 := core.Dist(g.npcs[0].X, g.npcs[0].Y, g.abilities.Monster.X, g.abilities.Monster.Y)
	if d1 >= d0 {
		t.Errorf("The monster should close on the nearest burrb, %f -> %f", d0, d1)
	}

	for i := 0; i < 640; i++ {
		g.abilities.Tick(g, testDT)
	}
	if g.abilities.Monster.Active {
		t.Error("The monster should sink when its window ends")
	}
	if g.abilities.IsActive(AbilitySwampMonster) {
		t.Error("The summon window should be over")
	}
}

func TestBounceClearsBuildings(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = nil
	g.world.Buildings = []*Building{NewBuilding(g.player.X+40, g.player.Y-100, 60, 200)}
	g.interiors = make([]interiorState, 1)
	g.abilities.Unlock(AbilityBounce)

	takeoffX, takeoffY := g.player.X, g.player.Y
	g.Step(Intent{Casts: []AbilityID{AbilityBounce}}, testDT)
	if !g.abilities.Airborne() {
		t.Fatal("The cast should start the arc")
	}

	overWall := false
	for i := 0; i < 90 && g.abilities.Airborne(); i++ {
		g.Step(Intent{Move: core.Vec2{X: 1}}, testDT)
		if g.abilities.Airborne() {
			if g.abilities.BounceHeight <= 0 {
				t.Fatal("Airborne should carry arc height")
			}
			if !CanMoveTo(g.player.X, g.player.Y, g.world.Buildings) {
				overWall = true
			}
		}
	}
	if g.abilities.Airborne() {
		t.Fatal("The arc should have ended")
	}
	if !overWall {
		t.Error("The flight should pass over the rooftop")
	}
	if g.player.X < takeoffX+110 {
		t.Errorf("The bounce should carry past the wall, got %f", g.player.X)
	}
	if g.player.Y != takeoffY {
		t.Errorf("An eastward arc should hold its line, got y %f", g.player.Y)
	}
	if !CanMoveTo(g.player.X, g.player.Y, g.world.Buildings) {
		t.Error("The landing should be clear ground")
	}

	// A landing on the roof itself snaps back to the takeoff point.
	g2 := New()
	g2.Reset(cfg)
	g2.npcs = nil
	g2.world.Buildings = []*Building{NewBuilding(g2.player.X+40, g2.player.Y-100, 400, 200)}
	g2.interiors = make([]interiorState, 1)
	g2.abilities.Unlock(AbilityBounce)

	tx, ty := g2.player.X, g2.player.Y
	g2.Step(Intent{Casts: []AbilityID{AbilityBounce}}, testDT)
	for i := 0; i < 90 && g2.abilities.Airborne(); i++ {
		g2.Step(Intent{Move: core.Vec2{X: 1}}, testDT)
	}
	if g2.abilities.Airborne() {
		t.Fatal("The arc should have ended")
	}
	if g2.player.X != tx || g2.player.Y != ty {
		t.Errorf("A blocked landing should snap back to the takeoff, got (%f, %f), want (%f, %f)",
			g2.player.X, g2.player.Y, tx, ty)
	}
}

func TestGiantScaleEases(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = nil
	g.abilities.Unlock(AbilityGiantMode)
	g.abilities.Activate(g, AbilityGiantMode)

	for i := 0; i < 60; i++ {
		g.Step(Intent{}, testDT)
	}
	if g.abilities.GiantScale < 2.0 {
		t.Errorf("Giant mode should swell the burrb, scale %f", g.abilities.GiantScale)
	}

	g.abilities.states[AbilityGiantMode].Active = 0
	for i := 0; i < 180; i++ {
		g.Step(Intent{}, testDT)
	}
	if g.abilities.GiantScale > 1.1 {
		t.Errorf("Scale should ease back to normal, got %f", g.abilities.GiantScale)
	}
}

func TestMagnetPullsCollectibles(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = nil
	g.collectibles = []Collectible{
		{X: g.player.X + 100, Y: g.player.Y, Currency: CurrencyGems},
	}
	g.abilities.Unlock(AbilityMagnet)

	x0 := g.collectibles[0].X
	g.Step(Intent{Casts: []AbilityID{AbilityMagnet}}, testDT)
	g.Step(Intent{}, testDT) // the first pull lands on the tick after the cast
	if g.collectibles[0].X >= x0 {
		t.Errorf("Magnet should pull the gem closer, got %f", g.collectibles[0].X)
	}

	for i := 0; i < 60 && g.player.Wallet[CurrencyGems] == 0; i++ {
		g.Step(Intent{}, testDT)
	}
	if g.player.Wallet[CurrencyGems] != 1 {
		t.Error("The pulled gem should end up collected")
	}
}

func TestSodaCanCooldown(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)

	res := g.Step(Intent{SodaCans: true}, testDT)
	if len(g.abilities.SodaCans) != 3 {
		t.Fatalf("Deploy should spawn three cans, got %d", len(g.abilities.SodaCans))
	}
	deployed := 0
	for _, ev := range res.Events {
		if ev.Kind == EventSodaCansDeployed {
			deployed++
		}
	}
	if deployed != 1 {
		t.Errorf("Expected one deploy event, got %d", deployed)
	}

	res = g.Step(Intent{SodaCans: true}, testDT)
	if len(g.abilities.SodaCans) != 3 {
		t.Errorf("Second deploy should be blocked, got %d cans", len(g.abilities.SodaCans))
	}
	for _, ev := range res.Events {
		if ev.Kind == EventSodaCansDeployed {
			t.Error("Second deploy should not raise an event")
		}
	}
}

func TestSprintDashMultiplier(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.abilities.Unlock(AbilityDash)

	if m := g.abilities.SpeedMultiplier(false); m != 1.0 {
		t.Errorf("Idle multiplier should be 1, got %f", m)
	}
	g.abilities.Activate(g, AbilityDash)
	if m := g.abilities.SpeedMultiplier(true); m != dashMultiplier {
		t.Errorf("Dash should multiply speed by %f, got %f", dashMultiplier, m)
	}
}

func TestSpeedModifierStacking(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = nil
	g.abilities.Unlock(AbilitySuperSpeed)
	g.abilities.Unlock(AbilitySnowCloak)
	g.abilities.Unlock(AbilityGiantMode)

	if m := g.abilities.SpeedMultiplier(false); m != 1.0 {
		t.Errorf("Walking speed should be unmodified, got %f", m)
	}
	if m := g.abilities.SpeedMultiplier(true); m != superSpeedMult {
		t.Errorf("Super speed should carry the sprint, got %f", m)
	}

	// The strongest burst wins over the sprint.
	g.abilities.Activate(g, AbilitySnowCloak)
	if m := g.abilities.SpeedMultiplier(true); m != snowCloakMult {
		t.Errorf("Snow cloak should outrun super speed, got %f", m)
	}
	if m := g.abilities.SpeedMultiplier(false); m != snowCloakMult {
		t.Errorf("Snow cloak should glide without sprinting, got %f", m)
	}

	// Giant mode drags whatever the bursts produce.
	g.abilities.Activate(g, AbilityGiantMode)
	if m := g.abilities.SpeedMultiplier(false); m != snowCloakMult*giantSpeedMult {
		t.Errorf("A giant glides slower, got %f", m)
	}
}

func TestPurchaseFlow(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = nil
	g.player.Wallet[CurrencyChips] = 2

	if res := g.Purchase(AbilityDash); res != PurchaseOK {
		t.Fatalf("Purchase should succeed, got %s", res)
	}
	if g.player.Wallet[CurrencyChips] != 0 {
		t.Errorf("Purchase should deduct the cost, wallet %d", g.player.Wallet[CurrencyChips])
	}
	if !g.abilities.Unlocked(AbilityDash) {
		t.Error("Purchase should unlock the ability")
	}

	if res := g.Purchase(AbilityDash); res != PurchaseAlreadyUnlocked {
		t.Errorf("Repeat purchase should report already unlocked, got %s", res)
	}
	if res := g.Purchase(AbilitySuperSpeed); res != PurchaseInsufficientCurrency {
		t.Errorf("Broke purchase should report insufficient currency, got %s", res)
	}
	if g.abilities.Unlocked(AbilitySuperSpeed) {
		t.Error("A failed purchase should not unlock")
	}

	// The unlock event rides the next tick's result.
	res := g.Step(Intent{}, testDT)
	found := false
	for _, ev := range res.Events {
		if ev.Kind == EventAbilityUnlocked && ev.Ability == AbilityDash {
			found = true
		}
	}
	if !found {
		t.Error("Expected an unlock event on the following tick")
	}
	if g.State().AbilitiesUnlocked != 1 {
		t.Errorf("One ability should count as unlocked, got %d", g.State().AbilitiesUnlocked)
	}
}

func TestShopTabs(t *testing.T) {
	chips := ShopTab(CurrencyChips)
	if len(chips) != 9 {
		t.Errorf("The chip tab should sell nine abilities, got %d", len(chips))
	}
	if chips[0] != AbilityDash || chips[len(chips)-1] != AbilityEarthquake {
		t.Error("The chip tab should run from dash to earthquake in catalog order")
	}

	cases := []struct {
		currency Currency
		want     []AbilityID
	}{
		{CurrencyBerries, []AbilityID{AbilityVineTrap, AbilityCamouflage, AbilityNatureHeal}},
		{CurrencyGems, []AbilityID{AbilitySandstorm, AbilityMagnet, AbilityFireDash}},
		{CurrencySnowflakes, []AbilityID{AbilityIceWall, AbilityBlizzard, AbilitySnowCloak}},
		{CurrencyMushrooms, []AbilityID{AbilityPoisonCloud, AbilityShadowStep, AbilitySwampMonster}},
	}
	total := len(chips)
	for _, tc := range cases {
		got := ShopTab(tc.currency)
		if len(got) != len(tc.want) {
			t.Errorf("Tab %s should sell %d abilities, got %d", tc.currency, len(tc.want), len(got))
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("Tab %s entry %d = %s, want %s", tc.currency, i,
					abilityDefs[got[i]].Name, abilityDefs[tc.want[i]].Name)
			}
		}
		total += len(got)
	}
	if total != AbilityCount {
		t.Errorf("Tabs should cover the whole catalog, got %d of %d", total, AbilityCount)
	}
}
