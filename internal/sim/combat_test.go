package sim

import (
	"testing"

	"github.com/magoocas/life-of-a-burrb/internal/core"
)

func TestTongueHitsNPC(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.world.Buildings = nil
	g.cars = nil
	g.npcs = []NPC{
		{X: g.player.X + 60, Y: g.player.Y, Type: NPCBurrb, Alive: true, HP: 3, DirTimer: 100},
	}
	g.player.FacingLeft = false

	for i := 0; i < 20 && g.npcs[0].HP == 3; i++ {
		g.Step(Intent{Tongue: true}, testDT)
	}

	if g.npcs[0].HP != 2 {
		t.Fatalf("The tongue should land one hit, hp %d", g.npcs[0].HP)
	}
	if g.npcs[0].X <= SpawnX+60 {
		t.Errorf("The hit should knock the npc away, got %f", g.npcs[0].X)
	}
	if g.npcs[0].HurtFlash <= 0 {
		t.Error("The hit should flash the npc")
	}
	if !g.player.Tongue.Retracting {
		t.Error("The tongue should retract after a hit")
	}
}

func TestTongueKnockbackBlockedByWall(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	// One burrb pinned against a building face east of it: the knockback
	// would shove it into the wall, so it has to stay where it stands.
	g.world.Buildings = []*Building{NewBuilding(5065, 4950, 200, 200)}
	g.interiors = make([]interiorState, 1)
	g.cars = nil
	g.npcs = []NPC{
		{X: 5054, Y: g.player.Y, Type: NPCBurrb, Alive: true, HP: 3, DirTimer: 100},
	}
	g.player.FacingLeft = false

	for i := 0; i < 20 && g.npcs[0].HP == 3; i++ {
		g.Step(Intent{Tongue: true}, testDT)
	}

	if g.npcs[0].HP != 2 {
		t.Fatalf("The tongue should land one hit, hp %d", g.npcs[0].HP)
	}
	if g.npcs[0].X != 5054 || g.npcs[0].Y != g.player.Y {
		t.Errorf("Blocked knockback should leave the npc in place, got (%f, %f)", g.npcs[0].X, g.npcs[0].Y)
	}
	if !CanMoveTo(g.npcs[0].X, g.npcs[0].Y, g.world.Buildings) {
		t.Error("The npc should never end up standing in a wall")
	}
}

func TestMegaTongueDoublesReach(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	// A burrb at 200 px sits beyond the plain tongue but inside the mega
	// tongue's doubled reach.
	setup := func() *Game {
		g := New()
		g.Reset(cfg)
		g.world.Buildings = nil
		g.cars = nil
		g.npcs = []NPC{
			{X: g.player.X + 200, Y: g.player.Y, Type: NPCBurrb, Alive: true, HP: 3, DirTimer: 100},
		}
		g.player.FacingLeft = false
		return g
	}

	plain := setup()
	for i := 0; i < 60; i++ {
		plain.Step(Intent{Tongue: true}, testDT)
	}
	if plain.npcs[0].HP != 3 {
		t.Fatalf("The plain tongue should fall short, hp %d", plain.npcs[0].HP)
	}

	mega := setup()
	mega.abilities.Unlock(AbilityMegaTongue)
	if m := mega.abilities.ReachMultiplier(); m != 2.0 {
		t.Fatalf("Mega tongue should double reach, got %f", m)
	}
	for i := 0; i < 60 && mega.npcs[0].HP == 3; i++ {
		mega.Step(Intent{Tongue: true}, testDT)
	}
	if mega.npcs[0].HP != 2 {
		t.Errorf("The mega tongue should land the hit, hp %d", mega.npcs[0].HP)
	}
}

func TestTongueDefeatPaysOnce(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.world.Buildings = nil
	g.cars = nil
	g.npcs = []NPC{
		{X: g.player.X + 60, Y: g.player.Y, Type: NPCBurrb, Alive: true, HP: 3, DirTimer: 100},
	}
	chips0 := g.player.Wallet[CurrencyChips]

	defeated := false
	for i := 0; i < 600 && !defeated; i++ {
		res := g.Step(Intent{Tongue: true}, testDT)
		for _, ev := range res.Events {
			if ev.Kind == EventNPCDefeated {
				defeated = true
			}
		}
	}
	if !defeated {
		t.Fatal("Three licks should defeat the npc")
	}
	if g.npcs[0].Alive {
		t.Error("The npc should be down")
	}
	if g.player.Wallet[CurrencyChips] != chips0+g.cfg.NPC.DefeatReward {
		t.Errorf("The defeat should pay %d chips, wallet %d", g.cfg.NPC.DefeatReward, g.player.Wallet[CurrencyChips])
	}
	if g.State().NPCsDefeated != 1 {
		t.Errorf("One defeat should be counted, got %d", g.State().NPCsDefeated)
	}

	// A downed npc is out of the fight for good.
	for i := 0; i < 100; i++ {
		g.Step(Intent{Tongue: true}, testDT)
	}
	if g.player.Wallet[CurrencyChips] != chips0+g.cfg.NPC.DefeatReward {
		t.Error("A downed npc should not pay again")
	}
	if g.State().NPCsDefeated != 1 {
		t.Error("A downed npc should not count again")
	}
}

func TestRockNPCImmune(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = []NPC{
		{X: 5030, Y: 5000, Type: NPCRock, Alive: true, HP: 3},
	}

	g.damageNPC(&g.npcs[0], 5)
	if g.npcs[0].HP != 3 || !g.npcs[0].Alive {
		t.Error("Rocks should shrug off damage")
	}
	if g.npcsDefeated != 0 {
		t.Errorf("Rocks should never count as defeated, got %d", g.npcsDefeated)
	}
}

func TestDamageNPCRewardOnce(t *testing.T) {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}

	g := New()
	g.Reset(cfg)
	g.npcs = []NPC{
		{X: 5200, Y: 5200, Type: NPCBurrb, Alive: true, HP: 1, DirTimer: 100},
	}
	chips0 := g.player.Wallet[CurrencyChips]

	g.damageNPC(&g.npcs[0], 1)
	if g.npcs[0].Alive {
		t.Fatal("One damage should finish a one hp npc")
	}
	if g.player.Wallet[CurrencyChips] != chips0+g.cfg.NPC.DefeatReward {
		t.Errorf("The defeat should pay, wallet %d", g.player.Wallet[CurrencyChips])
	}
	if g.npcsDefeated != 1 {
		t.Errorf("Defeat count should be 1, got %d", g.npcsDefeated)
	}

	g.damageNPC(&g.npcs[0], 1)
	if g.player.Wallet[CurrencyChips] != chips0+g.cfg.NPC.DefeatReward {
		t.Error("A dead npc should not pay twice")
	}
	if g.npcsDefeated != 1 {
		t.Error("A dead npc should not count twice")
	}
}
