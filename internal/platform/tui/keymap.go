package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/magoocas/life-of-a-burrb/internal/core"
	"github.com/magoocas/life-of-a-burrb/internal/sim"
)

// holdSeconds is how long a movement key press keeps its direction alive
// without a repeat. Terminals send no key-release events, so held keys are
// inferred from the auto-repeat stream; the window must outlast the initial
// repeat delay (about half a second on common terminals) or held movement
// stutters once before the repeats arrive.
const holdSeconds = 0.6

// KeyMapper translates Bubble Tea key messages into per-tick simulation
// intents. Movement and sprint are latched across ticks so that terminal
// auto-repeat reads as a continuous hold; attacks, interactions and ability
// casts are one-shot and consumed by the next Intent call.
type KeyMapper struct {
	holdTicks int

	holdN, holdS, holdW, holdE int
	sprintHold                 int

	tongue   bool
	interact bool
	unstuck  bool
	sodaCans bool
	casts    []sim.AbilityID

	castKeys map[string]sim.AbilityID
}

// NewKeyMapper creates a key mapper for the given tick rate. The tick rate
// sizes the hold latch so the release window is constant in wall time.
func NewKeyMapper(tickRate int) *KeyMapper {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticks := int(holdSeconds * float64(tickRate))
	if ticks < 1 {
		ticks = 1
	}
	km := &KeyMapper{
		holdTicks: ticks,
		castKeys:  make(map[string]sim.AbilityID),
	}
	// Cast bindings come from the ability catalog. Dash and Super Speed ride
	// the sprint modifier and Mega Tongue is passive, so their catalog keys
	// are labels rather than bindings and are skipped here.
	for i := 0; i < sim.AbilityCount; i++ {
		def := sim.Def(sim.AbilityID(i))
		switch def.Key {
		case "sprint", "auto", "":
			continue
		}
		km.castKeys[def.Key] = def.ID
	}
	return km
}

// HandleKey updates latches and one-shot flags from a key message. It
// returns the session-level action the key maps to (may be ActionNone) and
// whether it is a quit request. Movement keys return ActionNone because
// their effect is carried by the latches.
func (km *KeyMapper) HandleKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "esc":
		return core.ActionQuit, true
	case "tab":
		return core.ActionShop, false
	}

	// Sprint variants first: uppercase movement and shifted arrows move and
	// refresh the sprint latch in one press.
	switch key {
	case "W", "shift+up":
		km.press(&km.holdN, &km.holdS)
		km.sprintHold = km.holdTicks
		return core.ActionNone, false
	case "S", "shift+down":
		km.press(&km.holdS, &km.holdN)
		km.sprintHold = km.holdTicks
		return core.ActionNone, false
	case "A", "shift+left":
		km.press(&km.holdW, &km.holdE)
		km.sprintHold = km.holdTicks
		return core.ActionNone, false
	case "D", "shift+right":
		km.press(&km.holdE, &km.holdW)
		km.sprintHold = km.holdTicks
		return core.ActionNone, false
	}

	switch key {
	case "w", "up":
		km.press(&km.holdN, &km.holdS)
		return core.ActionNone, false
	case "s", "down":
		km.press(&km.holdS, &km.holdN)
		return core.ActionNone, false
	case "a", "left":
		km.press(&km.holdW, &km.holdE)
		return core.ActionNone, false
	case "d", "right":
		km.press(&km.holdE, &km.holdW)
		return core.ActionNone, false
	case "o":
		km.tongue = true
		return core.ActionTongue, false
	case "e":
		km.interact = true
		return core.ActionInteract, false
	case "u":
		km.unstuck = true
		return core.ActionUnstuck, false
	case "1":
		km.sodaCans = true
		return core.ActionNone, false
	}

	if id, ok := km.castKeys[key]; ok {
		km.casts = append(km.casts, id)
	}
	return core.ActionNone, false
}

// press refreshes one direction latch and releases its opposite, so
// reversing direction takes effect on the next tick instead of waiting out
// the old latch.
func (km *KeyMapper) press(dir, opposite *int) {
	*dir = km.holdTicks
	*opposite = 0
}

// Intent assembles the simulation intent for one tick, consumes the
// one-shot flags and queued casts, and decays the hold latches. Call it
// exactly once per tick.
func (km *KeyMapper) Intent() sim.Intent {
	var in sim.Intent
	if km.holdN > 0 {
		in.Move.Y -= 1
	}
	if km.holdS > 0 {
		in.Move.Y += 1
	}
	if km.holdW > 0 {
		in.Move.X -= 1
	}
	if km.holdE > 0 {
		in.Move.X += 1
	}
	in.Sprint = km.sprintHold > 0

	in.Tongue = km.tongue
	in.Interact = km.interact
	in.Unstuck = km.unstuck
	in.SodaCans = km.sodaCans
	km.tongue = false
	km.interact = false
	km.unstuck = false
	km.sodaCans = false

	if len(km.casts) > 0 {
		in.Casts = km.casts
		km.casts = nil
	}

	km.decay(&km.holdN)
	km.decay(&km.holdS)
	km.decay(&km.holdW)
	km.decay(&km.holdE)
	km.decay(&km.sprintHold)
	return in
}

func (km *KeyMapper) decay(latch *int) {
	if *latch > 0 {
		*latch--
	}
}

// Release drops all latches and pending one-shots, for overlay transitions
// so a key held while opening the shop does not keep moving the player
// after it closes.
func (km *KeyMapper) Release() {
	km.holdN, km.holdS, km.holdW, km.holdE = 0, 0, 0, 0
	km.sprintHold = 0
	km.tongue = false
	km.interact = false
	km.unstuck = false
	km.sodaCans = false
	km.casts = nil
}
