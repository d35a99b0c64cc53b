package sim

// EventKind tags a notable thing that happened during a step.
type EventKind int

const (
	EventNPCDefeated EventKind = iota
	EventPlayerHurt
	EventPlayerDied
	EventPlayerRespawned
	EventCollected
	EventAbilityCast
	EventAbilityRejected
	EventAbilityUnlocked
	EventSodaCansDeployed
	EventEnteredBuilding
	EventExitedBuilding
	EventChipsStolen
	EventClosetChips
	EventBedMonster
	EventJumpscare
)

func (k EventKind) String() string {
	switch k {
	case EventNPCDefeated:
		return "npc defeated"
	case EventPlayerHurt:
		return "player hurt"
	case EventPlayerDied:
		return "player died"
	case EventPlayerRespawned:
		return "player respawned"
	case EventCollected:
		return "collected"
	case EventAbilityCast:
		return "ability cast"
	case EventAbilityRejected:
		return "ability rejected"
	case EventAbilityUnlocked:
		return "ability unlocked"
	case EventSodaCansDeployed:
		return "soda cans deployed"
	case EventEnteredBuilding:
		return "entered building"
	case EventExitedBuilding:
		return "exited building"
	case EventChipsStolen:
		return "chips stolen"
	case EventClosetChips:
		return "closet chips"
	case EventBedMonster:
		return "bed monster"
	case EventJumpscare:
		return "jumpscare"
	default:
		return "unknown"
	}
}

// Event is one entry in a step's outcome list. Hosts use events for status
// lines and record keeping; the simulation never reads them back.
type Event struct {
	Kind     EventKind
	Ability  AbilityID
	Result   ActivationResult
	Currency Currency
	X, Y     float64
}

func (g *Game) pushEvent(e Event) {
	g.events = append(g.events, e)
}
