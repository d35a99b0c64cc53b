package sim

import "github.com/magoocas/life-of-a-burrb/internal/core"

// World dimensions and city layout, in pixels.
const (
	WorldW = 10000.0
	WorldH = 10000.0

	BlockSize     = 200.0 // city block side
	RoadWidth     = 70.0
	SidewalkWidth = 24.0

	CityLeft   = 3000.0
	CityTop    = 3000.0
	CityRight  = 7000.0
	CityBottom = 7000.0

	SpawnX    = 5000.0 // world spawn, center of the safe square
	SpawnY    = 5000.0
	SpawnSize = 200.0
)

// SpawnSquare returns the safe zone around the world spawn. Aggressive NPCs
// never chase a player standing inside it, and world generation keeps it
// clear of objects.
func SpawnSquare() core.RectF {
	return core.NewRectF(SpawnX-SpawnSize/2, SpawnY-SpawnSize/2, SpawnSize, SpawnSize)
}

// Biome identifies the region a world position belongs to. The city occupies
// the center rectangle; the rest of the world splits into quadrants around
// the world center.
type Biome int

const (
	BiomeCity   Biome = iota
	BiomeForest       // north-west
	BiomeSnow         // north-east
	BiomeSwamp        // south-west
	BiomeDesert       // south-east
)

func (b Biome) String() string {
	switch b {
	case BiomeCity:
		return "city"
	case BiomeForest:
		return "forest"
	case BiomeSnow:
		return "snow"
	case BiomeSwamp:
		return "swamp"
	case BiomeDesert:
		return "desert"
	default:
		return "unknown"
	}
}

// BiomeAt returns the biome for a world position.
func BiomeAt(x, y float64) Biome {
	if x >= CityLeft && x <= CityRight && y >= CityTop && y <= CityBottom {
		return BiomeCity
	}
	if x < WorldW/2 {
		if y < WorldH/2 {
			return BiomeForest
		}
		return BiomeSwamp
	}
	if y < WorldH/2 {
		return BiomeSnow
	}
	return BiomeDesert
}

// Currency is one of the five spendable resources. Chips come from the city
// (buildings, defeated burrbs); the other four drop as biome collectibles.
type Currency int

const (
	CurrencyChips Currency = iota
	CurrencyBerries
	CurrencyGems
	CurrencySnowflakes
	CurrencyMushrooms

	currencyCount
)

// CurrencyCount is the number of currencies a wallet tracks.
const CurrencyCount = int(currencyCount)

func (c Currency) String() string {
	switch c {
	case CurrencyChips:
		return "chips"
	case CurrencyBerries:
		return "berries"
	case CurrencyGems:
		return "gems"
	case CurrencySnowflakes:
		return "snowflakes"
	case CurrencyMushrooms:
		return "mushrooms"
	default:
		return "unknown"
	}
}

// ObjectKind classifies decorative world objects. Trees (all kinds) and
// cacti double as shadow-step anchors.
type ObjectKind int

const (
	ObjectTree ObjectKind = iota // city, park and forest trees
	ObjectMushroomPatch
	ObjectFlower
	ObjectSnowTree
	ObjectSnowman
	ObjectIcePatch
	ObjectDeadTree
	ObjectLilyPad
	ObjectPuddle
	ObjectCactus
	ObjectRock
	ObjectTumbleweed
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectTree:
		return "tree"
	case ObjectMushroomPatch:
		return "mushroom"
	case ObjectFlower:
		return "flower"
	case ObjectSnowTree:
		return "snow_tree"
	case ObjectSnowman:
		return "snowman"
	case ObjectIcePatch:
		return "ice_patch"
	case ObjectDeadTree:
		return "dead_tree"
	case ObjectLilyPad:
		return "lily_pad"
	case ObjectPuddle:
		return "puddle"
	case ObjectCactus:
		return "cactus"
	case ObjectRock:
		return "rock"
	case ObjectTumbleweed:
		return "tumbleweed"
	default:
		return "unknown"
	}
}

// ShadowAnchor reports whether shadow step can land next to this object.
func (k ObjectKind) ShadowAnchor() bool {
	switch k {
	case ObjectTree, ObjectSnowTree, ObjectDeadTree, ObjectCactus:
		return true
	default:
		return false
	}
}

// WorldObject is a decorative object placed by world generation.
type WorldObject struct {
	Kind ObjectKind
	X, Y float64
	Size float64
}

// Collectible is a biome pickup worth one unit of its currency. The slice
// generated with the world is a template; the session copies it because the
// magnet ability drags uncollected pickups across the map.
type Collectible struct {
	X, Y      float64
	Currency  Currency
	Collected bool
}

// WorldData holds everything produced by world generation. Except for the
// collectible template (copied per session) it is immutable after
// generation and safe to share between a running game and its renderer.
type WorldData struct {
	Seed      int64
	Buildings []*Building
	Parks     []core.RectF
	Objects   []WorldObject

	// Session templates, copied by Game at reset.
	Collectibles []Collectible
	NPCs         []NPC
	Cars         []Car
}
