/*
Package game
File: models.go
Description:
    Defines the data structures of the host simulation: the YAML configuration schema
    (Universe and its sections) and the runtime entities that live in the World arena
    (star systems, planets, ships and the hero).

    Runtime entities are addressed by stable integer IDs (their index in the arena),
    so other packages can key side tables by ID instead of by pointer.
*/

package game

// GameBalance stores global tuning variables loaded from 'universe.yaml'.
type GameBalance struct {
	StartingCredits  float64 `yaml:"starting_credits" json:"starting_credits"`     // Credits given to a new hero
	AtmosphereHeight float64 `yaml:"atmosphere_height" json:"atmosphere_height"`   // Height of a planet atmosphere above ground
	NearGroundMargin float64 `yaml:"near_ground_margin" json:"near_ground_margin"` // Max height above ground counted as "near ground"
	SunRadius        float64 `yaml:"sun_radius" json:"sun_radius"`                 // Radius of a sun's area of influence
	SunHotRadius     float64 `yaml:"sun_hot_radius" json:"sun_hot_radius"`         // Radius of a sun's damaging core
	ShipRadius       float64 `yaml:"ship_radius" json:"ship_radius"`               // Approximate collision radius of a ship
}

// HeroConfig is the starting state of the player's ship.
type HeroConfig struct {
	Hull        string    `yaml:"hull"`
	Type        HullType  `yaml:"type"`
	Coordinates []float64 `yaml:"coordinates"`
}

// ResearchConfig lists the research-capable hulls and the research economy tuning.
type ResearchConfig struct {
	Ships        []string `yaml:"ships" json:"ships"`                 // Hull names allowed to collect research
	ExchangeRate float64  `yaml:"exchange_rate" json:"exchange_rate"` // Credits per research point sold
	MarkerItem   string   `yaml:"marker_item" json:"marker_item"`     // Inventory item marking a started research session
}

// WormholeConfig tunes the wormhole network generator and activation window.
type WormholeConfig struct {
	Min                  int     `yaml:"min" json:"min"`                                       // Lower bound of the wormhole count draw
	Max                  int     `yaml:"max" json:"max"`                                       // Upper bound (exclusive) of the wormhole count draw
	VisibleDistance      float64 `yaml:"visible_distance" json:"visible_distance"`             // Activation radius around the hero
	Stability            float64 `yaml:"stability" json:"stability"`                           // Initial stability of a distortion
	MaxPlacementAttempts int     `yaml:"max_placement_attempts" json:"max_placement_attempts"` // Retries per wormhole before giving up
	DebugPair            bool    `yaml:"debug_pair" json:"debug_pair"`                         // Spawn a linked pair next to the spawn point
	Texture              string  `yaml:"texture" json:"texture"`                               // Asset id reported to clients
}

// StarSystemConfig is a star system entry in 'universe.yaml'.
type StarSystemConfig struct {
	Key         string    `yaml:"key"`
	Name        string    `yaml:"name"`
	Coordinates []float64 `yaml:"coordinates"`
	Radius      float64   `yaml:"radius"`
	Hard        bool      `yaml:"hard"`
}

// PlanetConfig is a planet entry in 'universe.yaml'. System refers to a StarSystemConfig key.
type PlanetConfig struct {
	Key          string    `yaml:"key"`
	Name         string    `yaml:"name"`
	System       string    `yaml:"system"`
	Coordinates  []float64 `yaml:"coordinates"`
	GroundHeight float64   `yaml:"ground_height"`
}

// ShipConfig is a non-hero ship placed in the world at startup.
type ShipConfig struct {
	Key         string    `yaml:"key"`
	Hull        string    `yaml:"hull"`
	Type        HullType  `yaml:"type"`
	Coordinates []float64 `yaml:"coordinates"`
}

// AbilityConfig carries the numeric/string values of a ship ability.
// Only the values are served; activating abilities is handled elsewhere.
type AbilityConfig struct {
	Key            string  `yaml:"key" json:"key"`
	Type           string  `yaml:"type" json:"type"` // "planet_tunnel", "summon_mercenaries", "warp_shield"
	RechargeTime   float64 `yaml:"recharge_time" json:"recharge_time"`
	Duration       float64 `yaml:"duration,omitempty" json:"duration,omitempty"`
	Mercenary      string  `yaml:"mercenary,omitempty" json:"mercenary,omitempty"`
	MercenaryItems string  `yaml:"mercenary_items,omitempty" json:"mercenary_items,omitempty"`
	MercenaryCount int     `yaml:"mercenary_count,omitempty" json:"mercenary_count,omitempty"`
	Shield         string  `yaml:"shield,omitempty" json:"shield,omitempty"`
	ShieldTexture  string  `yaml:"shield_texture,omitempty" json:"shield_texture,omitempty"`
}

// Universe is the root configuration struct, mapping to the entire 'universe.yaml' file.
type Universe struct {
	Seed          int64              `yaml:"seed"`
	BalanceConfig GameBalance        `yaml:"game_balance"`
	HeroConfig    HeroConfig         `yaml:"player_ship"`
	Research      ResearchConfig     `yaml:"research"`
	Wormholes     WormholeConfig     `yaml:"wormholes"`
	Systems       []StarSystemConfig `yaml:"systems"`
	Planets       []PlanetConfig     `yaml:"planets"`
	Ships         []ShipConfig       `yaml:"ships"`
	Abilities     []AbilityConfig    `yaml:"abilities"`
}

// HullType classifies ships. Stations are immune to wormhole pull.
type HullType string

const (
	HullStandard HullType = "std"
	HullBig      HullType = "big"
	HullStation  HullType = "station"
)

// DamageType identifies the source of damage dealt to an object.
type DamageType int

const (
	DamageKinetic DamageType = iota
	DamageEnergy
	DamageExplosion
	DamageFire
	DamageCrash
)

// StarSystem is a static star system node. The sun sits at Position.
type StarSystem struct {
	ID       int     `json:"id"`
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Position Vec2    `json:"position"`
	Radius   float64 `json:"radius"`
	Hard     bool    `json:"hard"`
}

// Planet is a static body inside a star system.
type Planet struct {
	ID           int     `json:"id"`
	Key          string  `json:"key"`
	Name         string  `json:"name"`
	SystemID     int     `json:"system_id"`
	Position     Vec2    `json:"position"`
	GroundHeight float64 `json:"ground_height"`
}

// Ship is a moving vessel. Velocity is integrated into Position every world tick.
type Ship struct {
	ID       int      `json:"id"`
	Key      string   `json:"key"`
	Hull     string   `json:"hull"`
	Type     HullType `json:"type"`
	Position Vec2     `json:"position"`
	Velocity Vec2     `json:"velocity"`
	Angle    float64  `json:"angle"`
}

// Hero is the player: the ship they fly plus their wallet and inventory.
type Hero struct {
	ShipID       int            `json:"ship_id"`
	Credits      float64        `json:"credits"`
	Items        map[string]int `json:"items"`
	Dead         bool           `json:"dead"`
	Transcendent bool           `json:"transcendent"`
}

// Object is a live simulation entity updated once per world tick.
type Object interface {
	Update(w *World, timeStep float64)
	Position() Vec2
}
