package protocol

type Welcome struct {
	SessionID string `json:"sessionId"`
	Role      string `json:"role"` // pilot or spectator
	TickHz    int    `json:"tickHz"`
}

const (
	RolePilot     = "pilot"
	RoleSpectator = "spectator"
)

// State is the presentation snapshot. The simulation never reads it back.
type State struct {
	Tick         int                   `json:"tick"`
	TimeMs       int64                 `json:"timeMs"`
	Player       PlayerSnapshot        `json:"player"`
	Entities     []EntitySnapshot      `json:"entities"`
	Collectibles []CollectibleSnapshot `json:"collectibles"`
	Obstacles    []BoxSnapshot         `json:"obstacles,omitempty"`
	HealPads     []PointSnapshot       `json:"healPads,omitempty"`
	Zone         ZoneSnapshot          `json:"zone"`
	Camera       PointSnapshot         `json:"camera"`
	HalfWorld    float64               `json:"halfWorld"` // camera is relative to the world's top-left corner
	Alive        int                   `json:"alive"`
	Outcome      string                `json:"outcome"`
	Events       []EventSnapshot       `json:"events,omitempty"`
}

type PlayerSnapshot struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Health    float64 `json:"health"`
	Stamina   float64 `json:"stamina"`
	Flying    bool    `json:"flying,omitempty"`
	Alive     bool    `json:"alive"`
	Collected int     `json:"collected"`
}

type EntitySnapshot struct {
	ID        string  `json:"id"`
	Name      string  `json:"name,omitempty"`
	Kind      string  `json:"kind"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	Reach     float64 `json:"reach,omitempty"`
}

type CollectibleSnapshot struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type BoxSnapshot struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
}

type PointSnapshot struct {
	ID string  `json:"id,omitempty"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type ZoneSnapshot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Status string  `json:"status"`
}

type EventSnapshot struct {
	Kind   string  `json:"kind"`
	ID     string  `json:"id,omitempty"`
	Amount float64 `json:"amount,omitempty"`
}

type Over struct {
	Outcome   string `json:"outcome"`
	Tick      int    `json:"tick"`
	Collected int    `json:"collected"`
}

type Error struct {
	Message string `json:"message"`
}
