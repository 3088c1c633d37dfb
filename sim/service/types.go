package service

import (
	"time"

	"github.com/limchuenyin/car-simulation/sim/engine"
)

// SessionInfo provides information about a simulation session
type SessionInfo struct {
	ID             string       `json:"id"`
	ScenarioName   string       `json:"scenario_name"`
	Field          engine.Field `json:"field"`
	Ran            bool         `json:"ran"`
	Cars           []CarState   `json:"cars"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
}

// CarState is the external view of one car in a session
type CarState struct {
	Name     string           `json:"name"`
	Position engine.Position  `json:"position"`
	Facing   engine.Direction `json:"facing"`
	Commands string           `json:"commands"`
	Pointer  int              `json:"pointer"`

	Collided          bool             `json:"collided"`
	CollisionStep     int              `json:"collision_step,omitempty"`
	CollisionPosition *engine.Position `json:"collision_position,omitempty"`
	CollisionPartners []string         `json:"collision_partners,omitempty"`

	InitialPosition engine.Position  `json:"initial_position"`
	InitialFacing   engine.Direction `json:"initial_facing"`
}

// CollisionInfo summarizes one collision: the step it happened on, the
// cell both cars ended up in and the names of the cars involved.
type CollisionInfo struct {
	Step     int             `json:"step"`
	Position engine.Position `json:"position"`
	Cars     []string        `json:"cars"`
}

// RunResult contains the outcome of a completed simulation run
type RunResult struct {
	SessionID  string          `json:"session_id"`
	Steps      int             `json:"steps"`
	Cars       []CarState      `json:"cars"`
	Collisions []CollisionInfo `json:"collisions"`
	Message    string          `json:"message"`
}

// TraceOptions configures paginated trace retrieval
type TraceOptions struct {
	Page  int    `json:"page"`  // Page number (1-based, default: 1)
	Limit int    `json:"limit"` // Records per page (default: 20, max: 100)
	Order string `json:"order"` // "asc" (oldest first) or "desc" (newest first, default)
}

// TraceResponse contains a page of step records from a run
type TraceResponse struct {
	Records      []engine.StepRecord `json:"records"`
	TotalRecords int                 `json:"total_records"`
	Page         int                 `json:"page"`
	PageSize     int                 `json:"page_size"`
	TotalPages   int                 `json:"total_pages"`
	HasNext      bool                `json:"has_next"`
	HasPrevious  bool                `json:"has_previous"`
}
