package service

import (
	"context"
	"time"

	"github.com/limchuenyin/car-simulation/sim/engine"
	"github.com/limchuenyin/car-simulation/sim/scenario"
)

// SimulationService defines all simulation-related operations
type SimulationService interface {
	// Session Management
	CreateSession(ctx context.Context, scenarioName string) (*SessionInfo, error)
	CreateCustomSession(ctx context.Context, width, height int) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Simulation Setup and Execution
	AddCar(ctx context.Context, sessionID string, spec scenario.CarSpec) (*SessionInfo, error)
	Run(ctx context.Context, sessionID string) (*RunResult, error)

	// Results
	GetResult(ctx context.Context, sessionID string) (*RunResult, error)
	GetTrace(ctx context.Context, sessionID string, opts TraceOptions) (*TraceResponse, error)

	// Scenario Management
	ListScenarios(ctx context.Context) ([]*scenario.Info, error)
	GetScenario(ctx context.Context, name string) (*scenario.Scenario, error)
	SaveScenario(ctx context.Context, name string, sc *scenario.Scenario) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, sim *engine.Simulation, scenarioName string) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ScenarioManager defines scenario access operations
type ScenarioManager interface {
	LoadScenario(name string) (*scenario.Scenario, error)
	ListScenarios() ([]*scenario.Info, error)
	GetDefault() *scenario.Scenario
	SaveScenario(name string, sc *scenario.Scenario) error
}

// Session represents an active simulation session
type Session struct {
	ID             string
	Sim            *engine.Simulation
	ScenarioName   string
	Ran            bool
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
