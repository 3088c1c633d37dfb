package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/limchuenyin/car-simulation/sim/engine"
	"github.com/limchuenyin/car-simulation/sim/scenario"
)

var (
	// ErrSimulationAlreadyRun is returned when a session that already
	// ran is asked to run again or accept more cars.
	ErrSimulationAlreadyRun = errors.New("simulation already run")

	// ErrSimulationNotRun is returned when results are requested for a
	// session that has not run yet.
	ErrSimulationNotRun = errors.New("simulation has not run yet")
)

// simulationServiceImpl implements the SimulationService interface
type simulationServiceImpl struct {
	sessions  SessionManager
	scenarios ScenarioManager
	mu        sync.RWMutex
}

// NewSimulationService creates a new simulation service instance
func NewSimulationService(sessions SessionManager, scenarios ScenarioManager) SimulationService {
	return &simulationServiceImpl{
		sessions:  sessions,
		scenarios: scenarios,
	}
}

// CreateSession creates a new session from the named scenario. An empty
// name selects the default scenario.
func (s *simulationServiceImpl) CreateSession(ctx context.Context, scenarioName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sc *scenario.Scenario
	if scenarioName == "" {
		sc = s.scenarios.GetDefault()
		if sc == nil {
			return nil, errors.New("no default scenario available")
		}
	} else {
		loaded, err := s.scenarios.LoadScenario(scenarioName)
		if err != nil {
			if errors.Is(err, scenario.ErrScenarioNotFound) {
				return nil, fmt.Errorf("%w: '%s'. Available scenarios: %v", scenario.ErrScenarioNotFound, scenarioName, s.availableScenarioIDs())
			}
			return nil, fmt.Errorf("failed to load scenario '%s': %w", scenarioName, err)
		}
		sc = loaded
	}

	sim, err := sc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scenario '%s': %w", sc.Name, err)
	}

	name := scenarioName
	if name == "" {
		name = sc.Name
	}
	session, err := s.sessions.Create("", sim, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sessionInfo(session), nil
}

// CreateCustomSession creates a session with an empty field of the
// given dimensions. Cars are added afterwards via AddCar.
func (s *simulationServiceImpl) CreateCustomSession(ctx context.Context, width, height int) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("field dimensions must be positive, got %dx%d", width, height)
	}

	sim := engine.NewSimulation(engine.NewField(width, height))
	session, err := s.sessions.Create("", sim, "custom")
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sessionInfo(session), nil
}

// GetSession returns the current state of a session
func (s *simulationServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(session), nil
}

// ListSessions returns all active sessions, oldest first
func (s *simulationServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
		}
		return sessions[i].ID < sessions[j].ID
	})

	infos := make([]*SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, sessionInfo(session))
	}
	return infos, nil
}

// DeleteSession removes a session
func (s *simulationServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// AddCar validates the car spec and registers the car in the session.
// Cars can only be added before the simulation runs.
func (s *simulationServiceImpl) AddCar(ctx context.Context, sessionID string, spec scenario.CarSpec) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Ran {
		return nil, fmt.Errorf("cannot add car to session '%s': %w", session.ID, ErrSimulationAlreadyRun)
	}
	if len(session.Sim.Cars) >= scenario.MaxCars {
		return nil, fmt.Errorf("session '%s' is full: at most %d cars", session.ID, scenario.MaxCars)
	}
	if err := scenario.ValidateCar(session.Sim.Field, spec); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(spec.Name)
	if session.Sim.Car(name) != nil {
		return nil, fmt.Errorf("car '%s' already exists in session '%s'", name, session.ID)
	}

	facing, err := engine.ParseDirection(spec.Direction)
	if err != nil {
		return nil, err
	}
	session.Sim.AddCar(engine.NewCar(name, spec.X, spec.Y, facing, spec.Commands))

	if err := s.sessions.UpdateLastAccessed(session.ID); err != nil {
		return nil, err
	}
	return sessionInfo(session), nil
}

// Run executes the session's simulation. Each session runs exactly
// once; a second call fails with ErrSimulationAlreadyRun.
func (s *simulationServiceImpl) Run(ctx context.Context, sessionID string) (*RunResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Ran {
		return nil, fmt.Errorf("session '%s': %w", session.ID, ErrSimulationAlreadyRun)
	}

	session.Sim.Run()
	session.Ran = true

	if err := s.sessions.UpdateLastAccessed(session.ID); err != nil {
		return nil, err
	}
	return runResult(session), nil
}

// GetResult returns the outcome of a completed run
func (s *simulationServiceImpl) GetResult(ctx context.Context, sessionID string) (*RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Ran {
		return nil, fmt.Errorf("session '%s': %w", session.ID, ErrSimulationNotRun)
	}
	return runResult(session), nil
}

// GetTrace returns a page of the per-command step records of a run.
// Before the run the trace is empty.
func (s *simulationServiceImpl) GetTrace(ctx context.Context, sessionID string, opts TraceOptions) (*TraceResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	history := session.Sim.History

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	order := strings.ToLower(opts.Order)
	if order != "asc" {
		order = "desc"
	}

	total := len(history)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}

	records := make([]engine.StepRecord, 0, end-start)
	if order == "asc" {
		for i := start; i < end; i++ {
			records = append(records, history[i])
		}
	} else {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			records = append(records, history[i])
		}
	}

	return &TraceResponse{
		Records:      records,
		TotalRecords: total,
		Page:         page,
		PageSize:     limit,
		TotalPages:   totalPages,
		HasNext:      page < totalPages,
		HasPrevious:  page > 1,
	}, nil
}

// ListScenarios returns summaries of all loadable scenarios
func (s *simulationServiceImpl) ListScenarios(ctx context.Context) ([]*scenario.Info, error) {
	return s.scenarios.ListScenarios()
}

// GetScenario returns a scenario by name
func (s *simulationServiceImpl) GetScenario(ctx context.Context, name string) (*scenario.Scenario, error) {
	return s.scenarios.LoadScenario(name)
}

// SaveScenario validates and persists a scenario under the given name
func (s *simulationServiceImpl) SaveScenario(ctx context.Context, name string, sc *scenario.Scenario) error {
	if name == "" {
		return errors.New("scenario name is required")
	}
	if sc == nil {
		return errors.New("scenario is required")
	}
	return s.scenarios.SaveScenario(name, sc)
}

func (s *simulationServiceImpl) availableScenarioIDs() []string {
	infos, err := s.scenarios.ListScenarios()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.ScenarioID)
	}
	sort.Strings(ids)
	return ids
}

// sessionInfo builds the external view of a session
func sessionInfo(session *Session) *SessionInfo {
	return &SessionInfo{
		ID:             session.ID,
		ScenarioName:   session.ScenarioName,
		Field:          session.Sim.Field,
		Ran:            session.Ran,
		Cars:           carStates(session.Sim),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
	}
}

// runResult builds the report for a finished simulation
func runResult(session *Session) *RunResult {
	collisions := collisionEvents(session.Sim)
	collided := session.Sim.CollidedCount()
	message := fmt.Sprintf("simulation finished after %d steps: %d of %d cars collided",
		session.Sim.Steps, collided, len(session.Sim.Cars))

	return &RunResult{
		SessionID:  session.ID,
		Steps:      session.Sim.Steps,
		Cars:       carStates(session.Sim),
		Collisions: collisions,
		Message:    message,
	}
}

func carStates(sim *engine.Simulation) []CarState {
	states := make([]CarState, 0, len(sim.Cars))
	for _, car := range sim.Cars {
		states = append(states, carState(car))
	}
	return states
}

func carState(car *engine.Car) CarState {
	state := CarState{
		Name:            car.Name,
		Position:        car.Pos,
		Facing:          car.Facing,
		Commands:        car.Commands,
		Pointer:         car.Pointer,
		Collided:        car.Collided,
		InitialPosition: car.InitialPos,
		InitialFacing:   car.InitialFacing,
	}
	if car.Collided {
		state.CollisionStep = car.CollisionStep
		pos := car.CollisionPos
		state.CollisionPosition = &pos
		state.CollisionPartners = car.PartnerNames()
	}
	return state
}

// collisionEvents groups collided cars by step and cell, ordered by
// step then position for stable reporting.
func collisionEvents(sim *engine.Simulation) []CollisionInfo {
	type site struct {
		step int
		pos  engine.Position
	}
	groups := make(map[site][]string)
	for _, car := range sim.Cars {
		if car.Collided {
			k := site{car.CollisionStep, car.CollisionPos}
			groups[k] = append(groups[k], car.Name)
		}
	}

	events := make([]CollisionInfo, 0, len(groups))
	for k, names := range groups {
		sort.Strings(names)
		events = append(events, CollisionInfo{Step: k.step, Position: k.pos, Cars: names})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Step != events[j].Step {
			return events[i].Step < events[j].Step
		}
		if events[i].Position.X != events[j].Position.X {
			return events[i].Position.X < events[j].Position.X
		}
		return events[i].Position.Y < events[j].Position.Y
	})
	return events
}
