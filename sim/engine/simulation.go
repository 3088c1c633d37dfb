package engine

// Simulation owns one field and an ordered list of cars and drives the
// round-based run loop. Registration order is semantically significant:
// it is the per-step processing order and the tie-break for which car's
// move triggers a collision.
type Simulation struct {
	Field Field  `json:"field"`
	Cars  []*Car `json:"cars"`

	// Steps is the number of completed rounds after Run returns.
	Steps int `json:"steps"`

	// History holds one record per executed command, in execution order.
	History []StepRecord `json:"history"`
}

// NewSimulation returns an empty simulation on the given field.
func NewSimulation(field Field) *Simulation {
	return &Simulation{
		Field:   field,
		Cars:    make([]*Car, 0),
		History: make([]StepRecord, 0),
	}
}

// AddCar appends a car to the simulation. Cars are processed each step in
// the order they were added.
func (s *Simulation) AddCar(car *Car) {
	s.Cars = append(s.Cars, car)
}

// Car returns the registered car with the given name, or nil.
func (s *Simulation) Car(name string) *Car {
	for _, c := range s.Cars {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ActiveCount returns how many cars are still active.
func (s *Simulation) ActiveCount() int {
	n := 0
	for _, c := range s.Cars {
		if c.Active() {
			n++
		}
	}
	return n
}

// CollidedCount returns how many cars have collided.
func (s *Simulation) CollidedCount() int {
	n := 0
	for _, c := range s.Cars {
		if c.Collided {
			n++
		}
	}
	return n
}

// Run executes the simulation to completion and is intended to be called
// exactly once, after all cars are registered.
//
// Each step, every car that is still active executes one command in
// registration order; immediately after each command the other cars are
// scanned for an exact position match and both parties of the first match
// are frozen with their collision record. A car collided earlier in the
// same step, passively or not, does not act for the rest of the run. The
// loop ends when no active cars remain, which is guaranteed because every
// active car consumes one command per step.
func (s *Simulation) Run() {
	step := 1
	for s.anyActive() {
		for _, car := range s.Cars {
			if !car.Active() {
				continue
			}
			from := car.Pos
			cmd := car.Commands[car.Pointer]
			car.ProcessNextCommand(s.Field)
			s.detectCollision(car, step)
			s.History = append(s.History, StepRecord{
				Step:     step,
				Car:      car.Name,
				Command:  string(cmd),
				From:     from,
				To:       car.Pos,
				Facing:   car.Facing,
				Blocked:  cmd == CmdForward && car.Pos == from,
				Collided: car.Collided,
			})
		}
		s.Steps = step
		step++
	}
}

// detectCollision scans the other non-collided cars in registration order
// for a car occupying the mover's cell. The first match marks both cars
// collided and stops the scan; additional coincident cars are not paired
// in the same sub-step.
func (s *Simulation) detectCollision(mover *Car, step int) {
	for _, other := range s.Cars {
		if other == mover || other.Collided {
			continue
		}
		if other.Pos == mover.Pos {
			mover.markCollided(step, mover.Pos, other.Name)
			other.markCollided(step, other.Pos, mover.Name)
			break
		}
	}
}

func (s *Simulation) anyActive() bool {
	for _, c := range s.Cars {
		if c.Active() {
			return true
		}
	}
	return false
}
