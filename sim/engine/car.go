package engine

import (
	"sort"
	"strings"
)

// Car represents a single vehicle: its current pose, its command string
// and where it is in it, and its collision record once it has collided.
// The initial pose is retained for reporting; the command string never
// changes after construction.
type Car struct {
	Name     string    `json:"name"`
	Pos      Position  `json:"position"`
	Facing   Direction `json:"facing"`
	Commands string    `json:"commands"`
	Pointer  int       `json:"pointer"`

	Collided          bool            `json:"collided"`
	CollisionStep     int             `json:"collision_step,omitempty"`
	CollisionPos      Position        `json:"collision_position"`
	CollisionPartners map[string]bool `json:"collision_partners,omitempty"`

	InitialPos    Position  `json:"initial_position"`
	InitialFacing Direction `json:"initial_facing"`
}

// NewCar returns a car at (x, y) facing the given direction. The command
// string is normalized to upper case; callers validate the alphabet,
// bounds and name uniqueness before construction.
func NewCar(name string, x, y int, facing Direction, commands string) *Car {
	pos := Position{X: x, Y: y}
	return &Car{
		Name:          name,
		Pos:           pos,
		Facing:        facing,
		Commands:      strings.ToUpper(commands),
		InitialPos:    pos,
		InitialFacing: facing,
	}
}

// Active reports whether the car will still execute commands: it has not
// collided and its pointer has not reached the end of the command string.
func (c *Car) Active() bool {
	return !c.Collided && c.Pointer < len(c.Commands)
}

// Exhausted reports whether the car ran out of commands without colliding.
func (c *Car) Exhausted() bool {
	return !c.Collided && c.Pointer >= len(c.Commands)
}

// ProcessNextCommand executes the single command at the pointer. It is a
// no-op when the car has collided or exhausted its commands; otherwise the
// command is consumed whether or not it has an effect. L and R rotate the
// facing. F moves one cell in the current facing unless the target cell is
// off the field, in which case the position change is silently discarded.
// Unknown characters are consumed with no effect.
func (c *Car) ProcessNextCommand(field Field) {
	if c.Collided || c.Pointer >= len(c.Commands) {
		return
	}
	cmd := c.Commands[c.Pointer]
	c.Pointer++

	switch cmd {
	case CmdLeft:
		c.Facing = c.Facing.TurnLeft()
	case CmdRight:
		c.Facing = c.Facing.TurnRight()
	case CmdForward:
		delta := c.Facing.Delta()
		next := Position{X: c.Pos.X + delta.X, Y: c.Pos.Y + delta.Y}
		if field.Contains(next) {
			c.Pos = next
		}
	}
}

// markCollided freezes the car and records the collision step, position
// and partner in one shot.
func (c *Car) markCollided(step int, pos Position, partner string) {
	c.Collided = true
	c.CollisionStep = step
	c.CollisionPos = pos
	if c.CollisionPartners == nil {
		c.CollisionPartners = make(map[string]bool)
	}
	c.CollisionPartners[partner] = true
}

// PartnerNames returns the names of the cars this car collided with,
// sorted for stable reporting.
func (c *Car) PartnerNames() []string {
	if len(c.CollisionPartners) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.CollisionPartners))
	for name := range c.CollisionPartners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
