package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Direction represents one of the four cardinal facings
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Command characters understood by the interpreter
const (
	CmdLeft    byte = 'L'
	CmdRight   byte = 'R'
	CmdForward byte = 'F'
)

// Fixed 4-entry rotation and movement tables, indexed by Direction.
var (
	leftTurn  = [4]Direction{North: West, West: South, South: East, East: North}
	rightTurn = [4]Direction{North: East, East: South, South: West, West: North}
	moveDelta = [4]Position{North: {X: 0, Y: 1}, East: {X: 1, Y: 0}, South: {X: 0, Y: -1}, West: {X: -1, Y: 0}}

	directionNames = [4]string{North: "N", East: "E", South: "S", West: "W"}
)

// String returns the single-letter form of the direction (N, E, S or W).
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "?"
}

// TurnLeft returns the facing after a 90° counter-clockwise rotation.
func (d Direction) TurnLeft() Direction {
	return leftTurn[d]
}

// TurnRight returns the facing after a 90° clockwise rotation.
func (d Direction) TurnRight() Direction {
	return rightTurn[d]
}

// Delta returns the unit position change of one forward move while facing d.
func (d Direction) Delta() Position {
	return moveDelta[d]
}

// ParseDirection converts a single-letter direction string (case
// insensitive) into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "N":
		return North, nil
	case "E":
		return East, nil
	case "S":
		return South, nil
	case "W":
		return West, nil
	}
	return North, fmt.Errorf("invalid direction %q (want N, S, E or W)", s)
}

// MarshalJSON encodes the direction as its single-letter string form.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a single-letter direction string.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Position represents x,y coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String renders the position as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// StepRecord represents a single executed command in the run trace
type StepRecord struct {
	Step     int       `json:"step"`
	Car      string    `json:"car"`
	Command  string    `json:"command"`
	From     Position  `json:"from"`
	To       Position  `json:"to"`
	Facing   Direction `json:"facing"`
	Blocked  bool      `json:"blocked,omitempty"`
	Collided bool      `json:"collided,omitempty"`
}
