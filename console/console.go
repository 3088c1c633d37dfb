package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/limchuenyin/car-simulation/sim/engine"
	"github.com/limchuenyin/car-simulation/sim/scenario"
)

// Console runs the interactive dialogue over a pair of streams. Reads
// and writes are not synchronized; a Console serves one user at a time.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// New returns a console reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run drives the dialogue until the user exits or the input ends. The
// returned error is the scanner's, so a closed pipe ends the session
// cleanly.
func (c *Console) Run() error {
	for {
		fmt.Fprintln(c.out, "\nWelcome to Auto Driving Car Simulation!")

		field, ok := c.promptField()
		if !ok {
			return c.in.Err()
		}
		fmt.Fprintf(c.out, "You have created a field of %d x %d.\n", field.Width, field.Height)

		sim := engine.NewSimulation(field)
		restart, ok := c.menuLoop(sim)
		if !ok {
			return c.in.Err()
		}
		if !restart {
			return nil
		}
	}
}

// promptField asks for field dimensions until it gets two positive
// integers.
func (c *Console) promptField() (engine.Field, bool) {
	for {
		fmt.Fprintln(c.out, "Please enter the width and height of the simulation field in x y format:")
		line, ok := c.readLine()
		if !ok {
			return engine.Field{}, false
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			fmt.Fprintln(c.out, "Error: Invalid input. Please enter two integers separated by a space.")
			continue
		}
		width, errW := strconv.Atoi(parts[0])
		height, errH := strconv.Atoi(parts[1])
		if errW != nil || errH != nil {
			fmt.Fprintln(c.out, "Error: Invalid input. Please enter two integers separated by a space.")
			continue
		}
		if width <= 0 || height <= 0 {
			fmt.Fprintln(c.out, "Error: Width and height must be positive integers.")
			continue
		}
		return engine.NewField(width, height), true
	}
}

// menuLoop serves the add/run menu until a run completes or the input
// ends. It reports whether the user asked to start over.
func (c *Console) menuLoop(sim *engine.Simulation) (restart, alive bool) {
	for {
		fmt.Fprintln(c.out, "\nPlease choose from the following options:")
		fmt.Fprintln(c.out, "[1] Add a car to field")
		fmt.Fprintln(c.out, "[2] Run simulation")
		choice, ok := c.readLine()
		if !ok {
			return false, false
		}
		switch choice {
		case "1":
			if !c.promptCar(sim) {
				return false, false
			}
		case "2":
			c.printCars(sim)
			sim.Run()
			c.printResults(sim)
			return c.promptRestart()
		default:
			fmt.Fprintln(c.out, "Invalid option. Please try again.")
		}
	}
}

// promptCar walks one add-car dialogue: name, position, commands. On a
// validation error it prints the reason and returns to the menu without
// adding a car.
func (c *Console) promptCar(sim *engine.Simulation) bool {
	fmt.Fprintln(c.out, "Please enter the name of the car:")
	name, ok := c.readLine()
	if !ok {
		return false
	}
	if sim.Car(name) != nil {
		fmt.Fprintln(c.out, "Error: Car name must be unique. Please try again.")
		return true
	}

	fmt.Fprintf(c.out, "Please enter initial position of car %s in x y Direction format:\n", name)
	line, ok := c.readLine()
	if !ok {
		return false
	}
	x, y, facing, msg := parsePlacement(line, sim.Field)
	if msg != "" {
		fmt.Fprintf(c.out, "Error: %s\n", msg)
		return true
	}

	fmt.Fprintf(c.out, "Please enter the commands for car %s:\n", name)
	line, ok = c.readLine()
	if !ok {
		return false
	}
	commands := strings.ToUpper(line)
	if err := scenario.ValidateCommands(commands); err != nil {
		fmt.Fprintln(c.out, "Error: Commands must only contain the letters L, R, and F.")
		return true
	}

	sim.AddCar(engine.NewCar(name, x, y, facing, commands))
	c.printCars(sim)
	return true
}

// parsePlacement parses an "x y Direction" line against the field
// bounds. A non-empty message describes the first problem found.
func parsePlacement(line string, field engine.Field) (int, int, engine.Direction, string) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return 0, 0, 0, "Invalid format. Expected: x y Direction"
	}
	x, errX := strconv.Atoi(parts[0])
	y, errY := strconv.Atoi(parts[1])
	if errX != nil || errY != nil {
		return 0, 0, 0, "Invalid format. Expected: x y Direction"
	}
	facing, err := engine.ParseDirection(parts[2])
	if err != nil {
		return 0, 0, 0, "Direction must be one of N, S, E, W."
	}
	if !field.InBounds(x, y) {
		return 0, 0, 0, "Initial position is out of the field bounds."
	}
	return x, y, facing, ""
}

// printCars lists every car with its starting configuration.
func (c *Console) printCars(sim *engine.Simulation) {
	fmt.Fprintln(c.out, "\nYour current list of cars are:")
	for _, car := range sim.Cars {
		fmt.Fprintf(c.out, "- %s, (%d,%d) %s, %s\n",
			car.Name, car.InitialPos.X, car.InitialPos.Y, car.InitialFacing, car.Commands)
	}
}

// printResults reports where every car ended up.
func (c *Console) printResults(sim *engine.Simulation) {
	fmt.Fprintln(c.out, "\nAfter simulation, the result is:")
	for _, car := range sim.Cars {
		if car.Collided {
			fmt.Fprintf(c.out, "- %s, collides with %s at (%d,%d) at step %d\n",
				car.Name, strings.Join(car.PartnerNames(), ", "),
				car.CollisionPos.X, car.CollisionPos.Y, car.CollisionStep)
		} else {
			fmt.Fprintf(c.out, "- %s, (%d,%d) %s\n", car.Name, car.Pos.X, car.Pos.Y, car.Facing)
		}
	}
}

// promptRestart serves the post-run menu. It reports whether to start
// over and whether the input is still alive.
func (c *Console) promptRestart() (restart, alive bool) {
	fmt.Fprintln(c.out, "\nPlease choose from the following options:")
	fmt.Fprintln(c.out, "[1] Start over")
	fmt.Fprintln(c.out, "[2] Exit")
	choice, ok := c.readLine()
	if !ok {
		return false, false
	}
	switch choice {
	case "1":
		return true, true
	case "2":
		fmt.Fprintln(c.out, "Thank you for running the simulation. Goodbye!")
		return false, true
	default:
		fmt.Fprintln(c.out, "Invalid option. Exiting.")
		return false, true
	}
}

// readLine returns the next trimmed input line, or false when the
// stream ends.
func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
