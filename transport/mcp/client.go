package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/limchuenyin/car-simulation/sim/scenario"
	"github.com/limchuenyin/car-simulation/sim/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// fieldViewLimit caps the dimensions of the ASCII field rendering; larger
// fields are summarized instead of drawn.
const fieldViewLimit = 64

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Car Field Simulator",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Car Field Simulator - MCP Interface

This is a thin client that proxies all requests to the REST API server.

SIMULATION:
Place named cars on a rectangular field, give each a command string
(F = forward, L = turn left, R = turn right), then run every car to
completion. Cars that meet on the same cell collide and stop there.

AVAILABLE TOOLS:
- create_session: Create a session from a scenario or custom dimensions
- add_car: Place a car (name, x, y, direction, commands) - requires intent explanation
- run_simulation: Execute the whole run - requires intent explanation
- simulation_result: Final positions and collisions of a finished run
- simulation_trace: Step-by-step record of every executed command
- car_status: Detailed state of a single car
- get_session: Get session details with a field view
- list_sessions: List all active sessions
- list_scenarios: List available prebuilt scenarios
- simulation_instructions: Full rules, field geometry and pitfalls

NOTE: The 'intent' parameter on add_car/run_simulation tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new simulation session from a scenario, or an empty custom field when width and height are given",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scenario_id": map[string]interface{}{
					"type":        "string",
					"description": "Name of the scenario to load (optional, see list_scenarios)",
				},
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Field width in cells for a custom empty session (optional)",
				},
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "Field height in cells for a custom empty session (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active simulation sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session, including its cars and a field view",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Simulation operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "add_car",
		Description: "Place a car on the field before the run. Cars execute commands in the order they were added.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Unique car name within the session",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Starting x coordinate (0-based, 0 is the left edge)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Starting y coordinate (0-based, 0 is the BOTTOM edge; y grows upward)",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"N", "S", "E", "W"},
					"description": "Initial facing",
				},
				"commands": map[string]interface{}{
					"type":        "string",
					"description": "Command string: F=forward, L=turn left, R=turn right (e.g. FFRFFFFRRL)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of where you expect this car to end up (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "name", "x", "y", "direction", "commands"},
		},
	}, c.handleAddCar)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_simulation",
		Description: "Run the simulation to completion. Every car executes all of its commands; a session can only run once.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the expected outcome (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRunSimulation)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "simulation_result",
		Description: "Get the final report of a finished run: final positions, facings and collisions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSimulationResult)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "simulation_trace",
		Description: "Get the step-by-step trace of an executed run with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Records per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Record order (default asc: oldest first)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSimulationTrace)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "car_status",
		Description: "Get detailed state of a single car: position, facing, command progress and collision info",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the car to inspect",
				},
			},
			Required: []string{"session_id", "name"},
		},
	}, c.handleCarStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_scenarios",
		Description: "List available prebuilt scenarios",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListScenarios)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "simulation_instructions",
		Description: "Get the complete simulation rules, field geometry and tool workflow",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSimulationInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	scenarioID, _ := args["scenario_id"].(string)
	width, _ := args["width"].(float64)
	height, _ := args["height"].(float64)

	body := map[string]interface{}{}
	if width > 0 || height > 0 {
		body["width"] = int(width)
		body["height"] = int(height)
	} else if scenarioID != "" {
		body["scenario_id"] = scenarioID
	}

	var info service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nScenario: %s\nField: %dx%d\n",
		info.ID, scenarioLabel(&info), info.Field.Width, info.Field.Height)
	if len(info.Cars) > 0 {
		result += fmt.Sprintf("\nCars (%d):\n", len(info.Cars))
		for i := range info.Cars {
			result += formatCarLine(&info.Cars[i]) + "\n"
		}
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		line := fmt.Sprintf("- %s (Scenario: %s, Cars: %d, Created: %s)",
			s.ID, scenarioLabel(&s), len(s.Cars), s.CreatedAt.Format("15:04:05"))
		if s.Ran {
			line += " [finished]"
		}
		result += line + "\n"
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var info service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&info)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleAddCar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	name, _ := args["name"].(string)
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)
	direction, _ := args["direction"].(string)
	commands, _ := args["commands"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"name":      name,
		"x":         int(x),
		"y":         int(y),
		"direction": direction,
		"commands":  commands,
	}

	var info service.SessionInfo
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/cars", sessionID), body, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Added car %s to session %s\n\n%s", name, info.ID, formatSessionInfo(&info))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRunSimulation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	var result service.RunResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/run", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatRunResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleSimulationResult(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.RunResult
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/result", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatRunResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleSimulationTrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}
	order, _ := args["order"].(string)
	if order != "asc" && order != "desc" {
		// Traces read naturally oldest-first
		order = "asc"
	}
	params += "order=" + order

	var trace service.TraceResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/trace%s", sessionID, params), nil, &trace)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatTrace(&trace)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCarStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	name, _ := args["name"].(string)

	var info service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var car *service.CarState
	for i := range info.Cars {
		if info.Cars[i].Name == name {
			car = &info.Cars[i]
			break
		}
	}
	if car == nil {
		names := make([]string, 0, len(info.Cars))
		for i := range info.Cars {
			names = append(names, info.Cars[i].Name)
		}
		return mcp.NewToolResultError(fmt.Sprintf("no car named %q in session %s. Cars: %s",
			name, info.ID, strings.Join(names, ", "))), nil
	}

	result := formatCarStatus(&info, car)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var scenarios []*scenario.Info
	err := c.apiCall("GET", "/api/scenarios", nil, &scenarios)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Scenarios:\n\n"
	for _, sc := range scenarios {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Field: %dx%d, Cars: %d\n\n",
			sc.ScenarioID, sc.Name, sc.Description, sc.Width, sc.Height, sc.CarCount)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSimulationInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🚗 Car Field Simulator - Complete Instructions

OBJECTIVE:
Set up a rectangular field, place cars with command sequences, then run the
simulation to learn where every car ends up and which cars collide.

FIELD GEOMETRY:
• The field is width x height cells
• (0,0) is the BOTTOM-LEFT corner; x grows to the right, y grows UPWARD
• The top-right cell is (width-1, height-1)
• Field views printed by these tools show the TOP row first (highest y)

CARS:
• Each car has a unique name, a position (x,y) and a facing: N, S, E or W
• Cars are placed before the run; two cars may not start on the same cell
• Each car carries a command string that is executed left to right

COMMANDS:
• F - move one cell forward in the current facing
• L - rotate 90 degrees left (counter-clockwise), no movement
• R - rotate 90 degrees right (clockwise), no movement
• A forward move that would leave the field is IGNORED: the car stays put,
  but the command still counts as executed

TURN ORDER (important for collision timing):
• The run proceeds in steps; in each step every active car executes exactly
  one command, in the order the cars were added to the session
• A car that has used up its commands stops acting; the run ends when no
  car can act any more

COLLISIONS:
• After a car moves, if it occupies the same cell as another car, BOTH cars
  stop permanently at that cell
• The report shows the step number and cell of every collision
• Collided cars execute no further commands

⚠️ COMMON PITFALLS:
- The y axis points UP: executing F while facing N increases y
- Moves off the field are silently skipped, so a car pinned against an edge
  still consumes commands while it turns in place
- Collision timing depends on the order cars were added: within each step
  the first-added car moves first
- A session runs exactly ONCE; create a new session to try a variation

TOOL WORKFLOW:
1. list_scenarios to see prebuilt setups, or plan a custom field
2. create_session with a scenario_id, or with width and height for an
   empty custom field
3. add_car for each car (custom sessions start empty)
4. run_simulation to execute everything
5. simulation_result for the final report, simulation_trace for the
   step-by-step record, car_status to inspect a single car

OUTPUT FORMAT:
- A car that finishes cleanly is reported as: - NAME, (x,y) FACING
- A collided car is reported as: - NAME, collides with OTHER at (x,y) at step S

Good luck on the field! 🏁`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(info *service.SessionInfo) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Session: %s\nScenario: %s\nField: %dx%d\n",
		info.ID, scenarioLabel(info), info.Field.Width, info.Field.Height))
	if info.Ran {
		b.WriteString("Status: run complete\n")
	} else {
		b.WriteString("Status: accepting cars\n")
	}

	b.WriteString(fmt.Sprintf("\nCars (%d):\n", len(info.Cars)))
	if len(info.Cars) == 0 {
		b.WriteString("(none)\n")
	}
	for i := range info.Cars {
		b.WriteString(formatCarLine(&info.Cars[i]) + "\n")
	}

	if view := formatFieldView(info); view != "" {
		b.WriteString("\n" + view)
	}

	return b.String()
}

// formatFieldView renders the field as an ASCII grid, top row first. Cars
// appear as the first letter of their name, collision sites as X.
func formatFieldView(info *service.SessionInfo) string {
	if info.Field.Width <= 0 || info.Field.Height <= 0 {
		return ""
	}
	if info.Field.Width > fieldViewLimit || info.Field.Height > fieldViewLimit {
		return "(field too large to draw)\n"
	}

	var b strings.Builder
	for y := info.Field.Height - 1; y >= 0; y-- {
		for x := 0; x < info.Field.Width; x++ {
			b.WriteString(cellGlyph(info.Cars, x, y))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cellGlyph(cars []service.CarState, x, y int) string {
	for i := range cars {
		car := &cars[i]
		if car.Position.X != x || car.Position.Y != y {
			continue
		}
		if car.Collided {
			return "X"
		}
		return carGlyph(car.Name)
	}
	return "."
}

func carGlyph(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return "?"
	}
	return strings.ToUpper(string(runes[0]))
}

func scenarioLabel(info *service.SessionInfo) string {
	if info.ScenarioName == "" {
		return "custom"
	}
	return info.ScenarioName
}

// formatCarLine renders a car for session listings, including its commands.
func formatCarLine(car *service.CarState) string {
	if car.Collided {
		return "- " + collisionPhrase(car)
	}
	return fmt.Sprintf("- %s, (%d,%d) %s, %s",
		car.Name, car.Position.X, car.Position.Y, car.Facing, car.Commands)
}

// formatOutcomeLine renders a car for the final report.
func formatOutcomeLine(car *service.CarState) string {
	if car.Collided {
		return "- " + collisionPhrase(car)
	}
	return fmt.Sprintf("- %s, (%d,%d) %s",
		car.Name, car.Position.X, car.Position.Y, car.Facing)
}

func collisionPhrase(car *service.CarState) string {
	pos := car.Position
	if car.CollisionPosition != nil {
		pos = *car.CollisionPosition
	}
	return fmt.Sprintf("%s, collides with %s at (%d,%d) at step %d",
		car.Name, strings.Join(car.CollisionPartners, ", "), pos.X, pos.Y, car.CollisionStep)
}

func formatRunResult(result *service.RunResult) string {
	var b strings.Builder

	if result.Message != "" {
		b.WriteString(result.Message + "\n")
	} else {
		b.WriteString(fmt.Sprintf("Simulation finished after %d steps\n", result.Steps))
	}

	if len(result.Collisions) > 0 {
		b.WriteString("\nCollisions:\n")
		for _, col := range result.Collisions {
			b.WriteString(fmt.Sprintf("- step %d at (%d,%d): %s\n",
				col.Step, col.Position.X, col.Position.Y, strings.Join(col.Cars, ", ")))
		}
	} else {
		b.WriteString("\nNo collisions.\n")
	}

	b.WriteString("\nFinal positions:\n")
	for i := range result.Cars {
		b.WriteString(formatOutcomeLine(&result.Cars[i]) + "\n")
	}

	return b.String()
}

func formatTrace(trace *service.TraceResponse) string {
	result := fmt.Sprintf("Trace (Page %d/%d), %d records total\n\n",
		trace.Page, trace.TotalPages, trace.TotalRecords)

	if len(trace.Records) == 0 {
		return result + "(no records)\n"
	}

	for i, rec := range trace.Records {
		num := (trace.Page-1)*trace.PageSize + i + 1
		line := fmt.Sprintf("%d. step %d: %s %s (%d,%d)→(%d,%d) facing %s",
			num, rec.Step, rec.Car, rec.Command,
			rec.From.X, rec.From.Y, rec.To.X, rec.To.Y, rec.Facing)
		if rec.Blocked {
			line += " [blocked]"
		}
		if rec.Collided {
			line += " [collision]"
		}
		result += line + "\n"
	}

	return result
}

func formatCarStatus(info *service.SessionInfo, car *service.CarState) string {
	executed := car.Pointer
	total := len(car.Commands)

	status := "waiting for the run to start"
	if car.Collided {
		status = collisionStatus(car)
	} else if info.Ran {
		status = "completed its run"
	}

	return fmt.Sprintf(`Car %s in session %s:
━━━━━━━━━━━━━━━━━━━━━━━━
Position: (%d,%d)
Facing: %s
Commands: %s
Executed: %d/%d
Started at: (%d,%d) facing %s
Status: %s`,
		car.Name, info.ID,
		car.Position.X, car.Position.Y,
		car.Facing,
		car.Commands,
		executed, total,
		car.InitialPosition.X, car.InitialPosition.Y, car.InitialFacing,
		status)
}

func collisionStatus(car *service.CarState) string {
	pos := car.Position
	if car.CollisionPosition != nil {
		pos = *car.CollisionPosition
	}
	return fmt.Sprintf("collided with %s at (%d,%d) at step %d",
		strings.Join(car.CollisionPartners, ", "), pos.X, pos.Y, car.CollisionStep)
}
