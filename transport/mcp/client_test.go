package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/limchuenyin/car-simulation/sim/engine"
	"github.com/limchuenyin/car-simulation/sim/scenario"
	"github.com/limchuenyin/car-simulation/sim/service"
	"github.com/mark3labs/mcp-go/mcp"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":    "test-session",
		"ran":   false,
		"steps": float64(0),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found: zzzz"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions/zzzz", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 404 response")
	}

	if err.Error() != "session not found: zzzz" {
		t.Errorf("Expected the API error message to surface, got: %v", err)
	}
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.SessionInfo{
			ID:           "test-session-123",
			ScenarioName: "classic",
			Field:        engine.NewField(10, 10),
			Cars: []service.CarState{
				{Name: "A", Position: engine.Position{X: 1, Y: 2}, Facing: engine.North, Commands: "FFRFFFFRRL"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_session",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateSession(ctx, request)
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "test-session-123") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "- A, (1,2) N, FFRFFFFRRL") {
		t.Errorf("Expected car line in result, got: %s", resultStr.Text)
	}
}

func TestClient_createSessionCustom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["width"] != float64(5) || body["height"] != float64(8) {
			t.Errorf("Expected width=5 height=8 in request body, got %v", body)
		}

		resp := service.SessionInfo{
			ID:    "custom-1",
			Field: engine.NewField(5, 8),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "create_session",
			Arguments: map[string]interface{}{
				"width":  float64(5),
				"height": float64(8),
			},
		},
	}

	result, err := client.handleCreateSession(ctx, request)
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "Field: 5x8") {
		t.Errorf("Expected field dimensions in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "Scenario: custom") {
		t.Errorf("Expected custom scenario label, got: %s", resultStr.Text)
	}
}

func TestClient_addCar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/sess-1/cars" {
			t.Errorf("Expected POST /api/sessions/sess-1/cars, got %s %s", r.Method, r.URL.Path)
		}

		var spec scenario.CarSpec
		json.NewDecoder(r.Body).Decode(&spec)
		if spec.Name != "A" || spec.X != 1 || spec.Y != 2 {
			t.Errorf("Unexpected car spec: %+v", spec)
		}
		if spec.Direction != "N" || spec.Commands != "FFRFFFFRRL" {
			t.Errorf("Unexpected direction/commands: %s/%s", spec.Direction, spec.Commands)
		}

		resp := service.SessionInfo{
			ID:    "sess-1",
			Field: engine.NewField(10, 10),
			Cars: []service.CarState{
				{Name: "A", Position: engine.Position{X: 1, Y: 2}, Facing: engine.North, Commands: "FFRFFFFRRL"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "add_car",
			Arguments: map[string]interface{}{
				"session_id": "sess-1",
				"name":       "A",
				"x":          float64(1),
				"y":          float64(2),
				"direction":  "N",
				"commands":   "FFRFFFFRRL",
			},
		},
	}

	result, err := client.handleAddCar(ctx, request)
	if err != nil {
		t.Fatalf("addCar failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "Added car A to session sess-1") {
		t.Errorf("Expected confirmation line, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "Cars (1):") {
		t.Errorf("Expected car count in result, got: %s", resultStr.Text)
	}
}

func TestClient_runSimulation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/sess-1/run" {
			t.Errorf("Expected POST /api/sessions/sess-1/run, got %s %s", r.Method, r.URL.Path)
		}

		collisionPos := engine.Position{X: 5, Y: 4}
		resp := service.RunResult{
			SessionID: "sess-1",
			Steps:     7,
			Cars: []service.CarState{
				{
					Name: "A", Position: collisionPos, Facing: engine.East,
					Collided: true, CollisionStep: 7, CollisionPosition: &collisionPos,
					CollisionPartners: []string{"B"},
				},
				{
					Name: "B", Position: collisionPos, Facing: engine.West,
					Collided: true, CollisionStep: 7, CollisionPosition: &collisionPos,
					CollisionPartners: []string{"A"},
				},
			},
			Collisions: []service.CollisionInfo{
				{Step: 7, Position: collisionPos, Cars: []string{"A", "B"}},
			},
			Message: "simulation finished after 7 steps: 2 of 2 cars collided",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "run_simulation",
			Arguments: map[string]interface{}{
				"session_id": "sess-1",
			},
		},
	}

	result, err := client.handleRunSimulation(ctx, request)
	if err != nil {
		t.Fatalf("runSimulation failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"simulation finished after 7 steps",
		"- step 7 at (5,4): A, B",
		"- A, collides with B at (5,4) at step 7",
		"- B, collides with A at (5,4) at step 7",
	}
	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in result, got: %s", content, resultStr.Text)
		}
	}
}

func TestClient_carStatus(t *testing.T) {
	collisionPos := engine.Position{X: 5, Y: 4}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := service.SessionInfo{
			ID:           "sess-1",
			ScenarioName: "classic",
			Field:        engine.NewField(10, 10),
			Ran:          true,
			Cars: []service.CarState{
				{Name: "A", Position: engine.Position{X: 5, Y: 4}, Facing: engine.South, Commands: "FFRFFFFRRL", Pointer: 10},
				{
					Name: "B", Position: collisionPos, Facing: engine.West, Commands: "FFLFFFFFFF", Pointer: 7,
					Collided: true, CollisionStep: 7, CollisionPosition: &collisionPos,
					CollisionPartners: []string{"A"},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "car_status",
			Arguments: map[string]interface{}{
				"session_id": "sess-1",
				"name":       "B",
			},
		},
	}

	result, err := client.handleCarStatus(ctx, request)
	if err != nil {
		t.Fatalf("carStatus failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"Car B in session sess-1",
		"Position: (5,4)",
		"Facing: W",
		"Executed: 7/10",
		"collided with A at (5,4) at step 7",
	}
	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in result, got: %s", content, resultStr.Text)
		}
	}
}

func TestClient_carStatus_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := service.SessionInfo{
			ID:    "sess-1",
			Field: engine.NewField(10, 10),
			Cars: []service.CarState{
				{Name: "A", Position: engine.Position{X: 1, Y: 2}, Facing: engine.North},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "car_status",
			Arguments: map[string]interface{}{
				"session_id": "sess-1",
				"name":       "Z",
			},
		},
	}

	result, err := client.handleCarStatus(ctx, request)
	if err != nil {
		t.Fatalf("carStatus failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, `no car named "Z"`) {
		t.Errorf("Expected not-found message, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "Cars: A") {
		t.Errorf("Expected available car names in message, got: %s", resultStr.Text)
	}
}

func TestFormatSessionInfo(t *testing.T) {
	info := &service.SessionInfo{
		ID:           "abcd",
		ScenarioName: "classic",
		Field:        engine.NewField(10, 10),
		Cars: []service.CarState{
			{Name: "A", Position: engine.Position{X: 1, Y: 2}, Facing: engine.North, Commands: "FFRFFFFRRL"},
		},
	}

	result := formatSessionInfo(info)

	expectedFields := []string{
		"Session: abcd",
		"Scenario: classic",
		"Field: 10x10",
		"Status: accepting cars",
		"Cars (1):",
		"- A, (1,2) N, FFRFFFFRRL",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatFieldView(t *testing.T) {
	info := &service.SessionInfo{
		Field: engine.NewField(4, 3),
		Cars: []service.CarState{
			{Name: "alpha", Position: engine.Position{X: 1, Y: 2}},
			{Name: "B", Position: engine.Position{X: 3, Y: 0}, Collided: true},
		},
	}

	view := formatFieldView(info)

	// Top row (highest y) first; car glyph is the upper-cased first letter,
	// collision sites render as X
	expected := ".A..\n....\n...X\n"
	if view != expected {
		t.Errorf("Expected view:\n%s\ngot:\n%s", expected, view)
	}
}

func TestFormatFieldView_TooLarge(t *testing.T) {
	info := &service.SessionInfo{
		Field: engine.NewField(100, 100),
	}

	view := formatFieldView(info)
	if view != "(field too large to draw)\n" {
		t.Errorf("Expected placeholder for oversized field, got: %s", view)
	}
}

func TestFormatRunResult(t *testing.T) {
	collisionPos := engine.Position{X: 5, Y: 4}
	result := formatRunResult(&service.RunResult{
		SessionID: "sess-1",
		Steps:     7,
		Cars: []service.CarState{
			{
				Name: "A", Position: collisionPos, Facing: engine.East,
				Collided: true, CollisionStep: 7, CollisionPosition: &collisionPos,
				CollisionPartners: []string{"B"},
			},
			{Name: "C", Position: engine.Position{X: 0, Y: 9}, Facing: engine.South},
		},
		Collisions: []service.CollisionInfo{
			{Step: 7, Position: collisionPos, Cars: []string{"A", "B"}},
		},
		Message: "simulation finished after 7 steps: 2 of 3 cars collided",
	})

	expectedFields := []string{
		"simulation finished after 7 steps: 2 of 3 cars collided",
		"Collisions:",
		"- step 7 at (5,4): A, B",
		"Final positions:",
		"- A, collides with B at (5,4) at step 7",
		"- C, (0,9) S",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatRunResult_NoCollisions(t *testing.T) {
	result := formatRunResult(&service.RunResult{
		SessionID: "sess-1",
		Steps:     10,
		Cars: []service.CarState{
			{Name: "A", Position: engine.Position{X: 5, Y: 4}, Facing: engine.South},
		},
		Collisions: []service.CollisionInfo{},
		Message:    "simulation finished after 10 steps: 0 of 1 cars collided",
	})

	if !strings.Contains(result, "No collisions.") {
		t.Errorf("Expected 'No collisions.' in result, got: %s", result)
	}
	if !strings.Contains(result, "- A, (5,4) S") {
		t.Errorf("Expected final position line in result, got: %s", result)
	}
}

func TestFormatTrace(t *testing.T) {
	trace := &service.TraceResponse{
		Records: []engine.StepRecord{
			{
				Step: 4, Car: "A", Command: "F",
				From: engine.Position{X: 1, Y: 5}, To: engine.Position{X: 1, Y: 5},
				Facing: engine.North, Blocked: true,
			},
			{
				Step: 4, Car: "B", Command: "F",
				From: engine.Position{X: 6, Y: 4}, To: engine.Position{X: 5, Y: 4},
				Facing: engine.West, Collided: true,
			},
		},
		TotalRecords: 14,
		Page:         2,
		PageSize:     5,
		TotalPages:   3,
	}

	result := formatTrace(trace)

	// Record numbering continues across pages: page 2 with size 5 starts at 6
	expectedFields := []string{
		"Trace (Page 2/3)",
		"14 records total",
		"6. step 4: A F (1,5)→(1,5) facing N [blocked]",
		"7. step 4: B F (6,4)→(5,4) facing W [collision]",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatTrace_Empty(t *testing.T) {
	result := formatTrace(&service.TraceResponse{Page: 1, TotalPages: 0})

	if !strings.Contains(result, "(no records)") {
		t.Errorf("Expected empty-trace placeholder, got: %s", result)
	}
}

func TestClient_handleSimulationInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "simulation_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleSimulationInstructions(ctx, request)
	if err != nil {
		t.Fatalf("handleSimulationInstructions failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"Car Field Simulator - Complete Instructions",
		"OBJECTIVE:",
		"FIELD GEOMETRY:",
		"BOTTOM-LEFT corner",
		"COMMANDS:",
		"TURN ORDER",
		"COLLISIONS:",
		"COMMON PITFALLS:",
		"TOOL WORKFLOW:",
		"OUTPUT FORMAT:",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, resultStr.Text)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	// Integration test that verifies the client can be created and initialized without errors
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	// Test that the MCP server has been properly configured with tools
	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	// We can't easily test the actual tool execution without setting up a real server,
	// but we can verify that the client structure is properly initialized
	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
