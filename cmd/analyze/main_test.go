package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/limchuenyin/car-simulation/sim/engine"
)

func TestAnalysisScenario(t *testing.T) {
	sc := analysisScenario{
		Name:        "Test Scenario",
		Description: "Test scenario",
		Field:       analysisField{Width: 10, Height: 10},
		Cars: []analysisCar{
			{Name: "A", X: 1, Y: 2, Direction: "N", Commands: "FFRFFFFRRL"},
			{Name: "B", X: 7, Y: 8, Direction: "W", Commands: "FFLFFFFFFF"},
		},
	}

	if sc.Name != "Test Scenario" {
		t.Errorf("Expected Name 'Test Scenario', got '%s'", sc.Name)
	}

	if sc.Field.Width != 10 || sc.Field.Height != 10 {
		t.Errorf("Expected 10x10 field, got %dx%d", sc.Field.Width, sc.Field.Height)
	}

	if len(sc.Cars) != 2 {
		t.Errorf("Expected 2 cars, got %d", len(sc.Cars))
	}
}

func TestCountBlocked(t *testing.T) {
	tests := []struct {
		name     string
		history  []engine.StepRecord
		expected int
	}{
		{"empty", nil, 0},
		{"none blocked", []engine.StepRecord{{Command: "F"}, {Command: "L"}}, 0},
		{"one blocked", []engine.StepRecord{{Command: "F", Blocked: true}, {Command: "F"}}, 1},
		{"all blocked", []engine.StepRecord{{Command: "F", Blocked: true}, {Command: "F", Blocked: true}}, 2},
	}

	for _, test := range tests {
		result := countBlocked(test.history)
		if result != test.expected {
			t.Errorf("%s: countBlocked = %d, expected %d", test.name, result, test.expected)
		}
	}
}

func TestAnalyzeScenario_ValidFile(t *testing.T) {
	validScenario := `{
		"name": "Test Scenario",
		"description": "Two cars crossing",
		"field": {"width": 10, "height": 10},
		"cars": [
			{"name": "A", "x": 1, "y": 2, "direction": "N", "commands": "FFRFFFFRRL"},
			{"name": "B", "x": 7, "y": 8, "direction": "W", "commands": "FFLFFFFFFF"}
		]
	}`

	tmpfile, err := os.CreateTemp("", "test_scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(validScenario)); err != nil {
		t.Fatalf("Failed to write scenario: %v", err)
	}
	tmpfile.Close()

	// Test that analyzeScenario doesn't panic
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeScenario panicked: %v", r)
		}
	}()

	analyzeScenario(tmpfile.Name())
}

func TestAnalyzeScenario_InvalidFile(t *testing.T) {
	// Test with non-existent file
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeScenario panicked with invalid file: %v", r)
		}
	}()

	analyzeScenario("/non/existent/file.json")
}

func TestAnalyzeScenario_InvalidJSON(t *testing.T) {
	invalidJSON := `{"name": "test", invalid json}`

	tmpfile, err := os.CreateTemp("", "test_scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(invalidJSON)); err != nil {
		t.Fatalf("Failed to write scenario: %v", err)
	}
	tmpfile.Close()

	// Test that analyzeScenario doesn't panic with invalid JSON
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeScenario panicked with invalid JSON: %v", r)
		}
	}()

	analyzeScenario(tmpfile.Name())
}

func TestAnalyzeScenario_ProblemScenario(t *testing.T) {
	// Duplicate names, a shared starting cell, an out-of-bounds start and
	// a bad facing should all be reported without reaching the dry run.
	problemScenario := `{
		"name": "Broken",
		"description": "Everything wrong at once",
		"field": {"width": 5, "height": 5},
		"cars": [
			{"name": "A", "x": 1, "y": 1, "direction": "N", "commands": "F"},
			{"name": "A", "x": 1, "y": 1, "direction": "Q", "commands": "F"},
			{"name": "B", "x": 9, "y": 9, "direction": "E", "commands": "LLRR"}
		]
	}`

	tmpfile, err := os.CreateTemp("", "test_scenario_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(problemScenario)); err != nil {
		t.Fatalf("Failed to write scenario: %v", err)
	}
	tmpfile.Close()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeScenario panicked with a broken scenario: %v", r)
		}
	}()

	analyzeScenario(tmpfile.Name())
}

func TestDryRun_Collision(t *testing.T) {
	sc := analysisScenario{
		Name:  "Collision",
		Field: analysisField{Width: 10, Height: 10},
		Cars: []analysisCar{
			{Name: "A", X: 1, Y: 2, Direction: "N", Commands: "FFRFFFFRRL"},
			{Name: "B", X: 7, Y: 8, Direction: "W", Commands: "FFLFFFFFFF"},
		},
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("dryRun panicked: %v", r)
		}
	}()

	dryRun(sc)
}

func TestMain_Integration(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "test_scenarios_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	testScenario := `{
		"name": "Solo",
		"description": "One car",
		"field": {"width": 10, "height": 10},
		"cars": [
			{"name": "A", "x": 1, "y": 2, "direction": "N", "commands": "FFRFFFFRRL"}
		]
	}`

	scenarioPath := filepath.Join(tmpDir, "solo.json")
	if err := os.WriteFile(scenarioPath, []byte(testScenario), 0644); err != nil {
		t.Fatalf("Failed to write test scenario: %v", err)
	}

	// main() iterates a whole directory; exercising the per-file routine
	// against the same layout covers the interesting part without
	// swapping working directories.
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeScenario panicked: %v", r)
		}
	}()

	analyzeScenario(scenarioPath)
}
