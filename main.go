// Command car-simulation starts the auto driving car simulator.
//
// It bundles three front ends in one binary:
//  1. "play" (default) – the interactive terminal simulator
//  2. "serve" – the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  3. "mcp" – an MCP stdio server that reuses a running API server or starts an internal one
//
// Flags control host/port, the scenario directory, debug logging, and
// optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/limchuenyin/car-simulation/api"
	"github.com/limchuenyin/car-simulation/console"
	"github.com/limchuenyin/car-simulation/sim/scenario"
	"github.com/limchuenyin/car-simulation/sim/service"
	"github.com/limchuenyin/car-simulation/sim/session"
	"github.com/limchuenyin/car-simulation/transport/mcp"
	"github.com/limchuenyin/car-simulation/transport/websocket"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Auto Driving Car Simulator"
)

// main loads the environment and dispatches to the selected front end.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	root := &cli.Command{
		Name:           "car-simulation",
		Usage:          "auto driving car simulator on a rectangular field",
		Version:        Version,
		DefaultCommand: "play",
		Commands: []*cli.Command{
			playCommand(),
			serveCommand(),
			mcpCommand(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// playCommand returns the interactive terminal front end.
func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Run the interactive terminal simulator (default)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return console.New(os.Stdin, os.Stdout).Run()
		},
	}
}

// serveCommand returns the HTTP server front end.
func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server with REST API, WebSocket, and MCP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			scenarioDirFlag(),
			debugFlag(),
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd.Bool("debug"))
			log.Printf("Starting %s v%s (mode: serve)", AppName, Version)

			simService, err := initializeServices(cmd.String("scenario-dir"))
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}

			return runHTTPServer(simService, serveOptions{
				host:        cmd.String("host"),
				port:        int(cmd.Int("port")),
				ngrok:       cmd.Bool("ngrok"),
				ngrokAuth:   cmd.String("ngrok-auth"),
				ngrokDomain: cmd.String("ngrok-domain"),
			})
		},
	}
}

// mcpCommand returns the MCP stdio front end.
func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp"},
		Usage:   "Run an MCP stdio server backed by a local HTTP API",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "Port to probe for an already-running API server",
				Sources: cli.EnvVars("PORT"),
			},
			scenarioDirFlag(),
			debugFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd.Bool("debug"))
			log.Printf("Starting %s v%s (mode: mcp)", AppName, Version)

			simService, err := initializeServices(cmd.String("scenario-dir"))
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}

			return runStdioMCP(simService, int(cmd.Int("port")))
		},
	}
}

func scenarioDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "scenario-dir",
		Value:   "scenarios",
		Usage:   "Directory containing scenario files",
		Sources: cli.EnvVars("SCENARIO_DIR"),
	}
}

func debugFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
}

func setupLogging(debug bool) {
	if debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// serveOptions carries the resolved serve flags.
type serveOptions struct {
	host        string
	port        int
	ngrok       bool
	ngrokAuth   string
	ngrokDomain string
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and
// an /mcp proxy endpoint. If ngrok is enabled it also provisions a public
// tunnel. It blocks until a shutdown signal arrives.
func runHTTPServer(simService service.SimulationService, opts serveOptions) error {
	// Create WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Create API server
	apiServer := api.NewServer(simService, hub)

	addr := fmt.Sprintf("%s:%d", opts.host, opts.port)

	// Create MCP client for the /mcp endpoint
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	// Main router combines the API with the MCP HTTP bridge
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if opts.ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, mainRouter, opts)
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return nil
}

// runNgrokTunnel exposes the router through an ngrok tunnel until the
// context is cancelled.
func runNgrokTunnel(ctx context.Context, handler http.Handler, opts serveOptions) {
	if opts.ngrokAuth == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if opts.ngrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.ngrokDomain))
		log.Printf("Using custom ngrok domain: %s", opts.ngrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(opts.ngrokAuth),
	)
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// initializeServices wires the scenario and session managers into the
// simulation service and starts the background session cleanup.
func initializeServices(scenarioDir string) (service.SimulationService, error) {
	scenarioManager, err := scenario.NewManager(scenarioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario manager: %w", err)
	}

	sessionManager := session.NewManager()
	simService := service.NewSimulationService(sessionManager, scenarioManager)

	// Start session cleanup routine
	go sessionCleanupRoutine(sessionManager)

	return simService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within the retention window.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(24 * time.Hour)
		if removed > 0 {
			log.Printf("Cleaned up %d expired sessions", removed)
		}
	}
}

// runStdioMCP runs an MCP stdio server. It reuses an external API at
// localhost:port when one is answering; otherwise it starts a minimal
// internal HTTP API on a random loopback port and targets that.
func runStdioMCP(simService service.SimulationService, port int) error {
	externalURL := fmt.Sprintf("http://localhost:%d", port)
	log.Printf("Checking for external API server at %s...", externalURL)

	var baseURL string

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()

		httpServer := &http.Server{
			Handler: api.NewServer(simService, hub),
		}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Give the listener a moment before MCP requests arrive
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	if baseURL == externalURL {
		log.Println("MCP stdio server ready (using external HTTP server)")
	} else {
		log.Println("MCP stdio server ready (using internal HTTP server)")
	}

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
