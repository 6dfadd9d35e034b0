package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/cubemap-net-mcp/internal/config"
	"github.com/ironsheep/cubemap-net-mcp/internal/cubemap"
	"github.com/ironsheep/cubemap-net-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("cubemap-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "decompose":
			if err := runDecompose(os.Args[2:], os.Stdout); err != nil {
				log.Fatalf("decompose: %v", err)
			}
			return
		case "init-config":
			if err := runInitConfig(os.Args[2:], os.Stdout); err != nil {
				log.Fatalf("init-config: %v", err)
			}
			return
		}
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	setupLogging(cfg)

	if cfg.SlogLevel() <= slog.LevelDebug {
		log.Printf("Cubemap MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// setupLogging routes the cubemap package's records to stderr at the
// configured level. CUBEMAP_MCP_LOG_LEVEL overrides the config file.
func setupLogging(cfg *config.Config) {
	if env := os.Getenv("CUBEMAP_MCP_LOG_LEVEL"); env != "" {
		cfg.Log.Level = env
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	cubemap.SetLogger(slog.New(handler))
}

func printHelp() {
	fmt.Println("cubemap-mcp - MCP server for cubemap net decomposition")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  cubemap-mcp [options]                 Run the MCP server on stdin/stdout")
	fmt.Println("  cubemap-mcp decompose -in NET -out STRIP [-config FILE] [-face-size N]")
	fmt.Println("                                        Split a net into a six-face strip")
	fmt.Println("  cubemap-mcp init-config -out FILE     Write a default config file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  CUBEMAP_MCP_CONFIG=FILE        YAML config file")
	fmt.Println("  CUBEMAP_MCP_LOG_LEVEL=debug    Override the configured log level")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
