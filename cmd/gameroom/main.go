package main

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/baggage"

	"github.com/ryanm101/gameroom/internal/config"
	"github.com/ryanm101/gameroom/internal/logging"
	"github.com/ryanm101/gameroom/internal/tracing"
)

const version = "1.0.0"

var cfg *config.Config

func main() {
	ctx := context.Background()

	m, _ := baggage.NewMember("app.version", version)
	b, _ := baggage.New(m)
	ctx = baggage.ContextWithBaggage(ctx, b)

	var err error
	cfg, err = config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	logging.Setup(logging.Config{
		Format: cfg.Logging.Format,
		Level:  cfg.Logging.Level,
	})

	shutdown, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		logging.Error("failed to setup tracing", "error", err)
		shutdown = func(context.Context) error { return nil }
	}

	args := parseGlobalFlags(os.Args[1:])
	command := "serve"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	code := run(ctx, command, args)

	if err := shutdown(ctx); err != nil {
		logging.Error("failed to shutdown tracing", "error", err)
	}
	os.Exit(code)
}

func run(ctx context.Context, command string, args []string) int {
	var err error
	switch command {
	case "serve":
		err = runServe(ctx)
	case "catalog":
		err = runCatalog(ctx)
	case "search":
		if len(args) < 1 {
			fmt.Println("Usage: gameroom search <query> [--platform ps5|xbox|switch] [--json]")
			return 1
		}
		err = runSearch(ctx, args)
	case "warm":
		err = runWarm(ctx)
	case "browse":
		err = runBrowse(ctx)
	case "help", "-h", "--help":
		printUsage()
		return 0
	case "version", "--version":
		fmt.Println("gameroom", version)
		return 0
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		return 1
	}

	if err != nil {
		PrintError("Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Println("gameroom - Gaming lounge catalog service")
	fmt.Println()
	fmt.Println("Usage: gameroom [--json] [--quiet] <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve                     Run the HTTP API (default)")
	fmt.Println("  catalog                   Print the aggregated catalog")
	fmt.Println("  search <query>            Search the video-game catalog")
	fmt.Println("         --platform <p>     Limit to ps5, xbox or switch")
	fmt.Println("  warm                      Populate the response cache")
	fmt.Println("  browse                    Interactive catalog browser")
	fmt.Println("  version                   Show version")
	fmt.Println("  help                      Show this help")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  IGDB_CLIENT_ID, IGDB_CLIENT_SECRET   Catalog API credentials")
	fmt.Println("  PORT                                 HTTP port (default: 5000)")
	fmt.Println("  BGG_API_TOKEN                        Board-game API token")
	fmt.Println("  GAMEROOM_CACHE_BACKEND               memory, sqlite or redis")
	fmt.Println("  GAMEROOM_CACHE_PATH, REDIS_URL       Cache backend location")
	fmt.Println("  GAMEROOM_WARM_SCHEDULE               Cron spec, or \"off\"")
	fmt.Println("  LOG_LEVEL, LOG_FORMAT                Logging")
	fmt.Println("  GAMEROOM_CONFIG                      Config file path")
}
