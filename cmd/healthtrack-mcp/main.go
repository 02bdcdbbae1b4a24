package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/healthtrack/internal/mcp"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	_ = godotenv.Load()

	serverURL := flag.String("server", os.Getenv("HEALTHTRACK_SERVER_URL"), "HealthTrack server URL (e.g. https://healthtrack.tail1234.ts.net)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("healthtrack-mcp", Version)
		return
	}

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: healthtrack-mcp -server <URL>\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s := mcp.New(mcp.NewHTTPClient(*serverURL), Version, log)
	log.Info("serving MCP over stdio", "server", *serverURL, "version", Version)

	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
