// Package mcp exposes HealthTrack data to MCP clients: the health profile,
// goals, saved exercise plans and the exercise catalog.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("HealthTrack", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("HealthTrack personal health server. Read the health profile, goals, weekly exercise plans (parsed into days) and the home and gym exercise catalogs. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetLatestHealth, Handler: h.getLatestHealth},
		server.ServerTool{Tool: toolGetHealthHistory, Handler: h.getHealthHistory},
		server.ServerTool{Tool: toolListGoals, Handler: h.listGoals},
		server.ServerTool{Tool: toolGetExercisePlan, Handler: h.getExercisePlan},
		server.ServerTool{Tool: toolListCatalogExercises, Handler: h.listCatalogExercises},
	)

	s.AddResources(
		server.ServerResource{Resource: resProfile, Handler: h.profile},
		server.ServerResource{Resource: resGoals, Handler: h.goals},
		server.ServerResource{Resource: resHomeCatalog, Handler: h.catalog},
		server.ServerResource{Resource: resGymCatalog, Handler: h.catalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resProfile = mcp.NewResource(
	"healthtrack://profile",
	"Health Profile",
	mcp.WithResourceDescription("The most recent health record: body measurements, activity level and optional vitals"),
	mcp.WithMIMEType("application/json"),
)

var resGoals = mcp.NewResource(
	"healthtrack://goals",
	"Goals",
	mcp.WithResourceDescription("All goals with category, target, current value and progress percentage"),
	mcp.WithMIMEType("application/json"),
)

var resHomeCatalog = mcp.NewResource(
	"healthtrack://catalog/home",
	"Home Exercise Catalog",
	mcp.WithResourceDescription("Exercises that need little or no equipment"),
	mcp.WithMIMEType("application/json"),
)

var resGymCatalog = mcp.NewResource(
	"healthtrack://catalog/gym",
	"Gym Exercise Catalog",
	mcp.WithResourceDescription("Exercises for a fully equipped gym"),
	mcp.WithMIMEType("application/json"),
)
