// Package mcp provides the stdio MCP server exposing the pet ledger as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/pets/internal/buildinfo"
	"github.com/go-ports/pets/internal/models"
	"github.com/go-ports/pets/internal/service"
)

const addDescription = `Add a pet to the ledger. The name must not be blank and the age must be a whole number from 0 to 100. Unrecognized species are recorded as OTHER. The ledger is saved after every successful add.` //nolint:lll

const findDescription = `Find pets of one species. Accepts a species tag in any letter case (cat, DOG, Bird). A value that is not a known species matches nothing.` //nolint:lll

// NewServer creates and registers all pet tools on a new MCP server.
// It is separate from Serve so that tests and other callers can obtain a
// fully configured server without committing to the stdio transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("pets", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve starts the stdio MCP server, blocking until stdin closes.
func Serve(_ context.Context, home, dataFile string) error {
	svc, err := service.New(home, dataFile)
	if err != nil {
		return fmt.Errorf("mcp: init service: %w", err)
	}
	return mcpserver.ServeStdio(NewServer(svc))
}

// registerTools wires all pet tools into the server.
func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	s.AddTool(mcp.NewTool("pets_add",
		mcp.WithDescription(addDescription),
		mcp.WithString("name",
			mcp.Description("Pet name."),
			mcp.Required(),
		),
		mcp.WithString("species",
			mcp.Description("Species tag: CAT, DOG, BIRD, FISH, RODENT or OTHER."),
			mcp.Required(),
		),
		mcp.WithNumber("age",
			mcp.Description("Age in whole years, 0 to 100."),
			mcp.Required(),
		),
	), synced(svc, handleAdd))

	s.AddTool(mcp.NewTool("pets_list",
		mcp.WithDescription("List all pets in ledger order."),
	), synced(svc, handleList))

	s.AddTool(mcp.NewTool("pets_find",
		mcp.WithDescription(findDescription),
		mcp.WithString("species",
			mcp.Description("Species to match."),
			mcp.Required(),
		),
	), synced(svc, handleFind))

	s.AddTool(mcp.NewTool("pets_sort",
		mcp.WithDescription("Reorder the ledger and save it. Ties keep their previous relative order."),
		mcp.WithString("by",
			mcp.Description("Sort key."),
			mcp.Enum(string(service.SortByName), string(service.SortByAge), string(service.SortByAgeDesc)),
			mcp.Required(),
		),
	), synced(svc, handleSort))

	s.AddTool(mcp.NewTool("pets_stats",
		mcp.WithDescription("Summarize the ledger: total, average age and per-species counts."),
	), synced(svc, handleStats))
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

type toolHandler func(context.Context, *service.Service, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// synced re-reads the data file before h runs, so a long-running server
// sees pets added or sorted from the command line since the last call.
func synced(svc *service.Service, h toolHandler) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := svc.Reload(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return h(ctx, svc, req)
	}
}

func handleAdd(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	age, ok := wholeNumber(req.GetFloat("age", math.NaN()))
	if !ok {
		return mcp.NewToolResultError("age must be a whole number"), nil
	}

	p, err := svc.Add(req.GetString("name", ""), req.GetString("species", ""), age)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"added": petMap(p),
		"total": svc.Len(),
	})
}

func handleList(_ context.Context, svc *service.Service, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pets := svc.Pets()
	return jsonResult(map[string]any{
		"total": len(pets),
		"pets":  petMaps(pets),
	})
}

func handleFind(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	species := req.GetString("species", "")
	pets := svc.Find(species)
	return jsonResult(map[string]any{
		"species": species,
		"matches": len(pets),
		"pets":    petMaps(pets),
	})
}

func handleSort(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	order, err := service.ParseSortOrder(req.GetString("by", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := svc.Sort(order); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"sorted_by": string(order),
		"pets":      petMaps(svc.Pets()),
	})
}

func handleStats(_ context.Context, svc *service.Service, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := svc.Stats()
	if stats.AverageAge != nil {
		avg := roundTwo(*stats.AverageAge)
		stats.AverageAge = &avg
	}
	return jsonResult(stats)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func petMap(p models.Pet) map[string]any {
	return map[string]any{
		"name":    p.Name(),
		"species": p.Species().String(),
		"label":   p.Species().Label(),
		"age":     p.Age(),
	}
}

func petMaps(pets []models.Pet) []map[string]any {
	out := make([]map[string]any, 0, len(pets))
	for _, p := range pets {
		out = append(out, petMap(p))
	}
	return out
}

// wholeNumber converts a JSON number to int, rejecting fractions and NaN.
func wholeNumber(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// roundTwo rounds f to 2 decimal places.
func roundTwo(f float64) float64 {
	return math.Round(f*100) / 100
}
