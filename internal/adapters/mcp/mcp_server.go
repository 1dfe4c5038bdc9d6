// Package mcp exposes the timer registry over the Model Context
// Protocol so agents can drive the same key presses a hardware host
// would deliver.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keydoro/keydoro/internal/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps an MCP stdio server around a ports.Controller.
type Server struct {
	server     *server.MCPServer
	controller ports.Controller
}

// NewServer creates an MCP server driving the given controller.
func NewServer(controller ports.Controller) *Server {
	s := &Server{controller: controller}

	s.server = server.NewMCPServer(
		"keydoro",
		"1.0.0",
		server.WithLogging(),
	)
	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	pressTool := mcp.NewTool(
		"press_key",
		mcp.WithDescription("Tap the timer key: starts an idle phase, pauses a running one, resumes a paused one"),
		mcp.WithString(
			"instance",
			mcp.Required(),
			mcp.Description("Opaque instance id of the timer key"),
		),
	)
	s.server.AddTool(pressTool, s.handlePressKey)

	holdTool := mcp.NewTool(
		"hold_key",
		mcp.WithDescription("Long-press the timer key: skips the phase while paused, otherwise fully resets the timer"),
		mcp.WithString(
			"instance",
			mcp.Required(),
			mcp.Description("Opaque instance id of the timer key"),
		),
	)
	s.server.AddTool(holdTool, s.handleHoldKey)

	stateTool := mcp.NewTool(
		"get_timer_state",
		mcp.WithDescription("Get the phase, remaining time, cycle position and settings of a timer instance"),
		mcp.WithString(
			"instance",
			mcp.Required(),
			mcp.Description("Opaque instance id of the timer key"),
		),
	)
	s.server.AddTool(stateTool, s.handleGetTimerState)

	settingsTool := mcp.NewTool(
		"update_settings",
		mcp.WithDescription("Update a timer's settings (resets it to idle work with the new durations)"),
		mcp.WithString(
			"instance",
			mcp.Required(),
			mcp.Description("Opaque instance id of the timer key"),
		),
		mcp.WithNumber(
			"work_minutes",
			mcp.Description("Work phase length in minutes (default 25)"),
		),
		mcp.WithNumber(
			"break_minutes",
			mcp.Description("Break phase length in minutes (default 5)"),
		),
		mcp.WithNumber(
			"num_cycles",
			mcp.Description("Number of cycles shown on the indicator row, clamped to 1-4"),
		),
		mcp.WithBoolean(
			"sound_enabled",
			mcp.Description("Play a sound when a phase completes"),
		),
	)
	s.server.AddTool(settingsTool, s.handleUpdateSettings)

	s.server.AddTool(
		mcp.NewTool(
			"list_instances",
			mcp.WithDescription("List the ids of all live timer instances"),
		),
		s.handleListInstances,
	)
}

// Start runs the server over stdio until the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	return server.ServeStdio(s.server)
}

// handlePressKey handles the press_key tool.
func (s *Server) handlePressKey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instance, err := request.RequireString("instance")
	if err != nil {
		return mcp.NewToolResultError("instance is required: " + err.Error()), nil
	}

	s.controller.Tap(instance)
	return s.stateResult(instance)
}

// handleHoldKey handles the hold_key tool.
func (s *Server) handleHoldKey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instance, err := request.RequireString("instance")
	if err != nil {
		return mcp.NewToolResultError("instance is required: " + err.Error()), nil
	}

	s.controller.Hold(instance)
	return s.stateResult(instance)
}

// handleGetTimerState handles the get_timer_state tool.
func (s *Server) handleGetTimerState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instance, err := request.RequireString("instance")
	if err != nil {
		return mcp.NewToolResultError("instance is required: " + err.Error()), nil
	}

	snap, ok := s.controller.Snapshot(instance)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no timer instance %q", instance)), nil
	}
	return marshalResult(snapshotData(snap))
}

// handleUpdateSettings handles the update_settings tool.
func (s *Server) handleUpdateSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instance, err := request.RequireString("instance")
	if err != nil {
		return mcp.NewToolResultError("instance is required: " + err.Error()), nil
	}

	raw := map[string]any{}
	if v := request.GetFloat("work_minutes", 0); v > 0 {
		raw["workTime"] = v
	}
	if v := request.GetFloat("break_minutes", 0); v > 0 {
		raw["breakTime"] = v
	}
	if v := request.GetFloat("num_cycles", 0); v > 0 {
		raw["numCycles"] = v
	}
	// A boolean has no unused sentinel, so only forward it when the
	// client actually supplied the argument.
	if _, ok := request.GetArguments()["sound_enabled"]; ok {
		raw["soundEnabled"] = request.GetBool("sound_enabled", false)
	}

	s.controller.UpdateSettings(instance, raw)
	return s.stateResult(instance)
}

// handleListInstances handles the list_instances tool.
func (s *Server) handleListInstances(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids := s.controller.Instances()
	return marshalResult(map[string]any{
		"instances":   ids,
		"total_count": len(ids),
	})
}

func (s *Server) stateResult(instance string) (*mcp.CallToolResult, error) {
	snap, ok := s.controller.Snapshot(instance)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no timer instance %q", instance)), nil
	}
	return marshalResult(snapshotData(snap))
}

func snapshotData(snap ports.TimerSnapshot) map[string]any {
	return map[string]any{
		"instance":          snap.Instance,
		"phase":             string(snap.Phase),
		"cycle_index":       snap.CycleIndex,
		"remaining_seconds": snap.RemainingSeconds,
		"settings": map[string]any{
			"work_minutes":  snap.Settings.WorkMinutes,
			"break_minutes": snap.Settings.BreakMinutes,
			"num_cycles":    snap.Settings.CycleCount,
			"sound_enabled": snap.Settings.SoundEnabled,
		},
	}
}

func marshalResult(data map[string]any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
