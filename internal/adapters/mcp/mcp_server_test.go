package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/keydoro/keydoro/internal/domain"
	"github.com/keydoro/keydoro/internal/ports"
	"github.com/mark3labs/mcp-go/mcp"
)

// fakeController is a scripted ports.Controller for handler tests.
type fakeController struct {
	snapshots map[string]ports.TimerSnapshot
	taps      []string
	holds     []string
	updates   map[string]map[string]any
}

func newFakeController() *fakeController {
	return &fakeController{
		snapshots: make(map[string]ports.TimerSnapshot),
		updates:   make(map[string]map[string]any),
	}
}

func (f *fakeController) Tap(instance string) {
	f.taps = append(f.taps, instance)
	f.ensure(instance)
}

func (f *fakeController) Hold(instance string) {
	f.holds = append(f.holds, instance)
	f.ensure(instance)
}

func (f *fakeController) Snapshot(instance string) (ports.TimerSnapshot, bool) {
	snap, ok := f.snapshots[instance]
	return snap, ok
}

func (f *fakeController) UpdateSettings(instance string, raw map[string]any) {
	f.updates[instance] = raw
	f.ensure(instance)
}

func (f *fakeController) Instances() []string {
	ids := make([]string, 0, len(f.snapshots))
	for id := range f.snapshots {
		ids = append(ids, id)
	}
	return ids
}

func (f *fakeController) ensure(instance string) {
	if _, ok := f.snapshots[instance]; !ok {
		f.snapshots[instance] = ports.TimerSnapshot{
			Instance:         instance,
			Phase:            domain.PhaseIdleWork,
			RemainingSeconds: 1500,
			Settings:         domain.DefaultSettings(),
		}
	}
}

func requestFor(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("result content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestNewServer(t *testing.T) {
	controller := newFakeController()
	server := NewServer(controller)

	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.controller != controller {
		t.Error("NewServer() did not set the controller")
	}
	if server.server == nil {
		t.Error("NewServer() did not create the MCP server")
	}
}

func TestServer_handlePressKey(t *testing.T) {
	controller := newFakeController()
	server := NewServer(controller)

	result, err := server.handlePressKey(context.Background(), requestFor(map[string]interface{}{
		"instance": "key-1",
	}))
	if err != nil {
		t.Fatalf("handlePressKey() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("handlePressKey() returned error result: %s", resultText(t, result))
	}

	if len(controller.taps) != 1 || controller.taps[0] != "key-1" {
		t.Errorf("taps = %v, want one tap on key-1", controller.taps)
	}
	if !strings.Contains(resultText(t, result), "idle_work") {
		t.Error("result should include the resulting phase")
	}
}

func TestServer_handlePressKey_MissingInstance(t *testing.T) {
	server := NewServer(newFakeController())

	result, err := server.handlePressKey(context.Background(), requestFor(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handlePressKey() error = %v", err)
	}
	if !result.IsError {
		t.Error("handlePressKey() should return an error result without an instance")
	}
}

func TestServer_handleHoldKey(t *testing.T) {
	controller := newFakeController()
	server := NewServer(controller)

	result, err := server.handleHoldKey(context.Background(), requestFor(map[string]interface{}{
		"instance": "key-1",
	}))
	if err != nil {
		t.Fatalf("handleHoldKey() error = %v", err)
	}
	if result.IsError {
		t.Fatal("handleHoldKey() returned error result")
	}
	if len(controller.holds) != 1 {
		t.Errorf("holds = %v, want one hold", controller.holds)
	}
}

func TestServer_handleGetTimerState_Unknown(t *testing.T) {
	server := NewServer(newFakeController())

	result, err := server.handleGetTimerState(context.Background(), requestFor(map[string]interface{}{
		"instance": "ghost",
	}))
	if err != nil {
		t.Fatalf("handleGetTimerState() error = %v", err)
	}
	if !result.IsError {
		t.Error("handleGetTimerState() should report unknown instances")
	}
}

func TestServer_handleUpdateSettings(t *testing.T) {
	controller := newFakeController()
	server := NewServer(controller)

	result, err := server.handleUpdateSettings(context.Background(), requestFor(map[string]interface{}{
		"instance":      "key-1",
		"work_minutes":  float64(50),
		"num_cycles":    float64(3),
		"sound_enabled": true,
	}))
	if err != nil {
		t.Fatalf("handleUpdateSettings() error = %v", err)
	}
	if result.IsError {
		t.Fatal("handleUpdateSettings() returned error result")
	}

	raw := controller.updates["key-1"]
	if raw == nil {
		t.Fatal("settings were not forwarded to the controller")
	}
	if raw["workTime"] != float64(50) {
		t.Errorf("workTime = %v, want 50", raw["workTime"])
	}
	if raw["numCycles"] != float64(3) {
		t.Errorf("numCycles = %v, want 3", raw["numCycles"])
	}
	if _, ok := raw["breakTime"]; ok {
		t.Error("omitted break_minutes should not appear in the raw settings")
	}
	if raw["soundEnabled"] != true {
		t.Errorf("soundEnabled = %v, want true", raw["soundEnabled"])
	}
}

func TestServer_handleUpdateSettings_OmittedSoundLeftAlone(t *testing.T) {
	controller := newFakeController()
	server := NewServer(controller)

	// Updating only the work duration must not smuggle in
	// soundEnabled=false and silently mute a timer whose defaults
	// enable sound.
	result, err := server.handleUpdateSettings(context.Background(), requestFor(map[string]interface{}{
		"instance":     "key-1",
		"work_minutes": float64(30),
	}))
	if err != nil {
		t.Fatalf("handleUpdateSettings() error = %v", err)
	}
	if result.IsError {
		t.Fatal("handleUpdateSettings() returned error result")
	}

	raw := controller.updates["key-1"]
	if raw == nil {
		t.Fatal("settings were not forwarded to the controller")
	}
	if got, ok := raw["soundEnabled"]; ok {
		t.Errorf("soundEnabled = %v, want the key absent when the argument is omitted", got)
	}

	// An explicit false still comes through.
	_, err = server.handleUpdateSettings(context.Background(), requestFor(map[string]interface{}{
		"instance":      "key-1",
		"sound_enabled": false,
	}))
	if err != nil {
		t.Fatalf("handleUpdateSettings() error = %v", err)
	}
	if got := controller.updates["key-1"]["soundEnabled"]; got != false {
		t.Errorf("soundEnabled = %v, want false", got)
	}
}

func TestServer_handleListInstances(t *testing.T) {
	controller := newFakeController()
	controller.ensure("key-1")
	controller.ensure("key-2")
	server := NewServer(controller)

	result, err := server.handleListInstances(context.Background(), requestFor(nil))
	if err != nil {
		t.Fatalf("handleListInstances() error = %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "key-1") || !strings.Contains(text, "key-2") {
		t.Errorf("result should list both instances, got: %s", text)
	}
	if !strings.Contains(text, `"total_count": 2`) {
		t.Errorf("result should include the count, got: %s", text)
	}
}
