package server

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ironsheep/cubemap-net-mcp/internal/config"
)

func TestNew(t *testing.T) {
	s := New(nil)
	if s.cache == nil {
		t.Fatal("New did not initialize the image cache")
	}
	if s.cfg == nil {
		t.Fatal("New(nil) did not fall back to the default config")
	}

	cfg := config.DefaultConfig()
	cfg.Tolerances.PointAlignment = 3
	if got := New(cfg).cfg.Options().PointAlignment; got != 3 {
		t.Errorf("PointAlignment: got %d, want 3", got)
	}
}

func TestMCPRequest_IDTypes(t *testing.T) {
	tests := []struct {
		line   string
		wantID interface{}
	}{
		{`{"jsonrpc":"2.0","id":"req-7","method":"tools/list"}`, "req-7"},
		{`{"jsonrpc":"2.0","id":42,"method":"ping"}`, float64(42)},
		{`{"jsonrpc":"2.0","id":null,"method":"initialize"}`, nil},
	}

	for _, tt := range tests {
		var req MCPRequest
		if err := json.Unmarshal([]byte(tt.line), &req); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.line, err)
		}
		// Responses must echo the ID with its original JSON type.
		resp := New(nil).handleRequest(&req)
		if resp.ID != tt.wantID {
			t.Errorf("%s: response ID %v (%T), want %v (%T)", req.Method, resp.ID, resp.ID, tt.wantID, tt.wantID)
		}
	}
}

func TestHandleRequest(t *testing.T) {
	s := New(nil)

	tests := []struct {
		method    string
		wantNil   bool
		wantError int
	}{
		{"initialize", false, 0},
		{"ping", false, 0},
		{"tools/list", false, 0},
		{"notifications/initialized", true, 0},
		{"resources/list", false, -32601},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: tt.method})
			if tt.wantNil {
				if resp != nil {
					t.Errorf("expected no response, got %+v", resp)
				}
				return
			}
			if resp == nil {
				t.Fatal("handleRequest returned nil")
			}
			if resp.JSONRPC != "2.0" {
				t.Errorf("JSONRPC: got %s, want 2.0", resp.JSONRPC)
			}
			switch {
			case tt.wantError == 0 && resp.Error != nil:
				t.Errorf("unexpected error: %+v", resp.Error)
			case tt.wantError != 0 && (resp.Error == nil || resp.Error.Code != tt.wantError):
				t.Errorf("error: got %+v, want code %d", resp.Error, tt.wantError)
			}
		})
	}
}

func TestHandleInitialize(t *testing.T) {
	resp := New(nil).handleInitialize(&MCPRequest{JSONRPC: "2.0", ID: "init-1"})

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("serverInfo should be a map")
	}
	if serverInfo["name"] != "cubemap-net-mcp" {
		t.Errorf("serverInfo.name: got %v", serverInfo["name"])
	}
	if serverInfo["version"] != "0.1.0" {
		t.Errorf("serverInfo.version: got %v", serverInfo["version"])
	}
}

func TestServe(t *testing.T) {
	s := New(nil)
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	// The notification and the blank line produce nothing.
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 responses, got %d: %q", len(lines), out.String())
	}

	var parseErr MCPResponse
	if err := json.Unmarshal([]byte(lines[1]), &parseErr); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if parseErr.Error == nil || parseErr.Error.Code != -32700 {
		t.Errorf("malformed line: got %+v, want -32700", parseErr.Error)
	}
	if parseErr.ID != nil {
		t.Errorf("malformed line ID: got %v, want null", parseErr.ID)
	}

	var resp MCPResponse
	if err := json.Unmarshal([]byte(lines[2]), &resp); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if resp.ID != float64(2) {
		t.Errorf("ID: got %v, want 2", resp.ID)
	}
}

func TestServe_ProtocolVersion(t *testing.T) {
	var out bytes.Buffer
	in := `{"jsonrpc":"1.0","id":7,"method":"ping"}`
	if err := New(nil).Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var resp MCPResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != -32600 {
		t.Fatalf("got %+v, want -32600", resp.Error)
	}
	if resp.ID != float64(7) {
		t.Errorf("ID: got %v, want 7", resp.ID)
	}
}

func TestHandleToolsCall_RecoversPanic(t *testing.T) {
	// A server without a cache panics on the first load.
	s := &Server{cfg: config.DefaultConfig()}
	resp := callTool(t, s, "image_load", map[string]interface{}{"path": createTestImageFile(t, 8, 8, netBackground)})

	if resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != -32603 {
		t.Errorf("code: got %d, want -32603", resp.Error.Code)
	}
	if resp.ID != 1 {
		t.Errorf("ID: got %v, want 1", resp.ID)
	}
}

func TestServe_ToolsList(t *testing.T) {
	var out bytes.Buffer
	in := `{"jsonrpc":"2.0","id":"l","method":"tools/list"}`
	if err := New(nil).Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var resp struct {
		Result struct {
			Tools []Tool `json:"tools"`
		} `json:"result"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if len(resp.Result.Tools) != len(expectedTools) {
		t.Errorf("tools: got %d, want %d", len(resp.Result.Tools), len(expectedTools))
	}
}
