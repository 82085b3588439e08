package mcp

import (
	"encoding/json"
	"fmt"
	"log"
)

// DefaultServerURL is used until SetServerURL is called.
const DefaultServerURL = "http://127.0.0.1:8080"

// Unreal-side commands understood by the MCP server.
const (
	commandImportAsset = "import_asset"
	commandSetGameMode = "set_game_mode"
	commandSaveLevel   = "save_level"
)

// commandEnvelope is the request body for command endpoints:
//
//	{ "command": "<name>", "params": { ... } }
type commandEnvelope struct {
	Command string                 `json:"command"`
	Params  map[string]interface{} `json:"params"`
}

// Client packages domain commands into request envelopes and decodes domain
// results. It holds exactly one server URL at a time; SetServerURL must not
// race with in-flight requests (callers serialize, in practice the URL is
// set once at boot before any request).
type Client struct {
	serverURL string
	transport *Transport
}

// NewClient creates a client against the default server URL.
func NewClient() *Client {
	return NewClientWithTransport(NewTransport())
}

// NewClientWithTransport creates a client using the supplied transport.
func NewClientWithTransport(transport *Transport) *Client {
	return &Client{
		serverURL: DefaultServerURL,
		transport: transport,
	}
}

// SetServerURL changes the MCP server base URL for subsequent requests.
func (c *Client) SetServerURL(url string) {
	c.serverURL = url
	log.Printf("🔧 MCP server URL set: %s", url)
}

// ServerURL returns the current MCP server base URL.
func (c *Client) ServerURL() string {
	return c.serverURL
}

// CheckConnection probes GET /status. The continuation receives true with a
// confirmation message when the server reports status "running", and false
// with a descriptive message otherwise.
func (c *Client) CheckConnection(cont func(ok bool, message string)) {
	c.transport.Get(c.serverURL+"/status", func(ok bool, body map[string]interface{}) {
		if !ok {
			cont(false, "could not connect to MCP server")
			return
		}
		status, _ := body["status"].(string)
		if status == "running" {
			cont(true, "connected to MCP server")
			return
		}
		cont(false, fmt.Sprintf("MCP server is in an unexpected state: %s", status))
	})
}

// ExecuteBlenderCommand sends an arbitrary authoring command to the Blender
// side of the MCP server and forwards the raw outcome.
func (c *Client) ExecuteBlenderCommand(command string, params map[string]interface{}, cont ResponseFunc) {
	c.postCommand(c.serverURL+"/api/blender/command", command, params, cont)
}

// ImportAsset asks the server to materialize the model at assetPath as an
// engine asset under destinationPath. On success the continuation receives
// the engine-side short name from result.asset_info.name; a missing name is
// still a success with an empty string.
func (c *Client) ImportAsset(assetPath, destinationPath string, cont func(ok bool, assetName string)) {
	params := map[string]interface{}{
		"path":        assetPath,
		"destination": destinationPath,
	}
	c.postCommand(c.serverURL+"/api/unreal/command", commandImportAsset, params, func(ok bool, body map[string]interface{}) {
		if !ok {
			cont(false, "")
			return
		}

		assetName := ""
		if result, ok := body["result"].(map[string]interface{}); ok {
			if info, ok := result["asset_info"].(map[string]interface{}); ok {
				assetName, _ = info["name"].(string)
			}
		}
		cont(true, assetName)
	})
}

// SetGameMode asks the server to switch the active game mode to the class at
// gameModePath.
func (c *Client) SetGameMode(gameModePath string, cont func(ok bool)) {
	params := map[string]interface{}{
		"game_mode": gameModePath,
	}
	c.postCommand(c.serverURL+"/api/unreal/command", commandSetGameMode, params, func(ok bool, _ map[string]interface{}) {
		cont(ok)
	})
}

// SaveLevel asks the server to persist the current level.
func (c *Client) SaveLevel(cont func(ok bool)) {
	c.postCommand(c.serverURL+"/api/unreal/command", commandSaveLevel, map[string]interface{}{}, func(ok bool, _ map[string]interface{}) {
		cont(ok)
	})
}

// postCommand marshals a command envelope and dispatches it. A marshal
// failure completes the continuation with failure instead of dropping it.
func (c *Client) postCommand(url, command string, params map[string]interface{}, cont ResponseFunc) {
	if params == nil {
		params = map[string]interface{}{}
	}
	payload, err := json.Marshal(commandEnvelope{Command: command, Params: params})
	if err != nil {
		log.Printf("❌ MCP command %q could not be encoded: %v", command, err)
		cont(false, nil)
		return
	}
	c.transport.Post(url, payload, cont)
}
