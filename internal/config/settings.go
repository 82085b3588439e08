package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// MCPSettingsFileName is the conventional name of the MCP settings document
// under the project's config directory.
const MCPSettingsFileName = "mcp_settings.json"

// MCPSettings holds the MCP server endpoint read from mcp_settings.json.
// A missing or malformed document is not an error: the defaults stand.
type MCPSettings struct {
	Host string
	Port int
}

// DefaultMCPSettings returns the default MCP server endpoint.
func DefaultMCPSettings() MCPSettings {
	return MCPSettings{
		Host: "127.0.0.1",
		Port: 8080,
	}
}

// ServerURL returns the base URL for the MCP server, e.g. "http://127.0.0.1:8080".
func (s MCPSettings) ServerURL() string {
	return fmt.Sprintf("http://%s:%d", s.Host, s.Port)
}

// MCPSettingsPath returns the path of the settings document. The project
// config directory defaults to ./config and can be overridden with
// MCP_CONFIG_DIR (useful for tests and packaged deployments).
func MCPSettingsPath() string {
	dir := os.Getenv("MCP_CONFIG_DIR")
	if dir == "" {
		dir = "config"
	}
	return filepath.Join(dir, MCPSettingsFileName)
}

// settingsDocument matches the on-disk JSON shape:
//
//	{ "server": { "host": "127.0.0.1", "port": 8080 } }
//
// Unknown fields are ignored.
type settingsDocument struct {
	Server struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	} `json:"server"`
}

// LoadMCPSettings reads the settings document at path. Missing file or
// malformed JSON falls back to defaults; only server.host and server.port
// are read.
func LoadMCPSettings(path string) MCPSettings {
	settings := DefaultMCPSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("💡 No MCP settings at %s, using defaults (%s)", path, settings.ServerURL())
		return settings
	}

	var doc settingsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("💡 MCP settings at %s are malformed (%v), using defaults", path, err)
		return settings
	}

	if doc.Server.Host != "" {
		settings.Host = doc.Server.Host
	}
	if doc.Server.Port > 0 {
		settings.Port = doc.Server.Port
	}

	log.Printf("✅ MCP settings loaded: %s", settings.ServerURL())
	return settings
}
