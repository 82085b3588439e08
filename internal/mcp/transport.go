// Package mcp is the client side of the MCP authoring service protocol.
//
// The MCP server is an external process that authors 3D content (Blender
// model generation, export) and performs engine-side asset operations. This
// package speaks its HTTP JSON protocol: GET /status for the health probe,
// POST /api/blender/command and /api/unreal/command for commands.
//
// Every operation is asynchronous and completes a continuation exactly once.
// Continuations run on an I/O goroutine; callers that mutate world state
// must marshal to the game thread themselves.
package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"
)

// ResponseFunc receives the outcome of a single HTTP exchange.
// ok is true iff the connection succeeded, the server answered 200, and the
// body parsed as a JSON object. On failure body is nil.
type ResponseFunc func(ok bool, body map[string]interface{})

// Transport performs single request/response exchanges against absolute URLs
// and delivers the parsed JSON body to a continuation.
type Transport struct {
	client *http.Client
}

// NewTransport creates a transport with the default HTTP client settings.
func NewTransport() *Transport {
	return &Transport{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewTransportWithClient creates a transport using the supplied HTTP client.
// Tests inject a client pointed at an httptest server.
func NewTransportWithClient(client *http.Client) *Transport {
	return &Transport{client: client}
}

// Get issues a GET request to url and completes cont with the parsed body.
// The request is dispatched on a fresh goroutine; Get never blocks.
func (t *Transport) Get(url string, cont ResponseFunc) {
	go func() {
		resp, err := t.client.Get(url)
		t.complete(url, resp, err, cont)
	}()
}

// Post issues a POST request with a JSON body and completes cont with the
// parsed response. The request is dispatched on a fresh goroutine.
func (t *Transport) Post(url string, payload []byte, cont ResponseFunc) {
	go func() {
		resp, err := t.client.Post(url, "application/json", bytes.NewReader(payload))
		t.complete(url, resp, err, cont)
	}()
}

// complete is the single place a continuation is invoked. Centralizing the
// completion keeps the exactly-once contract in one spot.
func (t *Transport) complete(url string, resp *http.Response, err error, cont ResponseFunc) {
	if err != nil {
		log.Printf("❌ MCP request to %s failed to connect: %v", url, err)
		cont(false, nil)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("❌ MCP response from %s could not be read: %v", url, err)
		cont(false, nil)
		return
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ MCP request to %s returned HTTP %d", url, resp.StatusCode)
		cont(false, nil)
		return
	}

	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		log.Printf("❌ MCP response from %s is not a JSON object: %v", url, err)
		cont(false, nil)
		return
	}

	cont(true, body)
}
