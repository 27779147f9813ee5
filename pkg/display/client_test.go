// pkg/display/client_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None (layout only)
// PURPOSE: Test the client connection widgets

package display_test

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sidechan/pkg/display"
)

func sampleClient() mcp.Implementation {
	return mcp.Implementation{Name: "Claude Desktop", Version: "1.2.3"}
}

func capabilities(t *testing.T, raw string) *mcp.ClientCapabilities {
	t.Helper()
	var caps mcp.ClientCapabilities
	require.NoError(t, json.Unmarshal([]byte(raw), &caps))
	return &caps
}

func sampleCapabilities(t *testing.T) *mcp.ClientCapabilities {
	return capabilities(t, `{"sampling":{},"roots":{"listChanged":true}}`)
}

func TestFormatCapabilities(t *testing.T) {
	assert.Equal(t, "", display.FormatCapabilities(mcp.ClientCapabilities{}))
	assert.Equal(t, "sampling, roots (list_changed)", display.FormatCapabilities(*sampleCapabilities(t)))

	assert.Equal(t, "roots", display.FormatCapabilities(*capabilities(t, `{"roots":{}}`)))
}

func TestClientConnected(t *testing.T) {
	tests := []struct {
		name     string
		client   mcp.Implementation
		caps     *mcp.ClientCapabilities
		expected []string
	}{
		{
			name:     "name and version",
			client:   sampleClient(),
			expected: []string{"Client Connected: Claude Desktop v1.2.3"},
		},
		{
			name:     "empty capabilities add nothing",
			client:   sampleClient(),
			caps:     &mcp.ClientCapabilities{},
			expected: []string{"Client Connected: Claude Desktop v1.2.3"},
		},
		{
			name:   "with capabilities",
			client: sampleClient(),
			caps:   sampleCapabilities(t),
			expected: []string{
				"Client Connected: Claude Desktop v1.2.3",
				"  Capabilities: sampling, roots (list_changed)",
			},
		},
		{
			name:     "anonymous client",
			client:   mcp.Implementation{},
			expected: []string{"Client Connected: unknown client"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lines(display.ClientConnected(tt.client, tt.caps), 80))
		})
	}
}

func TestClientDisconnected(t *testing.T) {
	assert.Equal(t, "Client Disconnected: Claude Desktop", joined(display.ClientDisconnected(sampleClient(), ""), 80))
	assert.Equal(t, "Client Disconnected: Claude Desktop (timeout)", joined(display.ClientDisconnected(sampleClient(), "timeout"), 80))
}

func TestClientDetail(t *testing.T) {
	out := joined(display.ClientDetail(sampleClient(), sampleCapabilities(t)), 80)
	for _, want := range []string{"Connected Client", "Name", "Claude Desktop", "Version", "1.2.3", "sampling, roots (list_changed)"} {
		assert.Contains(t, out, want)
	}

	empty := joined(display.ClientDetail(sampleClient(), &mcp.ClientCapabilities{}), 80)
	assert.Contains(t, empty, "none")

	noCaps := joined(display.ClientDetail(sampleClient(), nil), 80)
	assert.NotContains(t, noCaps, "Capabilities")
}

func TestClientWidgetsEquivalentAcrossModes(t *testing.T) {
	assertEquivalent(t, display.ClientConnected(sampleClient(), sampleCapabilities(t)))
	assertEquivalent(t, display.ClientDisconnected(sampleClient(), "timeout"))
	assertEquivalent(t, display.ClientDetail(sampleClient(), sampleCapabilities(t)))
}
