package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeCmd_Metadata(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
	assert.Contains(t, serveCmd.Long, "/api/products")
	assert.NotNil(t, serveCmd.Flags().Lookup("addr"))
}

func TestServeCmd_NoService(t *testing.T) {
	prev := analysisService
	analysisService = nil
	defer func() { analysisService = prev }()

	_, err := runCommand(t, "serve")

	assert.EqualError(t, err, "analysis service not configured")
}

func TestMCPServeCmd_Metadata(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
	assert.Equal(t, "serve", mcpServeCmd.Use)
	assert.Contains(t, mcpServeCmd.Long, "receipta://receipts")
	assert.NotNil(t, mcpServeCmd.Flags().Lookup("addr"))
}

func TestMCPServeCmd_NoService(t *testing.T) {
	prev := analysisService
	analysisService = nil
	defer func() { analysisService = prev }()

	_, err := runCommand(t, "mcp", "serve")

	assert.EqualError(t, err, "analysis service not configured")
}
