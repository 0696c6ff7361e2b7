package mcp

import (
	"context"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil analysis service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingAnalysisService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Analysis: &mockAnalysisService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil analysis service returns error", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingAnalysisService)
	})

	t.Run("analysis only is valid", func(t *testing.T) {
		ports := &Ports{Analysis: &mockAnalysisService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Analysis: &mockAnalysisService{},
			Receipt:  &mockReceiptService{},
			UserID:   "ayse",
		}
		assert.NoError(t, ports.Validate())
	})
}

func TestPorts_UserDefaultsToLocal(t *testing.T) {
	assert.Equal(t, "local", (&Ports{}).user())
	assert.Equal(t, "ayse", (&Ports{UserID: "ayse"}).user())
}

func connect(t *testing.T, ports *Ports) *mcp.ClientSession {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	_, err = server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func TestServer_ListsTools(t *testing.T) {
	session := connect(t, &Ports{Analysis: &mockAnalysisService{}})

	result, err := session.ListTools(context.Background(), nil)

	require.NoError(t, err)
	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"list_categories", "list_products", "product_history", "spending_summary"}, names)
}

func TestServer_ResourcesNeedReceiptService(t *testing.T) {
	withReceipts := connect(t, &Ports{Analysis: &mockAnalysisService{}, Receipt: &mockReceiptService{}})
	result, err := withReceipts.ListResources(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Resources, 1)
	assert.Equal(t, "receipta://receipts", result.Resources[0].URI)

	server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}})
	require.NoError(t, err)
	assert.NotNil(t, server.Handler())
}
