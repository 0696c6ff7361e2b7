package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/receipta/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/receipta/internal/core/services"
	"github.com/custodia-labs/receipta/internal/locale"
)

func TestNewPorts(t *testing.T) {
	store := memory.NewReceiptStore()
	analysis := services.NewAnalysisService(store, locale.Default())
	receipt := services.NewReceiptService(store, nil, nil)

	ports := NewPorts(analysis, receipt, "ayse")

	require.NoError(t, ports.Validate())
	assert.Equal(t, "ayse", ports.user())
	assert.Nil(t, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	store := memory.NewReceiptStore()
	analysis := services.NewAnalysisService(store, locale.Default())
	receipt := services.NewReceiptService(store, nil, nil)

	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{name: "nil ports", ports: nil, want: ErrInvalidPorts},
		{name: "missing analysis", ports: &Ports{Receipt: receipt}, want: ErrMissingAnalysisService},
		{name: "missing receipt", ports: &Ports{Analysis: analysis}, want: ErrMissingReceiptService},
		{name: "settings optional", ports: &Ports{Analysis: analysis, Receipt: receipt}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPorts_DefaultUser(t *testing.T) {
	assert.Equal(t, "local", (&Ports{}).user())
}
