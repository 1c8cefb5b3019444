package kern

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestFromMap(t *testing.T) {
	cfg, err := FromMap(map[string]any{
		"a":   2,
		"l":   []any{1, 2.0},
		"dim": 2,
	})
	require.NoError(t, err)
	require.NotNil(t, cfg.Amplitude)
	assert.Equal(t, 2.0, *cfg.Amplitude)
	require.NotNil(t, cfg.Dimension)
	assert.Equal(t, 2, *cfg.Dimension)
	assert.Equal(t, Sequence{1, 2}, cfg.LengthScale)
	assert.Nil(t, cfg.LogVariance)
	assert.Nil(t, cfg.LogLengthScale)

	k, err := NewDRW(cfg)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, k.Variance(), 1e-12)
	assert.Equal(t, 2, k.Dim())
}

func TestFromMap_LogKeys(t *testing.T) {
	cfg, err := FromMap(map[string]any{
		"loga2":    0.5,
		"variance": 10.0,
		"logl":     -1.0,
	})
	require.NoError(t, err)
	k, err := NewDRW(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.5, k.LogVariance())
	assert.Equal(t, []float64{-1.0}, k.LogLengthScale())
}

func TestFromMap_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    map[string]any
		invalid bool
	}{
		{"bad length scale", map[string]any{"l": struct{}{}}, true},
		{"bad log length scale", map[string]any{"logl": "x"}, true},
		{"bad variance", map[string]any{"loga2": "big"}, true},
		{"fractional dim", map[string]any{"dim": 2.5}, true},
		{"unknown key", map[string]any{"sigma": 1.0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidHyperparameter))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kernel.yaml")
	data := []byte("variance: 4\nl: [1, 1]\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	k, err := NewDRW(cfg)
	require.NoError(t, err)
	val, err := k.Evaluate([]float64{0, 0}, []float64{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 4*math.Exp(-2), val, 1e-12)
}

func TestLoadConfig_Broadcast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kernel.yaml")
	data := []byte("dim: 3\nlogl: 0.25\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	k, err := NewDRW(cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, k.Dim())
	assert.Equal(t, []float64{0.25, 0.25, 0.25}, k.LogLengthScale())
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("invalid length scale", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kernel.yaml")
		require.NoError(t, os.WriteFile(path, []byte("l: {x: 1}\n"), 0o644))
		_, err := LoadConfig(path)
		assert.ErrorIs(t, err, ErrInvalidHyperparameter)
	})
}
