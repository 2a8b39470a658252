package config

import (
	"bytes"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/brushwork/brush"
)

const sample = `
[brush]
color = "#1e3a8a"
eraser = true

[brush.settings]
radius_logarithmic = 2.5
hardness = 0.6

[undo]
limit = 20

[postprocess]
enabled = false
delay_msec = 250

[log]
level = "debug"
`

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "Paint", c.Undo.Description)
	assert.True(t, c.PostProcess.Enabled)
	assert.Equal(t, 100*time.Millisecond, c.PostProcess.Delay())

	fg, err := c.Brush.Foreground()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{A: 255}, fg)
}

func TestRead(t *testing.T) {
	c, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	fg, err := c.Brush.Foreground()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 255}, fg)
	assert.True(t, c.Brush.Eraser)
	assert.False(t, c.Brush.LockAlpha)
	assert.Equal(t, map[string]float32{"radius_logarithmic": 2.5, "hardness": 0.6}, c.Brush.Settings)

	assert.Equal(t, "Paint", c.Undo.Description, "missing keys keep defaults")
	assert.Equal(t, 20, c.Undo.Limit)
	assert.False(t, c.PostProcess.Enabled)
	assert.Equal(t, 250*time.Millisecond, c.PostProcess.Delay())

	lvl, err := c.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"unknown setting", "[brush.settings]\nsparkle = 1\n", ErrUnknownSetting},
		{"setting out of range", "[brush.settings]\nhardness = 3\n", ErrInvalid},
		{"bad color", "[brush]\ncolor = \"#12345\"\n", ErrInvalid},
		{"not hex", "[brush]\ncolor = \"#zzzzzz\"\n", ErrInvalid},
		{"negative limit", "[undo]\nlimit = -1\n", ErrInvalid},
		{"negative delay", "[postprocess]\ndelay_msec = -5\n", ErrInvalid},
		{"bad level", "[log]\nlevel = \"loud\"\n", ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadRejectsUnknownKeys(t *testing.T) {
	_, err := Read(strings.NewReader("[undo]\ndepth = 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")

	_, err = Read(strings.NewReader("[undo\n"))
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	c, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, c))
	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brushwork.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, c.Undo.Limit)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApply(t *testing.T) {
	c, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	b := brush.New()
	require.NoError(t, c.Brush.Apply(b))
	assert.Equal(t, float32(2.5), b.BaseValue(brush.SettingRadiusLog))
	assert.Equal(t, float32(0.6), b.BaseValue(brush.SettingHardness))
	assert.True(t, b.Dirty())

	bad := Brush{Settings: map[string]float32{"nope": 1}}
	assert.ErrorIs(t, bad.Apply(b), ErrUnknownSetting)
}
