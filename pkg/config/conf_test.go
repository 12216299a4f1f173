package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrCreate_Defaults(t *testing.T) {
	dir := t.TempDir()

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, uint64(42), c.Seed)
	assert.Equal(t, 1.0, c.UncertaintyC)
	assert.Equal(t, 0.5, c.ViolationC)
	assert.Equal(t, 400, c.DemoSize)
	assert.Equal(t, "info", c.LogLevel)
}

func TestReadOrCreate_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	c := &Config{
		Seed:         7,
		UncertaintyC: 2.0,
		ViolationC:   0.25,
		DemoSize:     100,
		LogLevel:     "debug",
	}
	require.NoError(t, Save(dir, c))

	got, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestReadOrCreate_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "conf")

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestErrors(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)

	assert.Error(t, Save("", &Config{}))
	assert.Error(t, Save(t.TempDir(), nil))
}
