package sample

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.jsonl")
	content := `{"text":"Q: STEMI?\nA: antacids","entities":["stemi","antacids"],"true_label":1,"true_severity":25,"specialty":"cardiology"}

{"text":"treat sepsis with fluids","true_label":0,"true_severity":0}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	samples, err := LoadJSONL(path)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, []string{"stemi", "antacids"}, samples[0].Entities)
	assert.Equal(t, 1, samples[0].TrueLabel)
	assert.Equal(t, 25.0, samples[0].TrueSeverity)

	// entities derived from text, specialty defaulted
	assert.Equal(t, []string{"sepsis"}, samples[1].Entities)
	assert.Equal(t, "general", samples[1].Specialty)
}

func TestLoadJSONL_Errors(t *testing.T) {
	_, err := LoadJSONL("")
	assert.Error(t, err)

	_, err = LoadJSONL(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not json\n"), 0600))
	_, err = LoadJSONL(path)
	assert.Error(t, err)
}
