package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEntities(t *testing.T) {
	found := ExtractEntities("Q: How do you treat acute STEMI?\nA: Give antacids and observe.")
	assert.Equal(t, []string{"stemi", "antacids"}, found)
}

func TestExtractEntities_Punctuation(t *testing.T) {
	found := ExtractEntities("Give epinephrine, then aspirin.")
	assert.Equal(t, []string{"epinephrine", "aspirin"}, found)
}

func TestExtractEntities_Sentinel(t *testing.T) {
	found := ExtractEntities("no clinical vocabulary here at all")
	assert.Equal(t, []string{SentinelEntity}, found)

	found = ExtractEntities("")
	assert.Equal(t, []string{SentinelEntity}, found)
}

func TestNew_EntitiesNeverEmpty(t *testing.T) {
	s := New("patient presented with sepsis", nil, 1, 20.0, "critical_care")
	require.NotEmpty(t, s.Entities)
	assert.Equal(t, []string{"sepsis"}, s.Entities)

	s = New("nothing medical", nil, 0, 0, "")
	require.NotEmpty(t, s.Entities)
	assert.Equal(t, SentinelEntity, s.Entities[0])
	assert.Equal(t, "general", s.Specialty)
}

func TestNew_KeepsGivenEntities(t *testing.T) {
	s := New("whatever", []string{"stemi", "aspirin"}, 0, 0, "cardiology")
	assert.Equal(t, []string{"stemi", "aspirin"}, s.Entities)
}
