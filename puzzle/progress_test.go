package puzzle

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/bramble"
)

func stageWith(id string, levels int) *Stage {
	st := &Stage{ID: id, Name: id}
	for i := 0; i < levels; i++ {
		st.Levels = append(st.Levels, Level{Rows: []string{"RRR   "}, Moves: 1})
	}
	return st
}

var testModes = []Mode{
	{Name: "easy", Stages: []string{"a.json", "b.json"}},
	{Name: "hard", Stages: []string{"c.json"}},
}

func TestMarkCleared(t *testing.T) {
	save := bramble.NewMemorySaveStore()
	p := NewProgress(testModes, save)
	st := stageWith("a", 3)

	assert.False(t, p.Cleared(st, 1))

	newClear, err := p.MarkCleared(st, 1)
	require.NoError(t, err)
	assert.True(t, newClear)
	assert.True(t, p.Cleared(st, 1))
	assert.Equal(t, []int{0, 1, 0}, save.Flags("a"))

	newClear, err = p.MarkCleared(st, 1)
	require.NoError(t, err)
	assert.False(t, newClear)
}

func TestMarkClearedResizesFlags(t *testing.T) {
	save := bramble.NewMemorySaveStore()
	require.NoError(t, save.SetFlags("a", []int{1}))
	p := NewProgress(testModes, save)

	_, err := p.MarkCleared(stageWith("a", 4), 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 0, 1}, save.Flags("a"))
}

func TestStageComplete(t *testing.T) {
	p := NewProgress(testModes, bramble.NewMemorySaveStore())
	st := stageWith("a", 2)

	assert.False(t, p.StageComplete(st))
	_, _ = p.MarkCleared(st, 0)
	assert.False(t, p.StageComplete(st))
	_, _ = p.MarkCleared(st, 1)
	assert.True(t, p.StageComplete(st))
}

func TestFirstUnclearedAndNextLevel(t *testing.T) {
	p := NewProgress(testModes, bramble.NewMemorySaveStore())
	st := stageWith("a", 3)

	assert.Equal(t, 0, p.FirstUncleared(st))
	assert.Equal(t, 1, p.NextLevel(st, 0))

	_, _ = p.MarkCleared(st, 0)
	_, _ = p.MarkCleared(st, 2)
	assert.Equal(t, 1, p.FirstUncleared(st))
	assert.Equal(t, 1, p.NextLevel(st, 2), "wraps around")

	_, _ = p.MarkCleared(st, 1)
	assert.Equal(t, 0, p.FirstUncleared(st))
	assert.Equal(t, 0, p.NextLevel(st, 1))
}

func TestUnlocked(t *testing.T) {
	p := NewProgress(testModes, bramble.NewMemorySaveStore())

	assert.True(t, p.Unlocked(0))
	assert.False(t, p.Unlocked(1))
	assert.False(t, p.Unlocked(2))
	assert.False(t, p.Unlocked(-1))

	_, _ = p.MarkCleared(stageWith("a", 1), 0)
	assert.False(t, p.Unlocked(1), "stage b still open")

	b := stageWith("b", 2)
	_, _ = p.MarkCleared(b, 0)
	assert.False(t, p.Unlocked(1), "stage b partly cleared")
	_, _ = p.MarkCleared(b, 1)
	assert.True(t, p.ModeComplete(0))
	assert.True(t, p.Unlocked(1))
}

func TestNextStage(t *testing.T) {
	p := NewProgress(testModes, bramble.NewMemorySaveStore())

	m, s, ok := p.NextStage(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 0, m)
	assert.Equal(t, 1, s)

	_, _, ok = p.NextStage(0, 1)
	assert.False(t, ok, "hard mode is locked")

	_, _ = p.MarkCleared(stageWith("a", 1), 0)
	_, _ = p.MarkCleared(stageWith("b", 1), 0)
	m, s, ok = p.NextStage(0, 1)
	assert.True(t, ok)
	assert.Equal(t, 1, m)
	assert.Equal(t, 0, s)

	_, _, ok = p.NextStage(1, 0)
	assert.False(t, ok)
	_, _, ok = p.NextStage(5, 0)
	assert.False(t, ok)
}

func TestProgressPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")

	save, err := bramble.OpenSaveStore(path)
	require.NoError(t, err)
	p := NewProgress(testModes, save)
	_, err = p.MarkCleared(stageWith("a", 2), 1)
	require.NoError(t, err)
	require.NoError(t, save.Flush())

	reopened, err := bramble.OpenSaveStore(path)
	require.NoError(t, err)
	p = NewProgress(testModes, reopened)
	assert.True(t, p.Cleared(stageWith("a", 2), 1))
	assert.False(t, p.Cleared(stageWith("a", 2), 0))
}
