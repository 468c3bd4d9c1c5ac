package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tasklist/internal/core/domain"
)

func TestSnapshot_Isolation(t *testing.T) {
	tasks := sample()
	snap := domain.NewSnapshot(tasks, 7)

	tasks[0].Text = "mutated"
	assert.Equal(t, "first", snap.At(0).Text)

	out := snap.Tasks()
	out[1].Text = "mutated"
	assert.Equal(t, "second", snap.At(1).Text)

	assert.Equal(t, uint64(7), snap.Revision())
	assert.Equal(t, 3, snap.Len())
}

func TestSnapshot_FindAndAll(t *testing.T) {
	snap := domain.NewSnapshot(sample(), 1)

	task, ok := snap.Find("b")
	require.True(t, ok)
	assert.Equal(t, "second", task.Text)

	_, ok = snap.Find("missing")
	assert.False(t, ok)

	var ids []string
	for i, task := range snap.All() {
		assert.Equal(t, snap.At(i), task)
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	var first []string
	for _, task := range snap.All() {
		first = append(first, task.ID)
		break
	}
	assert.Equal(t, []string{"a"}, first)
}

func TestSnapshot_ZeroValue(t *testing.T) {
	var snap domain.Snapshot
	assert.Equal(t, 0, snap.Len())
	assert.Equal(t, uint64(0), snap.Revision())
	assert.Empty(t, snap.Tasks())
}
