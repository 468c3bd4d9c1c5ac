package jsonstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tasklist/internal/adapters/jsonstore"
	"go.trai.ch/tasklist/internal/core/domain"
)

func TestStore_LoadAbsent(t *testing.T) {
	s := jsonstore.New(t.TempDir(), domain.DefaultSlotKey)

	tasks, found, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, tasks)
}

func TestStore_SaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".tasklist")
	s := jsonstore.New(dir, domain.DefaultSlotKey)
	ctx := context.Background()

	want := []domain.Task{
		{ID: "1", Text: "Buy milk", CreatedAt: "2024-01-01 10:00:00"},
		{ID: "2", Text: "Walk dog", CreatedAt: "2024-01-01 11:00:00", Completed: true},
	}
	require.NoError(t, s.Save(ctx, want))
	assert.Equal(t, filepath.Join(dir, "todolist_tasks.json"), s.Path())

	got, found, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, s.Save(ctx, nil))
	got, found, err = s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found, "an emptied collection is still a written slot")
	assert.Empty(t, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestStore_LoadsForeignPayload(t *testing.T) {
	dir := t.TempDir()
	payload := `[{"id":"1700000000000","text":"from the old screen","createdAt":"11/14/2023, 10:13:20 PM","completed":false}]`
	require.NoError(t, os.WriteFile(domain.SlotPath(dir, domain.DefaultSlotKey), []byte(payload), domain.FilePerm))

	tasks, found, err := jsonstore.New(dir, domain.DefaultSlotKey).Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, tasks, 1)
	assert.Equal(t, "11/14/2023, 10:13:20 PM", tasks[0].CreatedAt)
}

func TestStore_LoadsIncompleteRecords(t *testing.T) {
	dir := t.TempDir()
	payload := `[{"id":"1","text":"keep me"},{"id":"2","text":""},{"id":"3","text":"me too"}]`
	require.NoError(t, os.WriteFile(domain.SlotPath(dir, domain.DefaultSlotKey), []byte(payload), domain.FilePerm))

	tasks, found, err := jsonstore.New(dir, domain.DefaultSlotKey).Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, tasks, 3)
	assert.Equal(t, "keep me", tasks[0].Text)
	assert.Empty(t, tasks[1].Text)
	assert.Equal(t, "me too", tasks[2].Text)
}

func TestStore_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.SlotPath(dir, "k"), []byte("{not json"), domain.FilePerm))

	_, found, err := jsonstore.New(dir, "k").Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSlotMalformed)
	assert.False(t, found)
}

func TestStore_EmptyFileIsAbsent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.SlotPath(dir, "k"), nil, domain.FilePerm))

	_, found, err := jsonstore.New(dir, "k").Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_ReadError(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be cannot be read as a file.
	require.NoError(t, os.Mkdir(domain.SlotPath(dir, "k"), domain.DirPerm))

	_, _, err := jsonstore.New(dir, "k").Load(context.Background())
	require.ErrorContains(t, err, domain.ErrStoreReadFailed.Error())
}

func TestStore_WriteError(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), domain.FilePerm))

	s := jsonstore.New(filepath.Join(blocker, "sub"), "k")
	err := s.Save(context.Background(), []domain.Task{{ID: "1", Text: "x"}})
	require.ErrorContains(t, err, domain.ErrStoreCreateFailed.Error())
}

func TestStore_Closed(t *testing.T) {
	s := jsonstore.New(t.TempDir(), "k")
	require.NoError(t, s.Close())

	_, _, err := s.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreClosed)
	require.ErrorIs(t, s.Save(context.Background(), nil), domain.ErrStoreClosed)
}

func TestStore_CancelledLoad(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := jsonstore.New(t.TempDir(), "k").Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
