package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tasklist/internal/adapters/jsonstore"
	"go.trai.ch/tasklist/internal/adapters/telemetry"
	"go.trai.ch/tasklist/internal/app"
	"go.trai.ch/tasklist/internal/core/domain"
	"go.trai.ch/tasklist/internal/core/ports"
	"go.trai.ch/tasklist/internal/core/ports/mocks"
	"go.trai.ch/tasklist/internal/engine/taskstore"
	"go.uber.org/mock/gomock"
)

type appTestMocks struct {
	loader *mocks.MockConfigLoader
	repos  *mocks.MockRepositoryFactory
	logger *mocks.MockLogger
	dir    string
	out    *bytes.Buffer
}

// setupAppTest builds an App whose config points at a temporary file store.
// The loader and factory are expected to be used at most once.
func setupAppTest(t *testing.T) (*app.App, appTestMocks) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	ctrl := gomock.NewController(t)
	m := appTestMocks{
		loader: mocks.NewMockConfigLoader(ctrl),
		repos:  mocks.NewMockRepositoryFactory(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		dir:    t.TempDir(),
		out:    &bytes.Buffer{},
	}

	cfg := domain.DefaultConfig()
	cfg.Storage.Dir = m.dir
	m.loader.EXPECT().Load(gomock.Any(), "").Return(cfg, nil).MaxTimes(1)
	m.repos.EXPECT().Open(gomock.Any(), cfg.Storage).
		DoAndReturn(func(_ context.Context, sc domain.StorageConfig) (ports.TaskRepository, error) {
			return jsonstore.New(sc.Dir, sc.Key), nil
		}).MaxTimes(1)

	n := 0
	a := app.New(m.loader, m.repos, m.logger, telemetry.NewNoOpTracer()).
		WithOutput(m.out).
		WithStoreOptions(
			taskstore.WithIDGenerator(func() string {
				n++
				return "task-" + strconv.Itoa(n)
			}),
			taskstore.WithClock(func() time.Time {
				return time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
			}),
		)
	return a, m
}

func seed(t *testing.T, dir string, tasks ...domain.Task) {
	t.Helper()
	require.NoError(t, jsonstore.New(dir, domain.DefaultSlotKey).Save(context.Background(), tasks))
}

func stored(t *testing.T, dir string) []domain.Task {
	t.Helper()
	tasks, _, err := jsonstore.New(dir, domain.DefaultSlotKey).Load(context.Background())
	require.NoError(t, err)
	return tasks
}

func TestApp_Add(t *testing.T) {
	a, m := setupAppTest(t)

	task, err := a.Add(context.Background(), app.Options{}, "  Buy milk  ")
	require.NoError(t, err)

	want := domain.Task{ID: "task-1", Text: "Buy milk", CreatedAt: "2024-06-01 12:30:00"}
	assert.Equal(t, want, task)
	assert.Equal(t, []domain.Task{want}, stored(t, m.dir), "the write is flushed before Add returns")
}

func TestApp_Add_Blank(t *testing.T) {
	a, m := setupAppTest(t)

	_, err := a.Add(context.Background(), app.Options{}, "   ")

	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
	_, statErr := os.Stat(domain.SlotPath(m.dir, domain.DefaultSlotKey))
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "nothing is written")
}

func TestApp_Toggle(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		wantFound bool
		wantDone  bool
	}{
		{"match", "a", true, true},
		{"no match", "zzz", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, m := setupAppTest(t)
			seed(t, m.dir, domain.Task{ID: "a", Text: "one", CreatedAt: "x"})

			found, err := a.Toggle(context.Background(), app.Options{}, tt.id)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantDone, stored(t, m.dir)[0].Completed)
		})
	}
}

func TestApp_Remove(t *testing.T) {
	a, m := setupAppTest(t)
	seed(t, m.dir,
		domain.Task{ID: "a", Text: "one", CreatedAt: "x"},
		domain.Task{ID: "b", Text: "two", CreatedAt: "x"},
	)

	found, err := a.Remove(context.Background(), app.Options{}, "a")
	require.NoError(t, err)

	assert.True(t, found)
	assert.Equal(t, []domain.Task{{ID: "b", Text: "two", CreatedAt: "x"}}, stored(t, m.dir))
}

func TestApp_List(t *testing.T) {
	a, m := setupAppTest(t)
	seed(t, m.dir,
		domain.Task{ID: "a", Text: "one", CreatedAt: "2024-01-01 10:00:00"},
		domain.Task{ID: "b", Text: "two", CreatedAt: "2024-01-01 11:00:00", Completed: true},
	)

	require.NoError(t, a.List(context.Background(), app.Options{}, app.ListOptions{}))

	assert.Equal(t,
		"Task List · 2 tasks\n"+
			"  [ ] a  one  · 2024-01-01 10:00:00\n"+
			"  [x] b  two  · 2024-01-01 11:00:00\n",
		m.out.String())
}

func TestApp_List_JSON(t *testing.T) {
	a, m := setupAppTest(t)
	seed(t, m.dir, domain.Task{ID: "a", Text: "one", CreatedAt: "x"})

	require.NoError(t, a.List(context.Background(), app.Options{}, app.ListOptions{JSON: true}))

	assert.JSONEq(t, `[{"id":"a","text":"one","createdAt":"x","completed":false}]`, m.out.String())
	assert.True(t, strings.HasSuffix(m.out.String(), "\n"))
}

func TestApp_List_Empty(t *testing.T) {
	a, m := setupAppTest(t)

	require.NoError(t, a.List(context.Background(), app.Options{}, app.ListOptions{}))

	assert.Contains(t, m.out.String(), "No tasks yet!")
}

func TestApp_LoadFailureStartsEmpty(t *testing.T) {
	a, m := setupAppTest(t)
	require.NoError(t, os.WriteFile(domain.SlotPath(m.dir, domain.DefaultSlotKey), []byte("{not json"), 0o600))

	m.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "failed to load tasks")
		assert.Contains(t, msg, "starting with an empty list")
	}).Times(1)

	require.NoError(t, a.List(context.Background(), app.Options{}, app.ListOptions{}))
	assert.Contains(t, m.out.String(), "0 tasks")
}

func TestApp_Add_KeepsIncompleteStoredRecords(t *testing.T) {
	a, m := setupAppTest(t)
	payload := `[{"id":"1","text":"keep me"},{"id":"2","text":""},{"id":"3","text":"me too"}]`
	require.NoError(t, os.WriteFile(domain.SlotPath(m.dir, domain.DefaultSlotKey), []byte(payload), 0o600))

	_, err := a.Add(context.Background(), app.Options{}, "new")
	require.NoError(t, err)

	tasks := stored(t, m.dir)
	texts := make([]string, len(tasks))
	for i, task := range tasks {
		texts[i] = task.Text
	}
	assert.Equal(t, []string{"keep me", "", "me too", "new"}, texts)
}

func TestApp_ConfigLoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	a := app.New(loader, mocks.NewMockRepositoryFactory(ctrl), mocks.NewMockLogger(ctrl), telemetry.NewNoOpTracer())

	loader.EXPECT().Load(gomock.Any(), "custom.yaml").Return(domain.Config{}, errors.New("config load error"))

	_, err := a.Add(context.Background(), app.Options{ConfigPath: "custom.yaml"}, "x")
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestApp_OpenError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	repos := mocks.NewMockRepositoryFactory(ctrl)
	a := app.New(loader, repos, mocks.NewMockLogger(ctrl), telemetry.NewNoOpTracer())

	loader.EXPECT().Load(gomock.Any(), "").Return(domain.DefaultConfig(), nil)
	repos.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk on fire"))

	err := a.List(context.Background(), app.Options{}, app.ListOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreOpenFailed)
	assert.ErrorContains(t, err, "disk on fire")
}

func TestApp_ClosesRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	repos := mocks.NewMockRepositoryFactory(ctrl)
	repo := mocks.NewMockTaskRepository(ctrl)
	a := app.New(loader, repos, mocks.NewMockLogger(ctrl), telemetry.NewNoOpTracer()).WithOutput(io.Discard)

	loader.EXPECT().Load(gomock.Any(), "").Return(domain.DefaultConfig(), nil)
	repos.EXPECT().Open(gomock.Any(), gomock.Any()).Return(repo, nil)
	gomock.InOrder(
		repo.EXPECT().Load(gomock.Any()).Return(nil, false, nil),
		repo.EXPECT().Close().Return(nil),
	)

	require.NoError(t, a.List(context.Background(), app.Options{}, app.ListOptions{}))
}

func TestApp_WriteFailure(t *testing.T) {
	existing := []domain.Task{{ID: "a", Text: "A", CreatedAt: "2024-06-01 12:00:00"}}
	tests := []struct {
		name string
		run  func(*app.App) error
	}{
		{"add", func(a *app.App) error {
			_, err := a.Add(context.Background(), app.Options{}, "B")
			return err
		}},
		{"toggle", func(a *app.App) error {
			_, err := a.Toggle(context.Background(), app.Options{}, "a")
			return err
		}},
		{"remove", func(a *app.App) error {
			_, err := a.Remove(context.Background(), app.Options{}, "a")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			loader := mocks.NewMockConfigLoader(ctrl)
			repos := mocks.NewMockRepositoryFactory(ctrl)
			repo := mocks.NewMockTaskRepository(ctrl)
			logger := mocks.NewMockLogger(ctrl)
			a := app.New(loader, repos, logger, telemetry.NewNoOpTracer()).WithOutput(io.Discard)

			cause := errors.New("read-only file system")
			loader.EXPECT().Load(gomock.Any(), "").Return(domain.DefaultConfig(), nil)
			repos.EXPECT().Open(gomock.Any(), gomock.Any()).Return(repo, nil)
			repo.EXPECT().Load(gomock.Any()).Return(existing, true, nil)
			repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(cause)
			repo.EXPECT().Close().Return(nil)
			logger.EXPECT().Warn(gomock.Any()).Times(1)

			err := tt.run(a)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrPersistenceWrite)
			assert.ErrorIs(t, err, cause)
		})
	}
}

func TestApp_UsesWorkingDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	a := app.New(loader, mocks.NewMockRepositoryFactory(ctrl), mocks.NewMockLogger(ctrl), telemetry.NewNoOpTracer())

	dir := t.TempDir()
	t.Chdir(dir)
	wd, err := os.Getwd()
	require.NoError(t, err)

	loader.EXPECT().Load(wd, "").Return(domain.Config{}, errors.New("stop here"))

	_, err = a.Toggle(context.Background(), app.Options{}, "x")
	require.ErrorContains(t, err, "stop here")
}

func TestApp_UI(t *testing.T) {
	a, m := setupAppTest(t)
	a.WithTeaOptions(
		tea.WithInput(strings.NewReader("milk\r\x03")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, a.UI(ctx, app.Options{}))

	tasks := stored(t, m.dir)
	require.Len(t, tasks, 1)
	assert.Equal(t, "milk", tasks[0].Text)
}

func TestApp_UI_Cancelled(t *testing.T) {
	a, m := setupAppTest(t)
	// Cancellation may land while the slot is still loading.
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	r, w := io.Pipe()
	defer func() { _ = w.Close() }()
	a.WithTeaOptions(
		tea.WithInput(r),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.UI(ctx, app.Options{}) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("UI did not stop after cancellation")
	}
}

func TestApp_Default_Linear(t *testing.T) {
	a, m := setupAppTest(t)

	require.NoError(t, a.Default(context.Background(), app.Options{}, "linear"))

	assert.Contains(t, m.out.String(), "Task List")
}

func TestApp_Default_UnknownMode(t *testing.T) {
	a, m := setupAppTest(t)

	err := a.Default(context.Background(), app.Options{}, "tiu")

	require.ErrorIs(t, err, domain.ErrUnknownMode)
	assert.Empty(t, m.out.String(), "nothing is printed")
}
