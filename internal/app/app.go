// Package app implements the application layer for tasklist.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/tasklist/internal/adapters/detector"
	"go.trai.ch/tasklist/internal/adapters/linear"
	"go.trai.ch/tasklist/internal/adapters/tui"
	"go.trai.ch/tasklist/internal/core/domain"
	"go.trai.ch/tasklist/internal/core/ports"
	"go.trai.ch/tasklist/internal/engine/taskstore"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	repos        ports.RepositoryFactory
	logger       ports.Logger
	tracer       ports.Tracer
	stdout       io.Writer
	teaOptions   []tea.ProgramOption
	storeOptions []taskstore.Option
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	repos ports.RepositoryFactory,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		repos:        repos,
		logger:       log,
		tracer:       tracer,
		stdout:       os.Stdout,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithStoreOptions adds options applied to every task store the App opens,
// after the ones derived from the configuration.
func (a *App) WithStoreOptions(opts ...taskstore.Option) *App {
	a.storeOptions = append(a.storeOptions, opts...)
	return a
}

// WithOutput sets where list output and the interactive screen are written.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// Options are shared by every command.
type Options struct {
	// ConfigPath is an explicit config file; empty means tasklist.yaml in the working directory.
	ConfigPath string
}

// Add creates a task from text and waits until it is written.
// A failed write is returned and wraps domain.ErrPersistenceWrite.
func (a *App) Add(ctx context.Context, opts Options, text string) (task domain.Task, err error) {
	s, err := a.open(ctx, opts)
	if err != nil {
		return domain.Task{}, err
	}
	defer func() { err = errors.Join(err, s.close(ctx)) }()

	return s.store.Add(ctx, text)
}

// Toggle flips the completion of the tasks with id.
// It reports whether any task matched.
func (a *App) Toggle(ctx context.Context, opts Options, id string) (found bool, err error) {
	s, err := a.open(ctx, opts)
	if err != nil {
		return false, err
	}
	defer func() { err = errors.Join(err, s.close(ctx)) }()

	return s.store.Toggle(ctx, id), nil
}

// Remove deletes the tasks with id.
// It reports whether any task matched.
func (a *App) Remove(ctx context.Context, opts Options, id string) (found bool, err error) {
	s, err := a.open(ctx, opts)
	if err != nil {
		return false, err
	}
	defer func() { err = errors.Join(err, s.close(ctx)) }()

	return s.store.Remove(ctx, id), nil
}

// ListOptions configures List.
type ListOptions struct {
	// JSON prints the stored JSON array instead of the text rendering.
	JSON bool
}

// List prints the current collection.
func (a *App) List(ctx context.Context, opts Options, listOpts ListOptions) (err error) {
	s, err := a.open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.close(ctx)) }()

	snap := s.store.Snapshot()
	if listOpts.JSON {
		data, err := domain.MarshalTasks(snap.Tasks())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(a.stdout, "%s\n", data)
		return err
	}

	return linear.NewRenderer(a.stdout).Render(snap)
}

// UI runs the interactive screen until the user quits or ctx is cancelled.
func (a *App) UI(ctx context.Context, opts Options) (err error) {
	s, err := a.open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.close(ctx)) }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.NewModel(ctx, s.store, a.stdout)
	teaOpts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(a.stdout)}, a.teaOptions...)
	screen := tui.NewScreen(model, teaOpts...)

	g, gctx := errgroup.WithContext(ctx)

	// Screen Routine
	g.Go(func() error {
		defer cancel()
		screen.Start()
		if err := screen.Wait(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	})

	// Shutdown Routine
	g.Go(func() error {
		<-gctx.Done()
		screen.Stop()
		return nil
	})

	return g.Wait()
}

// Default runs the screen on an interactive terminal and prints the list otherwise.
// mode is the --mode flag value.
func (a *App) Default(ctx context.Context, opts Options, mode string) error {
	resolved, err := detector.ResolveMode(detector.DetectEnvironment(), mode)
	if err != nil {
		return err
	}
	if resolved == detector.ModeTUI {
		return a.UI(ctx, opts)
	}
	return a.List(ctx, opts, ListOptions{})
}
