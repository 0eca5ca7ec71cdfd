package scaffold

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/guppyhq/guppy/pkg/palette"
)

// InstructionResolver resolves the argv for a project type and target path.
// The spawn layer treats it as an injected dependency so tests can substitute
// a harmless tool.
type InstructionResolver func(t ProjectType, targetPath string) ([]string, error)

// Option configures a Creator.
type Option func(*Creator)

// WithProjectsHome overrides the parent directory projects are created under.
func WithProjectsHome(dir string) Option {
	return func(c *Creator) { c.home = dir }
}

// WithOnEvent registers a callback for creation events. Events within one
// output stream arrive in order; stdout and stderr are not ordered relative
// to each other.
func WithOnEvent(fn func(Event)) Option {
	return func(c *Creator) { c.onEvent = fn }
}

// WithFixtureMode bypasses all real work: Create returns a canned manifest
// synchronously without spawning a process or touching the filesystem.
func WithFixtureMode(on bool) Option {
	return func(c *Creator) { c.fixture = on }
}

// WithIgnoreExitCode restores the legacy policy of patching the manifest even
// when the scaffolding tool exits nonzero. The default aborts instead.
func WithIgnoreExitCode(on bool) Option {
	return func(c *Creator) { c.ignoreExit = on }
}

// WithInstructionResolver substitutes the build-instruction resolver.
func WithInstructionResolver(fn InstructionResolver) Option {
	return func(c *Creator) { c.resolve = fn }
}

// WithStderr overrides the writer used for debug diagnostics.
func WithStderr(w io.Writer) Option {
	return func(c *Creator) { c.stderr = w }
}

// WithMaxLineLength caps the length of a single tool output line.
func WithMaxLineLength(n int) Option {
	return func(c *Creator) {
		if n > 0 {
			c.maxLineLength = n
		}
	}
}

const defaultMaxLineLength = 1024 * 1024

// Creator orchestrates project creation runs.
type Creator struct {
	home          string
	onEvent       func(Event)
	fixture       bool
	ignoreExit    bool
	resolve       InstructionResolver
	maxLineLength int
	stderr        io.Writer
	now           func() time.Time

	eventMu sync.Mutex
}

// New constructs a Creator. By default projects are created under
// $HOME/guppy-projects and real scaffolding tools are invoked.
func New(opts ...Option) *Creator {
	c := &Creator{
		home:          defaultProjectsHome(),
		resolve:       InstructionsFor,
		maxLineLength: defaultMaxLineLength,
		stderr:        os.Stderr,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultProjectsHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "guppy-projects"
	}
	return filepath.Join(home, "guppy-projects")
}

// ToolExitError reports a scaffolding tool that exited nonzero.
type ToolExitError struct {
	Command string
	Code    int
	Err     error
}

func (e *ToolExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.Code)
}

func (e *ToolExitError) Unwrap() error { return e.Err }

// Create scaffolds one project. It blocks until the external tool exits and
// the manifest is patched, emitting events along the way. Exactly one of
// EventCompleted or EventFailed terminates the event stream; the same outcome
// is mirrored in the return values.
//
// Concurrent calls with colliding project names race on the target directory
// and manifest; nothing guards against that.
func (c *Creator) Create(ctx context.Context, info ProjectInfo) (*Manifest, error) {
	if c.fixture {
		c.debugf("fixture mode: skipping scaffold for %q", info.Name)
		m := fixtureManifest()
		c.emit(Event{Type: EventCompleted, Manifest: m})
		return m, nil
	}

	if _, err := ParseProjectType(string(info.Type)); err != nil {
		return c.fail(err)
	}

	if err := c.ensureHome(); err != nil {
		return c.fail(err)
	}
	c.status("Project directory created")

	id := Slugify(info.Name)
	targetPath := filepath.Join(c.home, id)

	instructions, err := c.resolve(info.Type, targetPath)
	if err != nil {
		return c.fail(err)
	}
	if len(instructions) == 0 {
		return c.fail(fmt.Errorf("empty build instructions for type %q", info.Type))
	}

	if err := c.runTool(ctx, instructions); err != nil {
		return c.fail(err)
	}
	c.status("Dependencies installed")

	manifest, err := patchManifest(targetPath, Metadata{
		ID:        id,
		Name:      info.Name,
		Type:      info.Type,
		Icon:      info.Icon,
		Color:     palette.ColorFor(info.Name).Hex,
		CreatedAt: c.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return c.fail(err)
	}

	c.emit(Event{Type: EventCompleted, Manifest: manifest})
	return manifest, nil
}

// ensureHome creates the projects home if absent. Single-level: the
// grandparent must already exist.
func (c *Creator) ensureHome() error {
	if _, err := os.Stat(c.home); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat projects home: %w", err)
	}
	if err := os.Mkdir(c.home, 0o755); err != nil {
		return fmt.Errorf("create projects home: %w", err)
	}
	return nil
}

// runTool spawns the scaffolding tool and relays its output streams until it
// exits. stdout lines become EventToolOutput, stderr lines EventToolError.
func (c *Creator) runTool(ctx context.Context, instructions []string) error {
	command := instructions[0]
	c.debugf("spawning %v", instructions)

	cmd := exec.CommandContext(ctx, command, instructions[1:]...)
	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("open stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("open stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %s: %w", command, err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go c.relay(&wg, stdout, EventToolOutput)
	go c.relay(&wg, stderr, EventToolError)
	wg.Wait()

	waitErr := cmd.Wait()
	if waitErr == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("scaffold canceled: %w", ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		if c.ignoreExit {
			c.debugf("ignoring exit code %d from %s", exitErr.ExitCode(), command)
			return nil
		}
		return &ToolExitError{Command: command, Code: exitErr.ExitCode(), Err: waitErr}
	}
	return fmt.Errorf("wait for %s: %w", command, waitErr)
}

// relay forwards one output stream to the event callback line by line.
func (c *Creator) relay(wg *sync.WaitGroup, r io.Reader, kind EventType) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), c.maxLineLength)
	for scanner.Scan() {
		c.emit(Event{Type: kind, Line: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		c.debugf("stream read error: %v", err)
	}
}

// fail emits the terminal failure event and mirrors it in the return values.
func (c *Creator) fail(err error) (*Manifest, error) {
	c.emit(Event{Type: EventFailed, Err: err})
	return nil, err
}

func (c *Creator) status(text string) {
	c.emit(Event{Type: EventStatus, Line: text})
}

func (c *Creator) emit(evt Event) {
	if c.onEvent == nil {
		return
	}
	evt.When = time.Now()
	c.eventMu.Lock()
	c.onEvent(evt)
	c.eventMu.Unlock()
}

func (c *Creator) debugf(format string, args ...any) {
	if os.Getenv("GUPPY_DEBUG") == "" {
		return
	}
	fmt.Fprintf(c.stderr, "[DEBUG scaffold] "+format+"\n", args...)
}
