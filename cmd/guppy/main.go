// guppy scaffolds JavaScript front-end projects from the terminal.
//
// Usage:
//
//	guppy create "My App"                        # create-react-app, dashboard UI
//	guppy create -type gatsby "My Blog"          # gatsby new
//	guppy create -plain -fixture "My App"        # no TUI, no real tool invocation
//	guppy palette                                # show the project color palette
//
// create shells out to the scaffolding tool (via npx), streams its output
// live, and tags the generated package.json with guppy metadata.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"github.com/guppyhq/guppy/internal/config"
	"github.com/guppyhq/guppy/internal/tui"
	"github.com/guppyhq/guppy/pkg/palette"
	"github.com/guppyhq/guppy/scaffold"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "create":
		return runCreate(args[1:], stdout, stderr)
	case "palette":
		return runPalette(stdout)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "guppy: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `guppy scaffolds JavaScript front-end projects.

Usage:
  guppy create [flags] <project name>
  guppy palette

Create flags:
  -type string        project type: create-react-app, gatsby (default "create-react-app")
  -icon string        icon identifier stored in the project metadata
  -home string        parent directory for created projects
  -fixture            skip the real tool and return a canned manifest
  -ignore-exit-code   patch the manifest even when the tool exits nonzero
  -no-color           disable colored output
  -plain              stream plain lines instead of the dashboard
`)
}

func runCreate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("guppy create", flag.ContinueOnError)
	fs.SetOutput(stderr)
	typeFlag := fs.String("type", string(scaffold.TypeCreateReactApp), "project type")
	iconFlag := fs.String("icon", "", "icon identifier")
	homeFlag := fs.String("home", "", "parent directory for created projects")
	fixtureFlag := fs.Bool("fixture", false, "skip the real tool")
	ignoreExitFlag := fs.Bool("ignore-exit-code", false, "patch the manifest on nonzero exit")
	noColorFlag := fs.Bool("no-color", false, "disable colored output")
	plainFlag := fs.Bool("plain", false, "stream plain lines instead of the dashboard")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	name := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if name == "" {
		fmt.Fprintln(stderr, "guppy: project name required")
		return 2
	}

	projectType, err := scaffold.ParseProjectType(*typeFlag)
	if err != nil {
		fmt.Fprintf(stderr, "guppy: %v\n", err)
		return 2
	}

	cfg := config.Load()
	cfg.Merge(config.Flags{
		ProjectsHome:      *homeFlag,
		Fixture:           *fixtureFlag,
		FixtureSet:        flagWasSet(fs, "fixture"),
		NoColor:           *noColorFlag,
		NoColorSet:        flagWasSet(fs, "no-color"),
		IgnoreExitCode:    *ignoreExitFlag,
		IgnoreExitCodeSet: flagWasSet(fs, "ignore-exit-code"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	info := scaffold.ProjectInfo{Name: name, Type: projectType, Icon: *iconFlag}
	opts := []scaffold.Option{
		scaffold.WithFixtureMode(cfg.FixtureMode),
		scaffold.WithIgnoreExitCode(cfg.IgnoreExitCode),
		scaffold.WithMaxLineLength(cfg.MaxLineLength),
	}
	if cfg.ProjectsHome != "" {
		opts = append(opts, scaffold.WithProjectsHome(cfg.ProjectsHome))
	}

	if !*plainFlag && !cfg.NoColor && isTTYWriter(stdout) {
		return runDashboard(ctx, info, opts, stderr)
	}
	return runPlain(ctx, info, opts, stdout, stderr)
}

// runDashboard drives creation through the interactive TUI. Creator events
// flow over a channel closed when Create returns; the dashboard owns the
// terminal until then.
func runDashboard(ctx context.Context, info scaffold.ProjectInfo, opts []scaffold.Option, stderr io.Writer) int {
	events := make(chan scaffold.Event, 64)
	creator := scaffold.New(append(opts, scaffold.WithOnEvent(func(evt scaffold.Event) {
		events <- evt
	}))...)

	go func() {
		defer close(events)
		_, _ = creator.Create(ctx, info)
	}()

	code, err := tui.Run(ctx, info, events)
	if err != nil {
		fmt.Fprintf(stderr, "guppy: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	return code
}

// runPlain streams prefixed lines, one event per line (for pipes and CI).
func runPlain(ctx context.Context, info scaffold.ProjectInfo, opts []scaffold.Option, stdout, stderr io.Writer) int {
	creator := scaffold.New(append(opts, scaffold.WithOnEvent(func(evt scaffold.Event) {
		switch evt.Type {
		case scaffold.EventStatus:
			fmt.Fprintf(stdout, "status | %s\n", evt.Line)
		case scaffold.EventToolOutput:
			fmt.Fprintf(stdout, "tool   | %s\n", evt.Line)
		case scaffold.EventToolError:
			fmt.Fprintf(stderr, "tool   | %s\n", evt.Line)
		}
	}))...)

	m, err := creator.Create(ctx, info)
	if err != nil {
		fmt.Fprintf(stderr, "guppy: %v\n", err)
		return 1
	}

	if m.Path == "" {
		fmt.Fprintf(stdout, "Created project %s (fixture mode)\n", m.Guppy.ID)
	} else {
		fmt.Fprintf(stdout, "Created project %s at %s\n", m.Guppy.ID, m.Path)
	}
	return 0
}

func runPalette(stdout io.Writer) int {
	for _, c := range palette.Palette {
		fmt.Fprintf(stdout, "%s %-10s %s\n", c.Style().Render("●"), c.Name, c.Hex)
	}
	return 0
}

// flagWasSet reports whether the user set a flag explicitly.
func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
