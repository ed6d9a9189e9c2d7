package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vanderheijden86/stackview/internal/datasource"
	"github.com/vanderheijden86/stackview/pkg/config"
	"github.com/vanderheijden86/stackview/pkg/debug"
	"github.com/vanderheijden86/stackview/pkg/ui"
	"github.com/vanderheijden86/stackview/pkg/version"
	"github.com/vanderheijden86/stackview/pkg/watcher"
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	configPath := flag.String("config", "", "Config file path (default: XDG config dir)")
	theme := flag.String("theme", "", "Glamour style for markdown (dark, light, notty)")
	noMarkdown := flag.Bool("no-markdown", false, "Render message bodies as plain text")
	noWatch := flag.Bool("no-watch", false, "Do not reload when the transcript changes")
	noFollow := flag.Bool("no-follow", false, "Do not anchor the viewport to new content")
	forcePoll := flag.Bool("force-poll", false, "Poll for transcript changes instead of using fsnotify")
	versionFlag := flag.Bool("version", false, "Show version")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Println("Usage: sv [options] [transcript]")
		fmt.Println("\nA terminal transcript viewer. The transcript is a JSONL file")
		fmt.Println("or a SQLite database; it may keep growing while sv displays it.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("sv %s\n", version.Version)
		os.Exit(0)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(*configPath, *theme, *noMarkdown, *noWatch, *noFollow, *forcePoll, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "sv: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, theme string, noMarkdown, noWatch, noFollow, forcePoll bool, transcript string) error {
	var cfg config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if transcript != "" {
		cfg.Transcript.Path = transcript
	}
	if theme != "" {
		cfg.UI.Theme = theme
	}
	if noMarkdown {
		cfg.UI.Markdown = false
	}
	if noWatch {
		cfg.Transcript.Watch = false
	}
	if noFollow {
		cfg.Layout.FollowTail = false
	}
	if cfg.Transcript.Path == "" {
		return fmt.Errorf("no transcript given (pass a path or set transcript.path in config)")
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	source, err := datasource.Open(cfg.Transcript.Path)
	if err != nil {
		return err
	}
	defer source.Close()

	var w *watcher.Watcher
	if cfg.Transcript.Watch {
		w, err = watcher.New(source.Path(), watcher.WithForcePoll(forcePoll))
		if err != nil {
			return fmt.Errorf("watching %s: %w", source.Path(), err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("watching %s: %w", source.Path(), err)
		}
		defer w.Stop()
		debug.Log("main: watching %s (polling=%v)", w.Path(), w.IsPolling())
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(ui.New(cfg, source, w), opts...)

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		_, err := p.Run()
		return err
	})

	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case <-ctx.Done():
			return nil
		case <-sigCh:
			p.Quit()
			return nil
		}
	})

	return g.Wait()
}
