package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/emmanuelcandido/coursecast/internal/config"
	"github.com/emmanuelcandido/coursecast/internal/domain"
	"github.com/emmanuelcandido/coursecast/internal/feed"
	"github.com/emmanuelcandido/coursecast/internal/gitsync"
	"github.com/emmanuelcandido/coursecast/internal/logger"
	"github.com/emmanuelcandido/coursecast/internal/media"
	"github.com/emmanuelcandido/coursecast/internal/pipeline"
	"github.com/emmanuelcandido/coursecast/internal/store"
	"github.com/emmanuelcandido/coursecast/internal/summarizer"
	"github.com/emmanuelcandido/coursecast/internal/transcriber"
	"github.com/emmanuelcandido/coursecast/internal/tts"
	"github.com/emmanuelcandido/coursecast/internal/uploader"
	"github.com/emmanuelcandido/coursecast/internal/watcher"
	"github.com/emmanuelcandido/coursecast/pkg/executor"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: coursecast <command> [flags]

Commands:
  process   Process a course directory into a published podcast
  resume    Resume interrupted courses
  courses   List course records and their status
  log       Show the operation log for a course
  tts       Synthesize a course summary into audio notes
  watch     Monitor the inbox and process new courses

Run 'coursecast <command> -h' for command flags.
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "process":
		err = runProcess(ctx, os.Args[2:])
	case "resume":
		err = runResume(ctx, os.Args[2:])
	case "courses":
		err = runCourses(ctx, os.Args[2:])
	case "log":
		err = runLog(ctx, os.Args[2:])
	case "tts":
		err = runTTS(ctx, os.Args[2:])
	case "watch":
		err = runWatch(ctx, os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles everything a command needs after startup.
type app struct {
	cfg    *config.Config
	log    logger.Logger
	store  store.Store
	runner *pipeline.Runner
	up     uploader.Uploader
}

func (a *app) close() {
	if a.up != nil {
		_ = a.up.Close()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// newApp loads configuration and wires the store. Collaborators behind the
// runner are only constructed when withRunner is set, so read-only commands
// never touch the network.
func newApp(ctx context.Context, configPath string, withRunner bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level)

	st, err := store.Open(cfg.Database.Path, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := &app{cfg: cfg, log: log, store: st}
	if !withRunner {
		return a, nil
	}

	exec := executor.New()
	mediaSvc := media.New(cfg.FFmpeg, exec, log)

	up, err := uploader.New(ctx, cfg.Storage, log)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("create uploader: %w", err)
	}
	a.up = up

	clb := pipeline.Collaborators{
		Converter:   mediaSvc,
		Transcriber: transcriber.New(cfg.Whisper, exec, log),
		Summarizer:  summarizer.New(cfg.Gemini.APIKeys, cfg.Paths.Prompts, cfg.Gemini.Model, log),
		Unifier:     mediaSvc,
		Timestamper: mediaSvc,
		Uploader:    up,
		Feed:        feed.New(cfg.Feed, log),
		Repo:        gitsync.New(cfg.Git, exec, log),
	}

	a.runner = pipeline.NewRunner(st, log, clb, pipeline.Options{
		TimestampInterval: time.Duration(cfg.Timestamps.IntervalMinutes) * time.Minute,
		Author:            cfg.Feed.Author,
		Progress: func(stage string, index, total int) {
			log.Info(ctx, "[%d/%d] %s", index, total, stage)
		},
	})
	return a, nil
}

func runProcess(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	name := fs.String("name", "", "course name (defaults to the source directory name)")
	source := fs.String("source", "", "course directory containing the videos")
	output := fs.String("output", "", "output directory (defaults to paths.output)")
	fs.Parse(args)

	if *source == "" {
		return fmt.Errorf("-source is required")
	}
	courseName := *name
	if courseName == "" {
		courseName = filepath.Base(filepath.Clean(*source))
	}

	a, err := newApp(ctx, *configPath, true)
	if err != nil {
		return err
	}
	defer a.close()

	outputDir := *output
	if outputDir == "" {
		outputDir = a.cfg.Paths.Output
	}

	a.log.Info(ctx, "Processing course %q from %s", courseName, *source)
	course, err := a.runner.Process(ctx, courseName, *source, outputDir)
	if err != nil {
		return err
	}

	a.log.Info(ctx, "Course %q completed", course.Name)
	return nil
}

func runResume(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("resume", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	name := fs.String("course", "", "course to resume")
	fs.Parse(args)

	// Without -course, only list what could be resumed. Resuming stays an
	// explicit choice; an unselected course remains in_progress.
	if *name == "" {
		a, err := newApp(ctx, *configPath, false)
		if err != nil {
			return err
		}
		defer a.close()

		courses, err := a.store.ListInProgress(ctx)
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			a.log.Info(ctx, "No interrupted courses found")
			return nil
		}
		if err := writeCourseTable(os.Stdout, courses); err != nil {
			return err
		}
		fmt.Println("\nRun 'coursecast resume -course <name>' to resume one.")
		return nil
	}

	a, err := newApp(ctx, *configPath, true)
	if err != nil {
		return err
	}
	defer a.close()

	course, err := a.store.GetCourseByName(ctx, *name)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "Resuming course %q at stage %s", course.Name, course.ProcessingStage)
	return a.runner.Resume(ctx, course)
}

func runCourses(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("courses", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	fs.Parse(args)

	a, err := newApp(ctx, *configPath, false)
	if err != nil {
		return err
	}
	defer a.close()

	courses, err := a.store.ListCourses(ctx)
	if err != nil {
		return err
	}
	return writeCourseTable(os.Stdout, courses)
}

func writeCourseTable(out io.Writer, courses []domain.Course) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tSTAGE\tCREATED")
	for _, c := range courses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.Status, c.ProcessingStage, c.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runLog(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	name := fs.String("course", "", "course name")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("-course is required")
	}

	a, err := newApp(ctx, *configPath, false)
	if err != nil {
		return err
	}
	defer a.close()

	course, err := a.store.GetCourseByName(ctx, *name)
	if err != nil {
		return err
	}
	ops, err := a.store.ListOperations(ctx, course.ID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tOPERATION\tSTATUS\tERROR")
	for _, op := range ops {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			op.StartedAt.Format("2006-01-02 15:04:05"), op.OperationType, op.Status, op.ErrorMessage)
	}
	return w.Flush()
}

// runTTS renders a course's summary as spoken audio notes next to the other
// course artifacts.
func runTTS(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tts", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	name := fs.String("course", "", "course name")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("-course is required")
	}

	a, err := newApp(ctx, *configPath, false)
	if err != nil {
		return err
	}
	defer a.close()

	course, err := a.store.GetCourseByName(ctx, *name)
	if err != nil {
		return err
	}

	layout := pipeline.NewLayout(course)
	if _, err := os.Stat(layout.SummaryPath()); err != nil {
		return fmt.Errorf("course %q has no summary yet: %w", course.Name, err)
	}

	sp := tts.New(a.cfg.TTS, executor.New(), a.log)
	if err := sp.SpeakFile(ctx, layout.SummaryPath(), layout.NotesPath()); err != nil {
		return err
	}
	a.log.Info(ctx, "Audio notes written to %s", layout.NotesPath())
	return nil
}

func runWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	settle := fs.Duration("settle", 30*time.Second, "delay before touching a new course directory")
	fs.Parse(args)

	a, err := newApp(ctx, *configPath, true)
	if err != nil {
		return err
	}
	defer a.close()

	if err := os.MkdirAll(a.cfg.Paths.Inbox, 0o755); err != nil {
		return fmt.Errorf("create inbox: %w", err)
	}

	handler := func(ctx context.Context, courseDir string) error {
		name := filepath.Base(courseDir)
		_, err := a.runner.Process(ctx, name, courseDir, a.cfg.Paths.Output)
		return err
	}

	w, err := watcher.New(a.cfg.Paths.Inbox, handler, a.log, *settle)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "CourseCast is ready")
	a.log.Info(ctx, "Inbox: %s", a.cfg.Paths.Inbox)
	a.log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	a.log.Info(ctx, "Press Ctrl+C to stop")
	a.log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
