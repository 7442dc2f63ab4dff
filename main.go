package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/teichholz/go-rope/application"
	"github.com/teichholz/go-rope/buffer"
	"github.com/teichholz/go-rope/config"
	"github.com/teichholz/go-rope/files"
	"github.com/teichholz/go-rope/rope"
	"github.com/teichholz/go-rope/stats"
)

var (
	demoFlag  = flag.Bool("demo", false, "print the firefly sample before and after inserting \"Zoom\"")
	statsFlag = flag.String("stats", "", "print rope statistics of `file` before and after reducing it")
	logFlag   = flag.String("log", "", "log file, overrides the configured one")
)

func NewLogger(path string) (zerolog.Logger, *os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	log := zerolog.New(file).With().Timestamp().Caller().Logger()
	return log, file, nil
}

func runDemo(w io.Writer) error {
	firefly, err := rope.NewLeafString("firefly")
	if err != nil {
		return err
	}
	serenity, err := rope.NewLeafString("serenity")
	if err != nil {
		return err
	}
	whedon, err := rope.NewLeafString("Whedon")
	if err != nil {
		return err
	}
	zoom, err := rope.NewLeafString("Zoom")
	if err != nil {
		return err
	}

	r := rope.Concat(rope.Concat(firefly, serenity), whedon)
	fmt.Fprintln(w, r.Debug())
	fmt.Fprintln(w, r.Collect())

	res, err := r.Insert(zoom, 7)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, res.Debug())
	fmt.Fprintln(w, res.Collect())
	return nil
}

func runStats(w io.Writer, path string, maxLeaf int) error {
	r, err := files.Read(path, maxLeaf)
	if err != nil {
		return err
	}
	before := stats.Collect(r)
	after := stats.Collect(r.Reduce())

	fmt.Fprintf(w, "%s: %s runes\n", path, humanize.Comma(int64(before.Runes)))
	fmt.Fprintf(w, "before reduce: %v\n", before)
	fmt.Fprintf(w, "after reduce:  %v\n", after)
	if before.Leaves > 0 {
		fmt.Fprintf(w, "leaves shared: %s\n",
			humanize.FtoaWithDigits(100*float64(after.SharedLeaves)/float64(before.Leaves), 1)+"%")
	}
	return nil
}

func main() {
	flag.Parse()

	if *demoFlag {
		if err := runDemo(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	logPath := *logFlag
	if logPath == "" {
		logPath = "app.log"
	}
	log, logFile, err := NewLogger(logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { logFile.Close() }()

	cfg := config.NewConfig(log)
	if err := cfg.Init(); err != nil {
		log.Fatal().Err(err).Msg("reading config")
	}
	defer cfg.Cleanup()
	editor := cfg.Editor()
	if *logFlag == "" && editor.LogFile != "" && editor.LogFile != logPath {
		if l, f, err := NewLogger(editor.LogFile); err == nil {
			logFile.Close()
			log, logFile = l, f
		}
	}
	if level, err := zerolog.ParseLevel(editor.LogLevel); err == nil {
		log = log.Level(level)
	}

	if *statsFlag != "" {
		if err := runStats(os.Stdout, *statsFlag, editor.MaxLeaf); err != nil {
			log.Error().Err(err).Str("file", *statsFlag).Msg("collecting stats")
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := cfg.Watch(); err != nil {
		log.Warn().Err(err).Msg("config will not be reloaded")
	}

	file := flag.Arg(0)
	if file == "" {
		file = "untitled.txt"
		log.Info().Msg("Started program without any files")
	}
	buffers := buffer.NewBuffer(log)
	doc, err := buffers.OpenFile(file, buffer.Options{
		MaxLeaf:      editor.MaxLeaf,
		HistoryLimit: editor.HistoryLimit,
		ReduceOnSave: editor.ReduceOnSave,
	})
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("opening file")
	}
	log.Info().Str("file", file).Int("runes", doc.Rope().Len()).Msg("Read rope from file")

	s, err := tcell.NewScreen()
	if err != nil {
		log.Fatal().Err(err).Msg("creating screen")
	}
	if err := s.Init(); err != nil {
		log.Fatal().Err(err).Msg("initializing screen")
	}
	s.SetStyle(application.DefaultStyle)
	s.EnableMouse()
	s.EnablePaste()
	s.Clear()

	app := application.New(s, cfg, buffers, doc, log)
	if err := app.Run(); err != nil {
		log.Error().Err(err).Msg("editor stopped")
	}
}
