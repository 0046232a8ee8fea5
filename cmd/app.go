// Package cmd implements the pcal command line, to track a payment calendar.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/paycal"
	"github.com/etnz/paycal/renderer"
	"github.com/etnz/paycal/store"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"golang.org/x/text/message"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&listCmd{}, "calendar")
	c.Register(&periodsCmd{}, "calendar")
	c.Register(&summaryCmd{}, "calendar")
	c.Register(&payoffCmd{}, "calendar")
	c.Register(&showCmd{}, "calendar")
	c.Register(&queryCmd{}, "calendar")

	c.Register(&setCmd{}, "payments")
	c.Register(&toggleCmd{}, "payments")
	c.Register(&clearCmd{}, "payments")
	c.Register(&resetCmd{}, "payments")

	c.Register(&fxCmd{}, "settings")
	c.Register(&currencyCmd{}, "settings")
	c.Register(&projectsCmd{}, "settings")
	c.Register(&viewCmd{}, "settings")

	c.Register(&exportCmd{}, "backup")
	c.Register(&importCmd{}, "backup")
	c.Register(&historyCmd{}, "backup")

	c.Register(&assistCmd{}, "help")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dataFlag    = flag.String("data", "", "Comma separated dataset files. Overrides "+EnvData+".")
	dbFlag      = flag.String("db", "", "Path to the state database. Overrides "+EnvDB+".")
	langFlag    = flag.String("lang", "", "Language of the output, en or uk. Overrides "+EnvLang+".")
	recordsFlag = flag.String("records", "", "JSONPath of the payments in the datasets. Overrides "+EnvRecordsPath+".")
	Verbose     = flag.Bool("v", false, "Verbose logging. Overrides "+EnvVerbose+".")
)

// stdout and stderr are variables to be captured in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Config is the configuration of pcal, from the environment then the global flags.
type Config struct {
	DataFiles    []string `env:"PCAL_DATA"         envDefault:"payments.json" envSeparator:","`
	DBPath       string   `env:"PCAL_DB"           envDefault:"pcal.db"`
	Lang         string   `env:"PCAL_LANG"         envDefault:"en"`
	RecordsPath  string   `env:"PCAL_RECORDS_PATH" envDefault:"$.payments"`
	Verbose      bool     `env:"PCAL_VERBOSE"`
	GeminiAPIKey string   `env:"GEMINI_API_KEY"`
	// TestingNow freezes the clock, "2006-01-02 15:04:05" in UTC.
	TestingNow   string   `env:"PCAL_TESTING_NOW"`
}

// LoadConfig parses the environment and applies the global flags that were set.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if *dataFlag != "" {
		cfg.DataFiles = strings.Split(*dataFlag, ",")
	}
	if *dbFlag != "" {
		cfg.DBPath = *dbFlag
	}
	if *langFlag != "" {
		cfg.Lang = *langFlag
	}
	if *recordsFlag != "" {
		cfg.RecordsPath = *recordsFlag
	}
	cfg.Verbose = cfg.Verbose || *Verbose
	return cfg, nil
}

// Printer returns the message printer of the configured language.
func (c Config) Printer() *message.Printer { return renderer.Printer(c.Lang) }

// newLogger returns a console logger on stderr.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: !isTerminal(stderr)}).
		Level(level).With().Timestamp().Logger()
}

// session is everything a command needs to work on the calendar.
type session struct {
	cfg     Config
	log     zerolog.Logger
	db      *store.SQLite
	tracker *paycal.Tracker
}

// openSession loads the datasets and restores the calendar state.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.Verbose)

	s, err := paycal.LoadSchedule(cfg.RecordsPath, cfg.DataFiles...)
	if err != nil {
		return nil, err
	}
	logger.Debug().Strs("files", cfg.DataFiles).Int("records", len(s.Records())).Msg("schedule loaded")

	db, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open state database %q: %w", cfg.DBPath, err)
	}
	opts := []paycal.TrackerOption{paycal.WithLogger(logger)}
	if cfg.TestingNow != "" {
		now, err := time.Parse(time.DateTime, cfg.TestingNow)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("invalid PCAL_TESTING_NOW: %w", err)
		}
		opts = append(opts, paycal.WithClock(func() time.Time { return now }))
	}
	tr, err := paycal.OpenTracker(ctx, s, db, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &session{cfg: cfg, log: logger, db: db, tracker: tr}, nil
}

func (s *session) Close() {
	if err := s.db.Close(); err != nil {
		s.log.Error().Err(err).Msg("cannot close state database")
	}
}

func (s *session) printer() *message.Printer { return s.cfg.Printer() }

// report computes the report with the stored filter.
func (s *session) report() *paycal.Report {
	return s.tracker.Report(paycal.FilterOf(s.tracker.Settings()))
}

// run opens a session, runs f and maps its error to an exit status.
func run(ctx context.Context, f func(*session) error) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()
	if err := f(s); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// printMarkdown renders md for the terminal, or prints it raw when the output is not one.
func printMarkdown(md string) {
	if isTerminal(stdout) {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Fprint(stdout, out)
				return
			}
		}
	}
	fmt.Fprint(stdout, md)
}
