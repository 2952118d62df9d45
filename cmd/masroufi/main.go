package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"masroufi/internal/config"
	"masroufi/internal/expenses"
	"masroufi/internal/handlers"
	applog "masroufi/internal/log"
	"masroufi/internal/navigation"
	"masroufi/internal/session"
	"masroufi/internal/stats"
	"masroufi/internal/storage"

	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

const usage = `Usage: masroufi [flags] [command]

Commands:
  shell                          interactive app (default)
  add <amount> <category> [note] record an expense
  today                          today's expenses
  stats [today|week|month]       spending per category
  login                          sign in through the wallet host
  logout                         sign out
`

const shellHelp = `home | add | submit <amount> <category> [note] | stats | range <today|week|month> | back | login | logout | help | quit`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired components for one invocation.
type app struct {
	db         *storage.DB
	sessions   *session.Manager
	handlers   *handlers.Handlers
	controller *navigation.Controller
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	config.LoadEnvFile()
	cfg := config.Load()

	fs := flag.NewFlagSet("masroufi", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to database file")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "Currency code shown next to amounts")
	fs.StringVar(&cfg.CategoriesFile, "categories", cfg.CategoriesFile, "YAML file with the category catalog")

	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Currency = strings.ToUpper(cfg.Currency)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if f, ok := stdout.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		text.DisableColors()
	}

	a, err := newApp(cfg, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.db.Close()

	cmd, rest := "shell", []string(nil)
	if fs.NArg() > 0 {
		cmd, rest = fs.Arg(0), fs.Args()[1:]
	}

	switch cmd {
	case "shell":
		return a.shell(ctx, stdin, stdout)
	case "login":
		s, err := a.sessions.Login(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Logged in as %s (%s)\n", s.Name, s.ID)
		return nil
	case "logout":
		if err := a.sessions.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Logged out")
		return nil
	}

	if !a.sessions.Present() {
		return errors.New("not logged in: run 'masroufi login' first")
	}

	switch cmd {
	case "add":
		if len(rest) < 2 {
			return fmt.Errorf("usage: add <amount> <category> [note]")
		}
		e, err := a.handlers.Submit(rest[0], rest[1], strings.Join(rest[2:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Added %s %s on %s\n", e.Amount.String(), e.Category, e.Date)
		return nil
	case "today":
		a.handlers.Header(stdout, handlers.TitleHome, false)
		return a.handlers.Home(stdout)
	case "stats":
		r := stats.Today
		if len(rest) > 0 {
			if r, err = stats.ParseRange(rest[0]); err != nil {
				return err
			}
		}
		a.handlers.Header(stdout, handlers.TitleStats, false)
		return a.handlers.Stats(stdout, r)
	}

	fs.Usage()
	return fmt.Errorf("unknown command %q", cmd)
}

func newApp(cfg *config.Config, stdout, stderr io.Writer) (*app, error) {
	logCfg := applog.DefaultConfig()
	logCfg.Level = applog.ParseLevel(cfg.LogLevel)
	logCfg.Output = stderr
	logger := applog.New(logCfg)
	applog.SetDefault(logger)

	categories, err := config.LoadCategories(cfg.CategoriesFile)
	if err != nil {
		return nil, err
	}

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.WithComponent(applog.ComponentStorage).Debug("database opened", "path", cfg.DBPath)

	bridge := session.Resolve(cfg.HostAuthCommand)
	logger.Debug("session bridge resolved", "bridge", bridge.Name())

	store := expenses.NewStore(db, expenses.WithLogger(logger))
	sessions := session.NewManager(db, bridge, logger)
	h := handlers.NewHandlers(store, sessions, categories, handlers.NewMoney(cfg.Currency))

	return &app{
		db:         db,
		sessions:   sessions,
		handlers:   h,
		controller: navigation.NewController(h, sessions, stdout, logger),
	}, nil
}

// shell runs the interactive command loop until quit, end of input or
// cancellation of ctx.
func (a *app) shell(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	interactive := false
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		interactive = true
	}

	c := a.controller
	if err := c.Start(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, scanErr := readLines(ctx, stdin)

	for {
		if interactive {
			fmt.Fprintf(stdout, "\n%s> ", c.Current())
		}

		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			line = l
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch cmd, args := fields[0], fields[1:]; cmd {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(stdout, shellHelp)
		case "back":
			var ok bool
			if ok, err = c.Back(); err == nil && !ok {
				a.handlers.Message(stdout, "Nothing to go back to")
			}
		case "home", "add", "stats":
			v, _ := navigation.ParseView(cmd)
			err = c.Navigate(v)
		case "submit":
			if len(args) < 2 {
				a.handlers.Message(stdout, "usage: submit <amount> <category> [note]")
				continue
			}
			err = c.Submit(args[0], args[1], strings.Join(args[2:], " "))
		case "range":
			if len(args) != 1 {
				a.handlers.Message(stdout, "usage: range <today|week|month>")
				continue
			}
			r, perr := stats.ParseRange(args[0])
			if perr != nil {
				a.handlers.Message(stdout, perr.Error())
				continue
			}
			err = c.SetRange(r)
		case "login":
			err = c.Login(ctx)
		case "logout":
			err = c.Logout()
		default:
			a.handlers.Message(stdout, fmt.Sprintf("unknown command %q, type 'help'", cmd))
		}
		if err != nil {
			return err
		}
	}
}

// readLines scans r in the background so the shell can stop on ctx while a
// read is pending. lines is closed at end of input; a scan error, if any,
// is sent on the error channel before that.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errc <- err
		}
	}()
	return lines, errc
}
