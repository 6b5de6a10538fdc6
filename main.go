package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/wricardo/mcp-training/boxworld/game/engine"
	"github.com/wricardo/mcp-training/boxworld/game/levels"
	"github.com/wricardo/mcp-training/boxworld/game/service"
	"github.com/wricardo/mcp-training/boxworld/game/session"
	"github.com/wricardo/mcp-training/boxworld/transport/mcp"
	"github.com/wricardo/mcp-training/boxworld/transport/terminal"
	"github.com/wricardo/mcp-training/boxworld/validate"
)

const (
	Version = "1.0.0"
	AppName = "Boxworld"
)

const (
	cleanupInterval = time.Hour
	sessionMaxAge   = 24 * time.Hour
)

var errInvalidLevels = errors.New("some levels have errors")

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout).Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command tree. Playing is the default when no
// subcommand is given.
func newApp(stdin io.Reader, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "boxworld",
		Usage:   "push every box onto a target",
		Version: Version,
		Reader:  stdin,
		Writer:  stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "levels-dir",
				Usage:   "load levels from `DIR` instead of the built-in catalog",
				Sources: cli.EnvVars("BOXWORLD_LEVELS_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "log file and line numbers",
				Sources: cli.EnvVars("BOXWORLD_DEBUG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			configureLogging(cmd.Bool("debug"))
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return play(ctx, cmd, stdin, stdout, "")
		},
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "level",
						Usage: "start at level `REF` (id or number)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return play(ctx, cmd, stdin, stdout, cmd.String("level"))
				},
			},
			{
				Name:  "levels",
				Usage: "list the level catalog",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					catalog, err := loadCatalog(cmd.Root().String("levels-dir"))
					if err != nil {
						return err
					}
					return listLevels(stdout, catalog)
				},
			},
			{
				Name:      "validate",
				Usage:     "check level files",
				ArgsUsage: "[DIR]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return validateLevels(stdout, cmd.Args().First(), cmd.Root().String("levels-dir"))
				},
			},
			{
				Name:  "analyze",
				Usage: "print board statistics for every level",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					catalog, err := loadCatalog(cmd.Root().String("levels-dir"))
					if err != nil {
						return err
					}
					validate.Catalog(stdout, catalog)
					return nil
				},
			},
			{
				Name:  "mcp",
				Usage: "serve game sessions over MCP on stdio",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runMCP(ctx, cmd.Root().String("levels-dir"))
				},
			},
		},
	}
}

// configureLogging sends logs to stderr; stdout belongs to the game or
// the MCP protocol.
func configureLogging(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetPrefix("[" + AppName + "] ")
	if debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		return
	}
	log.SetFlags(log.LstdFlags)
}

func loadCatalog(dir string) (*levels.Manager, error) {
	if dir == "" {
		return levels.Default(), nil
	}
	catalog, err := levels.NewManagerFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load levels: %w", err)
	}
	log.Printf("Loaded %d levels from %s", catalog.LevelCount(), dir)
	return catalog, nil
}

func play(ctx context.Context, cmd *cli.Command, stdin io.Reader, stdout io.Writer, levelRef string) error {
	catalog, err := loadCatalog(cmd.Root().String("levels-dir"))
	if err != nil {
		return err
	}

	game, err := engine.NewEngine(catalog)
	if err != nil {
		return err
	}
	if levelRef != "" {
		index, err := catalog.Lookup(levelRef)
		if err != nil {
			return err
		}
		if err := game.LoadLevel(index); err != nil {
			return err
		}
	}

	var opts []terminal.Option
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer term.Restore(fd, oldState)
		opts = append(opts, terminal.WithANSI(true), terminal.WithRawNewlines(true))
	}

	return terminal.NewFrontend(game, stdin, stdout, opts...).Run(ctx)
}

func listLevels(w io.Writer, catalog *levels.Manager) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tBOXES\tDESCRIPTION")
	for _, info := range catalog.List() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", info.Number, info.ID, info.Name, info.Boxes, info.Description)
	}
	return tw.Flush()
}

// validateLevels checks dir, falling back to the configured level
// directory and then to the built-in files.
func validateLevels(w io.Writer, dir, levelsDir string) error {
	if dir == "" {
		dir = levelsDir
	}

	var (
		results []validate.Result
		err     error
	)
	if dir == "" {
		results, err = validate.FS(levels.Builtin())
	} else {
		results, err = validate.Dir(dir)
	}
	if err != nil {
		return err
	}

	if !validate.Report(w, results) {
		return errInvalidLevels
	}
	return nil
}

func runMCP(ctx context.Context, levelsDir string) error {
	catalog, err := loadCatalog(levelsDir)
	if err != nil {
		return err
	}

	sessions := session.NewManager()
	svc := service.NewGameService(sessions, catalog)

	go sessionCleanupRoutine(ctx, sessions, cleanupInterval, sessionMaxAge)

	log.Printf("Starting %s v%s MCP server on stdio (%d levels)", AppName, Version, catalog.LevelCount())
	return mcp.NewServer(svc, Version).RunStdio()
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within maxAge.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}
