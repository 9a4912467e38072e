package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"cinema-booking-cli/config"
	"cinema-booking-cli/console"
	"cinema-booking-cli/model"
	"cinema-booking-cli/service"
	"cinema-booking-cli/store"
	"cinema-booking-cli/tui"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

// BuildInfo is stamped by the linker in main.
type BuildInfo struct {
	Name    string
	Version string
	Commit  string
}

// exitError marks failures that happen after the command line was accepted.
type exitError struct {
	err      error
	reported bool
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func fail(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{err: err, reported: errors.Is(err, service.ErrInvalidMovieChoice)}
}

type flagValues struct {
	member     bool
	specialDay bool
	catalog    string
	logLevel   string
	tui        bool
}

type app struct {
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
	info       BuildInfo
	httpClient *http.Client

	flags  flagValues
	cfg    config.Config
	logger *slog.Logger
}

// Execute runs the command line against the process streams and returns the
// exit status.
func Execute(ctx context.Context, info BuildInfo) int {
	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, info)
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer, info BuildInfo) int {
	a := &app{in: in, out: out, errOut: errOut, info: info}
	root := a.rootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.reported {
			fmt.Fprintf(errOut, "Error: %v\n", ee.err)
		}
		return exitRuntime
	}
	fmt.Fprintf(errOut, "Error: %v\nRun '%s --help' for usage.\n", err, root.CommandPath())
	return exitUsage
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   a.info.Name,
		Short: "Book a movie ticket from the terminal",
		Long: `Pick snacks, choose a movie and show time, book a seat and
get a receipt. Runs a line-based session by default, or a full-screen one with --tui.`,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runSession,
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.BoolVar(&a.flags.member, "member", true, "apply the member discount")
	flags.BoolVar(&a.flags.specialDay, "special-day", true, "apply the special day discount")
	flags.StringVar(&a.flags.catalog, "catalog", "", "catalog file path or http(s) URL")
	flags.StringVar(&a.flags.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.BoolVar(&a.flags.tui, "tui", false, "run the full-screen interface")

	root.AddCommand(a.moviesCommand(), a.catalogCommand(), a.versionCommand())
	return root
}

// setup merges .env and environment settings with the flags that were set
// explicitly, then builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}

	flags := cmd.Flags()
	if flags.Changed("member") {
		cfg.Member = a.flags.member
	}
	if flags.Changed("special-day") {
		cfg.SpecialDay = a.flags.specialDay
	}
	if flags.Changed("catalog") {
		cfg.Catalog = a.flags.catalog
	}
	if flags.Changed("tui") {
		cfg.TUI = a.flags.tui
	}
	if flags.Changed("log-level") {
		level, err := config.ParseLogLevel(a.flags.logLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: cfg.LogLevel}))
	return nil
}

func (a *app) runSession(cmd *cobra.Command, _ []string) error {
	catalog, err := a.resolveCatalog(cmd.Context())
	if err != nil {
		return fail(err)
	}
	pricing := service.Pricing{IsSpecialDay: a.cfg.SpecialDay}

	if a.cfg.TUI {
		summary, err := tui.Run(cmd.Context(), tui.Options{
			Catalog:  catalog,
			Pricing:  pricing,
			IsMember: a.cfg.Member,
			Logger:   a.logger,
		})
		if err != nil {
			return fail(err)
		}
		fmt.Fprint(a.out, summary)
		return nil
	}

	driver := console.New(a.in, a.out, console.Options{
		Catalog:  catalog,
		Pricing:  pricing,
		IsMember: a.cfg.Member,
		Logger:   a.logger,
	})
	return fail(driver.Run(cmd.Context()))
}

// resolveCatalog picks the catalog source: the configured path or URL, then
// the saved catalog file, then the built-in listing.
func (a *app) resolveCatalog(ctx context.Context) (*service.Catalog, error) {
	source := a.cfg.Catalog
	if source == "" {
		path, err := store.DefaultCatalogPath()
		if err == nil && store.CatalogFileExists(path) {
			source = path
		}
	}
	if source == "" {
		a.logger.Debug("using built-in catalog")
		return service.DefaultCatalog(), nil
	}

	var (
		doc model.CatalogDocument
		err error
	)
	if isRemote(source) {
		doc, err = service.NewCatalogClient(a.httpClient).FetchCatalog(ctx, source)
		if err == nil {
			err = store.ValidateCatalog(doc)
		}
	} else {
		doc, err = store.LoadCatalog(source)
	}
	if err != nil {
		return nil, err
	}
	a.logger.Debug("catalog loaded", "source", source, "movies", len(doc.Movies))
	return service.CatalogFromDocument(doc), nil
}

func isRemote(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (a *app) moviesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "movies",
		Short: "List movies and show times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.resolveCatalog(cmd.Context())
			if err != nil {
				return fail(err)
			}
			console.RenderCatalog(a.out, catalog)
			return nil
		},
	}
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "%s %s", a.info.Name, a.info.Version)
			if a.info.Commit != "none" && a.info.Commit != "" {
				fmt.Fprintf(a.out, " (%s)", a.info.Commit)
			}
			fmt.Fprintln(a.out)
		},
	}
}
