package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cinetix-cli/config"
	"cinetix-cli/logging"
	"cinetix-cli/service"
	"cinetix-cli/tui"
)

// BuildInfo is stamped at link time.
type BuildInfo struct {
	Version string
	Commit  string
}

type options struct {
	configPath string
	apiURL     string
	demo       bool
}

// env holds what the subcommands share. It is filled lazily so commands
// that never touch the network do not need a config or a logger.
type env struct {
	opts  options
	build BuildInfo
	in    io.ReadCloser

	cfg      *config.Config
	log      *zap.Logger
	client   *service.Client
	stopDemo func()
}

func (e *env) setup() error {
	if e.client != nil {
		return nil
	}
	cfg, err := config.Load(e.opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if e.opts.apiURL != "" {
		cfg.API.BaseURL = strings.TrimRight(e.opts.apiURL, "/")
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if e.opts.demo {
		baseURL, stop, err := startDemo(log)
		if err != nil {
			return fmt.Errorf("start demo api: %w", err)
		}
		cfg.API.BaseURL = baseURL
		e.stopDemo = stop
	}
	log.Info("client configured",
		zap.String("base_url", cfg.API.BaseURL),
		zap.Duration("timeout", cfg.API.Timeout),
		zap.Bool("demo", e.opts.demo),
	)

	e.cfg = cfg
	e.log = log
	e.client = service.NewClient(
		&http.Client{Timeout: cfg.API.Timeout},
		service.WithBaseURL(cfg.API.BaseURL),
		service.WithMaxAttempts(cfg.API.MaxAttempts),
		service.WithLogger(log),
		service.WithUserAgent(config.AppName+"/"+e.build.Version),
	)
	return nil
}

func (e *env) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, e.cfg.API.Timeout)
}

func (e *env) close() {
	if e.stopDemo != nil {
		e.stopDemo()
		e.stopDemo = nil
	}
	if e.log != nil {
		_ = e.log.Sync()
	}
}

func newRootCmd(build BuildInfo) (*cobra.Command, *env) {
	e := &env{build: build, in: os.Stdin}

	rootCmd := &cobra.Command{
		Use:   "cinetix",
		Short: "Cinetix movie tickets CLI",
		Long: `Browse movies, pick seats and book cinema tickets from the terminal.
Run without a subcommand to open the interactive app.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.setup(); err != nil {
				return err
			}
			program := tea.NewProgram(tui.New(e.client, e.cfg, e.log), tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&e.opts.configPath, "config", "", "config file (default is <config dir>/cinetix-cli/config.yaml)")
	flags.StringVar(&e.opts.apiURL, "api", "", "booking API base URL, overrides api.base_url")
	flags.BoolVar(&e.opts.demo, "demo", false, fmt.Sprintf("serve a built-in demo API on a loopback port (login %s / %s)", demoEmail, demoPassword))

	rootCmd.AddCommand(
		newMoviesCmd(e),
		newCinemasCmd(e),
		newLoginCmd(e),
		newLogoutCmd(e),
		newWhoamiCmd(e),
		newTicketsCmd(e),
		newVersionCmd(e),
	)
	return rootCmd, e
}

func Execute(build BuildInfo) {
	rootCmd, e := newRootCmd(build)
	err := rootCmd.Execute()
	e.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
