package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/Joker-containers/joker/internal/adapters/console"
	"github.com/Joker-containers/joker/internal/adapters/fs"
	"github.com/Joker-containers/joker/internal/adapters/tcp"
	"github.com/Joker-containers/joker/internal/app"
	"github.com/Joker-containers/joker/internal/cliconfig"
	"github.com/Joker-containers/joker/internal/domain"
	"github.com/Joker-containers/joker/internal/ports"
	"github.com/Joker-containers/joker/pkg/log"
)

const helpBanner = `
   ___       _
  |_  |     | |
    | | ___ | | _____ _ __
    | |/ _ \| |/ / _ \ '__|
/\__/ / (_) |   <  __/ |
\____/ \___/|_|\_\___|_|
`

const helpDescription = `
Ship containers to a remote joker daemon.

Register daemons once with "add", pick one with "checkout", then hand it
artifacts with "run". Every artifact needs a manifest next to it named
<artifact>.joker.

Settings come from $HOME/.joker/config.toml, JOKER_* environment variables
and flags, in increasing order of precedence.
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  joker add west --ip 10.0.0.7 --port 9000
  joker checkout west
  joker run ./build/api.bin ./build/worker.bin
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs one command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{
		cfg:    cliconfig.DefaultConfig(),
		stdout: stdout,
		stderr: stderr,
		logger: log.NewNoopLogger(),
	}
	root := c.rootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	// Domain errors were already reported by the service that raised them.
	if domain.KindOf(err) == domain.KindUnknown {
		console.NewMessenger(stdout, stderr, c.cfg.NoColor).Error(fmt.Sprintf("Error: %v", err))
	}
	c.logger.Debug("command failed", log.Err(err), log.String("kind", domain.KindOf(err).String()))
	return 1
}

// cli carries settings and wiring shared by every subcommand.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string

	stdout io.Writer
	stderr io.Writer

	logger   ports.Logger
	msg      ports.Messenger
	registry *app.Registry
	shipper  *app.Shipper
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "joker",
		Short:         "Ship containers to a remote joker daemon",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				console.NewMessenger(c.stdout, c.stderr, c.cfg.NoColor).Error("Error: no such subcommand.")
			}
			return cmd.Help()
		},
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.joker/config.toml)")
	pf.StringVar(&c.cfg.RegistryPath, "registry", c.cfg.RegistryPath, "path to the daemon registry file")
	pf.DurationVar(&c.cfg.DialTimeout, "dial-timeout", c.cfg.DialTimeout, "timeout for connecting to a daemon (0 disables)")
	pf.DurationVar(&c.cfg.WriteTimeout, "write-timeout", c.cfg.WriteTimeout, "timeout for each write to a daemon (0 disables)")
	pf.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "diagnostic log level (trace, debug, info, warn, error)")
	pf.StringVar(&c.cfg.LogFormat, "log-format", c.cfg.LogFormat, "diagnostic log format (console or json)")
	pf.BoolVar(&c.cfg.NoColor, "no-color", c.cfg.NoColor, "disable colored output")

	root.AddCommand(
		c.addCmd(),
		c.checkoutCmd(),
		c.runCmd(),
		c.traceCmd(),
		c.logsCmd(),
		c.listCmd(),
		c.currentCmd(),
	)
	return root
}

// setup resolves settings and builds the services for one invocation.
func (c *cli) setup(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if err := cliconfig.Resolve(&c.cfg, c.cfgPath, changed); err != nil {
		return err
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = c.cfg.LogLevel
	logCfg.Format = c.cfg.LogFormat
	logCfg.NoColor = c.cfg.NoColor
	if c.stderr != nil {
		logCfg.Output = c.stderr
	}
	logger := log.New(logCfg)
	c.logger = logger
	logger.Debug("configuration",
		log.String("registry", c.cfg.RegistryPath),
		log.Duration("dial_timeout", c.cfg.DialTimeout),
		log.Duration("write_timeout", c.cfg.WriteTimeout),
		log.Bool("no_color", c.cfg.NoColor),
	)

	c.msg = console.NewMessenger(c.stdout, c.stderr, c.cfg.NoColor)

	store := fs.NewRegistryFile(c.cfg.RegistryPath)
	if err := store.Init(cmd.Context()); err != nil {
		c.msg.Error(fmt.Sprintf("Error while preparing the registry at %s: %v", store.Path(), err))
		return err
	}

	c.registry = app.NewRegistry(store, c.msg, logger.With(log.String("component", "registry")))
	c.shipper = app.NewShipper(
		tcp.NewDialer(c.cfg.DialTimeout, c.cfg.WriteTimeout),
		fs.NewArtifactFiles(),
		c.msg,
		logger.With(log.String("component", "shipper")),
	)
	return nil
}

func (c *cli) addCmd() *cobra.Command {
	var ip, port string
	cmd := &cobra.Command{
		Use:   "add <name> --ip <addr> --port <port>",
		Short: "Register a daemon under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(cmd); err != nil {
				return err
			}
			_, err := c.registry.Add(cmd.Context(), args[0], ip, port)
			return err
		},
	}
	cmd.Flags().StringVarP(&ip, "ip", "i", "", "daemon IP address (IPv4 or IPv6)")
	cmd.Flags().StringVarP(&port, "port", "p", "", "daemon TCP port")
	_ = cmd.MarkFlagRequired("ip")
	_ = cmd.MarkFlagRequired("port")
	return cmd
}

func (c *cli) checkoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <name>",
		Short: "Make a registered daemon the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(cmd); err != nil {
				return err
			}
			_, err := c.registry.Checkout(cmd.Context(), args[0])
			return err
		},
	}
}

func (c *cli) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <artifact>...",
		Short: "Ship artifacts to the active daemon",
		Long: strings.TrimSpace(`
Ship artifacts to the active daemon over a single connection.

Each artifact is sent as its file name, its contents and the contents of
<artifact>.joker. The batch stops at the first artifact that cannot be read
or written; artifacts before it have already been delivered.`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(cmd); err != nil {
				return err
			}
			target, err := c.registry.Current(cmd.Context())
			if err != nil {
				return err
			}
			rep, err := c.shipper.Run(cmd.Context(), target, args)
			c.logger.Debug("run finished",
				log.String("run_id", rep.RunID),
				log.String("state", rep.State.String()),
				log.Int64("bytes", rep.BytesWritten),
			)
			return err
		},
	}
}

func (c *cli) traceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trace",
		Short: "Trace daemon events (reserved)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(cmd); err != nil {
				return err
			}
			return app.Trace(cmd.Context(), c.logger)
		},
	}
}

func (c *cli) logsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logs <container>",
		Short: "Show container logs (not implemented)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(cmd); err != nil {
				return err
			}
			return app.Logs(cmd.Context(), args[0], c.msg, c.logger)
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered daemons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(cmd); err != nil {
				return err
			}
			daemons, active, err := c.registry.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(daemons) == 0 {
				c.msg.Info("No daemons registered. Use `joker add <name> --ip <addr> --port <port>`.")
				return nil
			}
			out := cmd.OutOrStdout()
			for _, d := range daemons {
				marker := " "
				if d.Name == active.Name {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\t%s\n", marker, d.Name, d.Addr)
			}
			return nil
		},
	}
}

func (c *cli) currentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the active daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(cmd); err != nil {
				return err
			}
			d, err := c.registry.Current(cmd.Context())
			if err != nil {
				return err
			}
			c.msg.Info(fmt.Sprintf("Active daemon %s at %s.", d.Name, d.Addr))
			return nil
		},
	}
}
