package hookhub

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/hookhub/internal/version"
	"github.com/arthur-debert/hookhub/pkg/config"
	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/logging"
	"github.com/arthur-debert/hookhub/pkg/ui"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		cfgFile   string
		cfg       *config.Config
	)

	rootCmd := &cobra.Command{
		Use:     "hookhub",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				logging.SetupLoggerWithOptions(logging.Options{Verbosity: verbosity, Out: cmd.ErrOrStderr()})
				return errors.Wrap(err, errors.GetErrorCode(err), MsgErrLoadConfig)
			}
			cfg = loaded

			if loaded.Logging.Verbosity > verbosity {
				verbosity = loaded.Logging.Verbosity
			}
			logging.SetupLoggerWithOptions(logging.Options{Verbosity: verbosity, Out: cmd.ErrOrStderr()})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", MsgFlagConfig)

	current := func() *config.Config { return cfg }
	rootCmd.AddCommand(newSimulateCmd(current))
	rootCmd.AddCommand(newConfigCmd(current))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newSimulateCmd(cfg func() *config.Config) *cobra.Command {
	var (
		once   bool
		format string
	)

	cmd := &cobra.Command{
		Use:     "simulate [phase...]",
		Short:   MsgSimulateShort,
		Long:    MsgSimulateLong,
		Example: MsgSimulateExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ui.ParseFormat(format)
			if err != nil {
				return err
			}

			report, err := Simulate(SimulateOptions{
				Config: cfg(),
				Phases: args,
				Once:   once,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if file, ok := out.(*os.File); ok {
				f = ui.Resolve(f, file)
			}
			return ui.Render(out, report, f)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, MsgFlagOnce)
	cmd.Flags().StringVar(&format, "format", "auto", MsgFlagFormat)
	return cmd
}

func newConfigCmd(cfg func() *config.Config) *cobra.Command {
	var (
		format   string
		defaults bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), config.CommentedDefaults())
				return err
			}
			content, err := config.Generate(cfg(), format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", config.FormatTOML, MsgFlagCfgFmt)
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, info.Version, info.Commit, info.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}
