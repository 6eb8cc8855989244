package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"imgspace/internal/app"
	"imgspace/internal/config"
	appErrors "imgspace/internal/errors"
	"imgspace/internal/infra/exif"
	"imgspace/internal/infra/fs"
	"imgspace/internal/logging"
	"imgspace/internal/presentation"
)

var (
	flagWorkspace string
	flagConfig    string
	flagVerbose   bool
	flagLogFormat string

	appConfig  config.Config
	configPath string
	logger     logging.Logger
	filesystem = fs.OSFS{}
)

var rootCmd = &cobra.Command{
	Use:   "imgspace",
	Short: "Index and tidy the images inside a workspace folder",
	Long: "imgspace lists the images below a workspace directory and moves,\n" +
		"renames or deletes them without ever overwriting an existing file.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagWorkspace, "workspace", "w", "", "Workspace directory (overrides config and IMGSPACE_WORKSPACE)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default is the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: console or json")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(configCmd)
}

// initializeApp resolves configuration in the order file, environment, flags
// and builds the shared logger.
func initializeApp(cmd *cobra.Command, args []string) error {
	path := flagConfig
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
		}
		path = defaultPath
	}
	configPath = path

	cfg, err := config.Load(path)
	if err != nil {
		return appErrors.Wrap(appErrors.InvalidConfig, "config", path, err)
	}
	if flagWorkspace != "" {
		cfg.Workspace = flagWorkspace
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
	if err := cfg.Validate(); err != nil {
		return appErrors.Wrap(appErrors.InvalidConfig, "config", path, err)
	}

	appConfig = cfg
	logger = logging.New(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogFormat)
	logger.Verbosef("Using config %s", path)
	return nil
}

// requireWorkspace returns the configured workspace as an absolute path.
func requireWorkspace() (string, error) {
	if appConfig.Workspace == "" {
		return "", appErrors.New(appErrors.InvalidConfig, "workspace", "",
			"no workspace given, pass --workspace or set IMGSPACE_WORKSPACE")
	}
	abs, err := filepath.Abs(appConfig.Workspace)
	if err != nil {
		return "", appErrors.Wrap(appErrors.InvalidPath, "workspace", appConfig.Workspace, err)
	}
	return abs, nil
}

func newPrinter(cmd *cobra.Command) presentation.Printer {
	return presentation.Printer{
		Writer:  cmd.OutOrStdout(),
		Verbose: appConfig.Verbose,
	}
}

func newScanner(readExif bool, log logging.Logger) *app.Scanner {
	scanner := &app.Scanner{
		FS:      filesystem,
		Workers: appConfig.ScanWorkers,
		Logger:  log,
	}
	if readExif || appConfig.ReadExif {
		scanner.Exif = exif.Reader{}
	}
	return scanner
}
