package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"imgspace/internal/app"
	"imgspace/internal/config"
)

var initRemember bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Prepare a directory as a workspace",
	Long: `Create the hidden control directory of a workspace.

Running it again on an existing workspace is harmless.

Examples:
  imgspace init ~/Pictures
  imgspace init ~/Pictures --remember`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check that a path can be used as a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inspector := app.Inspector{FS: filesystem}
		if err := inspector.ValidatePath(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid workspace directory\n", args[0])
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initRemember, "remember", false, "Store the workspace in the config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	target := ""
	if len(args) == 1 {
		target = args[0]
	} else {
		root, err := requireWorkspace()
		if err != nil {
			return err
		}
		target = root
	}

	ws, err := app.Inspector{FS: filesystem}.Open(target)
	if err != nil {
		return err
	}

	bootstrapper := app.Bootstrapper{FS: filesystem, Logger: logger}
	dbPath, err := bootstrapper.EnsureStructure(ws.AbsolutePath)
	if err != nil {
		return err
	}

	newPrinter(cmd).PrintWorkspace(ws, dbPath)

	if initRemember {
		appConfig.Workspace = ws.AbsolutePath
		if err := config.Save(appConfig, configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved workspace to %s\n", configPath)
	}
	return nil
}
