package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"imgspace/internal/app"
	"imgspace/internal/infra/thumb"
)

var previewMaxSize int

var pathCmd = &cobra.Command{
	Use:   "path <path>",
	Short: "Print the absolute path of an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireWorkspace()
		if err != nil {
			return err
		}
		abs, err := newPreview().AbsolutePath(args[0], root)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), abs)
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <path>",
	Short: "Print an image as a base64 data URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireWorkspace()
		if err != nil {
			return err
		}
		preview := newPreview()
		maxSize := appConfig.PreviewMaxSize
		if cmd.Flags().Changed("max-size") {
			maxSize = previewMaxSize
		}
		if maxSize > 0 {
			preview.Scaler = thumb.Scaler{MaxSize: maxSize}
		}
		url, err := preview.DataURL(cmd.Context(), args[0], root)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewMaxSize, "max-size", 0, "Shrink raster images to fit this many pixels (0 keeps the original)")
}

func newPreview() app.Preview {
	return app.Preview{FS: filesystem, MaxBytes: appConfig.MaxPreviewBytes, Logger: logger}
}
