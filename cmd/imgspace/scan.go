package main

import (
	"github.com/spf13/cobra"
)

var (
	scanJSON bool
	scanExif bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the images in the workspace",
	Long: `Walk the workspace and list every supported image.

Hidden files and folders are skipped, including the control directory.
The listing is read straight from disk on every call.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print the listing as JSON")
	scanCmd.Flags().BoolVar(&scanExif, "exif", false, "Read EXIF capture times from JPEG and TIFF files")
}

func runScan(cmd *cobra.Command, args []string) error {
	root, err := requireWorkspace()
	if err != nil {
		return err
	}

	images, err := newScanner(scanExif, logger).Scan(cmd.Context(), root)
	if err != nil {
		return err
	}

	printer := newPrinter(cmd)
	if scanJSON {
		return printer.PrintJSON(images)
	}
	printer.PrintScan(root, images)
	return nil
}
