package main

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"imgspace/internal/app"
	"imgspace/internal/domain"
	"imgspace/internal/logging"
	"imgspace/internal/tui"
)

const browseLogName = "browse.log"

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the workspace interactively",
	Long: `Open an interactive list of the workspace images.

The listing is refreshed from disk after every move, rename or delete.
Log output goes to .im_settings/browse.log while the browser is open.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	root, err := requireWorkspace()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	bootstrapper := app.Bootstrapper{FS: filesystem, Logger: logger}
	if _, err := bootstrapper.EnsureStructure(root); err != nil {
		return err
	}

	ws := domain.Workspace{AbsolutePath: root}
	sessionLog, closeLog := openBrowseLog(ws)
	defer closeLog()

	var program *tea.Program
	scanner := newScanner(false, sessionLog)
	scanner.OnProgress = func(current, total int) {
		if program != nil {
			program.Send(tui.ScanProgressMsg{Current: current, Total: total})
		}
	}
	mutator := &app.Mutator{FS: filesystem, Logger: sessionLog}

	model := tui.NewModel(tui.Config{
		WorkspacePath: root,
		Verbose:       appConfig.Verbose,
		Scan: func() tea.Cmd {
			return func() tea.Msg {
				images, err := scanner.Scan(ctx, root)
				if err != nil {
					return tui.ErrorMsg{Err: err}
				}
				return tui.ScanDoneMsg{Images: images}
			}
		},
		Delete: func(relativePath string) tea.Cmd {
			return mutation(func() (string, string, error) {
				err := mutator.Delete(ctx, relativePath, root)
				return fmt.Sprintf("Deleted %s", relativePath), "", err
			})
		},
		Rename: func(relativePath, newName string) tea.Cmd {
			return mutation(func() (string, string, error) {
				newPath, err := mutator.Rename(ctx, domain.RenameRequest{
					OldName:       path.Base(relativePath),
					NewName:       newName,
					RelativePath:  relativePath,
					WorkspacePath: root,
				})
				return fmt.Sprintf("Renamed %s to %s", relativePath, newPath), newPath, err
			})
		},
		Move: func(relativePath, newPath string) tea.Cmd {
			return mutation(func() (string, string, error) {
				movedTo, err := mutator.Move(ctx, domain.MoveRequest{
					OldPath:       relativePath,
					NewPath:       newPath,
					WorkspacePath: root,
				})
				return fmt.Sprintf("Moved %s to %s", relativePath, movedTo), movedTo, err
			})
		},
	})

	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func mutation(run func() (summary, selectPath string, err error)) tea.Cmd {
	return func() tea.Msg {
		summary, selectPath, err := run()
		if err != nil {
			return tui.MutationFailedMsg{Err: err}
		}
		return tui.MutationDoneMsg{Summary: summary, Path: selectPath}
	}
}

// openBrowseLog sends log output to a file in the control directory so it does
// not draw over the terminal UI. Logging is dropped if the file cannot be opened.
func openBrowseLog(ws domain.Workspace) (logging.Logger, func()) {
	file, err := os.OpenFile(filepath.Join(ws.ControlDir(), browseLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warnf("Browse log unavailable: %v", err)
		return logging.New(io.Discard, false, appConfig.LogFormat), func() {}
	}
	sessionLog := logging.New(file, appConfig.Verbose, appConfig.LogFormat).With("workspace", ws.AbsolutePath)
	return sessionLog, func() {
		_ = sessionLog.Sync()
		_ = file.Close()
	}
}
