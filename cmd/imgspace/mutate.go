package main

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"imgspace/internal/app"
	"imgspace/internal/domain"
)

var deleteYes bool

var moveCmd = &cobra.Command{
	Use:   "move <path> <new-path>",
	Short: "Move an image to another path inside the workspace",
	Long: `Move an image to another workspace-relative path.

Missing folders are created. An existing file at the destination is never
replaced.

Examples:
  imgspace move inbox/IMG_0001.jpg 2024/05/IMG_0001.jpg`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

var renameCmd = &cobra.Command{
	Use:   "rename <path> <new-name>",
	Short: "Rename an image in place",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Permanently delete an image",
	Long: `Permanently delete an image. There is no trash and no undo.

Examples:
  imgspace delete blurry.jpg
  imgspace delete blurry.jpg --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func newMutator() *app.Mutator {
	return &app.Mutator{FS: filesystem, Logger: logger}
}

func runMove(cmd *cobra.Command, args []string) error {
	root, err := requireWorkspace()
	if err != nil {
		return err
	}

	newPath, err := newMutator().Move(cmd.Context(), domain.MoveRequest{
		OldPath:       args[0],
		NewPath:       args[1],
		WorkspacePath: root,
	})
	if err != nil {
		return err
	}
	newPrinter(cmd).PrintMoved(args[0], newPath)
	return nil
}

func runRename(cmd *cobra.Command, args []string) error {
	root, err := requireWorkspace()
	if err != nil {
		return err
	}

	newPath, err := newMutator().Rename(cmd.Context(), domain.RenameRequest{
		OldName:       path.Base(args[0]),
		NewName:       args[1],
		RelativePath:  args[0],
		WorkspacePath: root,
	})
	if err != nil {
		return err
	}
	newPrinter(cmd).PrintRenamed(args[0], newPath)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	root, err := requireWorkspace()
	if err != nil {
		return err
	}

	if !deleteYes {
		confirmed, err := confirmDelete(cmd.InOrStdin(), cmd.OutOrStdout(), args[0])
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := newMutator().Delete(cmd.Context(), args[0], root); err != nil {
		return err
	}
	newPrinter(cmd).PrintDeleted(args[0])
	return nil
}

func confirmDelete(in io.Reader, out io.Writer, relativePath string) (bool, error) {
	reader := bufio.NewReader(in)
	fmt.Fprintf(out, "Permanently delete %s? [y/N]: ", relativePath)
	answer, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
