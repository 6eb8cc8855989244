package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"imgspace/internal/domain"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

// PrintScan lists a scan result. Long listings are shortened unless Verbose.
func (p Printer) PrintScan(root string, images []domain.ImageFile) {
	fmt.Fprintf(p.Writer, "Images in %s:\n", root)
	fmt.Fprintln(p.Writer)

	lines := formatImageLines(images)
	if !p.Verbose {
		lines = truncateLines(lines)
	}
	for _, line := range lines {
		fmt.Fprintln(p.Writer, line)
	}

	fmt.Fprintln(p.Writer)
	p.printSummary(images)
}

func (p Printer) printSummary(images []domain.ImageFile) {
	if len(images) == 0 {
		fmt.Fprintln(p.Writer, "No images found.")
		return
	}

	var total int64
	for _, image := range images {
		total += image.FileSize
	}
	fmt.Fprintf(p.Writer, "Found %d images (%s): %s.\n", len(images), FormatSize(total), extensionBreakdown(images))
}

// PrintJSON writes value as indented JSON.
func (p Printer) PrintJSON(value any) error {
	encoder := json.NewEncoder(p.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func (p Printer) PrintMoved(oldPath, newPath string) {
	fmt.Fprintf(p.Writer, "Moved %s -> %s\n", oldPath, newPath)
}

func (p Printer) PrintRenamed(oldPath, newPath string) {
	fmt.Fprintf(p.Writer, "Renamed %s -> %s\n", oldPath, newPath)
}

func (p Printer) PrintDeleted(relativePath string) {
	fmt.Fprintf(p.Writer, "Deleted %s\n", relativePath)
}

func (p Printer) PrintWorkspace(ws domain.Workspace, dbPath string) {
	fmt.Fprintf(p.Writer, "Workspace %q at %s\n", ws.Name, ws.AbsolutePath)
	if dbPath != "" {
		fmt.Fprintf(p.Writer, "Database path: %s\n", dbPath)
	}
}

func formatImageLines(images []domain.ImageFile) []string {
	lines := make([]string, 0, len(images))
	for _, image := range images {
		date := image.ModifiedAt.Format("2006-01-02 15:04")
		if image.TakenAt != nil {
			date = image.TakenAt.Format("2006-01-02 15:04")
		}
		lines = append(lines, fmt.Sprintf("%s  %s  %s", image.RelativePath, FormatSize(image.FileSize), date))
	}
	return lines
}

func truncateLines(lines []string) []string {
	if len(lines) <= 4 {
		return lines
	}
	head := lines[:2:2]
	tail := lines[len(lines)-2:]
	return append(append(head, "..."), tail...)
}

func extensionBreakdown(images []domain.ImageFile) string {
	counts := make(map[string]int)
	for _, image := range images {
		counts[image.Extension]++
	}
	exts := make([]string, 0, len(counts))
	for ext := range counts {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if counts[exts[i]] != counts[exts[j]] {
			return counts[exts[i]] > counts[exts[j]]
		}
		return exts[i] < exts[j]
	})

	parts := make([]string, 0, len(exts))
	for _, ext := range exts {
		label := ext
		if label == "" {
			label = "other"
		}
		parts = append(parts, fmt.Sprintf("%d %s", counts[ext], label))
	}
	return strings.Join(parts, ", ")
}

// FormatSize renders a byte count with a binary unit.
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
