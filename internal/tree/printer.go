// Package tree renders a directory hierarchy as indented text.
package tree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

const (
	branchConnector = "├── "
	lastConnector   = "└── "
	branchIndent    = "│   "
	lastIndent      = "    "

	// errorReadDirectoryFormat is used when a directory listing fails.
	errorReadDirectoryFormat = "reading directory %s: %w"
	// errorWriteLineFormat is used when the output writer rejects a line.
	errorWriteLineFormat = "writing entry %s: %w"
)

// Printer writes directory trees to an output writer.
type Printer struct {
	writer           io.Writer
	directoryIgnores IgnoreSet
	fileIgnores      IgnoreSet
}

// Option customizes a Printer.
type Option func(*Printer)

// WithDirectoryIgnores replaces the set of directories that are listed but not expanded.
func WithDirectoryIgnores(ignores IgnoreSet) Option {
	return func(printer *Printer) {
		printer.directoryIgnores = ignores
	}
}

// WithFileIgnores replaces the set of entries that are omitted from the listing.
func WithFileIgnores(ignores IgnoreSet) Option {
	return func(printer *Printer) {
		printer.fileIgnores = ignores
	}
}

// NewPrinter constructs a Printer writing to writer with the default ignore sets.
func NewPrinter(writer io.Writer, options ...Option) *Printer {
	printer := &Printer{
		writer:           writer,
		directoryIgnores: DefaultDirectoryIgnores(),
		fileIgnores:      DefaultFileIgnores(),
	}
	for _, option := range options {
		option(printer)
	}
	return printer
}

// RootName returns the name printed on the first line for root.
func RootName(root string) string {
	cleanRoot := filepath.Clean(root)
	if absoluteRoot, absoluteError := filepath.Abs(cleanRoot); absoluteError == nil {
		cleanRoot = absoluteRoot
	}
	return filepath.Base(cleanRoot)
}

// RenderTree writes the root name followed by the rendered hierarchy below it.
// The caller guarantees that root is an existing directory.
func (printer *Printer) RenderTree(root string) error {
	rootName := RootName(root)
	if _, writeError := fmt.Fprintln(printer.writer, rootName); writeError != nil {
		return fmt.Errorf(errorWriteLineFormat, rootName, writeError)
	}
	return printer.Render(root, "")
}

// Render writes one line per entry of path, recursing into directories that are
// not ignored. Each line starts with prefix. The first listing or write failure
// aborts the traversal.
func (printer *Printer) Render(path string, prefix string) error {
	directoryEntries, readDirectoryError := os.ReadDir(path)
	if readDirectoryError != nil {
		return fmt.Errorf(errorReadDirectoryFormat, path, readDirectoryError)
	}

	entryNames := make([]string, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if printer.fileIgnores.Contains(directoryEntry.Name()) {
			continue
		}
		entryNames = append(entryNames, directoryEntry.Name())
	}
	sort.Strings(entryNames)

	for index, entryName := range entryNames {
		isLastEntry := index == len(entryNames)-1
		connector := branchConnector
		childPrefix := prefix + branchIndent
		if isLastEntry {
			connector = lastConnector
			childPrefix = prefix + lastIndent
		}

		if _, writeError := fmt.Fprintf(printer.writer, "%s%s%s\n", prefix, connector, entryName); writeError != nil {
			return fmt.Errorf(errorWriteLineFormat, entryName, writeError)
		}

		childPath := filepath.Join(path, entryName)
		if isDirectory(childPath) && !printer.directoryIgnores.Contains(entryName) {
			if renderError := printer.Render(childPath, childPrefix); renderError != nil {
				return renderError
			}
		}
	}

	return nil
}

// isDirectory follows symbolic links. Entries that cannot be inspected are
// treated as files.
func isDirectory(path string) bool {
	fileInformation, statError := os.Stat(path)
	return statError == nil && fileInformation.IsDir()
}
