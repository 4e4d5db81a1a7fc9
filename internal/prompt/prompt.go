// Package prompt acquires the root directory from an interactive reader.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultPromptText is shown before reading the root path.
const DefaultPromptText = "Enter project path (leave empty for current dir): "

const (
	errorWritePromptFormat = "writing prompt: %w"
	errorReadInputFormat   = "reading path from input: %w"
)

// ResolveRoot returns the trimmed input line, or currentDirectory when the line is blank.
func ResolveRoot(inputLine string, currentDirectory string) string {
	trimmedInput := strings.TrimSpace(inputLine)
	if trimmedInput == "" {
		return currentDirectory
	}
	return trimmedInput
}

// ReadRoot writes promptText to writer, reads one line from reader and resolves it.
// An input stream that ends before a newline is treated as the final line.
func ReadRoot(reader io.Reader, writer io.Writer, promptText string, currentDirectory string) (string, error) {
	if _, writeError := io.WriteString(writer, promptText); writeError != nil {
		return "", fmt.Errorf(errorWritePromptFormat, writeError)
	}
	inputLine, readError := bufio.NewReader(reader).ReadString('\n')
	if readError != nil && !errors.Is(readError, io.EOF) {
		return "", fmt.Errorf(errorReadInputFormat, readError)
	}
	return ResolveRoot(inputLine, currentDirectory), nil
}
