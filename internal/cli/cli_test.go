package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/dirtree/internal/prompt"
	"github.com/temirov/dirtree/internal/utils"
)

type recordingCopier struct {
	copied []string
	err    error
}

func (copier *recordingCopier) Copy(text string) error {
	copier.copied = append(copier.copied, text)
	return copier.err
}

type commandResult struct {
	stdout string
	err    error
}

func runCommand(t *testing.T, dependencies Dependencies, stdin string, arguments ...string) commandResult {
	t.Helper()
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	dependencies.Stdin = strings.NewReader(stdin)
	dependencies.Stdout = &stdout
	dependencies.Stderr = &stderr
	if dependencies.HomeDirectory == "" {
		dependencies.HomeDirectory = t.TempDir()
	}
	if dependencies.Copier == nil {
		dependencies.Copier = &recordingCopier{}
	}
	rootCommand := NewRootCommand(dependencies)
	rootCommand.SetArgs(arguments)
	err := rootCommand.Execute()
	return commandResult{stdout: stdout.String(), err: err}
}

func createProject(t *testing.T) (string, string) {
	t.Helper()
	workspace := t.TempDir()
	project := filepath.Join(workspace, "project")
	for _, directory := range []string{"src", "node_modules/react"} {
		if err := os.MkdirAll(filepath.Join(project, directory), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", directory, err)
		}
	}
	for _, file := range []string{"README.md", ".DS_Store", "src/main.go", "node_modules/react/index.js"} {
		if err := os.WriteFile(filepath.Join(project, file), []byte("x"), 0o600); err != nil {
			t.Fatalf("write %s: %v", file, err)
		}
	}
	return workspace, project
}

const expectedProjectTree = "project\n" +
	"├── README.md\n" +
	"├── node_modules\n" +
	"└── src\n" +
	"    └── main.go\n"

func TestRootCommandRendersTree(t *testing.T) {
	workspace, project := createProject(t)

	testCases := []struct {
		name           string
		stdin          string
		arguments      []string
		workingDir     string
		expectedStdout string
	}{
		{
			name:           "positional_absolute_path",
			arguments:      []string{project},
			workingDir:     workspace,
			expectedStdout: expectedProjectTree,
		},
		{
			name:           "positional_relative_path",
			arguments:      []string{"project"},
			workingDir:     workspace,
			expectedStdout: expectedProjectTree,
		},
		{
			name:           "prompted_path",
			stdin:          project + "\n",
			workingDir:     workspace,
			expectedStdout: prompt.DefaultPromptText + expectedProjectTree,
		},
		{
			name:           "empty_answer_selects_working_directory",
			stdin:          "\n",
			workingDir:     project,
			expectedStdout: prompt.DefaultPromptText + expectedProjectTree,
		},
		{
			name:           "closed_input_selects_working_directory",
			stdin:          "",
			workingDir:     project,
			expectedStdout: prompt.DefaultPromptText + expectedProjectTree,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			result := runCommand(t, Dependencies{WorkingDirectory: testCase.workingDir}, testCase.stdin, testCase.arguments...)
			if result.err != nil {
				t.Fatalf("unexpected error: %v", result.err)
			}
			if result.stdout != testCase.expectedStdout {
				t.Fatalf("unexpected stdout:\n%s\nexpected:\n%s", result.stdout, testCase.expectedStdout)
			}
		})
	}
}

func TestRootCommandReportsMissingPath(t *testing.T) {
	workspace := t.TempDir()
	if err := os.WriteFile(filepath.Join(workspace, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	testCases := []struct {
		name string
		root string
	}{
		{name: "missing_entry", root: filepath.Join(workspace, "missing")},
		{name: "below_a_file", root: filepath.Join(workspace, "notes.txt", "sub")},
		{name: "missing_relative_entry", root: "missing"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			result := runCommand(t, Dependencies{WorkingDirectory: workspace}, "", testCase.root)
			if !errors.Is(result.err, ErrPathDoesNotExist) {
				t.Fatalf("expected ErrPathDoesNotExist, got %v", result.err)
			}
			if !IsReported(result.err) {
				t.Fatalf("missing path error must count as reported")
			}
			if result.stdout != "Path does not exist!\n" {
				t.Fatalf("expected single error line, got %q", result.stdout)
			}
		})
	}
}

func TestRootCommandIgnoresProjectConfigYAML(t *testing.T) {
	_, project := createProject(t)
	if err := os.WriteFile(filepath.Join(project, "config.yaml"), []byte("image: {{ .Values.image }}\n"), 0o600); err != nil {
		t.Fatalf("write config.yaml: %v", err)
	}

	result := runCommand(t, Dependencies{WorkingDirectory: project}, "\n")
	if result.err != nil {
		t.Fatalf("unexpected error: %v", result.err)
	}
	expected := prompt.DefaultPromptText + "project\n" +
		"├── README.md\n" +
		"├── config.yaml\n" +
		"├── node_modules\n" +
		"└── src\n" +
		"    └── main.go\n"
	if result.stdout != expected {
		t.Fatalf("unexpected stdout:\n%s\nexpected:\n%s", result.stdout, expected)
	}
}

func TestRootCommandCopyFlagKeepsBooleanLikePath(t *testing.T) {
	workspace := t.TempDir()
	if err := os.MkdirAll(filepath.Join(workspace, "y", "inner"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	copier := &recordingCopier{}

	result := runCommand(t, Dependencies{WorkingDirectory: workspace, Copier: copier}, "", "--copy", "y")
	if result.err != nil {
		t.Fatalf("unexpected error: %v", result.err)
	}
	expected := "y\n└── inner\n"
	if result.stdout != expected {
		t.Fatalf("unexpected stdout %q, expected %q", result.stdout, expected)
	}
	if len(copier.copied) != 1 || copier.copied[0] != expected {
		t.Fatalf("unexpected clipboard content %q", copier.copied)
	}
}

func TestRootCommandReportsFileRoot(t *testing.T) {
	workspace := t.TempDir()
	filePath := filepath.Join(workspace, "notes.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	result := runCommand(t, Dependencies{WorkingDirectory: workspace}, "", filePath)
	if !errors.Is(result.err, ErrPathNotDirectory) {
		t.Fatalf("expected ErrPathNotDirectory, got %v", result.err)
	}
	if result.stdout != "Path is not a directory!\n" {
		t.Fatalf("expected single error line, got %q", result.stdout)
	}
}

func TestRootCommandRejectsExtraArguments(t *testing.T) {
	workspace := t.TempDir()
	result := runCommand(t, Dependencies{WorkingDirectory: workspace}, "", "a", "b")
	if result.err == nil {
		t.Fatalf("expected argument count error")
	}
	if IsReported(result.err) {
		t.Fatalf("argument errors are not reported on stdout")
	}
}

func TestRootCommandCopiesTree(t *testing.T) {
	workspace, project := createProject(t)

	testCases := []struct {
		name         string
		arguments    []string
		localConfig  string
		expectCopied bool
	}{
		{name: "flag_enables_copy", arguments: []string{"--copy", project}, expectCopied: true},
		{name: "flag_literal_disables_copy", arguments: []string{"--copy=no", project}, expectCopied: false},
		{name: "default_does_not_copy", arguments: []string{project}, expectCopied: false},
		{name: "configuration_enables_copy", arguments: []string{project}, localConfig: "copy: true\n", expectCopied: true},
		{name: "flag_overrides_configuration", arguments: []string{"--copy=false", project}, localConfig: "copy: true\n", expectCopied: false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			workingDirectory := workspace
			if testCase.localConfig != "" {
				workingDirectory = t.TempDir()
				if err := os.WriteFile(filepath.Join(workingDirectory, utils.LocalConfigFileName), []byte(testCase.localConfig), 0o600); err != nil {
					t.Fatalf("write config: %v", err)
				}
			}
			copier := &recordingCopier{}
			result := runCommand(t, Dependencies{WorkingDirectory: workingDirectory, Copier: copier}, "", testCase.arguments...)
			if result.err != nil {
				t.Fatalf("unexpected error: %v", result.err)
			}
			if result.stdout != expectedProjectTree {
				t.Fatalf("unexpected stdout:\n%s", result.stdout)
			}
			if !testCase.expectCopied {
				if len(copier.copied) != 0 {
					t.Fatalf("expected no clipboard copy, got %d", len(copier.copied))
				}
				return
			}
			if len(copier.copied) != 1 || copier.copied[0] != expectedProjectTree {
				t.Fatalf("unexpected clipboard content %q", copier.copied)
			}
		})
	}
}

func TestRootCommandLogsClipboardFailure(t *testing.T) {
	_, project := createProject(t)
	observedCore, observedLogs := observer.New(zap.WarnLevel)
	copier := &recordingCopier{err: errors.New("no clipboard utility")}

	result := runCommand(t, Dependencies{Logger: zap.New(observedCore), Copier: copier, WorkingDirectory: t.TempDir()}, "", "--copy", project)
	if result.err != nil {
		t.Fatalf("clipboard failure must not fail the command: %v", result.err)
	}
	if result.stdout != expectedProjectTree {
		t.Fatalf("unexpected stdout:\n%s", result.stdout)
	}
	if observedLogs.FilterMessage(clipboardWarningMessage).Len() != 1 {
		t.Fatalf("expected clipboard warning, got %v", observedLogs.All())
	}
}

func TestRootCommandUsesConfiguredPrompt(t *testing.T) {
	_, project := createProject(t)
	workingDirectory := t.TempDir()
	configPath := filepath.Join(workingDirectory, "custom.yaml")
	if err := os.WriteFile(configPath, []byte("prompt: \"root? \"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	result := runCommand(t, Dependencies{WorkingDirectory: workingDirectory}, project+"\n", "--config", configPath)
	if result.err != nil {
		t.Fatalf("unexpected error: %v", result.err)
	}
	if result.stdout != "root? "+expectedProjectTree {
		t.Fatalf("unexpected stdout:\n%s", result.stdout)
	}
}

func TestRootCommandPrintsVersion(t *testing.T) {
	result := runCommand(t, Dependencies{WorkingDirectory: t.TempDir()}, "", "--version")
	if result.err != nil {
		t.Fatalf("unexpected error: %v", result.err)
	}
	if !strings.HasPrefix(result.stdout, "dirtree version: ") {
		t.Fatalf("unexpected version output %q", result.stdout)
	}
}

func TestInitCommandWritesConfiguration(t *testing.T) {
	workingDirectory := t.TempDir()
	homeDirectory := t.TempDir()

	testCases := []struct {
		name         string
		arguments    []string
		expectedPath string
		expectError  bool
	}{
		{name: "local", arguments: []string{"init"}, expectedPath: filepath.Join(workingDirectory, utils.LocalConfigFileName)},
		{name: "local_exists", arguments: []string{"init"}, expectError: true},
		{name: "local_forced", arguments: []string{"init", "--force"}, expectedPath: filepath.Join(workingDirectory, utils.LocalConfigFileName)},
		{name: "global", arguments: []string{"init", "--global"}, expectedPath: filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)},
	}

	for _, testCase := range testCases {
		result := runCommand(t, Dependencies{WorkingDirectory: workingDirectory, HomeDirectory: homeDirectory}, "", testCase.arguments...)
		if testCase.expectError {
			if result.err == nil {
				t.Fatalf("%s: expected error", testCase.name)
			}
			continue
		}
		if result.err != nil {
			t.Fatalf("%s: unexpected error: %v", testCase.name, result.err)
		}
		if result.stdout != "Configuration written to "+testCase.expectedPath+"\n" {
			t.Fatalf("%s: unexpected stdout %q", testCase.name, result.stdout)
		}
	}
}
