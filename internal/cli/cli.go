// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/config"
	"github.com/temirov/dirtree/internal/prompt"
	"github.com/temirov/dirtree/internal/services/clipboard"
	"github.com/temirov/dirtree/internal/tree"
	"github.com/temirov/dirtree/internal/utils"
)

const (
	versionFlagName      = "version"
	configFlagName       = "config"
	copyFlagName         = "copy"
	globalFlagName       = "global"
	forceFlagName        = "force"
	versionTemplate      = "dirtree version: %s\n"
	rootUse              = "dirtree [path]"
	rootShortDescription = "print a directory tree without build and dependency noise"
	rootLongDescription  = `dirtree prints the directory hierarchy below a path.
Directories such as .git, node_modules, build and dist are listed but not expanded, and .DS_Store files are omitted.
When no path is given, dirtree asks for one; an empty answer selects the current directory.`
	rootUsageExample = `  # Ask for the path interactively
  dirtree

  # Print the tree of a project and copy it to the clipboard
  dirtree --copy ./project`
	initUse                     = "init"
	initShortDescription        = "write a default configuration file"
	initLongDescription         = `Write a default configuration file into the current directory, or into ~/.dirtree with --global.`
	versionFlagDescription      = "display application version"
	configFlagDescription       = "configuration file to use instead of ./.dirtree.yaml"
	copyFlagDescription         = "copy the rendered tree to the clipboard"
	globalFlagDescription       = "write the configuration into the global configuration directory"
	forceFlagDescription        = "overwrite an existing configuration file"
	initCompletedFormat         = "Configuration written to %s\n"
	pathDoesNotExistMessage     = "Path does not exist!"
	pathNotDirectoryMessage     = "Path is not a directory!"
	clipboardWarningMessage     = "Warning: failed to copy tree to clipboard"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
)

var (
	// ErrPathDoesNotExist is returned when the selected root is missing.
	ErrPathDoesNotExist = errors.New("path does not exist")
	// ErrPathNotDirectory is returned when the selected root is not a directory.
	ErrPathNotDirectory = errors.New("path is not a directory")
)

// IsReported reports whether err has already been explained to the user on standard output.
func IsReported(err error) bool {
	return errors.Is(err, ErrPathDoesNotExist) || errors.Is(err, ErrPathNotDirectory)
}

// Dependencies holds the collaborators of the command tree.
type Dependencies struct {
	Stdin            io.Reader
	Stdout           io.Writer
	Stderr           io.Writer
	Logger           *zap.Logger
	Copier           clipboard.Copier
	WorkingDirectory string
	HomeDirectory    string
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Stdin == nil {
		dependencies.Stdin = os.Stdin
	}
	if dependencies.Stdout == nil {
		dependencies.Stdout = os.Stdout
	}
	if dependencies.Stderr == nil {
		dependencies.Stderr = os.Stderr
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Copier == nil {
		dependencies.Copier = clipboard.NewService()
	}
	return dependencies
}

// Execute runs the dirtree application with process arguments and standard streams.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger})
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()

	var showVersion bool
	var configurationPath string
	var copyEnabled bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, err := fmt.Fprintf(dependencies.Stdout, versionTemplate, utils.GetApplicationVersion())
				return err
			}
			workingDirectory, err := resolveWorkingDirectory(dependencies.WorkingDirectory)
			if err != nil {
				return err
			}
			applicationConfiguration, err := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: configurationPath,
				HomeDirectory:    dependencies.HomeDirectory,
			})
			if err != nil {
				return err
			}
			if !command.Flags().Changed(copyFlagName) {
				copyEnabled = applicationConfiguration.CopyEnabled()
			}
			return runTree(dependencies, arguments, workingDirectory, applicationConfiguration.PromptText(), copyEnabled)
		},
	}
	rootCommand.SetIn(dependencies.Stdin)
	rootCommand.SetOut(dependencies.Stdout)
	rootCommand.SetErr(dependencies.Stderr)
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)
	registerCopyFlag(rootCommand.Flags(), &copyEnabled)
	rootCommand.AddCommand(createInitCommand(dependencies))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies Dependencies) *cobra.Command {
	var globalTarget bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, err := resolveWorkingDirectory(dependencies.WorkingDirectory)
			if err != nil {
				return err
			}
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			writtenPath, err := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            forceOverwrite,
				WorkingDirectory: workingDirectory,
				HomeDirectory:    dependencies.HomeDirectory,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(dependencies.Stdout, initCompletedFormat, writtenPath)
			return err
		},
	}
	initCommand.Flags().BoolVar(&globalTarget, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}

func resolveWorkingDirectory(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	workingDirectory, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf(workingDirectoryErrorFormat, err)
	}
	return workingDirectory, nil
}

// runTree selects the root, validates it and renders the tree.
func runTree(dependencies Dependencies, arguments []string, workingDirectory string, promptText string, copyEnabled bool) error {
	var root string
	if len(arguments) > 0 {
		root = prompt.ResolveRoot(arguments[0], workingDirectory)
	} else {
		promptedRoot, err := prompt.ReadRoot(dependencies.Stdin, dependencies.Stdout, promptText, workingDirectory)
		if err != nil {
			return err
		}
		root = promptedRoot
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(workingDirectory, root)
	}

	if err := validateRoot(dependencies.Stdout, root); err != nil {
		return err
	}

	if !copyEnabled {
		return tree.NewPrinter(dependencies.Stdout).RenderTree(root)
	}

	var rendered bytes.Buffer
	renderError := tree.NewPrinter(io.MultiWriter(dependencies.Stdout, &rendered)).RenderTree(root)
	if renderError != nil {
		return renderError
	}
	if copyError := dependencies.Copier.Copy(rendered.String()); copyError != nil {
		dependencies.Logger.Warn(clipboardWarningMessage, zap.Error(copyError))
	}
	return nil
}

// validateRoot prints a single explanatory line when root cannot be rendered.
func validateRoot(writer io.Writer, root string) error {
	rootInformation, statError := os.Stat(root)
	if statError != nil {
		// Any stat failure counts as a missing root.
		if _, writeError := fmt.Fprintln(writer, pathDoesNotExistMessage); writeError != nil {
			return writeError
		}
		return fmt.Errorf("%w: %s: %v", ErrPathDoesNotExist, root, statError)
	}
	if !rootInformation.IsDir() {
		if _, writeError := fmt.Fprintln(writer, pathNotDirectoryMessage); writeError != nil {
			return writeError
		}
		return fmt.Errorf("%w: %s", ErrPathNotDirectory, root)
	}
	return nil
}
