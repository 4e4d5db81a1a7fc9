package utils

const (
	// ConfigFileName is the name of the configuration file inside GlobalConfigDirectoryName.
	ConfigFileName = "config.yaml"
	// LocalConfigFileName is the name of the configuration file looked up in the working directory.
	LocalConfigFileName = ".dirtree.yaml"
	// GlobalConfigDirectoryName is the directory below the user's home that holds global configuration.
	GlobalConfigDirectoryName = ".dirtree"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"

	// LoggerInitializationFailedMessageFormat reports a logger that could not be constructed.
	LoggerInitializationFailedMessageFormat = "initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes errors that terminate the application.
	ApplicationExecutionFailedMessage = "dirtree failed"
)

// ExitFailure is the process status used when the tree cannot be rendered.
const ExitFailure = 1
