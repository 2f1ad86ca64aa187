package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/starship-svn/internal/execshell"
	"github.com/temirov/starship-svn/internal/prompt"
	"github.com/temirov/starship-svn/internal/svninfo"
	"github.com/temirov/starship-svn/internal/utils"
	flagutils "github.com/temirov/starship-svn/internal/utils/flags"
	pathutils "github.com/temirov/starship-svn/internal/utils/path"
)

const (
	applicationNameConstant                 = "starship-svn"
	applicationShortDescriptionConstant     = "Print SVN branch name when in a working copy"
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	rootFlagNameConstant                    = "root"
	rootFlagShorthandConstant               = "r"
	rootFlagUsageConstant                   = "Print SVN working copy root folder"
	blacklistFlagNameConstant               = "blacklist"
	blacklistFlagShorthandConstant          = "b"
	blacklistFlagUsageConstant              = "Blacklisted branch names (NAME,..)"
	pathFlagNameConstant                    = "path"
	pathFlagUsageConstant                   = "Working copy path to inspect instead of the current directory"
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	promptConfigurationKeyConstant          = "prompt"
	promptBlacklistConfigKeyConstant        = promptConfigurationKeyConstant + ".blacklist"
	environmentPrefixConstant               = "STARSHIPSVN"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	defaultLogLevelConstant                 = utils.LogLevelError
	defaultLogFormatConstant                = utils.LogFormatConsole
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationBlacklistFieldConstant     = "blacklist"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	workingDirectoryErrorTemplateConstant   = "unable to determine working directory: %w"
	outputErrorTemplateConstant             = "unable to write output: %w"
	loggerNotInitializedMessageConstant     = "logger not initialized"
)

const applicationLongDescriptionConstant = "Print SVN branch name when in a working copy.\n\n" +
	"SVN only has a branch name by convention. The name is derived from the 'svn info' URL. " +
	"This is done with the assumption that the repo uses the conventional trunk/branches/tags repository layout. " +
	"If the URL path contains a folder named 'trunk', the branch name is trunk. " +
	"If the URL path contains a folder named 'branches' or 'tags' the next folder is considered the branch name, if it is not blacklisted.\n\n" +
	"If your branch named folder is not a direct child of 'branches' or 'tags' the in-between folders can be blacklisted. " +
	"The algorithm continues to scan right for a branch name until a non blacklisted folder name is found.\n\n" +
	"Add the following to your starship.toml.\n\n" +
	"[custom.svn]\n" +
	"description = 'SVN branch name'\n" +
	"command     = 'starship-svn'\n" +
	"when        = 'starship-svn'\n" +
	"format      = 'on [$symbol$output]($style) '\n" +
	"symbol      = ' '\n" +
	"style       = 'bold purple'"

var applicationVersion = "dev"

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Prompt PromptConfiguration            `mapstructure:"prompt"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// PromptConfiguration stores the branch name resolution settings.
type PromptConfiguration struct {
	Blacklist []string `mapstructure:"blacklist"`
}

// Sanitize trims blacklist entries and drops empty ones.
func (configuration PromptConfiguration) Sanitize() PromptConfiguration {
	return PromptConfiguration{Blacklist: sanitizeBlacklist(configuration.Blacklist)}
}

// Application wires the Cobra root command, configuration loader, structured logger, and prompt service.
type Application struct {
	rootCommand              *cobra.Command
	configurationLoader      *utils.ConfigurationLoader
	loggerFactory            *utils.LoggerFactory
	logger                   *zap.Logger
	homeExpander             *pathutils.HomeExpander
	configuration            ApplicationConfiguration
	configurationMetadata    utils.LoadedConfiguration
	configurationFilePath    string
	logLevelFlagValue        string
	logFormatFlagValue       string
	rootModeFlagValue        bool
	blacklistFlagValues      []string
	workingDirectoryFlag     string
	infoProvider             prompt.InfoProvider
	workingDirectoryProvider func() (string, error)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:      configurationLoader,
		loggerFactory:            utils.NewLoggerFactory(),
		logger:                   zap.NewNop(),
		homeExpander:             pathutils.NewHomeExpander(),
		workingDirectoryProvider: os.Getwd,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       applicationVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command)
		},
	}

	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", flagutils.FormatChoiceUsage(string(defaultLogLevelConstant), utils.SupportedLogLevels(), logLevelFlagUsageConstant))
	persistentFlags.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", flagutils.FormatChoiceUsage(string(defaultLogFormatConstant), utils.SupportedLogFormats(), logFormatFlagUsageConstant))

	localFlags := cobraCommand.Flags()
	localFlags.BoolVarP(&application.rootModeFlagValue, rootFlagNameConstant, rootFlagShorthandConstant, false, rootFlagUsageConstant)
	localFlags.StringSliceVarP(&application.blacklistFlagValues, blacklistFlagNameConstant, blacklistFlagShorthandConstant, nil, blacklistFlagUsageConstant)
	localFlags.StringVar(&application.workingDirectoryFlag, pathFlagNameConstant, "", pathFlagUsageConstant)

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(defaultLogLevelConstant),
		commonLogFormatConfigKeyConstant: string(defaultLogFormatConstant),
		promptBlacklistConfigKeyConstant: []string{},
	}

	configurationFilePath := application.homeExpander.Expand(strings.TrimSpace(application.configurationFilePath))
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration
	application.configuration.Prompt = application.configuration.Prompt.Sanitize()

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if command != nil && command.Flags().Changed(blacklistFlagNameConstant) {
		application.configuration.Prompt.Blacklist = sanitizeBlacklist(application.blacklistFlagValues)
	}

	logLevel, logLevelError := utils.ParseLogLevel(application.configuration.Common.LogLevel)
	if logLevelError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, logLevelError)
	}

	logFormat, logFormatError := utils.ParseLogFormat(application.configuration.Common.LogFormat)
	if logFormatError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, logFormatError)
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(logLevel, logFormat)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.Strings(configurationBlacklistFieldConstant, application.configuration.Prompt.Blacklist),
	)

	return nil
}

func (application *Application) runRootCommand(command *cobra.Command) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	workingDirectory, workingDirectoryError := application.resolveWorkingDirectory()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
	}

	infoProvider, providerError := application.resolveInfoProvider()
	if providerError != nil {
		return providerError
	}

	service, serviceError := prompt.NewService(prompt.ServiceDependencies{InfoProvider: infoProvider, Logger: application.logger})
	if serviceError != nil {
		return serviceError
	}

	mode := prompt.ModeBranch
	if application.rootModeFlagValue {
		mode = prompt.ModeRoot
	}

	annotation, describeError := service.Describe(command.Context(), prompt.Options{
		WorkingDirectory: workingDirectory,
		Mode:             mode,
		Blacklist:        application.configuration.Prompt.Blacklist,
	})
	if describeError != nil {
		return describeError
	}

	if _, writeError := fmt.Fprintln(command.OutOrStdout(), annotation); writeError != nil {
		return fmt.Errorf(outputErrorTemplateConstant, writeError)
	}
	return nil
}

func (application *Application) resolveWorkingDirectory() (string, error) {
	requestedDirectory := strings.TrimSpace(application.workingDirectoryFlag)
	if len(requestedDirectory) == 0 {
		return application.workingDirectoryProvider()
	}
	return filepath.Abs(application.homeExpander.Expand(requestedDirectory))
}

func (application *Application) resolveInfoProvider() (prompt.InfoProvider, error) {
	if application.infoProvider != nil {
		return application.infoProvider, nil
	}

	shellExecutor, executorError := execshell.NewShellExecutor(application.logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return nil, executorError
	}
	return svninfo.NewClient(shellExecutor)
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}
	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

// configurationSearchPaths never includes the working directory: the prompt runs inside arbitrary checkouts.
func configurationSearchPaths() []string {
	userConfigurationDirectory, userConfigurationError := os.UserConfigDir()
	if userConfigurationError != nil {
		return nil
	}
	return []string{filepath.Join(userConfigurationDirectory, applicationNameConstant)}
}

func sanitizeBlacklist(blacklist []string) []string {
	sanitized := make([]string, 0, len(blacklist))
	for _, blacklistedFolder := range blacklist {
		trimmedFolder := strings.TrimSpace(blacklistedFolder)
		if len(trimmedFolder) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmedFolder)
	}
	return sanitized
}
