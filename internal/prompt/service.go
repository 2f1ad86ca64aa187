package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/starship-svn/internal/svninfo"
	"github.com/temirov/starship-svn/internal/svnlayout"
)

const (
	infoProviderMissingMessageConstant      = "working copy information provider not configured"
	workingDirectoryRequiredMessageConstant = "working directory must be provided"
	unsupportedModeTemplateConstant         = "unsupported mode: %s"
	branchResolutionFailureTemplateConstant = "unable to determine branch name: %w"
	rootResolutionFailureTemplateConstant   = "unable to determine working copy root: %w"
	informationFailureTemplateConstant      = "unable to read working copy information: %w"
	resolvedMessageConstant                 = "resolved working copy annotation"
	informationMessageConstant              = "working copy information"
	logFieldModeConstant                    = "mode"
	logFieldWorkingDirectoryConstant        = "working_directory"
	logFieldURLConstant                     = "url"
	logFieldRelativeURLConstant             = "relative_url"
	logFieldBlacklistConstant               = "blacklist"
	logFieldResultConstant                  = "result"
)

// Mode selects which annotation the service resolves.
type Mode string

// Supported modes.
const (
	ModeBranch Mode = Mode("branch")
	ModeRoot   Mode = Mode("root")
)

var (
	// ErrInfoProviderNotConfigured indicates the service was constructed without an information provider.
	ErrInfoProviderNotConfigured = errors.New(infoProviderMissingMessageConstant)
	// ErrWorkingDirectoryRequired indicates an empty working directory option.
	ErrWorkingDirectoryRequired = errors.New(workingDirectoryRequiredMessageConstant)
)

// InfoProvider supplies Subversion working copy information.
type InfoProvider interface {
	Info(executionContext context.Context, target string) (svninfo.WorkingCopyInfo, error)
}

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	InfoProvider InfoProvider
	Logger       *zap.Logger
}

// Options configure a single resolution.
type Options struct {
	WorkingDirectory string
	Mode             Mode
	Blacklist        []string
}

// Service resolves branch names and working copy roots.
type Service struct {
	infoProvider InfoProvider
	logger       *zap.Logger
	rootResolver svnlayout.RootResolver
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.InfoProvider == nil {
		return nil, ErrInfoProviderNotConfigured
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{infoProvider: dependencies.InfoProvider, logger: logger, rootResolver: svnlayout.NewRootResolver()}, nil
}

// Describe returns the branch name or the working copy root folder for the working directory.
func (service *Service) Describe(executionContext context.Context, options Options) (string, error) {
	workingDirectory := strings.TrimSpace(options.WorkingDirectory)
	if len(workingDirectory) == 0 {
		return "", ErrWorkingDirectoryRequired
	}

	mode := options.Mode
	if len(mode) == 0 {
		mode = ModeBranch
	}
	if mode != ModeBranch && mode != ModeRoot {
		return "", fmt.Errorf(unsupportedModeTemplateConstant, mode)
	}

	workingCopyInfo, infoError := service.infoProvider.Info(executionContext, workingDirectory)
	if infoError != nil {
		return "", fmt.Errorf(informationFailureTemplateConstant, infoError)
	}

	service.logger.Debug(
		informationMessageConstant,
		zap.String(logFieldWorkingDirectoryConstant, workingDirectory),
		zap.String(logFieldURLConstant, workingCopyInfo.URL),
		zap.String(logFieldRelativeURLConstant, workingCopyInfo.RelativeURL),
	)

	var annotation string
	switch mode {
	case ModeRoot:
		rootFolder, rootError := service.rootResolver.Resolve(workingCopyInfo.RelativeURL, svnlayout.SplitFilesystemPath(workingDirectory))
		if rootError != nil {
			return "", fmt.Errorf(rootResolutionFailureTemplateConstant, rootError)
		}
		annotation = rootFolder
	default:
		branchName, branchError := svnlayout.NewBranchResolver(options.Blacklist).Resolve(workingCopyInfo.URL)
		if branchError != nil {
			return "", fmt.Errorf(branchResolutionFailureTemplateConstant, branchError)
		}
		annotation = branchName
	}

	service.logger.Debug(
		resolvedMessageConstant,
		zap.String(logFieldModeConstant, string(mode)),
		zap.Strings(logFieldBlacklistConstant, options.Blacklist),
		zap.String(logFieldResultConstant, annotation),
	)

	return annotation, nil
}
