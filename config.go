package tutors

import "github.com/goliatone/go-tutors/internal/runtimeconfig"

var (
	ErrCourseDirRequired        = runtimeconfig.ErrCourseDirRequired
	ErrOutputDirSameAsCourseDir = runtimeconfig.ErrOutputDirSameAsCourseDir
	ErrOutputFileInvalid        = runtimeconfig.ErrOutputFileInvalid
	ErrWatchDebounceInvalid     = runtimeconfig.ErrWatchDebounceInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	WatchConfig   = runtimeconfig.WatchConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
