package output

import (
	"github.com/goliatone/go-tutors/internal/logging"
	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// DefaultFileName is the name of the generated course document.
const DefaultFileName = "tutors.json"

// Option configures the output components.
type Option func(*options)

type options struct {
	logger   interfaces.Logger
	dryRun   bool
	fileName string
	validate func([]byte) error
}

// WithLogger sets the logger used for progress and warnings.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDryRun skips every filesystem write.
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

// WithFileName overrides the course document name.
func WithFileName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.fileName = name
		}
	}
}

// WithValidator checks the encoded document before it is written. Validation
// failures are reported but never block the write.
func WithValidator(validate func([]byte) error) Option {
	return func(o *options) {
		o.validate = validate
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger:   logging.NoOp(),
		fileName: DefaultFileName,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
