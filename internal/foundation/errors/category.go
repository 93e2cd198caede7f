package errors

// ErrorCategory says what kind of operation failed.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"
	CategoryNetwork    ErrorCategory = "network"
	CategoryInventory  ErrorCategory = "inventory"
	CategoryBuild      ErrorCategory = "build"
	CategoryStyle      ErrorCategory = "style"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRuntime    ErrorCategory = "runtime"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // stops the command
	SeverityError   ErrorSeverity = "error"   // fails the current operation
	SeverityWarning ErrorSeverity = "warning" // the build continues degraded
)

// class holds the defaults a category gives new errors and the exit code
// the CLI reports for it.
type class struct {
	severity  ErrorSeverity
	retryable bool
	exitCode  int
}

var classes = map[ErrorCategory]class{
	CategoryValidation: {severity: SeverityFatal, exitCode: 2},
	CategoryNotFound:   {severity: SeverityError, exitCode: 3},
	CategoryConfig:     {severity: SeverityFatal, exitCode: 7},
	CategoryNetwork:    {severity: SeverityError, retryable: true, exitCode: 8},
	CategoryInventory:  {severity: SeverityWarning, exitCode: 8},
	CategoryInternal:   {severity: SeverityFatal, exitCode: 10},
	CategoryBuild:      {severity: SeverityFatal, exitCode: 11},
	CategoryStyle:      {severity: SeverityError, exitCode: 11},
	CategoryFileSystem: {severity: SeverityError, exitCode: 11},
	CategoryRuntime:    {severity: SeverityError, exitCode: 12},
}

func classOf(c ErrorCategory) class {
	if cl, ok := classes[c]; ok {
		return cl
	}
	return class{severity: SeverityError, exitCode: 1}
}
