package errors

// ErrorBuilder builds a ClassifiedError fluently.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of the given category with that category's
// default severity and retry behaviour.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	cl := classOf(category)
	return &ErrorBuilder{err: ClassifiedError{
		category:  category,
		severity:  cl.severity,
		retryable: cl.retryable,
		message:   message,
	}}
}

// WrapError starts an error caused by err.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	if b.err.context == nil {
		b.err.context = make(map[string]any)
	}
	b.err.context[key] = value
	return b
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	b.err.severity = SeverityFatal
	return b
}

func (b *ErrorBuilder) Warning() *ErrorBuilder {
	b.err.severity = SeverityWarning
	return b
}

func (b *ErrorBuilder) Retryable() *ErrorBuilder {
	b.err.retryable = true
	return b
}

// Build returns the error. The builder may be reused afterwards without
// affecting errors it already built.
func (b *ErrorBuilder) Build() *ClassifiedError {
	out := b.err
	if b.err.context != nil {
		out.context = make(map[string]any, len(b.err.context))
		for k, v := range b.err.context {
			out.context[k] = v
		}
	}
	return &out
}

func ConfigError(message string) *ErrorBuilder     { return NewError(CategoryConfig, message) }
func ValidationError(message string) *ErrorBuilder { return NewError(CategoryValidation, message) }
func NotFoundError(message string) *ErrorBuilder   { return NewError(CategoryNotFound, message) }
func NetworkError(message string) *ErrorBuilder    { return NewError(CategoryNetwork, message) }
func InventoryError(message string) *ErrorBuilder  { return NewError(CategoryInventory, message) }
func StyleError(message string) *ErrorBuilder      { return NewError(CategoryStyle, message) }
func BuildError(message string) *ErrorBuilder      { return NewError(CategoryBuild, message) }
func FileSystemError(message string) *ErrorBuilder { return NewError(CategoryFileSystem, message) }
func InternalError(message string) *ErrorBuilder   { return NewError(CategoryInternal, message) }
