package core

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// LoadError reports that an aggregation (a dashboard, a schedule) failed as a whole.
// No partial result is ever returned alongside it.
type LoadError struct {
	What string
	Err  error
}

func NewLoadError(what string, err error) error {
	return &LoadError{What: what, Err: err}
}

// Message is the error text safe to show to callers.
func (err LoadError) Message() string {
	return "unable to load " + err.What
}

func (err LoadError) Error() string {
	if err.Err == nil {
		return err.Message()
	}
	return err.Message() + ": " + err.Err.Error()
}

func (err LoadError) Unwrap() error { return err.Err }
