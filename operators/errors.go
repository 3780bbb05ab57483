package operators

import "fmt"

// ConfigurationError reports a problem with user-supplied configuration:
// degenerate domains, mismatched component counts, unknown presets or
// scheme names, invalid grid sizes or step sizes. Always raised before
// stepping begins, never partway through a run.
type ConfigurationError struct {
	What string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.What
}

func Configf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{What: fmt.Sprintf(format, args...)}
}
