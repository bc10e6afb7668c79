package observability

import (
	"github.com/prefeitura-rio/app-contacts/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}
