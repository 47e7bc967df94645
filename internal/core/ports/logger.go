package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Debug logs a message that is only shown in verbose mode.
	Debug(msg string)
	// Error logs an error, rendering its cause chain.
	Error(err error)
}
