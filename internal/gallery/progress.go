package gallery

import "go.uber.org/zap"

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lowercase level name.
func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// ProgressEvent reports a controller action or a catalog load step.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
	Err     error
}

// LogProgress returns a progress callback that writes events to logger.
//
// Verbose events are logged at debug level, warnings and errors at their
// own level, everything else at info.
func LogProgress(logger *zap.Logger) func(ProgressEvent) {
	if logger == nil {
		return nil
	}
	return func(event ProgressEvent) {
		fields := []zap.Field{zap.Stringer("progress", event.Level)}
		if event.Err != nil {
			fields = append(fields, zap.Error(event.Err))
		}

		switch event.Level {
		case LevelVerbose:
			logger.Debug(event.Message, fields...)
		case LevelWarning:
			logger.Warn(event.Message, fields...)
		case LevelError:
			logger.Error(event.Message, fields...)
		default:
			logger.Info(event.Message, fields...)
		}
	}
}
