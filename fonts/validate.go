package fonts

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Notifier is a fire-and-forget diagnostics sink.
type Notifier interface {
	Notice(message string)
}

// NoticeFunc adapts ordinary function to Notifier.
type NoticeFunc func(message string)

func (f NoticeFunc) Notice(message string) {
	if f != nil {
		f(message)
	}
}

// LogNotifier returns Notifier which reports diagnostics as warnings.
func LogNotifier(log *zap.Logger) Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return NoticeFunc(func(message string) {
		log.Warn(message)
	})
}

// Validate checks font family configuration candidate. Every violation is
// reported to sink as a separate message, checking does not stop at the
// first one. Result is true only when no violations were found.
func Validate(candidate any, sink Notifier) bool {
	_, err := inspect(candidate)
	if err == nil {
		return true
	}
	if sink != nil {
		for _, e := range multierr.Errors(err) {
			sink.Notice(e.Error())
		}
	}
	return false
}
