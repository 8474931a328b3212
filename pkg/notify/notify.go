package notify

import "log/slog"

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Message is a single user-facing notification.
type Message struct {
	Level Level
	Text  string
}

// Notifier is the outbound notification channel. Implementations must be
// safe for concurrent use and must never block the caller.
type Notifier interface {
	Success(text string)
	Info(text string)
	Error(text string)
}

// Nop is a Notifier that discards everything.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Info(string)    {}
func (Nop) Error(string)   {}

// LogNotifier routes notifications to a structured logger, for headless
// processes that have no UI to flash messages on.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a slog-backed notifier. A nil logger falls back to
// slog.Default().
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(text string) {
	n.log.Info("notification", slog.String("level", string(LevelSuccess)), slog.String("text", text))
}

func (n *LogNotifier) Info(text string) {
	n.log.Info("notification", slog.String("level", string(LevelInfo)), slog.String("text", text))
}

func (n *LogNotifier) Error(text string) {
	n.log.Error("notification", slog.String("level", string(LevelError)), slog.String("text", text))
}
