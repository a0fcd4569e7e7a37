package core

// Logger is implemented by the services/logger backends.
// expected args fmt: error, map[string]interface{}, session.User
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
