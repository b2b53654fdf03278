package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger логгер сервиса с printf-интерфейсом поверх logrus
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// New создает логгер
// Если filePath пустой, логи пишутся только в stdout, иначе дублируются в файл
func New(filePath string, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	base := logrus.New()
	base.SetFormatter(&logrus.JSONFormatter{})
	base.SetLevel(lvl)

	l := &Logger{}

	if filePath == "" {
		base.SetOutput(os.Stdout)
	} else {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file %s: %w", filePath, err)
		}
		base.SetOutput(io.MultiWriter(os.Stdout, f))
		l.file = f
	}

	l.entry = logrus.NewEntry(base)
	return l, nil
}

// NewWithWriter создает логгер, пишущий в произвольный writer (используется в тестах)
func NewWithWriter(w io.Writer, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	base := logrus.New()
	base.SetFormatter(&logrus.JSONFormatter{})
	base.SetLevel(lvl)
	base.SetOutput(w)

	return &Logger{entry: logrus.NewEntry(base)}, nil
}

// With возвращает логгер с дополнительным полем
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value), file: l.file}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

// Fatal логирует сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.entry.Fatalf(format, v...)
}

// Close закрывает файл логов, если он был открыт
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func parseLevel(level string) (logrus.Level, error) {
	if strings.TrimSpace(level) == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return 0, fmt.Errorf("logger: invalid level %q: %w", level, err)
	}
	return lvl, nil
}
