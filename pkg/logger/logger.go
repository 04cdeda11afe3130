package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log = logrus.New()

// Init инициализирует глобальный логгер.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	Log = logrus.New()

	// 1. Устанавливаем уровень логирования из переменной окружения.
	// По умолчанию - "info". Для отладки можно выставить "debug".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	SetLevel(logLevel)

	// 2. Устанавливаем форматтер.
	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	SetFormat(os.Getenv("LOG_FORMAT"))

	// 3. Устанавливаем, куда писать логи (в стандартный вывод).
	Log.SetOutput(os.Stdout)
}

// SetLevel меняет уровень логирования (например, из флага --log-level).
// Неизвестный уровень превращается в info.
func SetLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
}

// SetFormat выбирает форматтер: json или text (все остальное)
func SetFormat(name string) {
	if strings.ToLower(name) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
}

// SetOutput перенаправляет логи. Нужно терминальному режиму: stdout занят экраном.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

// Component возвращает логгер с полем component
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
