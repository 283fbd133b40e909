package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего сервера.
// До вызова Init работает с настройками logrus по умолчанию (stderr, info).
var Log = logrus.New()

// Init настраивает глобальный логгер из переменных окружения.
// Вызывается один раз при старте (cmd/*) и в TestMain пакетов.
func Init() {
	Log = logrus.New()

	// 1. Уровень логирования: LOG_LEVEL, по умолчанию "info".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер: "json" для продакшена, текст для разработки.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   os.Getenv("LOG_COLORS") != "0",
		})
	}

	Log.SetOutput(os.Stdout)
}

// Component возвращает запись с полем "component": так помечаются все подсистемы.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
