// Package logger contains the logging helpers used across the gateway
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	if os.Getenv("LOG_FORMAT") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if os.Getenv("LOG_DEBUG") == "1" {
		log.SetLevel(logrus.DebugLevel)
	}
}

// Log is a function that is used to log a general message
func Log(msg string) {
	log.Info(msg)
}

// Debug is a function that is used to log messages only developers care about
func Debug(msg string) {
	log.Debug(msg)
}

// Error is a function that is used to log an error without exiting
func Error(err error) {
	if err == nil {
		return
	}
	log.Error(err.Error())
}

// Errorf is a function that is used to log an error and exit
func Errorf(err error) {
	if err == nil {
		return
	}
	log.Fatal(err.Error())
}
