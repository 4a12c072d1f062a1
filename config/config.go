// Package config exposes environment-driven configuration for the bookshelf API.
package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	name    = "bookshelf"
	version = "1.2.0"
)

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return version
}

func GetName() string {
	return name
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("BOOKSHELF_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("BOOKSHELF_DEBUG") == "true"
}

func GetListen() string {
	listen := os.Getenv("BOOKSHELF_LISTEN")
	if listen == "" {
		listen = "0.0.0.0"
	}
	return listen
}

func GetPort() string {
	port := os.Getenv("BOOKSHELF_PORT")
	if port == "" {
		port = "4000"
	}
	return port
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("BOOKSHELF_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "db"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetImagesFolderPath() string {
	imagesFolderPath := os.Getenv("BOOKSHELF_IMAGES_FOLDER")
	if imagesFolderPath == "" {
		imagesFolderPath = "images"
	}
	return imagesFolderPath
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("BOOKSHELF_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

// GetJWTSecret returns the token signing key. The built-in fallback is
// only meant for local development.
func GetJWTSecret() []byte {
	secret := os.Getenv("BOOKSHELF_JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}
	return []byte(strings.TrimSpace(secret))
}
