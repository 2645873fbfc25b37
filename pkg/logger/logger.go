// Package logger centraliza el logging estructurado de la aplicación.
// Lo consumen cmd/api en el arranque/apagado y las vistas de inventario para
// reportar fallos no fatales del cache.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config del logger. En development la salida es consola legible; en cualquier
// otro entorno, JSON por línea.
type Config struct {
	Env   string
	Level string // trace, debug, info, warn, error
}

// Logger envuelve zerolog para inyectarlo por constructor en vez de usar el
// global.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según la configuración y redirige también el logger
// global de zerolog, para las librerías que escriben por esa vía.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zl := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// parseLevel acepta los niveles usuales; cualquier valor desconocido cae a info.
func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Delegados de nivel.
func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un sublogger con campos fijos (p. ej. el componente).
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog expone el logger interno cuando se necesita la API de zerolog directa.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
