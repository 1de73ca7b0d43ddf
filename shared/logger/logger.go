package logger

import (
	"io"
	"os"
	"time"

	"hotel/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const envDevelopment = "development"

// InitLogger starts with a human readable console writer at trace level. SetLogLevel refines it once config is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. Outside development the logger switches to JSON tagged with the app name.
func SetLogLevel(config *config.Config) {
	configure(config, os.Stdout)
}

func configure(config *config.Config, out io.Writer) {
	if env := config.Server.Env; env != "" && env != envDevelopment {
		log.Logger = zerolog.New(out).With().Timestamp().Str("app", config.App.Name).Str("env", env).Logger()
	}

	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
	}

	zerolog.SetGlobalLevel(level)

	if err != nil {
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")

		return
	}

	log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
}
