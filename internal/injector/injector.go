//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"
	"github.com/touchsync/touchsync/internal/core/observability/log"
	"github.com/touchsync/touchsync/internal/core/recognizer"
)

func ProvideLogger() *log.Logger {
	wire.Build(log.Provide)
	return log.New(log.LevelInfo)
}

func ProvideEngine(cfg recognizer.Config, lg log.Log) *recognizer.Engine {
	wire.Build(recognizer.NewEngine)
	return nil
}
