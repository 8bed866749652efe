package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger. Gin's debug mode gets the human readable
// development encoder, everything else the JSON production one.
func New(ginMode string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if ginMode == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
