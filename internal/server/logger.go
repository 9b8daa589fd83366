package server

import (
	"fmt"

	"github.com/riskibarqy/fixture-gateway/internal/platform/logging"
)

// fasthttpLogger routes fasthttp's internal messages into the service log.
type fasthttpLogger struct {
	logger *logging.Logger
}

func (l fasthttpLogger) Printf(format string, args ...any) {
	l.logger.Warn("fasthttp", "detail", fmt.Sprintf(format, args...))
}

type antsLogger struct {
	logger *logging.Logger
}

func (l antsLogger) Printf(format string, args ...any) {
	l.logger.Warn("worker pool", "detail", fmt.Sprintf(format, args...))
}
