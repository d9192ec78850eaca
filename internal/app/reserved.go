package app

import (
	"context"
	"fmt"

	"github.com/Joker-containers/joker/internal/domain"
	"github.com/Joker-containers/joker/internal/ports"
	"github.com/Joker-containers/joker/pkg/log"
)

// Trace is reserved for daemon event tracing. It currently does nothing.
func Trace(ctx context.Context, logger ports.Logger) error {
	logger.Debug("trace requested, event tracing is not available yet")
	return nil
}

// Logs is reserved for container log retrieval. It always fails with
// domain.NotImplemented.
func Logs(ctx context.Context, container string, msg ports.Messenger, logger ports.Logger) error {
	err := domain.New(domain.NotImplemented, fmt.Sprintf("logs for container %q", container))
	logger.Debug("logs requested", log.String("container", container))
	msg.Error(fmt.Sprintf("Error: logs is not implemented yet (requested container %s).", container))
	return err
}
