package ports

import "github.com/Joker-containers/joker/pkg/log"

// Logger is the structured logging port used by the app services.
type Logger = log.Logger
