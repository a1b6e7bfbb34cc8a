package ping

import (
	"errors"
	"log/slog"

	"community-portal/internal/global/logger"
)

var log *slog.Logger

var errDatabaseNotReady = errors.New("database not initialized")

type ModulePing struct{}

func (p *ModulePing) GetName() string {
	return "Ping"
}

func (p *ModulePing) Init() {
	log = logger.New("Ping")
}
