package event

import (
	"community-portal/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleEvent struct{}

func (m *ModuleEvent) GetName() string {
	return "Event"
}

func (m *ModuleEvent) Init() {
	log = logger.New("Event")
}
