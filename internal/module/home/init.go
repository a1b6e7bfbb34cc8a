package home

import (
	"community-portal/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleHome struct{}

func (m *ModuleHome) GetName() string {
	return "Home"
}

func (m *ModuleHome) Init() {
	log = logger.New("Home")
}
