package dashboard

import (
	"community-portal/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleDashboard struct{}

func (m *ModuleDashboard) GetName() string {
	return "Dashboard"
}

func (m *ModuleDashboard) Init() {
	log = logger.New("Dashboard")
}
