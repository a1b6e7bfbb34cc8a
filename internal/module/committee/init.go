package committee

import (
	"community-portal/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleCommittee struct{}

func (m *ModuleCommittee) GetName() string {
	return "Committee"
}

func (m *ModuleCommittee) Init() {
	log = logger.New("Committee")
}
