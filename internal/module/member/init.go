package member

import (
	"community-portal/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleMember struct{}

func (m *ModuleMember) GetName() string {
	return "Member"
}

func (m *ModuleMember) Init() {
	log = logger.New("Member")
}
