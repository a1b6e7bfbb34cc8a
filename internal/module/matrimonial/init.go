package matrimonial

import (
	"community-portal/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleMatrimonial struct{}

func (m *ModuleMatrimonial) GetName() string {
	return "Matrimonial"
}

func (m *ModuleMatrimonial) Init() {
	log = logger.New("Matrimonial")
}
