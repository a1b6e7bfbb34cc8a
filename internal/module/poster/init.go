package poster

import (
	"community-portal/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModulePoster struct{}

func (m *ModulePoster) GetName() string {
	return "Poster"
}

func (m *ModulePoster) Init() {
	log = logger.New("Poster")
}
