package gallery

import (
	"community-portal/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleGallery struct{}

func (m *ModuleGallery) GetName() string {
	return "Gallery"
}

func (m *ModuleGallery) Init() {
	log = logger.New("Gallery")
}
