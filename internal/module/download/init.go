package download

import (
	"community-portal/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleDownload struct{}

func (m *ModuleDownload) GetName() string {
	return "Download"
}

func (m *ModuleDownload) Init() {
	log = logger.New("Download")
}
