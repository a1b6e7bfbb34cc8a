package news

import (
	"community-portal/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleNews struct{}

func (m *ModuleNews) GetName() string {
	return "News"
}

func (m *ModuleNews) Init() {
	log = logger.New("News")
}
