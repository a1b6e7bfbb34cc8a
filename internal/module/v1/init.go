// Package v1 提供给移动端的 bearer token 接口
package v1

import (
	"community-portal/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleV1 struct{}

func (m *ModuleV1) GetName() string {
	return "V1"
}

func (m *ModuleV1) Init() {
	log = logger.New("V1")
}
