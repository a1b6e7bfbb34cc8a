package module

import (
	"community-portal/internal/module/auth"
	"community-portal/internal/module/committee"
	"community-portal/internal/module/dashboard"
	"community-portal/internal/module/download"
	"community-portal/internal/module/event"
	"community-portal/internal/module/gallery"
	"community-portal/internal/module/home"
	"community-portal/internal/module/matrimonial"
	"community-portal/internal/module/member"
	"community-portal/internal/module/news"
	"community-portal/internal/module/ping"
	"community-portal/internal/module/poster"
	"community-portal/internal/module/upload"
	v1 "community-portal/internal/module/v1"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&ping.ModulePing{},
		&auth.ModuleAuth{},
		&member.ModuleMember{},
		&committee.ModuleCommittee{},
		&event.ModuleEvent{},
		&news.ModuleNews{},
		&gallery.ModuleGallery{},
		&poster.ModulePoster{},
		&download.ModuleDownload{},
		&matrimonial.ModuleMatrimonial{},
		&upload.ModuleUpload{},
		&dashboard.ModuleDashboard{},
		&home.ModuleHome{},
		&v1.ModuleV1{},
	})
}
