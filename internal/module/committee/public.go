package committee

import (
	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
)

func ListActiveCommittees(c *gin.Context) {
	committees, err := ListActive(c.Request.Context(), false)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, committees)
}

// ListCarousel 首页轮播，只包含有海报图的有效委员会
func ListCarousel(c *gin.Context) {
	committees, err := ListActive(c.Request.Context(), true)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, committees)
}

// GetPublicCommittee 停用的委员会对外返回 404
func GetPublicCommittee(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		notFound(c)
		return
	}
	committee, err := Find(c.Request.Context(), id, active)
	if database.IsNotFound(err) {
		notFound(c)
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, committee)
}
