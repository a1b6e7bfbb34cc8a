package news

import (
	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/model"

	"github.com/gin-gonic/gin"
)

// relatedLimit 详情页附带的相关文章数量
const relatedLimit = 3

type NewsDetail struct {
	model.NewsArticle
	Related []model.NewsArticle `json:"related"`
}

func ListPublishedNews(c *gin.Context) {
	articles, err := Latest(c.Request.Context(), 0)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, articles)
}

// GetNewsBySlug 草稿和不存在的文章同样返回 404
func GetNewsBySlug(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())

	var article model.NewsArticle
	err := db.Scopes(Published, withAuthor).Where("slug = ?", c.Param("slug")).First(&article).Error
	if database.IsNotFound(err) {
		notFound(c)
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	related := []model.NewsArticle{}
	if err := db.Scopes(Published, latestFirst).
		Where("id <> ?", article.ID).
		Limit(relatedLimit).
		Find(&related).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, NewsDetail{NewsArticle: article, Related: related})
}
