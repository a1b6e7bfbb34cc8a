package news

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/global/session"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var errInvalidPublishedAt = errors.New("invalid publishedAt")

// publishedAtField 区分字段缺省和显式 null，空字符串视为 null
type publishedAtField struct {
	Set   bool
	Value *time.Time
}

func (f *publishedAtField) UnmarshalJSON(raw []byte) error {
	f.Set = true
	f.Value = nil
	if string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errInvalidPublishedAt
	}
	if s == "" {
		return nil
	}
	t, ok := tools.ParseTime(s)
	if !ok {
		return errInvalidPublishedAt
	}
	f.Value = &t
	return nil
}

func (f publishedAtField) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// NewsReq 创建和更新共用，PublishedAt 为 null 表示草稿
type NewsReq struct {
	Title       *string          `json:"title"`
	Slug        *string          `json:"slug"`
	Content     *string          `json:"content"`
	ImageURL    *string          `json:"imageUrl"`
	PublishedAt publishedAtField `json:"publishedAt,omitzero"`
}

func (req *NewsReq) apply(a *model.NewsArticle) string {
	if req.Title != nil {
		a.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		a.Slug = strings.ToLower(strings.TrimSpace(*req.Slug))
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.ImageURL != nil {
		a.ImageURL = *req.ImageURL
	}
	if req.PublishedAt.Set {
		a.PublishedAt = req.PublishedAt.Value
	}

	if a.Title == "" || a.Slug == "" || strings.TrimSpace(a.Content) == "" {
		return "Title, slug, and content are required"
	}
	if !slugPattern.MatchString(a.Slug) {
		return "Slug may only contain lowercase letters, numbers, and hyphens"
	}
	return ""
}

// bindFail 绑定失败时区分发布时间格式错误
func bindFail(c *gin.Context, err error) {
	if errors.Is(err, errInvalidPublishedAt) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Invalid publishedAt"))
		return
	}
	response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
}

func notFound(c *gin.Context) {
	response.Fail(c, response.ErrNotFound.WithTips("News article not found"))
}

func slugTaken(c *gin.Context) {
	response.Fail(c, response.ErrAlreadyExists.WithTips("An article with this slug already exists"))
}

// ListNews 后台列表，包含草稿
func ListNews(c *gin.Context) {
	articles := []model.NewsArticle{}
	if err := database.DB.WithContext(c.Request.Context()).Scopes(withAuthor).
		Order("created_at DESC").Order("id DESC").
		Find(&articles).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, articles)
}

// CreateNews 作者为当前登录用户
func CreateNews(c *gin.Context) {
	data, _ := session.FromContext(c)

	var req NewsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}
	article := model.NewsArticle{AuthorID: &data.UserID}
	if msg := req.apply(&article); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Create(&article).Error
	if database.IsDuplicateKey(err) {
		slugTaken(c)
		return
	}
	if err != nil {
		log.Error("创建新闻失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("创建新闻", "news_id", article.ID, "slug", article.Slug, "author", data.UserID)
	response.Created(c, article)
}

func find(c *gin.Context) (*model.NewsArticle, bool) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		notFound(c)
		return nil, false
	}
	var article model.NewsArticle
	err := database.DB.WithContext(c.Request.Context()).Scopes(withAuthor).First(&article, id).Error
	if database.IsNotFound(err) {
		notFound(c)
		return nil, false
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	return &article, true
}

func GetNews(c *gin.Context) {
	if article, ok := find(c); ok {
		response.Success(c, article)
	}
}

func UpdateNews(c *gin.Context) {
	var req NewsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}
	article, ok := find(c)
	if !ok {
		return
	}
	if msg := req.apply(article); msg != "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips(msg))
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Omit(clause.Associations).Save(article).Error
	if database.IsDuplicateKey(err) {
		slugTaken(c)
		return
	}
	if err != nil {
		log.Error("更新新闻失败", "error", err, "news_id", article.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, article)
}

// SetPublished 请求体 {"publishedAt": "<时间>"} 按指定时间发布，null 撤回为草稿，省略时立即发布
func SetPublished(c *gin.Context) {
	var body struct {
		PublishedAt publishedAtField `json:"publishedAt"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		bindFail(c, err)
		return
	}

	publishedAt := body.PublishedAt.Value
	if !body.PublishedAt.Set {
		now := time.Now()
		publishedAt = &now
	}

	article, ok := find(c)
	if !ok {
		return
	}
	if err := database.DB.WithContext(c.Request.Context()).
		Model(&model.NewsArticle{Model: model.Model{ID: article.ID}}).
		Update("published_at", publishedAt).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	article.PublishedAt = publishedAt
	log.Info("修改新闻发布状态", "news_id", article.ID, "published", publishedAt != nil)
	response.Success(c, article)
}

func DeleteNews(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		notFound(c)
		return
	}
	result := database.DB.WithContext(c.Request.Context()).Delete(&model.NewsArticle{}, id)
	if result.Error != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		notFound(c)
		return
	}
	log.Info("删除新闻", "news_id", id)
	response.Deleted(c, "News article")
}
