package news

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"community-portal/internal/model"
	"community-portal/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB, *model.User, []*http.Cookie) {
	t.Helper()
	db := test.SetupDB(t)
	test.SetupRedis(t)
	m := &ModuleNews{}
	m.Init()
	user, cookie := test.LoginAs(t, db, model.RoleCommitteeAdmin)
	return test.NewRouter(m), db, user, []*http.Cookie{cookie}
}

func strPtr(s string) *string { return &s }

func TestNewsLifecycle(t *testing.T) {
	r, _, author, cookies := setup(t)

	w := test.DoRequest(t, r, test.Request{
		Method:  http.MethodPost,
		Path:    "/api/admin/news",
		Body:    NewsReq{Title: strPtr("Annual Meet"), Slug: strPtr("annual-meet")},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Title, slug, and content are required", test.ErrorMessage(t, w))

	w = test.DoRequest(t, r, test.Request{
		Method:  http.MethodPost,
		Path:    "/api/admin/news",
		Body:    NewsReq{Title: strPtr("Annual Meet"), Slug: strPtr("Annual Meet!"), Content: strPtr("<p>x</p>")},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = test.DoRequest(t, r, test.Request{
		Method:  http.MethodPost,
		Path:    "/api/admin/news",
		Body:    NewsReq{Title: strPtr("Annual Meet"), Slug: strPtr("annual-meet"), Content: strPtr("<p>All members invited.</p>")},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := test.Decode[model.NewsArticle](t, w)
	require.Nil(t, created.PublishedAt)
	require.Equal(t, author.ID, *created.AuthorID)

	w = test.DoRequest(t, r, test.Request{
		Method:  http.MethodPost,
		Path:    "/api/admin/news",
		Body:    NewsReq{Title: strPtr("Duplicate"), Slug: strPtr("annual-meet"), Content: strPtr("x")},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// 草稿对外不可见
	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/news/annual-meet"})
	require.Equal(t, http.StatusNotFound, w.Code)

	path := fmt.Sprintf("/api/admin/news/%d", created.ID)
	w = test.DoRequest(t, r, test.Request{Method: http.MethodPatch, Path: path, Body: gin.H{}, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, test.Decode[model.NewsArticle](t, w).PublishedAt)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/news/annual-meet"})
	require.Equal(t, http.StatusOK, w.Code)
	detail := test.Decode[NewsDetail](t, w)
	require.Equal(t, "Annual Meet", detail.Title)
	require.NotNil(t, detail.Author)
	require.Equal(t, author.Name, detail.Author.Name)
	require.Empty(t, detail.Author.Email)
	require.Empty(t, detail.Related)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodPatch, Path: path, Body: gin.H{"publishedAt": nil}, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/news/annual-meet"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodPut, Path: path, Body: gin.H{"title": "Annual General Meet", "publishedAt": "2024-03-01T09:00:00Z"}, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	updated := test.Decode[model.NewsArticle](t, w)
	require.Equal(t, "Annual General Meet", updated.Title)
	require.Equal(t, "annual-meet", updated.Slug)
	require.NotNil(t, updated.PublishedAt)
	require.True(t, updated.PublishedAt.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))

	// 省略 publishedAt 时保持原值，null 撤回
	w = test.DoRequest(t, r, test.Request{Method: http.MethodPut, Path: path, Body: gin.H{"content": "<p>Updated</p>"}, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, test.Decode[model.NewsArticle](t, w).PublishedAt)
	w = test.DoRequest(t, r, test.Request{Method: http.MethodPut, Path: path, Body: gin.H{"publishedAt": nil}, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, test.Decode[model.NewsArticle](t, w).PublishedAt)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodDelete, Path: path, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: path, Cookies: cookies})
	require.Equal(t, http.StatusNotFound, w.Code)
	w = test.DoRequest(t, r, test.Request{Method: http.MethodDelete, Path: path, Cookies: cookies})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateWithPublishedAt(t *testing.T) {
	r, db, _, cookies := setup(t)

	w := test.DoRequest(t, r, test.Request{
		Method:  http.MethodPost,
		Path:    "/api/admin/news",
		Body:    gin.H{"title": "T", "slug": "t", "content": "<p>x</p>", "publishedAt": "2024-01-01T10:00:00Z"},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := test.Decode[model.NewsArticle](t, w)
	require.NotNil(t, created.PublishedAt)
	require.True(t, created.PublishedAt.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))

	var stored model.NewsArticle
	require.NoError(t, db.First(&stored, created.ID).Error)
	require.NotNil(t, stored.PublishedAt)
	require.True(t, stored.PublishedAt.Equal(*created.PublishedAt))

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/news/t"})
	require.Equal(t, http.StatusOK, w.Code)

	w = test.DoRequest(t, r, test.Request{
		Method:  http.MethodPost,
		Path:    "/api/admin/news",
		Body:    gin.H{"title": "D", "slug": "d", "content": "x", "publishedAt": "not a date"},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid publishedAt", test.ErrorMessage(t, w))

	w = test.DoRequest(t, r, test.Request{
		Method:  http.MethodPost,
		Path:    "/api/admin/news",
		Body:    gin.H{"title": "D", "slug": "d", "content": "x", "publishedAt": nil},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Nil(t, test.Decode[model.NewsArticle](t, w).PublishedAt)
}

func TestFutureDatedArticleIsPublic(t *testing.T) {
	r, db, author, cookies := setup(t)
	require.NoError(t, db.Create(&model.NewsArticle{Title: "F", Slug: "f", Content: "x", AuthorID: &author.ID}).Error)

	// 更新文章时不应连带写入作者
	userWrites := 0
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("count_user_writes", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Name == "User" {
			userWrites++
		}
	}))

	ahead := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	w := test.DoRequest(t, r, test.Request{Method: http.MethodPatch, Path: "/api/admin/news/1", Body: gin.H{"publishedAt": ahead}, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, test.Decode[model.NewsArticle](t, w).PublishedAt)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodPut, Path: "/api/admin/news/1", Body: gin.H{"title": "F2"}, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	require.Zero(t, userWrites)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/news/f"})
	require.Equal(t, http.StatusOK, w.Code)

	articles, total, err := PublishedPage(t.Context(), 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, articles, 1)
}

func TestPublicNewsOrderingAndRelated(t *testing.T) {
	r, db, _, _ := setup(t)
	now := time.Now()
	for i := 1; i <= 5; i++ {
		published := now.Add(-time.Duration(i) * time.Hour)
		require.NoError(t, db.Create(&model.NewsArticle{
			Title:       fmt.Sprintf("Article %d", i),
			Slug:        fmt.Sprintf("article-%d", i),
			Content:     "<p>body</p>",
			PublishedAt: &published,
		}).Error)
	}
	require.NoError(t, db.Create(&model.NewsArticle{Title: "Draft", Slug: "draft", Content: "x"}).Error)

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/news"})
	require.Equal(t, http.StatusOK, w.Code)
	list := test.Decode[[]model.NewsArticle](t, w)
	require.Len(t, list, 5)
	require.Equal(t, "article-1", list[0].Slug)
	require.Equal(t, "article-5", list[4].Slug)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/news/article-1"})
	detail := test.Decode[NewsDetail](t, w)
	require.Len(t, detail.Related, relatedLimit)
	for _, rel := range detail.Related {
		require.NotEqual(t, "article-1", rel.Slug)
	}

	articles, total, err := PublishedPage(t.Context(), 4, 10)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, articles, 1)
	require.Equal(t, "article-5", articles[0].Slug)

	var draft model.NewsArticle
	require.NoError(t, db.Where("slug = ?", "draft").First(&draft).Error)
	_, err = FindPublished(t.Context(), draft.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
