package v1

import (
	"time"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/model"
	"community-portal/internal/module/committee"
	"community-portal/internal/module/event"
	"community-portal/internal/module/gallery"
	"community-portal/internal/module/news"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
)

const excerptLength = 200

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

func pagination(page, limit int, total int64) Pagination {
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: tools.TotalPages(total, limit)}
}

type CommitteeMember struct {
	Designation string      `json:"designation"`
	Member      MemberBrief `json:"member"`
}

type MemberBrief struct {
	ID              uint   `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	City            string `json:"city"`
	PhonePrimary    string `json:"phonePrimary"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageUrl"`
}

type Committee struct {
	ID               uint              `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	SessionYear      string            `json:"sessionYear"`
	CommitteeMembers []CommitteeMember `json:"committeeMembers"`
}

func ListCommittees(c *gin.Context) {
	var committees []model.Committee
	err := database.DB.WithContext(c.Request.Context()).
		Preload("Members.Member").
		Order("session_year DESC").Order("display_order").Order("id").
		Find(&committees).Error
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	out := make([]Committee, 0, len(committees))
	for _, cm := range committees {
		committee.SortMembers(cm.Members)
		item := Committee{
			ID:               cm.ID,
			Name:             cm.Name,
			Description:      cm.Description,
			SessionYear:      cm.SessionYear,
			CommitteeMembers: make([]CommitteeMember, 0, len(cm.Members)),
		}
		for _, m := range cm.Members {
			if m.Member == nil {
				continue
			}
			item.CommitteeMembers = append(item.CommitteeMembers, CommitteeMember{
				Designation: m.Designation,
				Member: MemberBrief{
					ID:              m.Member.ID,
					FirstName:       m.Member.FirstName,
					LastName:        m.Member.LastName,
					City:            m.Member.City,
					PhonePrimary:    m.Member.PhonePrimary,
					Email:           m.Member.Email,
					ProfileImageURL: m.Member.ProfileImageURL,
				},
			})
		}
		out = append(out, item)
	}
	response.Success(c, out)
}

func ListEvents(c *gin.Context) {
	page, limit, offset := tools.GetPage(c)
	events, total, err := event.UpcomingPage(c.Request.Context(), time.Now(), offset, limit)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{
		"events":     events,
		"pagination": pagination(page, limit, total),
	})
}

type Article struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	ImageURL    string     `json:"imageUrl"`
	PublishedAt *time.Time `json:"publishedAt"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Author      *Author    `json:"author,omitempty"`
}

type Author struct {
	Name string `json:"name"`
}

func ListNews(c *gin.Context) {
	page, limit, offset := tools.GetPage(c)
	articles, total, err := news.PublishedPage(c.Request.Context(), offset, limit)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		out = append(out, Article{
			ID:          a.ID,
			Title:       a.Title,
			Slug:        a.Slug,
			ImageURL:    a.ImageURL,
			PublishedAt: a.PublishedAt,
			Content:     a.Content,
			Excerpt:     tools.Excerpt(a.Content, excerptLength),
		})
	}
	response.Success(c, gin.H{
		"articles":   out,
		"pagination": pagination(page, limit, total),
	})
}

func GetNews(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		response.Fail(c, response.ErrNotFound.WithTips("Article not found"))
		return
	}
	a, err := news.FindPublished(c.Request.Context(), id)
	if database.IsNotFound(err) {
		response.Fail(c, response.ErrNotFound.WithTips("Article not found"))
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	article := Article{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
		Content:     a.Content,
	}
	if a.Author != nil {
		article.Author = &Author{Name: a.Author.Name}
	}
	response.Success(c, article)
}

type EventBrief struct {
	Title         string    `json:"title"`
	StartDatetime time.Time `json:"startDatetime"`
}

func eventBrief(e *model.Event) *EventBrief {
	if e == nil {
		return nil
	}
	return &EventBrief{Title: e.Title, StartDatetime: e.StartDatetime}
}

type Album struct {
	ID            uint        `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	CoverImageURL string      `json:"coverImageUrl"`
	CreatedAt     time.Time   `json:"createdAt"`
	Event         *EventBrief `json:"event"`
	Count         struct {
		Photos int64 `json:"photos"`
	} `json:"_count"`
}

func ListAlbums(c *gin.Context) {
	albums, err := gallery.ListAlbums(c.Request.Context(), 0)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	out := make([]Album, 0, len(albums))
	for _, a := range albums {
		item := Album{
			ID:            a.ID,
			Name:          a.Name,
			Description:   a.Description,
			CoverImageURL: a.CoverImageURL,
			CreatedAt:     a.CreatedAt,
			Event:         eventBrief(a.Event),
		}
		if a.Count != nil {
			item.Count.Photos = a.Count.Photos
		}
		out = append(out, item)
	}
	response.Success(c, out)
}

type AlbumPhoto struct {
	ID       uint   `json:"id"`
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption"`
}

type AlbumDetail struct {
	AlbumName        string       `json:"album_name"`
	AlbumDescription string       `json:"album_description"`
	Event            *EventBrief  `json:"event"`
	Photos           []AlbumPhoto `json:"photos"`
}

func GetAlbum(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		response.Fail(c, response.ErrNotFound.WithTips("Album not found"))
		return
	}
	album, err := gallery.FindAlbum(c.Request.Context(), id)
	if database.IsNotFound(err) {
		response.Fail(c, response.ErrNotFound.WithTips("Album not found"))
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	detail := AlbumDetail{
		AlbumName:        album.Name,
		AlbumDescription: album.Description,
		Event:            eventBrief(album.Event),
		Photos:           make([]AlbumPhoto, 0, len(album.Photos)),
	}
	for _, p := range album.Photos {
		detail.Photos = append(detail.Photos, AlbumPhoto{ID: p.ID, ImageURL: p.ImageURL, Caption: p.Caption})
	}
	response.Success(c, detail)
}
