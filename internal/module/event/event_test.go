package event

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

func setup(t *testing.T) (*gin.Engine, *gorm.DB, []*http.Cookie) {
	t.Helper()
	db := test.SetupDB(t)
	test.SetupRedis(t)
	m := &ModuleEvent{}
	m.Init()
	_, cookie := test.LoginAs(t, db, model.RoleCommitteeAdmin)
	return test.NewRouter(m), db, []*http.Cookie{cookie}
}

func strPtr(s string) *string { return &s }

func TestEventCRUD(t *testing.T) {
	r, db, cookies := setup(t)

	w := test.DoRequest(t, r, test.Request{
		Method:  http.MethodPost,
		Path:    "/api/admin/events",
		Body:    EventReq{Title: strPtr("Diwali Milan")},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = test.DoRequest(t, r, test.Request{
		Method:  http.MethodPost,
		Path:    "/api/admin/events",
		Body:    EventReq{Title: strPtr("Diwali Milan"), StartDatetime: strPtr("2030-11-01T18:00"), EndDatetime: strPtr("2030-11-01T17:00")},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = test.DoRequest(t, r, test.Request{
		Method:  http.MethodPost,
		Path:    "/api/admin/events",
		Body:    EventReq{Title: strPtr("Diwali Milan"), Venue: strPtr("Agrasen Bhawan"), StartDatetime: strPtr("2030-11-01T18:00")},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := test.Decode[model.Event](t, w)

	path := fmt.Sprintf("/api/admin/events/%d", created.ID)
	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: path, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	got := test.Decode[model.Event](t, w)
	require.Equal(t, "Agrasen Bhawan", got.Venue)
	require.Equal(t, 2030, got.StartDatetime.Year())

	w = test.DoRequest(t, r, test.Request{Method: http.MethodPut, Path: path, Body: EventReq{Venue: strPtr("Community Hall")}, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Community Hall", test.Decode[model.Event](t, w).Venue)

	album := model.GalleryAlbum{Name: "Diwali Photos", EventID: &created.ID}
	require.NoError(t, db.Create(&album).Error)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodDelete, Path: path, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Event deleted successfully", test.Decode[map[string]string](t, w)["message"])

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: path, Cookies: cookies})
	require.Equal(t, http.StatusNotFound, w.Code)

	// 相册保留，只是不再关联活动
	var kept model.GalleryAlbum
	require.NoError(t, db.First(&kept, album.ID).Error)
	require.Nil(t, kept.EventID)
}

func TestEventRequiresSession(t *testing.T) {
	r, _, _ := setup(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/events"},
		{http.MethodPost, "/api/admin/events"},
		{http.MethodGet, "/api/admin/events/1"},
		{http.MethodPut, "/api/admin/events/1"},
		{http.MethodDelete, "/api/admin/events/1"},
	} {
		w := test.DoRequest(t, r, test.Request{Method: tc.method, Path: tc.path, Body: gin.H{}})
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestPublicEvents(t *testing.T) {
	r, db, _ := setup(t)
	now := time.Now()
	for _, e := range []model.Event{
		{Title: "Later", StartDatetime: now.Add(48 * time.Hour)},
		{Title: "Soon", StartDatetime: now.Add(2 * time.Hour)},
		{Title: "LastWeek", StartDatetime: now.Add(-7 * 24 * time.Hour)},
		{Title: "Yesterday", StartDatetime: now.Add(-24 * time.Hour)},
	} {
		require.NoError(t, db.Create(&e).Error)
	}

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/events"})
	require.Equal(t, http.StatusOK, w.Code)
	body := test.Decode[struct {
		Upcoming []model.Event `json:"upcoming"`
		Past     []model.Event `json:"past"`
	}](t, w)

	titles := func(events []model.Event) []string {
		var out []string
		for _, e := range events {
			out = append(out, e.Title)
		}
		return out
	}
	require.Equal(t, []string{"Soon", "Later"}, titles(body.Upcoming))
	require.Equal(t, []string{"Yesterday", "LastWeek"}, titles(body.Past))

	events, total, err := UpcomingPage(t.Context(), now, 1, 1)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Equal(t, []string{"Later"}, titles(events))

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/events/9999"})
	require.Equal(t, http.StatusNotFound, w.Code)
}
