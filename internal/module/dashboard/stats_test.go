package dashboard

import (
	"net/http"
	"testing"
	"time"

	"community-portal/internal/model"
	"community-portal/test"

	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	db := test.SetupDB(t)
	test.SetupRedis(t)
	m := &ModuleDashboard{}
	m.Init()
	r := test.NewRouter(m)

	admin, cookie := test.LoginAs(t, db, model.RoleCommitteeAdmin)
	require.NoError(t, db.Create(&model.Member{FirstName: "Inactive", MembershipType: model.MembershipRegular, Status: model.UserStatusInactive}).Error)

	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)
	require.NoError(t, db.Create(&[]model.NewsArticle{
		{Title: "Live", Slug: "live", Content: "x", PublishedAt: &past},
		{Title: "Dated ahead", Slug: "dated-ahead", Content: "x", PublishedAt: &future},
		{Title: "Draft", Slug: "draft", Content: "x"},
	}).Error)
	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&model.Event{Title: "Upcoming", StartDatetime: now.Add(time.Duration(i+1) * time.Hour)}).Error)
	}
	require.NoError(t, db.Create(&model.Event{Title: "Done", StartDatetime: past}).Error)
	require.NoError(t, db.Create(&model.GalleryAlbum{Name: "Album"}).Error)
	require.NoError(t, db.Create(&model.MatrimonialProfile{MemberID: admin.Member.ID, FullName: "A", Gender: "Male", IsActive: true}).Error)

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/admin/dashboard", Cookies: []*http.Cookie{cookie}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stats := test.Decode[Stats](t, w)
	require.EqualValues(t, 1, stats.TotalMembers)
	require.EqualValues(t, 8, stats.TotalEvents)
	require.EqualValues(t, 2, stats.TotalNews)
	require.EqualValues(t, 1, stats.TotalGalleryAlbums)
	require.EqualValues(t, 1, stats.PendingMatrimonialProfiles)
	require.Len(t, stats.UpcomingEvents, upcomingLimit)

	_, memberCookie := test.LoginAs(t, db, model.RoleMember)
	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/admin/dashboard", Cookies: []*http.Cookie{memberCookie}})
	require.Equal(t, http.StatusForbidden, w.Code)
}
