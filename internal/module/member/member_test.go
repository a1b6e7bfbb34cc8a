package member

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"community-portal/internal/model"
	"community-portal/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := test.SetupDB(t)
	test.SetupRedis(t)
	m := &ModuleMember{}
	m.Init()
	return test.NewRouter(m), db
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestAdminRoutesRequireSession(t *testing.T) {
	r, _ := setup(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/members"},
		{http.MethodGet, "/api/admin/members/export"},
		{http.MethodGet, "/api/admin/members/1"},
		{http.MethodPost, "/api/admin/members"},
		{http.MethodPatch, "/api/admin/members/1"},
		{http.MethodDelete, "/api/admin/members/1"},
		{http.MethodPatch, "/api/admin/members/1/role"},
	} {
		w := test.DoRequest(t, r, test.Request{Method: tc.method, Path: tc.path, Body: gin.H{}})
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
		require.Equal(t, "Unauthorized", test.ErrorMessage(t, w))
	}
}

func TestAdminRoutesCheckCapability(t *testing.T) {
	r, db := setup(t)
	_, member := test.LoginAs(t, db, model.RoleMember)
	_, committee := test.LoginAs(t, db, model.RoleCommitteeAdmin)

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/admin/members", Cookies: []*http.Cookie{member}})
	require.Equal(t, http.StatusForbidden, w.Code)

	// 委员会管理员可以查看但不能修改
	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/admin/members", Cookies: []*http.Cookie{committee}})
	require.Equal(t, http.StatusOK, w.Code)

	w = test.DoRequest(t, r, test.Request{
		Method:  http.MethodPost,
		Path:    "/api/admin/members",
		Body:    MemberReq{FirstName: strPtr("Ramesh")},
		Cookies: []*http.Cookie{committee},
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestMemberCRUD(t *testing.T) {
	r, db := setup(t)
	_, admin := test.LoginAs(t, db, model.RoleSuperAdmin)
	cookies := []*http.Cookie{admin}

	w := test.DoRequest(t, r, test.Request{
		Method:  http.MethodPost,
		Path:    "/api/admin/members",
		Body:    MemberReq{LastName: strPtr("Agrawal")},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = test.DoRequest(t, r, test.Request{
		Method: http.MethodPost,
		Path:   "/api/admin/members",
		Body: MemberReq{
			FirstName:      strPtr("Suresh"),
			LastName:       strPtr("Agrawal"),
			City:           strPtr("Raipur"),
			DateOfBirth:    strPtr("1980-05-17"),
			MembershipType: strPtr(model.MembershipLifetime),
		},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := test.Decode[model.Member](t, w)
	require.True(t, created.IsApproved)
	require.True(t, created.IsActive)
	require.NotNil(t, created.DateOfBirth)

	path := fmt.Sprintf("/api/admin/members/%d", created.ID)
	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: path, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	got := test.Decode[model.Member](t, w)
	require.Equal(t, "Suresh", got.FirstName)
	require.Equal(t, "Raipur", got.City)
	require.Equal(t, model.MembershipLifetime, got.MembershipType)

	w = test.DoRequest(t, r, test.Request{
		Method:  http.MethodPatch,
		Path:    path,
		Body:    MemberReq{City: strPtr("Bilaspur"), IsActive: boolPtr(false)},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := test.Decode[model.Member](t, w)
	require.Equal(t, "Bilaspur", updated.City)
	require.Equal(t, "Agrawal", updated.LastName)
	require.False(t, updated.IsActive)

	w = test.DoRequest(t, r, test.Request{
		Method:  http.MethodPatch,
		Path:    path,
		Body:    MemberReq{MembershipType: strPtr("Gold")},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodDelete, Path: path, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Member deleted successfully", test.Decode[map[string]string](t, w)["message"])

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: path, Cookies: cookies})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Member not found", test.ErrorMessage(t, w))

	w = test.DoRequest(t, r, test.Request{Method: http.MethodDelete, Path: path, Cookies: cookies})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMemberRemovesChildren(t *testing.T) {
	r, db := setup(t)
	_, admin := test.LoginAs(t, db, model.RoleSuperAdmin)

	m := model.Member{FirstName: "Child", MembershipType: model.MembershipRegular, Status: model.UserStatusActive, IsApproved: true, IsActive: true}
	require.NoError(t, db.Create(&m).Error)
	committee := model.Committee{Name: "Executive", SessionYear: "2024-2025", IsActive: true}
	require.NoError(t, db.Create(&committee).Error)
	require.NoError(t, db.Create(&model.CommitteeMember{CommitteeID: committee.ID, MemberID: m.ID, Designation: "President"}).Error)
	require.NoError(t, db.Create(&model.MatrimonialProfile{MemberID: m.ID, FullName: "Child", Gender: "Male", IsActive: true}).Error)

	w := test.DoRequest(t, r, test.Request{Method: http.MethodDelete, Path: fmt.Sprintf("/api/admin/members/%d", m.ID), Cookies: []*http.Cookie{admin}})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&model.CommitteeMember{}).Where("member_id = ?", m.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&model.MatrimonialProfile{}).Where("member_id = ?", m.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestPublicDirectoryShowsApprovedOnly(t *testing.T) {
	r, db := setup(t)
	_, admin := test.LoginAs(t, db, model.RoleSuperAdmin)

	pending := model.Member{FirstName: "Pending", City: "Korba", MembershipType: model.MembershipRegular, Status: model.UserStatusActive, IsApproved: false, IsActive: true}
	require.NoError(t, db.Create(&pending).Error)

	names := func() []string {
		w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/members"})
		require.Equal(t, http.StatusOK, w.Code)
		var out []string
		for _, m := range test.Decode[[]model.Member](t, w) {
			out = append(out, m.FirstName)
		}
		return out
	}
	require.NotContains(t, names(), "Pending")

	w := test.DoRequest(t, r, test.Request{
		Method:  http.MethodPatch,
		Path:    fmt.Sprintf("/api/admin/members/%d", pending.ID),
		Body:    MemberReq{IsApproved: boolPtr(true)},
		Cookies: []*http.Cookie{admin},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, names(), "Pending")

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/members?city=Korba"})
	list := test.Decode[[]model.Member](t, w)
	require.Len(t, list, 1)
	require.Equal(t, pending.ID, list[0].ID)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/members/filters"})
	require.Equal(t, http.StatusOK, w.Code)
	filters := test.Decode[Filters](t, w)
	require.Equal(t, []string{"Korba"}, filters.Cities)
	require.Contains(t, filters.MembershipTypes, model.MembershipRegular)
}

func TestListByMembership(t *testing.T) {
	r, db := setup(t)
	for _, m := range []model.Member{
		{FirstName: "Life", MembershipType: model.MembershipLifetime, IsApproved: true, IsActive: true},
		{FirstName: "Hidden", MembershipType: model.MembershipLifetime, IsApproved: false, IsActive: true},
		{FirstName: "Patron", MembershipType: model.MembershipPatron, IsApproved: true, IsActive: true},
	} {
		m.Status = model.UserStatusActive
		require.NoError(t, db.Create(&m).Error)
	}

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/members/lifetime"})
	list := test.Decode[[]model.Member](t, w)
	require.Len(t, list, 1)
	require.Equal(t, "Life", list[0].FirstName)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/members/patron"})
	list = test.Decode[[]model.Member](t, w)
	require.Len(t, list, 1)
	require.Equal(t, "Patron", list[0].FirstName)
}

func TestUpdateRole(t *testing.T) {
	r, db := setup(t)
	_, admin := test.LoginAs(t, db, model.RoleSuperAdmin)
	target, targetCookie := test.LoginAs(t, db, model.RoleMember)
	cookies := []*http.Cookie{admin}
	path := fmt.Sprintf("/api/admin/members/%d/role", target.Member.ID)

	w := test.DoRequest(t, r, test.Request{Method: http.MethodPatch, Path: path, Body: UpdateRoleReq{Role: "Owner"}, Cookies: cookies})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid role specified", test.ErrorMessage(t, w))

	w = test.DoRequest(t, r, test.Request{Method: http.MethodPatch, Path: path, Body: UpdateRoleReq{Role: model.RoleCommitteeAdmin}, Cookies: cookies})
	require.Equal(t, http.StatusOK, w.Code)

	var user model.User
	require.NoError(t, db.First(&user, target.ID).Error)
	require.Equal(t, model.RoleCommitteeAdmin, user.Role)

	// 角色变更后旧会话失效
	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/admin/members", Cookies: []*http.Cookie{targetCookie}})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	orphan := model.Member{FirstName: "Offline", MembershipType: model.MembershipRegular, Status: model.UserStatusActive}
	require.NoError(t, db.Create(&orphan).Error)
	w = test.DoRequest(t, r, test.Request{
		Method:  http.MethodPatch,
		Path:    fmt.Sprintf("/api/admin/members/%d/role", orphan.ID),
		Body:    UpdateRoleReq{Role: model.RoleMember},
		Cookies: cookies,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodPatch, Path: "/api/admin/members/9999/role", Body: UpdateRoleReq{Role: model.RoleMember}, Cookies: cookies})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportMembers(t *testing.T) {
	r, db := setup(t)
	_, admin := test.LoginAs(t, db, model.RoleSuperAdmin)

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/admin/members/export", Cookies: []*http.Cookie{admin}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "members_")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Members")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "ID", rows[0][0])
	require.Equal(t, "Test", rows[1][1])
}

func TestPublicDirectoryDatabaseError(t *testing.T) {
	m := &ModuleMember{}
	m.Init()
	r := test.NewRouter(m)
	test.SetupMockDB(t)

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/members"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Internal server error", test.ErrorMessage(t, w))
}
