package matrimonial

import (
	"fmt"
	"net/http"
	"testing"

	"community-portal/config"
	"community-portal/internal/global/session"
	"community-portal/internal/model"
	"community-portal/test"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestOwnProfileResetsApproval(t *testing.T) {
	db := test.SetupDB(t)
	test.SetupRedis(t)
	m := &ModuleMatrimonial{}
	m.Init()
	r := test.NewRouter(m)

	user, memberCookie := test.LoginAs(t, db, model.RoleMember)
	_, adminCookie := test.LoginAs(t, db, model.RoleSuperAdmin)
	member := []*http.Cookie{memberCookie}
	admin := []*http.Cookie{adminCookie}

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/matrimonial/profile", Cookies: member})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodPost, Path: "/api/matrimonial/profile", Body: ProfileReq{FullName: strPtr("Rahul Agrawal"), Gender: strPtr("Other")}, Cookies: member})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Gender must be Male or Female", test.ErrorMessage(t, w))

	w = test.DoRequest(t, r, test.Request{Method: http.MethodPost, Path: "/api/matrimonial/profile", Body: ProfileReq{
		FullName:    strPtr("Rahul Agrawal"),
		Gender:      strPtr("Male"),
		DateOfBirth: strPtr("1995-04-12"),
		City:        strPtr("Raipur"),
	}, Cookies: member})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	profile := test.Decode[model.MatrimonialProfile](t, w)
	require.False(t, profile.IsApproved)
	require.Equal(t, user.Member.ID, profile.MemberID)

	// 未审核前列表为空
	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/matrimonial", Cookies: member})
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, test.Decode[[]model.MatrimonialProfile](t, w))

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/admin/matrimonial?isApproved=false", Cookies: admin})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, test.Decode[[]model.MatrimonialProfile](t, w), 1)

	approvePath := fmt.Sprintf("/api/admin/matrimonial/%d/approve", profile.ID)
	w = test.DoRequest(t, r, test.Request{Method: http.MethodPatch, Path: approvePath, Body: map[string]bool{"isApproved": true}, Cookies: admin})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.True(t, test.Decode[model.MatrimonialProfile](t, w).IsApproved)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/matrimonial", Cookies: member})
	approved := test.Decode[[]model.MatrimonialProfile](t, w)
	require.Len(t, approved, 1)
	require.NotNil(t, approved[0].Member)
	require.Equal(t, "Test", approved[0].Member.FirstName)

	// 修改后重新进入待审核
	w = test.DoRequest(t, r, test.Request{Method: http.MethodPost, Path: "/api/matrimonial/profile", Body: ProfileReq{Occupation: strPtr("Engineer")}, Cookies: member})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := test.Decode[model.MatrimonialProfile](t, w)
	require.Equal(t, profile.ID, updated.ID)
	require.False(t, updated.IsApproved)
	require.Equal(t, "Raipur", updated.City)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/admin/matrimonial?isApproved=maybe", Cookies: admin})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodDelete, Path: fmt.Sprintf("/api/admin/matrimonial/%d", profile.ID), Cookies: admin})
	require.Equal(t, http.StatusOK, w.Code)
	w = test.DoRequest(t, r, test.Request{Method: http.MethodPatch, Path: approvePath, Body: map[string]bool{"isApproved": true}, Cookies: admin})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMatrimonialAccess(t *testing.T) {
	db := test.SetupDB(t)
	test.SetupRedis(t)
	m := &ModuleMatrimonial{}
	m.Init()
	r := test.NewRouter(m)

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/matrimonial"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// 委员会管理员没有审核权限
	_, cookie := test.LoginAs(t, db, model.RoleCommitteeAdmin)
	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/admin/matrimonial", Cookies: []*http.Cookie{cookie}})
	require.Equal(t, http.StatusForbidden, w.Code)

	// 没有会员资料的账号不能创建
	orphan := &model.User{Name: "Orphan", Email: "orphan@example.com", Password: "x", Role: model.RoleMember, Status: model.UserStatusActive}
	require.NoError(t, db.Create(orphan).Error)
	id, err := session.Default.Create(t.Context(), session.Data{UserID: orphan.ID, Role: orphan.Role})
	require.NoError(t, err)
	orphanCookie := &http.Cookie{Name: config.Get().Session.CookieName, Value: id}
	w = test.DoRequest(t, r, test.Request{Method: http.MethodPost, Path: "/api/matrimonial/profile", Body: ProfileReq{FullName: strPtr("A"), Gender: strPtr("Female")}, Cookies: []*http.Cookie{orphanCookie}})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Member profile not found", test.ErrorMessage(t, w))
}
