// Package permission 集中管理角色到能力的映射，所有鉴权判断都经过 Allow
package permission

import "community-portal/internal/model"

type Capability string

const (
	AccessAdminPanel   Capability = "access_admin_panel"
	ViewMembers        Capability = "view_members"
	ManageMembers      Capability = "manage_members"
	ManageUsers        Capability = "manage_users"
	ManageCommittees   Capability = "manage_committees"
	ManageEvents       Capability = "manage_events"
	ManageNews         Capability = "manage_news"
	ManageGallery      Capability = "manage_gallery"
	ManagePosters      Capability = "manage_posters"
	ManageDownloads    Capability = "manage_downloads"
	ApproveMatrimonial Capability = "approve_matrimonial"
)

var committeeAdmin = []Capability{
	AccessAdminPanel,
	ViewMembers,
	ManageCommittees,
	ManageEvents,
	ManageNews,
	ManageGallery,
	ManagePosters,
	ManageDownloads,
}

var superAdmin = append(append([]Capability{}, committeeAdmin...),
	ManageMembers,
	ManageUsers,
	ApproveMatrimonial,
)

var table = map[string]map[Capability]struct{}{
	model.RoleSuperAdmin:     toSet(superAdmin),
	model.RoleCommitteeAdmin: toSet(committeeAdmin),
	model.RoleMember:         {},
}

func toSet(caps []Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// Allow 判断角色是否拥有某项能力，未知角色一律拒绝
func Allow(role string, capability Capability) bool {
	caps, ok := table[role]
	if !ok {
		return false
	}
	_, ok = caps[capability]
	return ok
}

// Capabilities 返回角色拥有的全部能力，供前端控制菜单显示
func Capabilities(role string) []Capability {
	var out []Capability
	for _, c := range superAdmin {
		if Allow(role, c) {
			out = append(out, c)
		}
	}
	return out
}

// ValidRole 是否为系统内置角色
func ValidRole(role string) bool {
	_, ok := table[role]
	return ok
}
