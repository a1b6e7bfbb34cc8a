package committee

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"community-portal/internal/global/database"
	"community-portal/internal/model"

	"gorm.io/gorm"
)

func ordered(db *gorm.DB) *gorm.DB {
	return db.Order("display_order").Order("id")
}

func active(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// attachCounts 用一次 GROUP BY 查询填充 _count.committeeMembers
func attachCounts(ctx context.Context, committees []model.Committee) error {
	if len(committees) == 0 {
		return nil
	}
	ids := make([]uint, len(committees))
	for i := range committees {
		ids[i] = committees[i].ID
	}

	var rows []struct {
		CommitteeID uint
		Total       int64
	}
	if err := database.DB.WithContext(ctx).Model(&model.CommitteeMember{}).
		Select("committee_id, COUNT(*) AS total").
		Where("committee_id IN ?", ids).
		Group("committee_id").
		Scan(&rows).Error; err != nil {
		return err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CommitteeID] = row.Total
	}
	for i := range committees {
		committees[i].Count = &model.CommitteeCount{CommitteeMembers: counts[committees[i].ID]}
	}
	return nil
}

// Find 按 id 查询委员会及其成员，成员按职务、名字排序
func Find(ctx context.Context, id uint, scopes ...func(*gorm.DB) *gorm.DB) (*model.Committee, error) {
	var committee model.Committee
	err := database.DB.WithContext(ctx).Scopes(scopes...).
		Preload("Members.Member").
		First(&committee, id).Error
	if err != nil {
		return nil, err
	}
	SortMembers(committee.Members)
	committee.Count = &model.CommitteeCount{CommitteeMembers: int64(len(committee.Members))}
	return &committee, nil
}

// SortMembers 按职务、名字排序，职务相同的按加入顺序
func SortMembers(members []model.CommitteeMember) {
	slices.SortStableFunc(members, func(a, b model.CommitteeMember) int {
		if c := strings.Compare(a.Designation, b.Designation); c != 0 {
			return c
		}
		var an, bn string
		if a.Member != nil {
			an = a.Member.FirstName
		}
		if b.Member != nil {
			bn = b.Member.FirstName
		}
		if c := strings.Compare(an, bn); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// ListActive 前台展示的委员会，onlyWithPoster 为 true 时只返回有海报的（轮播图）
func ListActive(ctx context.Context, onlyWithPoster bool) ([]model.Committee, error) {
	query := database.DB.WithContext(ctx).Scopes(active, ordered)
	if onlyWithPoster {
		query = query.Where("poster_image_url <> ''")
	}
	committees := []model.Committee{}
	if err := query.Find(&committees).Error; err != nil {
		return nil, err
	}
	return committees, attachCounts(ctx, committees)
}
