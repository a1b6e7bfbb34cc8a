package gallery

import (
	"context"

	"community-portal/internal/global/database"
	"community-portal/internal/model"

	"gorm.io/gorm"
)

func withEvent(db *gorm.DB) *gorm.DB {
	return db.Preload("Event", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "title", "start_datetime")
	})
}

func photoOrder(db *gorm.DB) *gorm.DB {
	return db.Order("display_order").Order("id")
}

// ListAlbums 相册列表，最新的在前，附带照片数量和封面，limit <= 0 表示不限制
func ListAlbums(ctx context.Context, limit int) ([]model.GalleryAlbum, error) {
	albums := []model.GalleryAlbum{}
	query := database.DB.WithContext(ctx).Scopes(withEvent).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&albums).Error; err != nil {
		return nil, err
	}
	return albums, decorate(ctx, albums)
}

// decorate 填充 _count.photos，没有封面的相册取第一张照片作为封面
func decorate(ctx context.Context, albums []model.GalleryAlbum) error {
	if len(albums) == 0 {
		return nil
	}
	ids := make([]uint, len(albums))
	for i := range albums {
		ids[i] = albums[i].ID
	}
	db := database.DB.WithContext(ctx)

	var rows []struct {
		AlbumID uint
		Total   int64
	}
	if err := db.Model(&model.Photo{}).
		Select("album_id, COUNT(*) AS total").
		Where("album_id IN ?", ids).
		Group("album_id").
		Scan(&rows).Error; err != nil {
		return err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.AlbumID] = row.Total
	}

	var missing []uint
	for i := range albums {
		albums[i].Count = &model.AlbumCount{Photos: counts[albums[i].ID]}
		if albums[i].CoverImageURL == "" && counts[albums[i].ID] > 0 {
			missing = append(missing, albums[i].ID)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var photos []model.Photo
	if err := db.Scopes(photoOrder).Where("album_id IN ?", missing).Find(&photos).Error; err != nil {
		return err
	}
	covers := make(map[uint]string, len(missing))
	for _, p := range photos {
		if _, ok := covers[p.AlbumID]; !ok {
			covers[p.AlbumID] = p.ImageURL
		}
	}
	for i := range albums {
		if albums[i].CoverImageURL == "" {
			albums[i].CoverImageURL = covers[albums[i].ID]
		}
	}
	return nil
}

// FindAlbum 相册详情，照片按显示顺序排列
func FindAlbum(ctx context.Context, id uint) (*model.GalleryAlbum, error) {
	var album model.GalleryAlbum
	err := database.DB.WithContext(ctx).Scopes(withEvent).
		Preload("Photos", photoOrder).
		First(&album, id).Error
	if err != nil {
		return nil, err
	}
	album.Count = &model.AlbumCount{Photos: int64(len(album.Photos))}
	return &album, nil
}
