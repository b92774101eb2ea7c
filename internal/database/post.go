package database

import (
	"gorm.io/gorm"

	"github.com/jessupi/jessbook/internal/models"
)

func (d *Database) CreatePost(post *models.Post) error {
	return d.db.Create(post).Error
}

func (d *Database) GetPost(id uint) (*models.Post, error) {
	var post models.Post
	if err := d.db.Preload("User").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListFeedPosts посты зрителя и тех, на кого он подписан
func (d *Database) ListFeedPosts(viewerID uint) ([]models.Post, error) {
	var posts []models.Post
	followed := d.db.Model(&models.Relationship{}).
		Select("followed_id").
		Where("follower_id = ?", viewerID)
	err := d.db.
		Where("user_id = ? OR user_id IN (?)", viewerID, followed).
		Order("created_at DESC").
		Preload("User").
		Find(&posts).Error
	return posts, err
}

func (d *Database) ListUserPosts(userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := d.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("User").
		Find(&posts).Error
	return posts, err
}

// DeletePost удаляет пост владельца вместе с комментариями и лайками
func (d *Database) DeletePost(id, ownerID uint) (int64, error) {
	var affected int64
	err := d.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&post).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}
