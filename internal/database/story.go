package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jessupi/jessbook/internal/models"
)

// purgeExpiredStories глобально удаляет протухшие истории,
// вызывается перед каждым чтением
func purgeExpiredStories(tx *gorm.DB, now time.Time) error {
	return tx.Where("expires_at <= ?", now).Delete(&models.Story{}).Error
}

// ListUserStories возвращает живые истории одного пользователя
func (d *Database) ListUserStories(userID uint, now time.Time) ([]models.Story, error) {
	var stories []models.Story
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := purgeExpiredStories(tx, now); err != nil {
			return err
		}
		return tx.
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Preload("User").
			Find(&stories).Error
	})
	return stories, err
}

// ListFeedStories возвращает истории зрителя и тех, на кого он подписан,
// своя история первой, дальше по убыванию времени создания
func (d *Database) ListFeedStories(viewerID uint, now time.Time) ([]models.Story, error) {
	var stories []models.Story
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := purgeExpiredStories(tx, now); err != nil {
			return err
		}
		followed := tx.Model(&models.Relationship{}).
			Select("followed_id").
			Where("follower_id = ?", viewerID)
		return tx.
			Where("user_id = ? OR user_id IN (?)", viewerID, followed).
			Order(fmt.Sprintf("CASE WHEN user_id = %d THEN 0 ELSE 1 END", viewerID)).
			Order("created_at DESC").
			Preload("User").
			Find(&stories).Error
	})
	return stories, err
}

// ReplaceStory удаляет прежнюю историю владельца и вставляет новую
// одной транзакцией: у пользователя не больше одной живой истории
func (d *Database) ReplaceStory(story *models.Story) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", story.UserID).Delete(&models.Story{}).Error; err != nil {
			return err
		}
		return tx.Create(story).Error
	})
}

// DeleteStory удаляет историю владельца, возвращает число затронутых строк
func (d *Database) DeleteStory(id, ownerID uint) (int64, error) {
	res := d.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Story{})
	return res.RowsAffected, res.Error
}
