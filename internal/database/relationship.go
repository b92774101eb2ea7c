package database

import (
	"gorm.io/gorm/clause"

	"github.com/jessupi/jessbook/internal/models"
)

// Follow добавляет ребро подписки, повторная подписка — no-op
func (d *Database) Follow(followerID, followedID uint) error {
	edge := models.Relationship{FollowerID: followerID, FollowedID: followedID}
	return d.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

func (d *Database) Unfollow(followerID, followedID uint) error {
	return d.db.
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Relationship{}).Error
}

// GetFollowerIDs возвращает id подписчиков пользователя
func (d *Database) GetFollowerIDs(followedID uint) ([]uint, error) {
	var ids []uint
	err := d.db.Model(&models.Relationship{}).
		Where("followed_id = ?", followedID).
		Pluck("follower_id", &ids).Error
	return ids, err
}

// GetFollowedIDs возвращает id тех, на кого подписан пользователь
func (d *Database) GetFollowedIDs(followerID uint) ([]uint, error) {
	var ids []uint
	err := d.db.Model(&models.Relationship{}).
		Where("follower_id = ?", followerID).
		Pluck("followed_id", &ids).Error
	return ids, err
}
