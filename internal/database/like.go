package database

import (
	"gorm.io/gorm/clause"

	"github.com/jessupi/jessbook/internal/models"
)

// LikePost ставит лайк, повторный лайк — no-op
func (d *Database) LikePost(userID, postID uint) error {
	like := models.Like{UserID: userID, PostID: postID}
	return d.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

func (d *Database) UnlikePost(userID, postID uint) error {
	return d.db.
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
}

// ListPostLikerIDs возвращает id пользователей, лайкнувших пост
func (d *Database) ListPostLikerIDs(postID uint) ([]uint, error) {
	var ids []uint
	err := d.db.Model(&models.Like{}).
		Where("post_id = ?", postID).
		Pluck("user_id", &ids).Error
	return ids, err
}
