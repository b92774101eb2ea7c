package database

import (
	"github.com/jessupi/jessbook/internal/models"
)

func (d *Database) CreateComment(comment *models.Comment) error {
	return d.db.Create(comment).Error
}

func (d *Database) ListPostComments(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := d.db.
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Preload("User").
		Find(&comments).Error
	return comments, err
}

func (d *Database) DeleteComment(id, ownerID uint) (int64, error) {
	res := d.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Comment{})
	return res.RowsAffected, res.Error
}
