package database

import (
	"gorm.io/gorm"

	"github.com/jessupi/jessbook/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	return d.db.Create(user).Error
}

func (d *Database) UpdateUser(user *models.User) error {
	return d.db.Save(user).Error
}

func (d *Database) GetUser(id uint) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAdmin возвращает назначенный админский аккаунт
func (d *Database) FindAdmin() (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("role = ?", models.RoleAdmin).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RegisterUser создаёт пользователя и ребро подписки на админа одной транзакцией
func (d *Database) RegisterUser(user *models.User, adminID uint) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		edge := models.Relationship{FollowerID: user.ID, FollowedID: adminID}
		return tx.Create(&edge).Error
	})
}

// ListUsers возвращает всех пользователей, используется админкой
func (d *Database) ListUsers() ([]models.User, error) {
	var users []models.User
	err := d.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// UpdatePasswordHash меняет хэш пароля по id
func (d *Database) UpdatePasswordHash(id uint, hash string) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash).Error
}

// DeleteUser удаляет аккаунт со всем принадлежащим контентом и связями
func (d *Database) DeleteUser(id uint) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		ownPosts := tx.Model(&models.Post{}).Select("id").Where("user_id = ?", id)

		if err := tx.Where("post_id IN (?)", ownPosts).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN (?)", ownPosts).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Story{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", id, id).Delete(&models.Relationship{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}
