package database

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jessupi/jessbook/internal/models"
)

// newTestDB поднимает изолированную in-memory sqlite со схемой проекта
func newTestDB(t *testing.T) *Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db))

	return NewDatabase(db)
}

func seedUser(t *testing.T, d *Database, email string, role models.Role) *models.User {
	t.Helper()

	hash := "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefakef"
	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: &hash,
		Role:         role,
		Origin:       models.OriginLocal,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, d.SaveUser(user))
	return user
}

func TestRegisterUserCreatesAdminEdge(t *testing.T) {
	d := newTestDB(t)
	admin := seedUser(t, d, "admin@jessbook.io", models.RoleAdmin)

	user := &models.User{
		FirstName: "New",
		LastName:  "Comer",
		Email:     "new@example.com",
		Role:      models.RoleUser,
		Origin:    models.OriginLocal,
		CreatedAt: time.Now(),
	}
	require.NoError(t, d.RegisterUser(user, admin.ID))

	followed, err := d.GetFollowedIDs(user.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{admin.ID}, followed)
}

func TestFollowIsIdempotent(t *testing.T) {
	d := newTestDB(t)
	a := seedUser(t, d, "a@example.com", models.RoleUser)
	b := seedUser(t, d, "b@example.com", models.RoleUser)

	require.NoError(t, d.Follow(a.ID, b.ID))
	require.NoError(t, d.Follow(a.ID, b.ID))

	followers, err := d.GetFollowerIDs(b.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{a.ID}, followers)
}

func TestDeleteUserCascades(t *testing.T) {
	d := newTestDB(t)
	owner := seedUser(t, d, "owner@example.com", models.RoleUser)
	other := seedUser(t, d, "other@example.com", models.RoleUser)

	post := &models.Post{UserID: owner.ID, Description: "hello", CreatedAt: time.Now()}
	require.NoError(t, d.CreatePost(post))
	require.NoError(t, d.CreateComment(&models.Comment{UserID: other.ID, PostID: post.ID, Description: "hi", CreatedAt: time.Now()}))
	require.NoError(t, d.LikePost(other.ID, post.ID))
	require.NoError(t, d.ReplaceStory(&models.Story{UserID: owner.ID, Text: "story", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, d.Follow(other.ID, owner.ID))
	require.NoError(t, d.Follow(owner.ID, other.ID))

	require.NoError(t, d.DeleteUser(owner.ID))

	_, err := d.GetUser(owner.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	posts, err := d.ListUserPosts(owner.ID)
	require.NoError(t, err)
	require.Empty(t, posts)

	comments, err := d.ListPostComments(post.ID)
	require.NoError(t, err)
	require.Empty(t, comments)

	likes, err := d.ListPostLikerIDs(post.ID)
	require.NoError(t, err)
	require.Empty(t, likes)

	stories, err := d.ListUserStories(owner.ID, time.Now())
	require.NoError(t, err)
	require.Empty(t, stories)

	followers, err := d.GetFollowerIDs(owner.ID)
	require.NoError(t, err)
	require.Empty(t, followers)
	followed, err := d.GetFollowedIDs(owner.ID)
	require.NoError(t, err)
	require.Empty(t, followed)
}
