package project

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskhub/internal/database"
	"taskhub/internal/domain"
	"taskhub/internal/repository"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return NewService(repository.NewProjectRepository(db)), db
}

func createUser(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()
	u := domain.User{Email: email, Name: "Test", PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

func TestCreateAndGet(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	created, err := svc.Create(ctx, owner, CreateProjectRequest{
		Name:        "Website",
		Description: "Marketing site",
	})
	require.NoError(t, err)
	assert.Equal(t, "Website", created.Name)
	assert.Equal(t, owner, created.UserID)
	assert.Zero(t, created.TaskCount)

	got, err := svc.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestGet_NotFound(t *testing.T) {
	svc, db := setupService(t)
	owner := createUser(t, db, "owner@example.com")

	_, err := svc.Get(context.Background(), owner, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_ForeignProject(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")
	intruder := createUser(t, db, "intruder@example.com")

	created, err := svc.Create(ctx, owner, CreateProjectRequest{Name: "Private"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, intruder, created.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestList_OnlyOwnProjectsWithTaskCounts(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")
	other := createUser(t, db, "other@example.com")

	mine, err := svc.Create(ctx, owner, CreateProjectRequest{Name: "Mine"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, other, CreateProjectRequest{Name: "Theirs"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&domain.Task{
			Title:     fmt.Sprintf("Task %d", i+1),
			ProjectID: mine.ID,
			UserID:    owner,
			Status:    domain.TaskStatusPending,
			Priority:  domain.TaskPriorityMedium,
		}).Error)
	}

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mine", list[0].Name)
	assert.EqualValues(t, 3, list[0].TaskCount)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	created, err := svc.Create(ctx, owner, CreateProjectRequest{
		Name:        "Before",
		Description: "Old description",
	})
	require.NoError(t, err)

	name := "After"
	updated, err := svc.Update(ctx, owner, created.ID, UpdateProjectRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "Old description", updated.Description)

	// An explicit empty description clears it; a nil one leaves it alone.
	empty := ""
	updated, err = svc.Update(ctx, owner, created.ID, UpdateProjectRequest{Description: &empty})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "", updated.Description)
}

func TestDelete_CascadesTasks(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	created, err := svc.Create(ctx, owner, CreateProjectRequest{Name: "Doomed"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.Task{
		Title:     "Orphan-to-be",
		ProjectID: created.ID,
		UserID:    owner,
		Status:    domain.TaskStatusPending,
		Priority:  domain.TaskPriorityMedium,
	}).Error)

	require.NoError(t, svc.Delete(ctx, owner, created.ID))

	_, err = svc.Get(ctx, owner, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var taskCount int64
	require.NoError(t, db.Model(&domain.Task{}).Where("project_id = ?", created.ID).Count(&taskCount).Error)
	assert.Zero(t, taskCount)
}

func TestDelete_ForeignProject(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")
	intruder := createUser(t, db, "intruder@example.com")

	created, err := svc.Create(ctx, owner, CreateProjectRequest{Name: "Keep"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, intruder, created.ID), ErrAccessDenied)

	_, err = svc.Get(ctx, owner, created.ID)
	assert.NoError(t, err)
}
