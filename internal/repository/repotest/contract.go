// Package repotest holds behaviour checks shared by every store backend.
package repotest

import (
	"context"
	"fmt"
	"testing"

	"taskboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns fresh, empty repositories for one subtest
type Factory func(t *testing.T) (domain.UserRepository, domain.TaskRepository)

func strPtr(s string) *string { return &s }

func mustUser(t *testing.T, users domain.UserRepository, email string) *domain.User {
	t.Helper()
	u := &domain.User{Name: "Test", Email: email, Password: "hash", Role: domain.RoleUser, Theme: domain.DefaultTheme()}
	require.NoError(t, users.Create(context.Background(), u))
	require.NotEmpty(t, u.ID)
	return u
}

// Run exercises the UserRepository and TaskRepository contracts
func Run(t *testing.T, newRepos Factory) {
	t.Run("UserCreateAndGet", func(t *testing.T) {
		users, _ := newRepos(t)
		ctx := context.Background()
		u := mustUser(t, users, "Alice@Example.com")

		byID, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", byID.Email)
		assert.Equal(t, domain.RoleUser, byID.Role)
		assert.Equal(t, domain.DefaultTheme(), byID.Theme)

		byEmail, err := users.GetByEmail(ctx, "ALICE@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
	})

	t.Run("UserDuplicateEmail", func(t *testing.T) {
		users, _ := newRepos(t)
		mustUser(t, users, "dup@example.com")

		err := users.Create(context.Background(), &domain.User{Name: "Other", Email: "DUP@example.com", Password: "x", Role: domain.RoleUser})
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

		_, total, err := users.List(context.Background(), 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		users, _ := newRepos(t)
		_, err := users.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = users.GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("UserUpdate", func(t *testing.T) {
		users, _ := newRepos(t)
		ctx := context.Background()
		u := mustUser(t, users, "update@example.com")
		other := mustUser(t, users, "taken@example.com")

		u.Name = "Renamed"
		u.Theme["--primary-bg"] = "#000000"
		require.NoError(t, users.Update(ctx, u))

		got, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.Equal(t, "#000000", got.Theme["--primary-bg"])

		u.Email = other.Email
		assert.ErrorIs(t, users.Update(ctx, u), domain.ErrDuplicateEmail)
	})

	t.Run("UserList", func(t *testing.T) {
		users, _ := newRepos(t)
		for i := 0; i < 5; i++ {
			mustUser(t, users, fmt.Sprintf("u%d@example.com", i))
		}
		page, total, err := users.List(context.Background(), 2, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		assert.Len(t, page, 2)

		seen := map[string]bool{}
		for offset := 0; offset < 5; offset += 2 {
			page, _, err := users.List(context.Background(), offset, 2)
			require.NoError(t, err)
			for _, u := range page {
				assert.False(t, seen[u.ID], "user %s listed twice", u.Email)
				seen[u.ID] = true
			}
		}
		assert.Len(t, seen, 5)
	})

	t.Run("UserUpdateUnchanged", func(t *testing.T) {
		users, _ := newRepos(t)
		ctx := context.Background()
		u := mustUser(t, users, "same@example.com")

		u.Role = domain.RoleAdmin
		require.NoError(t, users.Update(ctx, u))
		require.NoError(t, users.Update(ctx, u), "repeating an update is not a missing row")

		got, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, got.Role)
	})

	t.Run("TaskRoundTrip", func(t *testing.T) {
		users, tasks := newRepos(t)
		ctx := context.Background()
		u := mustUser(t, users, "tasks@example.com")

		task := &domain.Task{
			Title:    "Buy milk",
			UserID:   u.ID,
			DueDate:  strPtr("2024-06-01"),
			Priority: strPtr(domain.PriorityHigh),
			Category: strPtr("Personal"),
		}
		require.NoError(t, tasks.Create(ctx, task))
		require.NotEmpty(t, task.ID)

		list, err := tasks.ListByOwner(ctx, u.ID, domain.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, list, 1)
		got := list[0]
		assert.Equal(t, "Buy milk", got.Title)
		assert.False(t, got.Completed)
		assert.Equal(t, u.ID, got.UserID)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, "2024-06-01", *got.DueDate)
		require.NotNil(t, got.Priority)
		assert.Equal(t, domain.PriorityHigh, *got.Priority)
		require.NotNil(t, got.Category)
		assert.Equal(t, "Personal", *got.Category)
	})

	t.Run("TaskOwnershipIsolation", func(t *testing.T) {
		users, tasks := newRepos(t)
		ctx := context.Background()
		alice := mustUser(t, users, "alice@example.com")
		bob := mustUser(t, users, "bob@example.com")

		task := &domain.Task{Title: "Alice only", UserID: alice.ID}
		require.NoError(t, tasks.Create(ctx, task))

		list, err := tasks.ListByOwner(ctx, bob.ID, domain.TaskFilter{})
		require.NoError(t, err)
		assert.Empty(t, list)

		_, err = tasks.GetOwned(ctx, task.ID, bob.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = tasks.ToggleCompleted(ctx, task.ID, bob.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, tasks.DeleteOwned(ctx, task.ID, bob.ID), domain.ErrNotFound)

		n, err := tasks.DeleteAllOwned(ctx, bob.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		still, err := tasks.GetOwned(ctx, task.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, still.Completed)
	})

	t.Run("TaskToggleTwice", func(t *testing.T) {
		users, tasks := newRepos(t)
		ctx := context.Background()
		u := mustUser(t, users, "toggle@example.com")
		task := &domain.Task{Title: "Flip", UserID: u.ID}
		require.NoError(t, tasks.Create(ctx, task))

		first, err := tasks.ToggleCompleted(ctx, task.ID, u.ID)
		require.NoError(t, err)
		assert.True(t, first.Completed)

		second, err := tasks.ToggleCompleted(ctx, task.ID, u.ID)
		require.NoError(t, err)
		assert.False(t, second.Completed)
	})

	t.Run("TaskDeleteTwice", func(t *testing.T) {
		users, tasks := newRepos(t)
		ctx := context.Background()
		u := mustUser(t, users, "delete@example.com")
		task := &domain.Task{Title: "Gone", UserID: u.ID}
		require.NoError(t, tasks.Create(ctx, task))

		require.NoError(t, tasks.DeleteOwned(ctx, task.ID, u.ID))
		assert.ErrorIs(t, tasks.DeleteOwned(ctx, task.ID, u.ID), domain.ErrNotFound)
	})

	t.Run("TaskFilterAndCounts", func(t *testing.T) {
		users, tasks := newRepos(t)
		ctx := context.Background()
		u := mustUser(t, users, "calendar@example.com")
		for _, due := range []string{"2024-06-01", "2024-06-01", "2024-06-15", "2024-07-01"} {
			require.NoError(t, tasks.Create(ctx, &domain.Task{Title: "T " + due, UserID: u.ID, DueDate: strPtr(due)}))
		}
		require.NoError(t, tasks.Create(ctx, &domain.Task{Title: "No date", UserID: u.ID}))

		day, err := tasks.ListByOwner(ctx, u.ID, domain.TaskFilter{Date: "2024-06-01"})
		require.NoError(t, err)
		assert.Len(t, day, 2)

		month, err := tasks.ListByOwner(ctx, u.ID, domain.TaskFilter{Month: "2024-06"})
		require.NoError(t, err)
		assert.Len(t, month, 3)

		count, err := tasks.CountByOwner(ctx, u.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 5, count)

		deleted, err := tasks.DeleteAllOwned(ctx, u.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 5, deleted)
	})
}
