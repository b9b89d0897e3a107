package service_test

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateListRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "roundtrip@example.com")

	created, err := env.tasks.Create(ctx, userID, service.NewTask{
		Title:    "Buy milk",
		DueDate:  strPtr("2024-06-01"),
		Priority: strPtr("High"),
		Category: strPtr("Personal"),
	})
	require.NoError(t, err)
	assert.False(t, created.Completed)

	tasks, err := env.tasks.List(ctx, userID, domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	got := tasks[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2024-06-01", *got.DueDate)
	assert.Equal(t, "High", *got.Priority)
	assert.Equal(t, "Personal", *got.Category)
	assert.False(t, got.Completed)
	assert.Equal(t, userID, got.UserID)
}

func TestTaskService_Create_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "validation@example.com")

	tests := []struct {
		name string
		in   service.NewTask
		want error
	}{
		{"empty title", service.NewTask{Title: ""}, domain.ErrMissingTitle},
		{"blank title", service.NewTask{Title: "   "}, domain.ErrMissingTitle},
		{"bad due date", service.NewTask{Title: "x", DueDate: strPtr("01/06/2024")}, domain.ErrValidation},
		{"impossible due date", service.NewTask{Title: "x", DueDate: strPtr("2024-02-30")}, domain.ErrValidation},
		{"bad priority", service.NewTask{Title: "x", Priority: strPtr("Urgent")}, domain.ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.tasks.Create(ctx, userID, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	tasks, err := env.tasks.List(ctx, userID, domain.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskService_Create_BlankOptionalsAreAbsent(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signup(t, "blank@example.com")

	task, err := env.tasks.Create(context.Background(), userID, service.NewTask{
		Title:    "Plain",
		DueDate:  strPtr(""),
		Priority: strPtr(""),
		Category: strPtr("  "),
	})
	require.NoError(t, err)
	assert.Nil(t, task.DueDate)
	assert.Nil(t, task.Priority)
	assert.Nil(t, task.Category)
}

func TestTaskService_OwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.signup(t, "alice@example.com")
	bob := env.signup(t, "bob@example.com")

	task, err := env.tasks.Create(ctx, alice, service.NewTask{Title: "Private"})
	require.NoError(t, err)

	bobTasks, err := env.tasks.List(ctx, bob, domain.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, bobTasks)

	_, err = env.tasks.Toggle(ctx, bob, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = env.tasks.Delete(ctx, bob, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	aliceTasks, err := env.tasks.List(ctx, alice, domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, aliceTasks, 1)
	assert.False(t, aliceTasks[0].Completed)
}

func TestTaskService_ToggleTwiceRestores(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "toggle@example.com")

	task, err := env.tasks.Create(ctx, userID, service.NewTask{Title: "Flip"})
	require.NoError(t, err)

	first, err := env.tasks.Toggle(ctx, userID, task.ID)
	require.NoError(t, err)
	assert.True(t, first.Completed)

	second, err := env.tasks.Toggle(ctx, userID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Completed, second.Completed)
}

func TestTaskService_DeleteTwice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "delete@example.com")

	task, err := env.tasks.Create(ctx, userID, service.NewTask{Title: "Once"})
	require.NoError(t, err)

	require.NoError(t, env.tasks.Delete(ctx, userID, task.ID))
	assert.ErrorIs(t, env.tasks.Delete(ctx, userID, task.ID), domain.ErrNotFound)
}

func TestTaskService_DeleteAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.signup(t, "alice@example.com")
	bob := env.signup(t, "bob@example.com")

	for _, title := range []string{"a", "b", "c"} {
		_, err := env.tasks.Create(ctx, alice, service.NewTask{Title: title})
		require.NoError(t, err)
	}
	_, err := env.tasks.Create(ctx, bob, service.NewTask{Title: "bob's"})
	require.NoError(t, err)

	n, err := env.tasks.DeleteAll(ctx, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	left, err := env.tasks.List(ctx, alice, domain.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, left)

	bobTasks, err := env.tasks.List(ctx, bob, domain.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, bobTasks, 1)
}

func TestTaskService_ListFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "calendar@example.com")

	for _, due := range []string{"2024-06-01", "2024-06-20", "2024-07-01"} {
		_, err := env.tasks.Create(ctx, userID, service.NewTask{Title: "Due " + due, DueDate: strPtr(due)})
		require.NoError(t, err)
	}

	day, err := env.tasks.List(ctx, userID, domain.TaskFilter{Date: "2024-06-20"})
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "Due 2024-06-20", day[0].Title)

	month, err := env.tasks.List(ctx, userID, domain.TaskFilter{Month: "2024-06"})
	require.NoError(t, err)
	assert.Len(t, month, 2)

	_, err = env.tasks.List(ctx, userID, domain.TaskFilter{Month: "June"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTaskService_CacheInvalidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "cache@example.com")

	_, err := env.tasks.List(ctx, userID, domain.TaskFilter{})
	require.NoError(t, err)
	assert.True(t, env.cache.has("tasks:user:"+userID+":v0"), "listing should populate the cache")

	task, err := env.tasks.Create(ctx, userID, service.NewTask{Title: "Fresh"})
	require.NoError(t, err)
	assert.True(t, env.cache.has("tasks:ver:"+userID), "create should bump the cache version")

	tasks, err := env.tasks.List(ctx, userID, domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, env.cache.has("tasks:user:"+userID+":v1"))

	_, err = env.tasks.Toggle(ctx, userID, task.ID)
	require.NoError(t, err)

	tasks, err = env.tasks.List(ctx, userID, domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)
}

// writeDuringList runs a write once, right after the store answers a listing
type writeDuringList struct {
	domain.TaskRepository
	afterList func()
}

func (w *writeDuringList) ListByOwner(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	tasks, err := w.TaskRepository.ListByOwner(ctx, userID, filter)
	if hook := w.afterList; hook != nil {
		w.afterList = nil
		hook()
	}
	return tasks, err
}

func TestTaskService_List_WriteDuringCacheFill(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "fill@example.com")

	repo := &writeDuringList{TaskRepository: env.taskRepo}
	svc := service.NewTaskService(repo, env.cache, time.Minute)
	repo.afterList = func() {
		_, err := svc.Create(ctx, userID, service.NewTask{Title: "Written mid-read"})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, userID, domain.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, first)

	second, err := svc.List(ctx, userID, domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Written mid-read", second[0].Title)
}

func TestTaskService_Stats_WriteDuringCacheFill(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "statsfill@example.com")

	repo := &writeDuringList{TaskRepository: env.taskRepo}
	svc := service.NewTaskService(repo, env.cache, time.Minute)
	repo.afterList = func() {
		_, err := svc.Create(ctx, userID, service.NewTask{Title: "Written mid-read"})
		require.NoError(t, err)
	}

	first, err := svc.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, first.Total)

	second, err := svc.Stats(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, second.Total)
}

func TestTaskService_Stats_OverdueFollowsTheDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "midnight@example.com")

	_, err := env.tasks.Create(ctx, userID, service.NewTask{Title: "Due today", DueDate: strPtr("2024-06-10")})
	require.NoError(t, err)

	env.tasks.SetClock(func() time.Time { return time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC) })
	stats, err := env.tasks.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, stats.Overdue)

	env.tasks.SetClock(func() time.Time { return time.Date(2024, 6, 11, 0, 1, 0, 0, time.UTC) })
	stats, err = env.tasks.Stats(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Overdue)
}

func TestTaskService_Get(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.signup(t, "alice@example.com")
	bob := env.signup(t, "bob@example.com")

	task, err := env.tasks.Create(ctx, alice, service.NewTask{Title: "Mine", Category: strPtr("Work")})
	require.NoError(t, err)

	got, err := env.tasks.Get(ctx, alice, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Work", *got.Category)

	_, err = env.tasks.Get(ctx, bob, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.tasks.Get(ctx, alice, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskService_Stats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.signup(t, "stats@example.com")
	env.tasks.SetClock(func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) })

	inputs := []service.NewTask{
		{Title: "Past due", DueDate: strPtr("2024-06-01"), Priority: strPtr("High"), Category: strPtr("Work")},
		{Title: "Done late", DueDate: strPtr("2024-06-02"), Priority: strPtr("Low"), Category: strPtr("Work")},
		{Title: "Future", DueDate: strPtr("2024-06-30"), Category: strPtr("Health")},
	}
	var ids []string
	for _, in := range inputs {
		task, err := env.tasks.Create(ctx, userID, in)
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}
	_, err := env.tasks.Toggle(ctx, userID, ids[1])
	require.NoError(t, err)

	stats, err := env.tasks.Stats(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 1, stats.Completed)
	assert.EqualValues(t, 2, stats.Uncompleted)
	assert.Equal(t, 33, stats.CompletionRate)
	assert.EqualValues(t, 1, stats.Overdue)
	assert.EqualValues(t, 1, stats.ByPriority["High"])
	assert.EqualValues(t, 0, stats.ByPriority["Medium"])
	assert.EqualValues(t, 1, stats.ByPriority["Low"])
	assert.EqualValues(t, 2, stats.ByCategory["Work"])
	assert.EqualValues(t, 1, stats.ByCategory["Health"])
}

func TestTaskService_Stats_Empty(t *testing.T) {
	env := newTestEnv(t)
	userID := env.signup(t, "empty@example.com")

	stats, err := env.tasks.Stats(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.CompletionRate)
}
