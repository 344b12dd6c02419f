package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/book-hearts/backend/internal/models"
	"github.com/anonto42/book-hearts/backend/internal/repositories"
	"github.com/anonto42/book-hearts/backend/internal/services"
	"github.com/anonto42/book-hearts/backend/internal/tester"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationService(db *gorm.DB) *services.NotificationService {
	return services.NewNotificationService(
		repositories.NewPostgresHeartRepository(db),
		repositories.NewPostgresMessageRepository(db),
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresBookRepository(db),
	)
}

func TestListNotifications(t *testing.T) {
	db := tester.NewDB(t)
	svc := newNotificationService(db)
	ctx := context.Background()

	me := tester.User(t, db, "Me")
	ann := tester.User(t, db, "Ann")
	ben := tester.User(t, db, "Ben")
	dune := tester.Book(t, db, "Dune")
	emma := tester.Book(t, db, "Emma")

	older := tester.Heart(t, db, ann, me, dune, models.HeartStatusPending)
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)
	tester.Heart(t, db, ben, me, emma, models.HeartStatusApproved)
	tester.Heart(t, db, ann, me, emma, models.HeartStatusDenied)
	// outgoing hearts are not notifications
	tester.Heart(t, db, me, ann, dune, models.HeartStatusPending)

	events, err := svc.ListNotifications(ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, models.UserSummary{ID: ann.ID, Name: "Ann", Slug: "ann"}, events[0].User)
	assert.Equal(t, models.BookSummary{ID: emma.ID, Title: "Emma", Slug: "emma"}, events[0].Book)
	assert.Equal(t, models.HeartStatusDenied, events[0].Status)

	assert.Equal(t, ben.ID, events[1].User.ID)
	assert.Equal(t, models.HeartStatusApproved, events[1].Status)

	assert.Equal(t, ann.ID, events[2].User.ID)
	assert.Equal(t, dune.ID, events[2].Book.ID)

	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].CreatedAt.After(events[i-1].CreatedAt), "events must be newest first")
	}

	again, err := svc.ListNotifications(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, events, again)
}

func TestListNotifications_Empty(t *testing.T) {
	db := tester.NewDB(t)
	svc := newNotificationService(db)
	me := tester.User(t, db, "Me")

	events, err := svc.ListNotifications(context.Background(), me.ID)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestListNotifications_MissingSender(t *testing.T) {
	db := tester.NewDB(t)
	svc := newNotificationService(db)
	hook := logtest.NewGlobal()
	defer hook.Reset()

	me := tester.User(t, db, "Me")
	ann := tester.User(t, db, "Ann")
	dune := tester.Book(t, db, "Dune")
	tester.Heart(t, db, ann, me, dune, models.HeartStatusPending)
	require.NoError(t, db.Delete(&models.User{}, ann.ID).Error)

	events, err := svc.ListNotifications(context.Background(), me.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Zero(t, events[0].User.ID)
	assert.Equal(t, dune.ID, events[0].Book.ID)

	var warned *logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = entry
		}
	}
	require.NotNil(t, warned, "a missing sender must be logged")
	assert.Equal(t, []uint{ann.ID}, warned.Data["missing_user_ids"])
	assert.Equal(t, []uint{}, warned.Data["missing_book_ids"])
}

func TestCounts(t *testing.T) {
	db := tester.NewDB(t)
	svc := newNotificationService(db)
	ctx := context.Background()

	me := tester.User(t, db, "Me")
	ann := tester.User(t, db, "Ann")
	ben := tester.User(t, db, "Ben")
	cal := tester.User(t, db, "Cal")
	dune := tester.Book(t, db, "Dune")
	emma := tester.Book(t, db, "Emma")

	tester.Heart(t, db, ann, me, dune, models.HeartStatusPending)
	read := tester.Heart(t, db, cal, me, dune, models.HeartStatusDenied)
	require.NoError(t, db.Model(read).Update("have_read", true).Error)

	incoming := tester.Heart(t, db, ben, me, emma, models.HeartStatusApproved)
	outgoing := tester.Heart(t, db, me, ann, emma, models.HeartStatusApproved)
	pending := tester.Heart(t, db, me, cal, emma, models.HeartStatusPending)
	unrelated := tester.Heart(t, db, ann, ben, dune, models.HeartStatusApproved)

	tester.Message(t, db, incoming, ben, false) // counts
	tester.Message(t, db, incoming, ben, false) // counts
	tester.Message(t, db, incoming, ben, true)  // read
	tester.Message(t, db, incoming, me, false)  // mine
	tester.Message(t, db, outgoing, ann, false) // counts
	tester.Message(t, db, pending, cal, false)  // heart not approved
	tester.Message(t, db, unrelated, ann, false)

	count, err := svc.Counts(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count.Hearts)
	assert.Equal(t, int64(3), count.Messages)
}

func TestCounts_NoActivity(t *testing.T) {
	db := tester.NewDB(t)
	svc := newNotificationService(db)
	me := tester.User(t, db, "Me")

	count, err := svc.Counts(context.Background(), me.ID)
	require.NoError(t, err)
	assert.Equal(t, &models.NotificationCount{Hearts: 0, Messages: 0}, count)
}
