package services_test

import (
	"context"
	"testing"

	"github.com/anonto42/book-hearts/backend/internal/models"
	"github.com/anonto42/book-hearts/backend/internal/repositories"
	"github.com/anonto42/book-hearts/backend/internal/services"
	"github.com/anonto42/book-hearts/backend/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newHeartService(db *gorm.DB) *services.HeartService {
	return services.NewHeartService(
		repositories.NewPostgresHeartRepository(db),
		repositories.NewPostgresBookshelfRepository(db),
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresBookRepository(db),
	)
}

func countHearts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Heart{}).Count(&n).Error)
	return n
}

func TestCreateHeart_MissingFields(t *testing.T) {
	db := tester.NewDB(t)
	svc := newHeartService(db)
	me := tester.User(t, db, "Me")
	book := tester.Book(t, db, "Dune")

	_, err := svc.CreateHeart(context.Background(), me.ID, 0, 0)
	require.ErrorIs(t, err, services.ErrValidation)

	var serr *services.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, []string{"The user id field is required."}, serr.Fields["userId"])
	assert.Equal(t, []string{"The book id field is required."}, serr.Fields["bookId"])

	_, err = svc.CreateHeart(context.Background(), me.ID, 0, book.ID)
	require.ErrorAs(t, err, &serr)
	assert.Len(t, serr.Fields, 1)
	assert.Equal(t, []string{"The user id field is required."}, serr.Fields["userId"])
}

func TestCreateHeart_UnresolvableFields(t *testing.T) {
	db := tester.NewDB(t)
	svc := newHeartService(db)
	me := tester.User(t, db, "Me")
	book := tester.Book(t, db, "Dune")

	var serr *services.Error

	_, err := svc.CreateHeart(context.Background(), me.ID, 999, 998)
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, services.KindValidation, serr.Kind)
	assert.Equal(t, []string{"The selected user id is invalid."}, serr.Fields["userId"])
	assert.Equal(t, []string{"The selected book id is invalid."}, serr.Fields["bookId"])

	_, err = svc.CreateHeart(context.Background(), me.ID, me.ID, book.ID)
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, []string{"The user id must be a different user."}, serr.Fields["userId"])
	assert.Zero(t, countHearts(t, db))
}

func TestCreateHeart_RequiresBothShelves(t *testing.T) {
	db := tester.NewDB(t)
	svc := newHeartService(db)
	ctx := context.Background()
	me := tester.User(t, db, "Me")
	partner := tester.User(t, db, "Partner")
	book := tester.Book(t, db, "Dune")

	_, err := svc.CreateHeart(ctx, me.ID, partner.ID, book.ID)
	assert.ErrorIs(t, err, services.ErrUserHaveNotLikedBook)

	// partner alone having it is not enough
	tester.Shelve(t, db, partner, book)
	_, err = svc.CreateHeart(ctx, me.ID, partner.ID, book.ID)
	assert.ErrorIs(t, err, services.ErrUserHaveNotLikedBook)

	other := tester.Book(t, db, "Emma")
	tester.Shelve(t, db, me, other)
	_, err = svc.CreateHeart(ctx, me.ID, partner.ID, other.ID)
	assert.ErrorIs(t, err, services.ErrPartnerHaveNotLikedBook)
	assert.Zero(t, countHearts(t, db))

	tester.Shelve(t, db, me, book)
	heart, err := svc.CreateHeart(ctx, me.ID, partner.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, me.ID, heart.FromUserID)
	assert.Equal(t, partner.ID, heart.ToUserID)
	assert.Equal(t, book.ID, heart.BookID)
	assert.Equal(t, models.HeartStatusPending, heart.Status)
	assert.False(t, heart.HaveRead)
}

func TestCreateHeart_Idempotent(t *testing.T) {
	db := tester.NewDB(t)
	svc := newHeartService(db)
	ctx := context.Background()
	me := tester.User(t, db, "Me")
	partner := tester.User(t, db, "Partner")
	book := tester.Book(t, db, "Dune")
	tester.Shelve(t, db, me, book)
	tester.Shelve(t, db, partner, book)

	first, err := svc.CreateHeart(ctx, me.ID, partner.ID, book.ID)
	require.NoError(t, err)
	second, err := svc.CreateHeart(ctx, me.ID, partner.ID, book.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1), countHearts(t, db))
}

// racingHeartRepository lets another writer insert the same heart right
// before the service's own insert.
type racingHeartRepository struct {
	*repositories.PostgresHeartRepository
	winner *models.Heart
}

func (r *racingHeartRepository) CreateHeart(ctx context.Context, heart *models.Heart) error {
	winner := *heart
	winner.Status = models.HeartStatusApproved
	if err := r.PostgresHeartRepository.CreateHeart(ctx, &winner); err != nil {
		return err
	}
	r.winner = &winner
	return r.PostgresHeartRepository.CreateHeart(ctx, heart)
}

func TestCreateHeart_LosesInsertRace(t *testing.T) {
	db := tester.NewDB(t)
	repo := &racingHeartRepository{PostgresHeartRepository: repositories.NewPostgresHeartRepository(db)}
	svc := services.NewHeartService(
		repo,
		repositories.NewPostgresBookshelfRepository(db),
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresBookRepository(db),
	)
	me := tester.User(t, db, "Me")
	partner := tester.User(t, db, "Partner")
	book := tester.Book(t, db, "Dune")
	tester.Shelve(t, db, me, book)
	tester.Shelve(t, db, partner, book)

	heart, err := svc.CreateHeart(context.Background(), me.ID, partner.ID, book.ID)
	require.NoError(t, err)
	require.NotNil(t, repo.winner)

	assert.Equal(t, repo.winner.ID, heart.ID)
	assert.Equal(t, models.HeartStatusApproved, heart.Status)
	assert.Equal(t, int64(1), countHearts(t, db))
}

func TestUpdateHeartStatus(t *testing.T) {
	for _, status := range []models.HeartStatus{models.HeartStatusApproved, models.HeartStatusDenied} {
		t.Run(string(status), func(t *testing.T) {
			db := tester.NewDB(t)
			svc := newHeartService(db)
			me := tester.User(t, db, "Me")
			sender := tester.User(t, db, "Sender Person")
			book := tester.Book(t, db, "Dune")
			stored := tester.Heart(t, db, sender, me, book, models.HeartStatusPending)

			view, err := svc.UpdateHeartStatus(context.Background(), me.ID, sender.ID, status)
			require.NoError(t, err)

			assert.Equal(t, stored.ID, view.ID)
			assert.Equal(t, status, view.Status)
			assert.True(t, view.HaveRead)
			assert.Equal(t, models.UserSummary{ID: sender.ID, Name: "Sender Person", Slug: "sender-person"}, view.User)
			assert.Equal(t, models.BookSummary{ID: book.ID, Title: "Dune", Slug: "dune"}, view.Book)

			var row models.Heart
			require.NoError(t, db.First(&row, stored.ID).Error)
			assert.Equal(t, status, row.Status)
			assert.True(t, row.HaveRead)
		})
	}
}

func TestUpdateHeartStatus_InvalidStatus(t *testing.T) {
	db := tester.NewDB(t)
	svc := newHeartService(db)
	me := tester.User(t, db, "Me")
	sender := tester.User(t, db, "Sender")
	stranger := tester.User(t, db, "Stranger")
	book := tester.Book(t, db, "Dune")
	tester.Heart(t, db, sender, me, book, models.HeartStatusPending)

	for _, status := range []models.HeartStatus{"", models.HeartStatusPending, "3", "accepted"} {
		// with and without an incoming heart
		for _, other := range []*models.User{sender, stranger} {
			_, err := svc.UpdateHeartStatus(context.Background(), me.ID, other.ID, status)
			assert.ErrorIs(t, err, services.ErrValidation, "status %q", status)
		}
	}

	var row models.Heart
	require.NoError(t, db.Where("from_user_id = ?", sender.ID).First(&row).Error)
	assert.Equal(t, models.HeartStatusPending, row.Status)
	assert.False(t, row.HaveRead)
}

func TestUpdateHeartStatus_NotFound(t *testing.T) {
	db := tester.NewDB(t)
	svc := newHeartService(db)
	me := tester.User(t, db, "Me")
	other := tester.User(t, db, "Other")
	book := tester.Book(t, db, "Dune")

	// a heart I sent cannot be answered by me
	tester.Heart(t, db, me, other, book, models.HeartStatusPending)

	_, err := svc.UpdateHeartStatus(context.Background(), me.ID, other.ID, models.HeartStatusApproved)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteHeart(t *testing.T) {
	db := tester.NewDB(t)
	svc := newHeartService(db)
	ctx := context.Background()
	me := tester.User(t, db, "Me")
	user := tester.User(t, db, "User")
	book := tester.Book(t, db, "Dune")
	tester.Shelve(t, db, me, book)
	tester.Shelve(t, db, user, book)

	_, err := svc.DeleteHeart(ctx, me.ID, user.ID)
	require.ErrorIs(t, err, services.ErrHaveNotLikedUser)

	incoming := tester.Heart(t, db, user, me, book, models.HeartStatusApproved)
	outgoing := tester.Heart(t, db, me, user, book, models.HeartStatusApproved)

	view, err := svc.DeleteHeart(ctx, me.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, incoming.ID, view.ID)
	assert.Equal(t, models.HeartStatusDenied, view.Status)

	var row models.Heart
	require.NoError(t, db.First(&row, incoming.ID).Error)
	assert.Equal(t, models.HeartStatusDenied, row.Status)

	require.NoError(t, db.First(&row, outgoing.ID).Error)
	assert.Equal(t, models.HeartStatusApproved, row.Status)
	assert.Equal(t, int64(2), countHearts(t, db))

	// withdrawing again keeps the row denied
	_, err = svc.DeleteHeart(ctx, me.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), countHearts(t, db))
}

func TestHeartLifecycleScenario(t *testing.T) {
	db := tester.NewDB(t)
	hearts := newHeartService(db)
	notifications := newNotificationService(db)
	ctx := context.Background()

	a := tester.User(t, db, "Alice")
	b := tester.User(t, db, "Bob")
	c := tester.User(t, db, "Carol")
	x := tester.Book(t, db, "Middlemarch")

	tester.Shelve(t, db, a, x)
	_, err := hearts.CreateHeart(ctx, a.ID, b.ID, x.ID)
	require.ErrorIs(t, err, services.ErrPartnerHaveNotLikedBook)

	tester.Shelve(t, db, b, x)
	heart, err := hearts.CreateHeart(ctx, a.ID, b.ID, x.ID)
	require.NoError(t, err)
	assert.Equal(t, models.HeartStatusPending, heart.Status)

	view, err := hearts.UpdateHeartStatus(ctx, b.ID, a.ID, models.HeartStatusApproved)
	require.NoError(t, err)
	assert.True(t, view.HaveRead)
	assert.Equal(t, models.HeartStatusApproved, view.Status)

	// the sender has nothing incoming
	events, err := notifications.ListNotifications(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = notifications.ListNotifications(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.HeartStatusApproved, events[0].Status)
	assert.True(t, events[0].HaveRead)
	assert.Equal(t, a.ID, events[0].User.ID)

	events, err = notifications.ListNotifications(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}
