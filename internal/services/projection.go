package services

import (
	"context"
	"fmt"

	"github.com/anonto42/book-hearts/backend/internal/models"
	"github.com/anonto42/book-hearts/backend/internal/repositories"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

// projector resolves the user and book summaries shown next to hearts.
// People and books repeat a lot in a feed, so IDs are collected first and
// fetched in one query each.
type projector struct {
	users repositories.UserRepository
	books repositories.BookRepository
}

type summaries struct {
	users map[uint]models.UserSummary
	books map[uint]models.BookSummary
}

// resolve loads summaries for the senders and books of hearts
func (p projector) resolve(ctx context.Context, hearts []models.Heart) (*summaries, error) {
	userIDs := mapset.NewThreadUnsafeSet[uint]()
	bookIDs := mapset.NewThreadUnsafeSet[uint]()
	for _, h := range hearts {
		userIDs.Add(h.FromUserID)
		bookIDs.Add(h.BookID)
	}

	users, err := p.users.GetUsersByIDs(ctx, userIDs.ToSlice())
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	books, err := p.books.GetBooksByIDs(ctx, bookIDs.ToSlice())
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}

	s := &summaries{
		users: make(map[uint]models.UserSummary, len(users)),
		books: make(map[uint]models.BookSummary, len(books)),
	}
	for i := range users {
		s.users[users[i].ID] = users[i].ToSummary()
	}
	for i := range books {
		s.books[books[i].ID] = books[i].ToSummary()
	}

	if len(s.users) < userIDs.Cardinality() || len(s.books) < bookIDs.Cardinality() {
		logrus.WithFields(logrus.Fields{
			"missing_user_ids": missing(userIDs, s.users),
			"missing_book_ids": missing(bookIDs, s.books),
		}).Warn("hearts reference users or books that no longer exist")
	}
	return s, nil
}

// missing returns the IDs in want that have no entry in found
func missing[V any](want mapset.Set[uint], found map[uint]V) []uint {
	ids := []uint{}
	want.Each(func(id uint) bool {
		if _, ok := found[id]; !ok {
			ids = append(ids, id)
		}
		return false
	})
	return ids
}

// view projects a single heart with its sender and book
func (p projector) view(ctx context.Context, heart *models.Heart) (*models.HeartView, error) {
	s, err := p.resolve(ctx, []models.Heart{*heart})
	if err != nil {
		return nil, err
	}
	return &models.HeartView{
		ID:        heart.ID,
		Status:    heart.Status,
		HaveRead:  heart.HaveRead,
		CreatedAt: heart.CreatedAt,
		UpdatedAt: heart.UpdatedAt,
		User:      s.users[heart.FromUserID],
		Book:      s.books[heart.BookID],
	}, nil
}
