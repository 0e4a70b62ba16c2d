package mongodb

import (
	"context"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/filter"
	"github.com/siahsang/blogapi/internal/utils/functional"
	"github.com/siahsang/blogapi/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDocument struct {
	ID        string    `bson:"_id"`
	Avatar    string    `bson:"avatar"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Password  []byte    `bson:"password"`
	Verified  bool      `bson:"verified"`
	Admin     bool      `bson:"admin"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func newUserDocument(u *models.User) userDocument {
	return userDocument{
		ID:        u.ID,
		Avatar:    u.Avatar,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Verified:  u.Verified,
		Admin:     u.Admin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDocument) toModel() *models.User {
	return &models.User{
		ID:        d.ID,
		Avatar:    d.Avatar,
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		Verified:  d.Verified,
		Admin:     d.Admin,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func userFilter(f filter.Filter) bson.M {
	if !f.HasSearch() {
		return bson.M{}
	}
	return bson.M{"$or": bson.A{
		bson.M{"name": containsRegex(f.SearchKeyword)},
		bson.M{"email": containsRegex(f.SearchKeyword)},
	}}
}

var newestCreatedFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.users.InsertOne(ctx, newUserDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return xerrors.New(core.ErrDuplicateEmail)
		}
		return xerrors.New(err)
	}
	return nil
}

func (s *Store) findUser(ctx context.Context, query bson.M) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var doc userDocument
	if err := s.users.FindOne(ctx, query).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toModel(), nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) GetUsersByIDList(ctx context.Context, ids []string) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	docs, err := findAll[userDocument](ctx, s.users, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return functional.Map(docs, userDocument.toModel), nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, newUserDocument(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return xerrors.New(core.ErrDuplicateEmail)
		}
		return xerrors.New(err)
	}
	return requireMatched(res.MatchedCount)
}

func (s *Store) ListUsers(ctx context.Context, f filter.Filter) ([]*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	docs, err := findAll[userDocument](ctx, s.users, userFilter(f), pageOptions(newestCreatedFirst, f.Offset(), f.Limit))
	if err != nil {
		return nil, err
	}
	return functional.Map(docs, userDocument.toModel), nil
}

func (s *Store) CountUsers(ctx context.Context, f filter.Filter) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	count, err := s.users.CountDocuments(ctx, userFilter(f))
	if err != nil {
		return 0, xerrors.New(err)
	}
	return count, nil
}
