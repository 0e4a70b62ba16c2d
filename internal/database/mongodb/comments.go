package mongodb

import (
	"context"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/utils/functional"
	"github.com/siahsang/blogapi/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type commentDocument struct {
	ID          string    `bson:"_id"`
	User        string    `bson:"user"`
	Post        string    `bson:"post"`
	Desc        string    `bson:"desc"`
	Check       bool      `bson:"check"`
	Parent      *string   `bson:"parent"`
	ReplyOnUser *string   `bson:"replyOnUser"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func newCommentDocument(c *models.Comment) commentDocument {
	return commentDocument{
		ID:          c.ID,
		User:        c.UserID,
		Post:        c.PostID,
		Desc:        c.Desc,
		Check:       c.Check,
		Parent:      c.ParentID,
		ReplyOnUser: c.ReplyOnUserID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d commentDocument) toModel() *models.Comment {
	return &models.Comment{
		ID:            d.ID,
		UserID:        d.User,
		PostID:        d.Post,
		Desc:          d.Desc,
		Check:         d.Check,
		ParentID:      d.Parent,
		ReplyOnUserID: d.ReplyOnUser,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.comments.InsertOne(ctx, newCommentDocument(comment)); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (s *Store) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var doc commentDocument
	if err := s.comments.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toModel(), nil
}

func (s *Store) UpdateComment(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.comments.UpdateOne(ctx,
		bson.M{"_id": comment.ID},
		bson.M{"$set": bson.M{"desc": comment.Desc, "check": comment.Check, "updatedAt": comment.UpdatedAt}})
	if err != nil {
		return xerrors.New(err)
	}
	return requireMatched(res.MatchedCount)
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.comments.DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"_id": id},
		bson.M{"parent": id},
	}})
	if err != nil {
		return xerrors.New(err)
	}
	return requireMatched(res.DeletedCount)
}

func (s *Store) ListCommentsByPost(ctx context.Context, postID string, checkedOnly bool) ([]*models.Comment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := bson.M{"post": postID}
	if checkedOnly {
		query["check"] = true
	}

	docs, err := findAll[commentDocument](ctx, s.comments, query, options.Find().SetSort(oldestFirst))
	if err != nil {
		return nil, err
	}
	return functional.Map(docs, commentDocument.toModel), nil
}

var oldestFirst = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

func (s *Store) DeleteCommentsByPost(ctx context.Context, postID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.comments.DeleteMany(ctx, bson.M{"post": postID}); err != nil {
		return xerrors.New(err)
	}
	return nil
}
