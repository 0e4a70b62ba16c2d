package models

import (
	"encoding/json"
	"time"
)

type User struct {
	ID        string    `json:"_id"`
	Avatar    string    `json:"avatar"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  []byte    `json:"-"`
	Verified  bool      `json:"verified"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Author is the public subset of a User embedded in posts and comments.
type Author struct {
	ID       string `json:"_id"`
	Avatar   string `json:"avatar"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

func (u *User) Author() *Author {
	if u == nil {
		return nil
	}
	return &Author{ID: u.ID, Avatar: u.Avatar, Name: u.Name, Verified: u.Verified}
}

type Category struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Post struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Caption     string          `json:"caption"`
	Slug        string          `json:"slug"`
	Body        json.RawMessage `json:"body"`
	Photo       string          `json:"photo"`
	UserID      string          `json:"-"`
	Tags        []string        `json:"tags"`
	CategoryIDs []string        `json:"-"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	User       *Author     `json:"user,omitempty"`
	Categories []*Category `json:"categories"`
	Comments   []*Comment  `json:"comments,omitempty"`
}

type Comment struct {
	ID            string    `json:"_id"`
	UserID        string    `json:"-"`
	PostID        string    `json:"post"`
	Desc          string    `json:"desc"`
	Check         bool      `json:"check"`
	ParentID      *string   `json:"parent"`
	ReplyOnUserID *string   `json:"replyOnUser"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	User    *Author    `json:"user,omitempty"`
	Replies []*Comment `json:"replies,omitempty"`
}

// Page is one window of a listing together with the total number of matches.
type Page[T any] struct {
	Items      []T
	TotalCount int64
}
