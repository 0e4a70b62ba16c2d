package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/siahsang/blogapi/internal/auth"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/validator"
)

const postNotFound = "Post was not found"

func (app *application) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	f, v := app.readFilter(r)
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	page, err := app.core.ListPosts(r.Context(), f)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := writePage(app, w, page.Items, page.TotalCount, f); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getPostHandler(w http.ResponseWriter, r *http.Request) {
	post, err := app.core.GetPostBySlug(r.Context(), app.readParam(r, "slug"))
	if err != nil {
		app.coreErrorResponse(w, r, err, postNotFound)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, post, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func checkCategoryIDs(v *validator.Validator, ids []string) {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			v.AddError("categories", "must be a list of category ids")
			return
		}
	}
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title      string          `json:"title"`
		Caption    string          `json:"caption"`
		Body       json.RawMessage `json:"body"`
		Photo      string          `json:"photo"`
		Tags       []string        `json:"tags"`
		Categories []string        `json:"categories"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.CheckNotBlank(input.Title, "title", "must be provided")
	v.CheckNotBlank(input.Caption, "caption", "must be provided")
	v.Check(len(input.Body) == 0 || json.Valid(input.Body), "body", "must be a JSON document")
	checkCategoryIDs(v, input.Categories)

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	user, err := auth.GetAuthenticatedUser(r)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	post, err := app.core.CreatePost(r.Context(), user, core.PostInput{
		Title:      input.Title,
		Caption:    input.Caption,
		Body:       input.Body,
		Photo:      input.Photo,
		Tags:       input.Tags,
		Categories: input.Categories,
	})
	if err != nil {
		app.coreErrorResponse(w, r, err, postNotFound)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, post, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updatePostHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title      *string         `json:"title"`
		Caption    *string         `json:"caption"`
		Body       json.RawMessage `json:"body"`
		Photo      *string         `json:"photo"`
		Tags       *[]string       `json:"tags"`
		Categories *[]string       `json:"categories"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if input.Title != nil {
		v.CheckNotBlank(*input.Title, "title", "must not be empty")
	}
	if input.Caption != nil {
		v.CheckNotBlank(*input.Caption, "caption", "must not be empty")
	}
	v.Check(len(input.Body) == 0 || json.Valid(input.Body), "body", "must be a JSON document")
	if input.Categories != nil {
		checkCategoryIDs(v, *input.Categories)
	}

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	post, err := app.core.UpdatePost(r.Context(), app.readParam(r, "slug"), core.PostUpdate{
		Title:      input.Title,
		Caption:    input.Caption,
		Body:       input.Body,
		Photo:      input.Photo,
		Tags:       input.Tags,
		Categories: input.Categories,
	})
	if err != nil {
		app.coreErrorResponse(w, r, err, postNotFound)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, post, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	post, err := app.core.DeletePost(r.Context(), app.readParam(r, "slug"))
	if err != nil {
		app.coreErrorResponse(w, r, err, postNotFound)
		return
	}

	app.doInBackground(func() {
		if err := app.core.DeletePostComments(context.Background(), post.ID); err != nil {
			app.logger.Error("Deleting post comments failed", "post_id", post.ID, "error", err.Error())
		}
	})

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "Post is successfully deleted"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
