package main

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/siahsang/blogapi/internal/auth"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/validator"
)

const commentNotFound = "Comment was not found"

func checkOptionalID(v *validator.Validator, key string, id *string) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return
	}
	_, err := uuid.Parse(strings.TrimSpace(*id))
	v.Check(err == nil, key, "must be a valid id")
}

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Desc        string  `json:"desc"`
		Slug        string  `json:"slug"`
		Parent      *string `json:"parent"`
		ReplyOnUser *string `json:"replyOnUser"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.CheckNotBlank(input.Desc, "desc", "must be provided")
	v.CheckNotBlank(input.Slug, "slug", "must be provided")
	checkOptionalID(v, "parent", input.Parent)
	checkOptionalID(v, "replyOnUser", input.ReplyOnUser)
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	user, err := auth.GetAuthenticatedUser(r)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	commentInput := core.CommentInput{Desc: input.Desc, Slug: input.Slug}
	if input.Parent != nil {
		commentInput.ParentID = *input.Parent
	}
	if input.ReplyOnUser != nil {
		commentInput.ReplyOnUserID = *input.ReplyOnUser
	}

	comment, err := app.core.CreateComment(r.Context(), user, commentInput)
	if err != nil {
		app.coreErrorResponse(w, r, err, postNotFound)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, comment, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateCommentHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Desc  *string `json:"desc"`
		Check *bool   `json:"check"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if input.Desc != nil {
		v.CheckNotBlank(*input.Desc, "desc", "must not be empty")
	}
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	user, err := auth.GetAuthenticatedUser(r)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	comment, err := app.core.UpdateComment(r.Context(), user, app.readParam(r, "commentId"), core.CommentUpdate{
		Desc:  input.Desc,
		Check: input.Check,
	})
	if err != nil {
		app.coreErrorResponse(w, r, err, commentNotFound)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, comment, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetAuthenticatedUser(r)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	comment, err := app.core.DeleteComment(r.Context(), user, app.readParam(r, "commentId"))
	if err != nil {
		app.coreErrorResponse(w, r, err, commentNotFound)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, comment, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
