package main

import (
	"net/http"

	"github.com/siahsang/blogapi/internal/auth"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/validator"
	"github.com/siahsang/blogapi/models"
)

const (
	userNotFound      = "User not found"
	minPasswordLength = 6
)

func checkEmail(v *validator.Validator, email string) {
	v.CheckNotBlank(email, "email", "must be provided")
	v.CheckEmail(core.NormalizeEmail(email), "must be a valid email address")
}

func checkPassword(v *validator.Validator, password string) {
	v.Check(len(password) >= minPasswordLength, "password", "must be at least 6 characters long")
}

// userResponse is the user plus a freshly signed token.
func (app *application) userResponse(user *models.User) (envelope, error) {
	token, err := app.auth.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return envelope{
		"_id":      user.ID,
		"avatar":   user.Avatar,
		"name":     user.Name,
		"email":    user.Email,
		"verified": user.Verified,
		"admin":    user.Admin,
		"token":    token,
	}, nil
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.CheckNotBlank(input.Name, "name", "must be provided")
	checkEmail(v, input.Email)
	checkPassword(v, input.Password)

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	user, err := app.core.RegisterUser(r.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		app.coreErrorResponse(w, r, err, userNotFound)
		return
	}

	response, err := app.userResponse(user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	checkEmail(v, input.Email)
	v.CheckNotBlank(input.Password, "password", "must be provided")

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	user, err := app.core.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		app.coreErrorResponse(w, r, err, "Email not found")
		return
	}

	response, err := app.userResponse(user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) profileHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetAuthenticatedUser(r)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, user, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Admin    *bool   `json:"admin"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if input.Name != nil {
		v.CheckNotBlank(*input.Name, "name", "must not be empty")
	}
	if input.Email != nil {
		checkEmail(v, *input.Email)
	}
	if input.Password != nil {
		checkPassword(v, *input.Password)
	}

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	actor, err := auth.GetAuthenticatedUser(r)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	user, err := app.core.UpdateProfile(r.Context(), actor, app.readParam(r, "userId"), core.UserUpdate{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Admin:    input.Admin,
	})
	if err != nil {
		app.coreErrorResponse(w, r, err, userNotFound)
		return
	}

	response, err := app.userResponse(user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	f, v := app.readFilter(r)
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	page, err := app.core.ListUsers(r.Context(), f)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := writePage(app, w, page.Items, page.TotalCount, f); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
