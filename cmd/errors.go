package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/apperror"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/validator"
)

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, apperror.Validation(err.Error(), nil).Wrap(err))
}

func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, v *validator.Validator) {
	app.errorResponse(w, r, apperror.Validation(v.FirstError(), v.Errors))
}

func (app *application) invalidPathResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, apperror.NotFound("Invalid Path"))
}

func (app *application) internalErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, apperror.Internal(err))
}

// coreErrorResponse translates an error returned by core into its HTTP form.
// notFoundMessage names the missing resource.
func (app *application) coreErrorResponse(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	var (
		appErr *apperror.Error
		blank  *core.BlankFieldError
	)
	switch {
	case errors.Is(err, core.NoRecordFound):
		appErr = apperror.NotFound(notFoundMessage)
	case errors.Is(err, core.ErrDuplicateEmail):
		appErr = apperror.Conflict("User have already registered", err)
	case errors.Is(err, core.ErrDuplicatedSlug):
		appErr = apperror.Conflict("Slug already exists", err)
	case errors.Is(err, core.ErrInvalidCredentials):
		appErr = apperror.Unauthorized("Invalid email or password")
	case errors.Is(err, core.ErrForbidden):
		appErr = apperror.Unauthorized("Not authorized to perform this action")
	case errors.Is(err, core.ErrUnknownCategory):
		appErr = apperror.Validation("Unknown category", map[string]string{"categories": "must reference existing categories"})
	case errors.Is(err, core.ErrInvalidParent):
		appErr = apperror.Validation("Invalid parent comment", map[string]string{"parent": "must be a comment on the same post"})
	case errors.As(err, &blank):
		appErr = apperror.Validation(blank.Error(), map[string]string{blank.Field: "must not be empty"})
	default:
		appErr = apperror.Internal(err)
	}
	app.errorResponse(w, r, appErr.Wrap(err))
}

// errorResponse is the single place errors are logged and rendered.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.From(err)

	body := envelope{"message": appErr.Message}
	if len(appErr.Details) > 0 {
		body["errors"] = appErr.Details
	}
	if !app.config.IsProduction() {
		body["stack"] = xerrors.Sprint(err)
	}

	attrs := []slog.Attr{
		slog.String("request_url", r.URL.String()),
		slog.String("request_method", r.Method),
		slog.Int("status", appErr.Status),
		slog.String("kind", appErr.Kind.String()),
	}
	if appErr.Err != nil {
		attrs = append(attrs, slog.String("stack", xerrors.Sprint(appErr.Err)))
	}
	for key, valueData := range appErr.Details {
		attrs = append(attrs, slog.Any(key, valueData))
	}

	level := slog.LevelWarn
	if appErr.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	app.logger.LogAttrs(r.Context(), level, "Error in handling request", attrs...)

	if err := app.writeJSON(w, appErr.Status, body, nil); err != nil {
		app.logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}
