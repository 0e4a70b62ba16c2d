package main

import (
	"net/http"

	"github.com/siahsang/blogapi/internal/validator"
)

const categoryNotFound = "Category was not found"

func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	f, v := app.readFilter(r)
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return
	}

	page, err := app.core.ListCategories(r.Context(), f)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := writePage(app, w, page.Items, page.TotalCount, f); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getCategoryHandler(w http.ResponseWriter, r *http.Request) {
	category, err := app.core.GetCategory(r.Context(), app.readParam(r, "categoryId"))
	if err != nil {
		app.coreErrorResponse(w, r, err, categoryNotFound)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, category, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) readCategoryTitle(w http.ResponseWriter, r *http.Request) (string, bool) {
	var input struct {
		Title string `json:"title"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return "", false
	}

	v := validator.New()
	v.CheckNotBlank(input.Title, "title", "must be provided")
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v)
		return "", false
	}
	return input.Title, true
}

func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	title, ok := app.readCategoryTitle(w, r)
	if !ok {
		return
	}

	category, err := app.core.CreateCategory(r.Context(), title)
	if err != nil {
		app.coreErrorResponse(w, r, err, categoryNotFound)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, category, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	title, ok := app.readCategoryTitle(w, r)
	if !ok {
		return
	}

	category, err := app.core.UpdateCategory(r.Context(), app.readParam(r, "categoryId"), title)
	if err != nil {
		app.coreErrorResponse(w, r, err, categoryNotFound)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, category, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.core.DeleteCategory(r.Context(), app.readParam(r, "categoryId")); err != nil {
		app.coreErrorResponse(w, r, err, categoryNotFound)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"message": "Post category is successfully deleted"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
