package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.invalidPathResponse)
	router.HandleMethodNotAllowed = false

	router.HandlerFunc(http.MethodGet, "/", app.rootHandler)
	router.HandlerFunc(http.MethodGet, "/health", app.healthCheckHandler)

	router.HandlerFunc(http.MethodPost, "/api/users/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/users/login", app.loginHandler)
	router.HandlerFunc(http.MethodGet, "/api/users/profile", app.authGuard(app.profileHandler))
	router.HandlerFunc(http.MethodPut, "/api/users/updateProfile/:userId", app.authGuard(app.updateProfileHandler))
	router.HandlerFunc(http.MethodGet, "/api/users", app.requireAdmin(app.listUsersHandler))

	router.HandlerFunc(http.MethodGet, "/api/posts", app.listPostsHandler)
	router.HandlerFunc(http.MethodGet, "/api/posts/:slug", app.getPostHandler)
	router.HandlerFunc(http.MethodPost, "/api/posts", app.requireAdmin(app.createPostHandler))
	router.HandlerFunc(http.MethodPut, "/api/posts/:slug", app.requireAdmin(app.updatePostHandler))
	router.HandlerFunc(http.MethodDelete, "/api/posts/:slug", app.requireAdmin(app.deletePostHandler))

	router.HandlerFunc(http.MethodGet, "/api/post-categories", app.listCategoriesHandler)
	router.HandlerFunc(http.MethodGet, "/api/post-categories/:categoryId", app.getCategoryHandler)
	router.HandlerFunc(http.MethodPost, "/api/post-categories", app.requireAdmin(app.createCategoryHandler))
	router.HandlerFunc(http.MethodPut, "/api/post-categories/:categoryId", app.requireAdmin(app.updateCategoryHandler))
	router.HandlerFunc(http.MethodDelete, "/api/post-categories/:categoryId", app.requireAdmin(app.deleteCategoryHandler))

	router.HandlerFunc(http.MethodPost, "/api/comments", app.authGuard(app.createCommentHandler))
	router.HandlerFunc(http.MethodPut, "/api/comments/:commentId", app.authGuard(app.updateCommentHandler))
	router.HandlerFunc(http.MethodDelete, "/api/comments/:commentId", app.authGuard(app.deleteCommentHandler))

	return app.recoverPanic(app.logRequest(app.enableCORS(router)))
}
