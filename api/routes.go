package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint. Listing and detail views work for
// anonymous viewers (identify only attaches an identity when a valid
// token is present); everything that writes requires authentication.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.identify)

		r.Get("/posts", handlers.postHandler.listPosts())
		r.Get("/posts/{postID}", handlers.postHandler.getPost())
		r.Get("/categories/{slug}/posts", handlers.categoryHandler.listCategoryPosts())
		r.Get("/profiles/{username}", handlers.profileHandler.getProfile())
	})

	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Post("/posts", handlers.postHandler.createPost())
		r.Put("/posts/{postID}", handlers.postHandler.updatePost())
		r.Get("/posts/{postID}/delete", handlers.postHandler.confirmDeletePost())
		r.Delete("/posts/{postID}", handlers.postHandler.deletePost())
		r.Post("/posts/{postID}/image", handlers.postHandler.uploadPostImage())

		r.Post("/posts/{postID}/comments", handlers.commentHandler.addComment())
		r.Put("/posts/{postID}/comments/{commentID}", handlers.commentHandler.updateComment())
		r.Get("/posts/{postID}/comments/{commentID}/delete", handlers.commentHandler.confirmDeleteComment())
		r.Delete("/posts/{postID}/comments/{commentID}", handlers.commentHandler.deleteComment())

		r.Get("/profile", handlers.profileHandler.getOwnProfile())
		r.Put("/profile", handlers.profileHandler.updateProfile())
	})

	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/auth/registration", handlers.authHandler.register())
		r.Post("/auth/login", handlers.authHandler.login())
	})
}
