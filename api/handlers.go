package api

import (
	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, store storage.Store, tokens tokenManager) *routeHandlers {
	return &routeHandlers{
		postHandler:     newPostHandler(database.PostRepo(), database.CommentRepo(), database.UserRepo(), store),
		categoryHandler: newCategoryHandler(database.CategoryRepo(), database.PostRepo()),
		commentHandler:  newCommentHandler(database.CommentRepo(), database.PostRepo()),
		profileHandler:  newProfileHandler(database.UserRepo(), database.PostRepo()),
		authHandler:     newAuthHandler(database.UserRepo(), tokens),
	}
}
