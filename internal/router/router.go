package router

import (
	"time"

	"community/internal/comment"
	"community/internal/handler"
	"community/internal/image"
	"community/internal/like"
	"community/internal/middleware"
	"community/internal/post"
	"community/internal/session"
	"community/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps - все зависимости HTTP-слоя; хранилища инъецируются интерфейсами,
// чтобы в тестах подставлять memory-реализации
type Deps struct {
	Users    user.UserStorage
	Sessions session.SessionStorage
	Posts    post.PostStorage
	Comments comment.CommentStorage
	Likes    like.LikeStorage
	Images   image.Storage

	SessionTTL  time.Duration
	CORSOrigins []string
	StaticDir   string
}

// SetupRouter собирает gin-движок: CORS, статика, маршруты
func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// загруженные картинки
	if d.StaticDir != "" {
		r.Static("/static", d.StaticDir)
	}

	authHandler := handler.NewAuthHandler(d.Users, d.Sessions, d.Images, d.SessionTTL)
	postHandler := handler.NewPostHandler(d.Posts, d.Likes, d.Images)
	commentHandler := handler.NewCommentHandler(d.Comments)

	required := middleware.RequireAuth(d.Sessions)
	optional := middleware.OptionalAuth(d.Sessions)

	// --- пользователи ---
	r.POST("/users/signup", authHandler.Register)
	r.POST("/users/login", authHandler.Login)
	r.POST("/users/logout", authHandler.Logout)
	r.GET("/users/email", authHandler.CheckEmail)
	r.GET("/users/me", required, authHandler.Me)
	r.PATCH("/users/:user_id", required, authHandler.UpdateNickname)
	r.PUT("/users/me/password", required, authHandler.ChangePassword)
	r.DELETE("/users/me", required, authHandler.DeleteAccount)

	// --- посты ---
	r.GET("/posts", postHandler.List)
	r.POST("/posts", required, postHandler.Create)
	r.GET("/posts/:post_id", optional, postHandler.Detail)
	r.PUT("/posts/:post_id", required, postHandler.Update)
	r.DELETE("/posts/:post_id", required, postHandler.Delete)
	r.POST("/posts/:post_id/like", required, postHandler.ToggleLike)

	// --- комментарии ---
	r.GET("/posts/:post_id/comments", optional, commentHandler.List)
	r.POST("/posts/:post_id/comments", required, commentHandler.Create)
	r.PUT("/comments/:comment_id", required, commentHandler.Update)
	r.DELETE("/comments/:comment_id", required, commentHandler.Delete)

	return r
}
