package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/plumecms/plume/config"
	"github.com/plumecms/plume/controllers"
	"github.com/plumecms/plume/middleware"
	"github.com/plumecms/plume/session"
	"github.com/plumecms/plume/utils"
)

// SetupRouter wires routes, middlewares and controllers.
func SetupRouter(cfg config.AppConfig, db *gorm.DB, store *session.Store) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	r.Use(middleware.WithSession(store, cfg.SessionSecret, ttl))

	r.LoadHTMLGlob(cfg.TemplateGlob)
	r.Static("/img", "./img")

	blog := controllers.NewBlogController(db, store, cfg.PostsPerPage)
	auth := controllers.NewAuthController(db, store, cfg.SessionSecret, ttl)
	admin := controllers.NewAdminController(db, store)
	upload := controllers.NewUploadController(cfg.UploadDir, cfg.UploadAllowedOrigins)

	r.GET("/", blog.ListPosts)
	r.GET("/post/:id", blog.ShowPost)
	r.POST("/post/:id/comment", blog.AddComment)

	r.GET("/login", auth.LoginForm)
	r.POST("/login", middleware.RateLimit(cfg.RateLimitPerMinute), auth.Authenticate)
	r.GET("/logout", auth.Logout)

	r.POST("/upload/image", upload.UploadImage)

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.AdminRequired(store))
	adminGroup.GET("", admin.Panel)
	adminGroup.POST("/post", admin.AddPost)
	adminGroup.GET("/post/:id/edit", admin.EditPost)
	adminGroup.POST("/post/:id", admin.UpdatePost)
	adminGroup.POST("/post/:id/delete", admin.DeletePost)
	adminGroup.POST("/comment/:id/flag", admin.FlagComment)
	adminGroup.POST("/comment/:id/unflag", admin.UnflagComment)
	adminGroup.POST("/comment/:id/delete", admin.DeleteComment)

	r.GET("/write", middleware.AdminRequired(store), admin.WritePost)

	r.NoRoute(blog.NotFound)

	return r
}
