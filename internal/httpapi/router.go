package httpapi

import (
	"github.com/gin-gonic/gin"

	"reviewhub/internal/config"
	"reviewhub/internal/httpapi/handler"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/service"
)

// Services groups everything the router needs wired in.
type Services struct {
	Auth     service.AuthService
	User     service.UserService
	Category service.CategoryService
	Genre    service.GenreService
	Title    service.TitleService
	Review   service.ReviewService
	Comment  service.CommentService
}

// NewRouter assembles the gin engine with all v1 routes.
func NewRouter(cfg *config.Config, svcs Services) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	auth := middleware.AuthMiddleware(svcs.Auth)

	v1 := r.Group("/api/v1")

	authGroup := v1.Group("", middleware.RateLimit(cfg.AuthRatePerSecond, cfg.AuthRateBurst))
	handler.NewAuthHandler(svcs.Auth).RegisterRoutes(authGroup)

	handler.NewUserHandler(svcs.User).RegisterRoutes(v1, auth)
	handler.NewCategoryHandler(svcs.Category).RegisterRoutes(v1, auth)
	handler.NewGenreHandler(svcs.Genre).RegisterRoutes(v1, auth)
	handler.NewTitleHandler(svcs.Title).RegisterRoutes(v1, auth)
	handler.NewReviewHandler(svcs.Review).RegisterRoutes(v1, auth)
	handler.NewCommentHandler(svcs.Comment).RegisterRoutes(v1, auth)

	return r
}
