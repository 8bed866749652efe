package router

import (
	"net/http"

	"delit-api/internal/handler"
	"delit-api/internal/middleware"
	"delit-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Home         *handler.HomeHandler
	Blog         *handler.BlogHandler
	Gallery      *handler.GalleryHandler
	Publications *handler.PublicationHandler
	Banner       *handler.BannerHandler
	Footer       *handler.FooterHandler
	Subscription *handler.SubscriptionHandler
	Audit        *handler.AuditHandler
}

// Options configures the middleware chain.
type Options struct {
	ServiceName    string
	Logger         *zap.Logger
	CORS           gin.HandlerFunc
	AuthLimiter    *middleware.RateLimiter
	MaxUploadBytes int64
}

// PublicRoutes lists the routes reachable without an access token.
var PublicRoutes = []middleware.Route{
	{Method: http.MethodGet, Path: "/"},
	{Method: http.MethodGet, Path: "/health"},
	{Method: http.MethodPost, Path: "/login"},
	{Method: http.MethodPost, Path: "/refresh"},
	{Method: http.MethodPost, Path: "/logout"},
	{Method: http.MethodGet, Path: "/home"},
	{Method: http.MethodGet, Path: "/home/:name"},
	{Method: http.MethodGet, Path: "/blog"},
	{Method: http.MethodGet, Path: "/blog/:id"},
	{Method: http.MethodGet, Path: "/gallery"},
	{Method: http.MethodGet, Path: "/gallery/:id"},
	{Method: http.MethodGet, Path: "/publications"},
	{Method: http.MethodGet, Path: "/publications/:id"},
	{Method: http.MethodGet, Path: "/banner"},
	{Method: http.MethodGet, Path: "/footer"},
	{Method: http.MethodGet, Path: "/footer/:id"},
	{Method: http.MethodPost, Path: "/subscriptions"},
}

// New wires the gin engine: recovery, request logging, tracing, CORS and
// the session gate, followed by every route.
func New(h Handlers, session *middleware.Session, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(opts.Logger))
	if opts.ServiceName != "" {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	if opts.CORS != nil {
		r.Use(opts.CORS)
	}
	if opts.MaxUploadBytes > 0 {
		// Two files per request at most, plus form fields.
		r.MaxMultipartMemory = 2*opts.MaxUploadBytes + 1<<20
	}
	r.Use(session.Handler())

	r.GET("/", func(c *gin.Context) {
		utils.MessageResponse(c, "Welcome to the De-Lit API")
	})
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "delit-api",
		})
	})

	limit := opts.AuthLimiter.Handler()
	r.POST("/login", limit, h.Auth.Login)
	r.POST("/refresh", limit, h.Auth.Refresh)
	r.POST("/logout", limit, h.Auth.Logout)

	users := r.Group("/users")
	{
		users.POST("", h.Users.CreateUser)
		users.GET("", h.Users.ListUsers)
		users.DELETE("/:username", h.Users.DeleteUser)
	}

	home := r.Group("/home")
	{
		home.GET("", h.Home.List)
		home.POST("", h.Home.Create)
		home.GET("/:name", h.Home.Get)
		home.PUT("/:name", h.Home.Update)
		home.DELETE("/:name", h.Home.Delete)
	}

	blog := r.Group("/blog")
	{
		blog.GET("", h.Blog.List)
		blog.POST("", h.Blog.Create)
		blog.GET("/:id", h.Blog.Get)
		blog.PUT("/:id", h.Blog.Update)
		blog.DELETE("/:id", h.Blog.Delete)
	}

	gallery := r.Group("/gallery")
	{
		gallery.GET("", h.Gallery.List)
		gallery.POST("", h.Gallery.Upload)
		gallery.GET("/:id", h.Gallery.Get)
		gallery.PUT("/:id", h.Gallery.Update)
		gallery.DELETE("/:id", h.Gallery.Delete)
	}

	publications := r.Group("/publications")
	{
		publications.GET("", h.Publications.List)
		publications.POST("", h.Publications.Create)
		publications.GET("/:id", h.Publications.Get)
		publications.PUT("/:id", h.Publications.UpdateDetails)
		publications.PUT("/:id/cover", h.Publications.UpdateCover)
		publications.DELETE("/:id", h.Publications.Delete)
	}

	banner := r.Group("/banner")
	{
		banner.GET("", h.Banner.List)
		banner.POST("", h.Banner.Upload)
		banner.PUT("/:id", h.Banner.UpdateImage)
		banner.DELETE("/:id", h.Banner.Delete)
	}

	footer := r.Group("/footer")
	{
		footer.GET("", h.Footer.List)
		footer.POST("", h.Footer.Create)
		footer.GET("/:id", h.Footer.Get)
		footer.DELETE("/:id", h.Footer.Delete)
		footer.PUT("/name/:app_name", h.Footer.UpdateLink)
	}

	subscriptions := r.Group("/subscriptions")
	{
		subscriptions.POST("", h.Subscription.Subscribe)
		subscriptions.GET("", h.Subscription.List)
		subscriptions.DELETE("/:mail_id", h.Subscription.Unsubscribe)
	}

	r.GET("/audit", h.Audit.List)

	return r
}
