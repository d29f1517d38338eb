package router

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/pageza/portfolio/backend/config"
	"github.com/pageza/portfolio/backend/internal/api"
	"github.com/pageza/portfolio/backend/internal/middleware"
	"github.com/pageza/portfolio/backend/internal/service"
	"github.com/pageza/portfolio/backend/internal/storage"
)

// Cache prefixes invalidated by writes
const (
	certificatesPath = "/api/certificates"
	profilePath      = "/api/profile"
)

// Dependencies holds everything the routes are built from. Cache,
// ContactLimiter and Notifier may be nil.
type Dependencies struct {
	Config         *config.Config
	Store          storage.Storage
	Auth           service.IAuthService
	Uploads        service.IUploadService
	Cache          *middleware.ResponseCache
	ContactLimiter *middleware.RateLimiter
	Notifier       service.IEmailService
	// StaticDir is served under /attached_assets when set.
	StaticDir string
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	// ClientIP keys the contact limiter, so forwarded headers count only from
	// configured proxies.
	if err := router.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		log.Printf("Ignoring TRUSTED_PROXIES: %v", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Logger(), middleware.RequestID(), middleware.ErrorHandler())

	// CORS middleware
	router.Use(middleware.CORS(deps.Config.CORSOrigins))

	if deps.StaticDir != "" {
		assets := router.Group(service.PublicPrefix, middleware.HideDotfiles())
		assets.Static("/", deps.StaticDir)
	}

	healthHandler := api.NewHealthHandler(deps.Store)
	authHandler := api.NewAuthHandler(deps.Auth)
	contactHandler := api.NewContactHandler(deps.Store, deps.Notifier)
	certificateHandler := api.NewCertificateHandler(deps.Store)
	profileHandler := api.NewProfileHandler(deps.Store)
	uploadHandler := api.NewUploadHandler(deps.Store, deps.Uploads, config.MaxUploadSize)

	requireAdmin := middleware.AuthMiddleware(deps.Auth)
	cached := deps.Cache.Middleware()
	invalidateCertificates := deps.Cache.InvalidateOnSuccess(certificatesPath)
	invalidateProfile := deps.Cache.InvalidateOnSuccess(profilePath)

	v1 := router.Group("/api")
	v1.GET("/health", healthHandler.Health)

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", requireAdmin, authHandler.Register)
		auth.GET("/me", requireAdmin, authHandler.Me)
	}

	contact := v1.Group("/contact")
	{
		contact.POST("", deps.ContactLimiter.RateLimitMiddleware(), contactHandler.CreateMessage)
		contact.GET("", requireAdmin, contactHandler.ListMessages)
	}

	certificates := v1.Group("/certificates")
	{
		certificates.GET("", cached, certificateHandler.ListCertificates)
		certificates.GET("/:id", cached, certificateHandler.GetCertificate)
		certificates.POST("", requireAdmin, invalidateCertificates, certificateHandler.CreateCertificate)
		certificates.PUT("/:id", requireAdmin, invalidateCertificates, certificateHandler.UpdateCertificate)
		certificates.DELETE("/:id", requireAdmin, invalidateCertificates, certificateHandler.DeleteCertificate)
	}

	profile := v1.Group("/profile")
	{
		profile.GET("", cached, profileHandler.GetProfile)
		profile.PUT("/:id", requireAdmin, invalidateProfile, profileHandler.UpdateProfile)
	}

	upload := v1.Group("/upload", requireAdmin)
	{
		upload.POST("/resume", invalidateProfile, uploadHandler.UploadResume)
		upload.POST("/certificate", uploadHandler.UploadCertificateImage)
	}

	return router
}
