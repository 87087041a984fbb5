package router

import (
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "edulink/docs"
	"edulink/internal/domain"
	"edulink/internal/handler"
	"edulink/internal/middleware"
	"edulink/internal/service"
)

// Handlers groups every HTTP handler mounted by Setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Ecole         *handler.EcoleHandler
	Intervenant   *handler.IntervenantHandler
	Document      *handler.DocumentHandler
	Challenge     *handler.ChallengeHandler
	Mission       *handler.MissionHandler
	Collaboration *handler.CollaborationHandler
	Declaration   *handler.DeclarationHandler
	Facture       *handler.FactureHandler
	Favorite      *handler.FavoriteHandler
	Stats         *handler.StatsHandler
	Health        *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers) *gin.Engine {
	if err := handler.SetupValidation(); err != nil {
		log.Printf("router.Setup: %v", err)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Reporter())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	admin := domain.RoleAdmin
	ecole := domain.RoleEcole
	intervenant := domain.RoleIntervenant

	v1 := r.Group("/api/v1")
	v1.GET("/reference", h.Stats.Reference)

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)
	auth.POST("/reset-password", h.Auth.ResetPassword)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)
	protected.GET("/stats", h.Stats.GetStats)

	// Écoles
	ecoles := protected.Group("/ecoles")
	ecoles.GET("", middleware.RequireRole(admin), h.Ecole.List)
	ecoles.GET("/me", middleware.RequireRole(ecole), h.Ecole.GetMine)
	ecoles.PUT("/me", middleware.RequireRole(ecole), h.Ecole.UpdateMine)
	ecoles.GET("/me/missions", middleware.RequireRole(ecole), h.Mission.Mine)
	ecoles.GET("/:id", h.Ecole.GetByID)

	// Intervenants, their vault and their own listings
	intervenants := protected.Group("/intervenants")
	intervenants.GET("", middleware.RequireRole(ecole, admin), h.Intervenant.List)
	me := intervenants.Group("/me", middleware.RequireRole(intervenant))
	me.GET("", h.Intervenant.GetMine)
	me.PUT("", h.Intervenant.UpdateMine)
	me.POST("/documents", h.Document.Upload)
	me.GET("/documents", h.Document.MyVault)
	me.DELETE("/documents/:id", h.Document.Delete)
	me.GET("/challenges", h.Challenge.Mine)
	me.GET("/missions", h.Mission.Assigned)
	intervenants.GET("/:id", h.Intervenant.Get)

	documents := protected.Group("/documents")
	documents.GET("/:id/download", h.Document.Download)
	documents.GET("/:id/preview", h.Document.Preview)

	// Challenges
	challenges := protected.Group("/challenges")
	challenges.POST("", middleware.RequireRole(intervenant), h.Challenge.Create)
	challenges.GET("", h.Challenge.Catalog)
	challenges.GET("/:id", h.Challenge.Get)
	challenges.PUT("/:id", middleware.RequireRole(intervenant), h.Challenge.Update)
	challenges.DELETE("/:id", middleware.RequireRole(intervenant, admin), h.Challenge.Delete)

	// Missions
	missions := protected.Group("/missions")
	missions.POST("", middleware.RequireRole(ecole), h.Mission.Create)
	missions.GET("", middleware.RequireRole(intervenant, admin), h.Mission.List)
	missions.GET("/:id", h.Mission.Get)
	missions.PUT("/:id", middleware.RequireRole(ecole), h.Mission.Update)
	missions.POST("/:id/toggle-status", middleware.RequireRole(ecole), h.Mission.ToggleStatus)
	missions.PUT("/:id/intervenant", middleware.RequireRole(ecole), h.Mission.Assign)
	missions.DELETE("/:id", middleware.RequireRole(ecole), h.Mission.Delete)

	// Collaborations
	collaborations := protected.Group("/collaborations")
	collaborations.POST("", middleware.RequireRole(ecole, intervenant), h.Collaboration.Create)
	collaborations.GET("", h.Collaboration.List)
	collaborations.GET("/:id", h.Collaboration.Get)
	collaborations.PUT("/:id", middleware.RequireRole(ecole, intervenant), h.Collaboration.Update)
	collaborations.POST("/:id/valider", middleware.RequireRole(ecole, intervenant), h.Collaboration.Validate)
	collaborations.POST("/:id/status", middleware.RequireRole(ecole, intervenant), h.Collaboration.ChangeStatus)
	collaborations.DELETE("/:id", middleware.RequireRole(ecole, intervenant), h.Collaboration.Delete)

	// Declarations
	declarations := protected.Group("/declarations", middleware.RequireRole(intervenant, admin))
	declarations.POST("", middleware.RequireRole(intervenant), h.Declaration.Create)
	declarations.GET("", h.Declaration.List)
	declarations.GET("/estimate", h.Declaration.Estimate)
	declarations.GET("/:id", h.Declaration.Get)
	declarations.PUT("/:id", middleware.RequireRole(intervenant), h.Declaration.Update)
	declarations.DELETE("/:id", middleware.RequireRole(intervenant), h.Declaration.Delete)
	declarations.POST("/:id/transmettre", middleware.RequireRole(intervenant), h.Declaration.Transmit)
	declarations.POST("/:id/valider", h.Declaration.Validate)

	// Factures
	factures := protected.Group("/factures")
	factures.GET("", h.Facture.List)
	factures.POST("", middleware.RequireRole(intervenant, admin), h.Facture.Create)
	factures.GET("/:id", h.Facture.Get)
	factures.PUT("/:id", middleware.RequireRole(intervenant, admin), h.Facture.Update)
	factures.DELETE("/:id", middleware.RequireRole(intervenant, admin), h.Facture.Delete)
	factures.POST("/:id/envoyer", middleware.RequireRole(intervenant, admin), h.Facture.Send)
	factures.POST("/:id/marquer-payee", middleware.RequireRole(intervenant, admin), h.Facture.MarkPaid)
	factures.POST("/:id/annuler", middleware.RequireRole(intervenant, admin), h.Facture.Cancel)
	factures.POST("/:id/generer-pdf", middleware.RequireRole(intervenant, admin), h.Facture.GeneratePDF)
	factures.GET("/:id/telecharger-pdf", h.Facture.DownloadPDF)

	// Favorites
	favorites := protected.Group("/favorites", middleware.RequireRole(ecole))
	favorites.GET("", h.Favorite.List)
	favorites.GET("/:intervenantId", h.Favorite.State)
	favorites.POST("/:intervenantId/toggle", h.Favorite.Toggle)
	favorites.PUT("/:intervenantId/note", h.Favorite.SetNote)

	// Admin routes
	adminGroup := protected.Group("/admin", middleware.RequireRole(admin))
	adminGroup.GET("/users", h.User.List)
	adminGroup.GET("/users/:id", h.User.GetByID)
	adminGroup.PUT("/users/:id", h.User.Update)
	adminGroup.GET("/intervenants/stats", h.Intervenant.Stats)
	adminGroup.GET("/intervenants/:id/documents", h.Document.Vault)
	adminGroup.POST("/intervenants/:id/approve", h.Intervenant.Approve)
	adminGroup.POST("/intervenants/:id/reject", h.Intervenant.Reject)
	adminGroup.GET("/challenges", h.Challenge.ModerationQueue)
	adminGroup.GET("/challenges/stats", h.Challenge.Stats)
	adminGroup.POST("/challenges/:id/approve", h.Challenge.Approve)
	adminGroup.POST("/challenges/:id/reject", h.Challenge.Reject)
	adminGroup.GET("/declarations", h.Declaration.List)
	adminGroup.GET("/declarations/export.xlsx", h.Declaration.Export)
	adminGroup.GET("/factures/export.csv", h.Facture.ExportCSV)

	return r
}
