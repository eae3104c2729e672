package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Init swagger doc
	_ "github.com/dineshsutihar/Hire3-sub000/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/dineshsutihar/Hire3-sub000/internal/auth"
	"github.com/dineshsutihar/Hire3-sub000/internal/controller/application"
	"github.com/dineshsutihar/Hire3-sub000/internal/controller/job"
	"github.com/dineshsutihar/Hire3-sub000/internal/controller/payment"
	"github.com/dineshsutihar/Hire3-sub000/internal/controller/post"
	"github.com/dineshsutihar/Hire3-sub000/internal/controller/resume"
	"github.com/dineshsutihar/Hire3-sub000/internal/controller/user"
	"github.com/dineshsutihar/Hire3-sub000/internal/middleware"
	parser "github.com/dineshsutihar/Hire3-sub000/internal/resume"
	"github.com/dineshsutihar/Hire3-sub000/internal/solana"
)

// RegisterRoutes registers every http endpoint route on the bound Server
// instance.
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	verifier := solana.NewVerifier(s.DB, solana.NewClient(s.Cfg.SolanaRPC), s.Cfg)
	enricher := parser.NewEnricher(s.Cfg.OpenAIKey, s.Cfg.OpenAIModel)

	lAuth := auth.NewLocalAuthHandler(s.DB, s.Cfg)
	paymentCtrl := payment.NewPaymentController(s.DB, verifier, s.Cfg)
	jobCtrl := job.NewJobController(s.DB, verifier, s.Cfg)
	applicationCtrl := application.NewApplicationController(s.DB)
	postCtrl := post.NewPostController(s.DB)
	resumeCtrl := resume.NewResumeController(s.DB, enricher)
	userCtrl := user.NewUserController(s.DB)

	r.Use(middleware.SafeHeader())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.Cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/", s.HelloHandler)
	r.GET("/health", s.healthHandler)

	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("register", lAuth.RegisterHandler)
			authRoute.POST("login", lAuth.LoginHandler)
		}

		v1.GET("/payments/required", paymentCtrl.RequiredPayment)

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB, s.Cfg))

			needAuth.POST("/payments/verify", paymentCtrl.VerifyPayment)
			needAuth.GET("/my-payments", paymentCtrl.MyPayments)

			needAuth.POST("/jobs", jobCtrl.CreateJob)
			needAuth.GET("/jobs", jobCtrl.ListJobs)
			needAuth.GET("/jobs/match", jobCtrl.MatchJobs)
			needAuth.GET("/jobs/:id", jobCtrl.GetJobByID)
			needAuth.PATCH("/jobs/:id", jobCtrl.EditJob)
			needAuth.DELETE("/jobs/:id", jobCtrl.DeleteJob)

			needAuth.POST("/jobs/:id/apply", applicationCtrl.Apply)
			needAuth.GET("/jobs/:id/applications", applicationCtrl.JobApplications)
			needAuth.GET("/my-applications", applicationCtrl.MyApplications)
			needAuth.PATCH("/applications/:id/status", applicationCtrl.UpdateStatus)

			needAuth.POST("/resume/parse",
				middleware.SizeLimit(10<<20),
				middleware.AIRateLimiter(s.Cfg),
				resumeCtrl.ParseResume)

			needAuth.GET("/profile", userCtrl.GetProfile)
			needAuth.PATCH("/profile", userCtrl.EditProfile)

			needAuth.POST("/posts", postCtrl.CreatePost)
			needAuth.GET("/posts", postCtrl.ListPosts)
			needAuth.GET("/posts/:id", postCtrl.GetPostByID)
			needAuth.PUT("/posts/:id", postCtrl.UpdatePost)
			needAuth.DELETE("/posts/:id", postCtrl.DeletePost)
			needAuth.POST("/posts/:id/comments", postCtrl.CreateComment)
			needAuth.GET("/posts/:id/comments", postCtrl.ListComments)
			needAuth.DELETE("/comments/:id", postCtrl.DeleteComment)
			needAuth.POST("/posts/:id/like", postCtrl.ToggleLike)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloHandler handles requests by returning message "Hello World"
func (s *Server) HelloHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
