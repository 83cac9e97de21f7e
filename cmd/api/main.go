package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Placement-Tracker/internal/access"
	"github.com/justsurfingit/Placement-Tracker/internal/auth"
	"github.com/justsurfingit/Placement-Tracker/internal/config"
	"github.com/justsurfingit/Placement-Tracker/internal/database"
	"github.com/justsurfingit/Placement-Tracker/internal/handlers"
	"github.com/justsurfingit/Placement-Tracker/internal/middlewares"
	"github.com/justsurfingit/Placement-Tracker/internal/realtime"
	"github.com/justsurfingit/Placement-Tracker/internal/services"
	"github.com/justsurfingit/Placement-Tracker/internal/storage"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Configuration and database
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("CRITICAL ERROR: JWT_SECRET is empty. Did you load the .env file?")
	}
	db := database.Connect(cfg)

	// 2. Core services
	students := services.NewStudentService(db)
	rule := services.NewStatusRule(students)
	tests := services.NewTestService(db, rule)
	users := services.NewUserService(db)
	jobs := services.NewJobService(db)
	interviews := services.NewInterviewService(db, students)
	matcher := services.NewMatcherService(db)
	sessions := auth.NewSessions(cfg.JWTSecret, cfg.SessionTTL)
	resolver := access.NewResolver(users)

	// 3. Optional integrations
	var documents *services.DocumentService
	if cfg.StorageEnabled() {
		store, err := storage.NewOSSStore(cfg.OSSEndpoint, cfg.OSSAccessKeyID, cfg.OSSAccessKeySecret, cfg.OSSBucket)
		if err != nil {
			log.Printf("⚠️  Document storage disabled: %v", err)
		} else {
			documents = services.NewDocumentService(store)
			log.Println("✅ Document storage connected.")
		}
	} else {
		log.Println("⚠️  OSS_* not set. Document storage disabled.")
	}
	cv := services.NewCVService(students, tests, rule, documents)

	llm := services.NewLLMService(ctx, cfg.GeminiAPIKey)

	var gmailService *gmail.Service
	log.Println("Initializing Gmail Client...")
	if httpClient, err := auth.GmailClient(ctx, cfg.GmailCredentials, cfg.GmailToken); err != nil {
		log.Printf("⚠️  Gmail disabled: %v", err)
	} else if gmailService, err = gmail.NewService(ctx, option.WithHTTPClient(httpClient)); err != nil {
		log.Printf("⚠️  Failed to create Gmail Service: %v", err)
	} else {
		log.Println("✅ Gmail Service connected successfully.")
	}
	emailService := services.NewEmailService(db, llm, gmailService, matcher, interviews)
	emailService.StartWatcher(ctx, cfg.MailPollInterval)

	// 4. Student list invalidation from database change notifications
	go realtime.NewListener(cfg.URL(), cfg.RealtimeChannel, students.Directory).Run(ctx)

	// 5. Handlers
	authHandler := handlers.NewAuthHandler(users, sessions)
	userHandler := handlers.NewUserHandler(users)
	studentHandler := handlers.NewStudentHandler(students)
	testHandler := handlers.NewTestHandler(tests)
	cvHandler := handlers.NewCVHandler(cv)
	jobHandler := handlers.NewJobHandler(llm, jobs)
	interviewHandler := handlers.NewInterviewHandler(interviews)
	var docHandler *handlers.DocumentHandler
	if documents != nil {
		docHandler = handlers.NewDocumentHandler(documents)
	}

	// 6. Router
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middlewares.RequestID(), middlewares.CORS(cfg.CORSAllowOrigins))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/auth/signin", authHandler.SignIn)

		authed := api.Group("", middlewares.Authenticate(sessions), middlewares.ResolveRole(resolver))
		authed.GET("/auth/me", authHandler.Me)

		// Any signed-in role; students only reach their own record.
		authed.GET("/students", studentHandler.List)
		handlers.RegisterRecordRoutes(authed, students, studentHandler, testHandler, cvHandler, docHandler)

		staff := authed.Group("", middlewares.RequireAnyRole(access.RoleAdmin, access.RoleStaff))
		staff.POST("/students", studentHandler.Create)
		staff.PUT("/students/:id/status", studentHandler.SetStatus)
		staff.POST("/students/:id/tests", testHandler.Record)
		staff.DELETE("/students/:id/tests/:testId", testHandler.Delete)

		staff.GET("/clients", jobHandler.ListClients)
		staff.POST("/clients", jobHandler.CreateClient)
		staff.POST("/jobs/extract", jobHandler.ParseJob)
		staff.POST("/jobs", jobHandler.CreateJob)
		staff.GET("/jobs", jobHandler.ListJobs)
		staff.GET("/jobs/:id", jobHandler.GetJob)
		staff.GET("/jobs/:id/eligible-students", jobHandler.EligibleStudents)

		staff.POST("/interviews", interviewHandler.Schedule)
		staff.GET("/interviews", interviewHandler.List)
		staff.PUT("/interviews/:id/result", interviewHandler.SetResult)

		admin := authed.Group("/users", middlewares.AdminOnly("/users"))
		admin.GET("", userHandler.List)
		admin.POST("", userHandler.Create)
	}

	log.Printf("🚀 Server starting on port %s...", cfg.AppPort)
	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
