package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobhunt/internal/auth"
	"github.com/justsurfingit/jobhunt/internal/config"
	"github.com/justsurfingit/jobhunt/internal/metrics"
	"github.com/justsurfingit/jobhunt/internal/services"
)

// Services groups what the router needs to build its handlers.
type Services struct {
	Users      *services.UserService
	Jobs       *services.JobService
	Interviews *services.InterviewService
	Calendar   *services.CalendarService
	LLM        *services.LLMService
	Tokens     *auth.TokenManager
}

func NewRouter(cfg config.ServiceConfig, s Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(), metrics.Middleware())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	authHandler := NewAuthHandler(s.Users, s.Tokens)
	jobHandler := NewJobHandler(s.LLM, s.Jobs, s.Interviews)
	interviewHandler := NewInterviewHandler(s.Interviews)
	calendarHandler := NewCalendarHandler(s.Calendar)

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)
		api.GET("/metrics", metrics.Handler())

		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/token", authHandler.Login)
	}

	secured := api.Group("", s.Tokens.Middleware(s.Users))
	{
		// Job Routes
		secured.POST("/jobs/extract", jobHandler.ParseJob)
		secured.POST("/jobs", jobHandler.CreateJob)
		secured.GET("/jobs", jobHandler.ListJobs)
		secured.GET("/jobs/:id", jobHandler.GetJob)
		secured.PATCH("/jobs/:id", jobHandler.UpdateJobStatus)
		secured.DELETE("/jobs/:id", jobHandler.DeleteJob)

		secured.GET("/interview-prep/:job_id", jobHandler.InterviewPrep)
		secured.POST("/interview-prep", jobHandler.InterviewPrep)

		// Interview Routes
		secured.POST("/interviews", interviewHandler.CreateInterview)
		secured.GET("/interviews", interviewHandler.ListInterviews)
		secured.GET("/interviews/:id", interviewHandler.GetInterview)
		secured.PATCH("/interviews/:id", interviewHandler.UpdateInterview)
		secured.DELETE("/interviews/:id", interviewHandler.DeleteInterview)
		secured.POST("/interviews/:id/prep", interviewHandler.GeneratePrep)

		// Calendar Routes
		secured.POST("/calendar", calendarHandler.CreateEvent)
		secured.GET("/calendar", calendarHandler.ListEvents)
		secured.GET("/calendar/:id", calendarHandler.GetEvent)
		secured.PATCH("/calendar/:id", calendarHandler.UpdateEvent)
		secured.DELETE("/calendar/:id", calendarHandler.DeleteEvent)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", requestIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}
