package api

import (
	"github.com/gorilla/mux"
	"github.com/hireloop/hireloop/internal/config"
	"github.com/hireloop/hireloop/internal/db"
	"github.com/hireloop/hireloop/internal/grading"
	"github.com/hireloop/hireloop/internal/repository/sqlite"
	"github.com/hireloop/hireloop/pkg/models"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(db, logger)

	// Grading engine shared by submission and visibility handlers
	engine := grading.NewEngine(repo, repo, repo, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	skillsHandler := NewSkillsHandler(repo)
	jobsHandler := NewJobsHandler(repo, repo, cfg.Matching.MaxJobs)
	appsHandler := NewApplicationsHandler(repo, repo, engine)
	testsHandler := NewTestsHandler(repo, repo, repo, engine)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")

	// Job listings readable by any signed-in user
	apiV1.HandleFunc("/jobs", jobsHandler.ListJobs).Methods("GET")

	// Candidate endpoints
	candidate := apiV1.NewRoute().Subrouter()
	candidate.Use(RequireRole(models.RoleCandidate))
	candidate.HandleFunc("/skills", skillsHandler.CreateSkill).Methods("POST")
	candidate.HandleFunc("/skills", skillsHandler.ListSkills).Methods("GET")
	candidate.HandleFunc("/skills/{id}", skillsHandler.DeleteSkill).Methods("DELETE")
	candidate.HandleFunc("/jobs/recommended", jobsHandler.ListRecommended).Methods("GET")
	candidate.HandleFunc("/jobs/{id}/apply", appsHandler.Apply).Methods("POST")
	candidate.HandleFunc("/jobs/{id}/test", testsHandler.GetTest).Methods("GET")
	candidate.HandleFunc("/applications", appsHandler.ListMine).Methods("GET")
	candidate.HandleFunc("/applications/{id}/test/submit", testsHandler.Submit).Methods("POST")
	candidate.HandleFunc("/applications/{id}/test/result", testsHandler.GetResult).Methods("GET")

	// Recruiter endpoints
	recruiter := apiV1.NewRoute().Subrouter()
	recruiter.Use(RequireRole(models.RoleRecruiter))
	recruiter.HandleFunc("/jobs", jobsHandler.CreateJob).Methods("POST")
	recruiter.HandleFunc("/jobs/{id}/applications", appsHandler.ListForJob).Methods("GET")
	recruiter.HandleFunc("/jobs/{id}/test", testsHandler.CreateTest).Methods("POST")
	recruiter.HandleFunc("/jobs/{id}/test", testsHandler.DeleteTest).Methods("DELETE")
	recruiter.HandleFunc("/applications/{id}/status", appsHandler.UpdateStatus).Methods("PUT")
	recruiter.HandleFunc("/dashboard", appsHandler.Dashboard).Methods("GET")

	// Job detail after the more specific candidate routes
	apiV1.HandleFunc("/jobs/{id}", jobsHandler.GetJob).Methods("GET")

	return r
}
