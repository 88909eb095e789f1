package apiserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/flowforge/diskgate/pkg/admission"
	"github.com/flowforge/diskgate/pkg/apiserver/handlers"
	"github.com/flowforge/diskgate/pkg/apiserver/middleware"
	"github.com/flowforge/diskgate/pkg/auth"
	"github.com/flowforge/diskgate/pkg/capacity"
)

type Server struct {
	router     *gin.Engine
	controller *admission.Controller
	prober     capacity.Prober
	tokens     *auth.TokenManager
	logger     *zap.Logger
}

// NewServer builds the HTTP API. tokens may be nil, in which case any
// well-formed bearer token is accepted.
func NewServer(controller *admission.Controller, prober capacity.Prober, tokens *auth.TokenManager, logger *zap.Logger) *Server {
	s := &Server{
		controller: controller,
		prober:     prober,
		tokens:     tokens,
		logger:     logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		capacityHandler := handlers.NewCapacityHandler(s.prober, s.controller.Checker(), s.logger)
		admissionHandler := handlers.NewAdmissionHandler(s.controller, s.logger)
		categoryHandler := handlers.NewCategoryHandler(s.controller, s.logger)

		admit := api.Group("", middleware.Auth(s.tokens, auth.ScopeAdmission))
		admit.GET("/capacity", capacityHandler.Get)
		admit.GET("/mountflags", capacityHandler.MountFlags)
		admit.POST("/admission", admissionHandler.Evaluate)
		admit.POST("/tasks/admit", admissionHandler.AdmitTask)

		categories := api.Group("/categories", middleware.Auth(s.tokens, auth.ScopeCategories))
		categories.GET("", categoryHandler.List)
		categories.GET("/:label", categoryHandler.Get)
		categories.POST("/:label/members", categoryHandler.AddMember)
		categories.DELETE("/:label", categoryHandler.Delete)
	}

	s.router = r
}

func (s *Server) Router() *gin.Engine {
	return s.router
}
