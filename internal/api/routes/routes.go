package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/hirea/internal/api/handlers"
	"github.com/yoockh/hirea/internal/api/middleware"
)

type Deps struct {
	Jobs         *handlers.JobHandler
	Applications *handlers.ApplicationHandler
	State        *handlers.StateHandler
	WS           *handlers.WSHandler
}

type Options struct {
	// empty means any origin
	CORSOrigins     []string
	ApplyRatePerMin int
}

// NewRouter builds the engine with recovery, request logging and CORS, then
// registers the routes.
func NewRouter(l *logrus.Logger, opts Options, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	corsCfg := cors.DefaultConfig()
	if len(opts.CORSOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = opts.CORSOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Request-Id"}
	corsCfg.ExposeHeaders = []string{"X-Request-Id"}
	r.Use(cors.New(corsCfg))

	RegisterRoutes(r, opts, d)
	return r
}

func RegisterRoutes(r *gin.Engine, opts Options, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	jobs := r.Group("/jobs")
	jobs.GET("", d.Jobs.List)
	jobs.POST("", d.Jobs.Create)
	jobs.GET("/:job_id", d.Jobs.Detail)
	jobs.POST("/:job_id/applications", middleware.RateLimit(opts.ApplyRatePerMin), d.Applications.Submit)
	jobs.GET("/:job_id/candidates", d.Applications.Candidates)
	jobs.GET("/:job_id/candidates/rows", d.Applications.CandidateRows)

	r.GET("/state/jobs", d.State.Jobs)

	// WebSocket
	r.GET("/ws/state", d.WS.StateWS)
}
