// Package api is the HTTP surface of the server: gin routing, middleware,
// and the handlers for intake, workflow, projects and file serving.
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/juralis/paperdrop/internal/logging"
	"github.com/juralis/paperdrop/internal/server/services"
)

// Options carries everything the router needs besides the services.
type Options struct {
	Logger         logging.Logger
	APIKey         string
	MaxUploadBytes int64
}

// NewRouter assembles the gin engine with all routes and middleware.
func NewRouter(docs *services.Documents, projects *services.Projects, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Logger != nil {
		r.Use(RequestLogger(opts.Logger))
	}
	r.Use(cors.Default())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if opts.APIKey != "" {
		r.Use(APIKeyAuth(opts.APIKey))
	}

	NewDocumentHandler(docs, opts.MaxUploadBytes).RegisterRoutes(r)
	NewProjectHandler(projects, docs).RegisterRoutes(r)
	NewFileHandler(docs).RegisterRoutes(r)

	return r
}
