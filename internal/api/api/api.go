package api

import (
	"net/http"

	"clubconnect/cmd/middleware"
	"clubconnect/internal/handler"
	"clubconnect/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"
)

type Routers struct {
	Clubs       *handler.ClubHandler
	Events      *handler.EventHandler
	Log         *zerolog.Logger
	Mode        string
	CORSOrigins []string
}

func NewRouters(r *Routers) *ginext.Engine {
	mode := r.Mode
	if mode == "" {
		mode = "release"
	}
	app := ginext.New(mode)

	app.Use(middleware.RequestID())
	app.Use(middleware.LoggingMiddleware(r.Log))
	app.Use(middleware.Metrics())
	corsCfg := cors.Config{
		AllowOrigins: r.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}
	if len(r.CORSOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
	}
	app.Use(cors.New(corsCfg))

	apiGroup := app.Group("/api")

	clubs := apiGroup.Group("/clubs")
	clubs.POST("", r.Clubs.CreateClub)
	clubs.GET("", r.Clubs.ListClubs)
	clubs.GET("/:clubId", r.Clubs.GetClub)
	clubs.DELETE("/:clubId", r.Clubs.DeleteClub)
	clubs.GET("/:clubId/events", r.Clubs.ListEventIDs)
	clubs.POST("/:clubId/events/:eventId", r.Clubs.AddEvent)
	clubs.DELETE("/:clubId/events/:eventId", r.Clubs.RemoveEvent)

	events := apiGroup.Group("/events")
	events.POST("", r.Events.CreateEvent)
	events.GET("", r.Events.ListEvents)
	events.GET("/tag/:tag", r.Events.ListEventsByTag)
	events.GET("/:eventId", r.Events.GetEvent)
	events.DELETE("/:eventId", r.Events.DeleteEvent)
	events.POST("/:eventId/attendees/:attendeeId", r.Events.AddAttendee)
	events.DELETE("/:eventId/attendees/:attendeeId", r.Events.RemoveAttendee)

	app.GET("/metrics", gin.WrapH(metrics.Handler()))
	app.GET("/healthz", func(c *ginext.Context) {
		c.String(http.StatusOK, "ok")
	})

	return app
}
