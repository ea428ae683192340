package service

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/memoirlab/memoir-api/cmd/service/handler"
	"github.com/memoirlab/memoir-api/internal/core"
	v1 "github.com/memoirlab/memoir-api/internal/logic/v1"
	"github.com/memoirlab/memoir-api/internal/response"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func GetIPLimitBuilder(core *core.Core) func(key string) gin.HandlerFunc {
	return func(key string) gin.HandlerFunc {
		return UseLimit(core, key, func(c *gin.Context) string {
			return key + ":" + c.ClientIP()
		})
	}
}

func GetUserLimitBuilder(core *core.Core) func(key string) gin.HandlerFunc {
	return func(key string) gin.HandlerFunc {
		return UseLimit(core, key, func(c *gin.Context) string {
			token, _ := v1.InjectTokenClaim(c)
			return key + ":" + token.User
		})
	}
}

func setupHttpRouter(s *handler.HttpSrv) {
	userLimit := GetUserLimitBuilder(s.Core)

	s.Engine.Use(I18n(), AcceptLanguage())
	s.Engine.Use(Cors)

	s.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := s.Engine.Group("/api/v1")
	{
		apiV1.GET("/mode", func(c *gin.Context) {
			response.APISuccess(c, s.Core.Plugins.Name())
		})

		authed := apiV1.Group("")
		authed.Use(Authorization(s.Core))

		entry := authed.Group("/entry")
		{
			entry.POST("", userLimit("entry_modify"), s.CreateEntry)
			entry.POST("/upload", userLimit("entry_modify"), s.CreateEntryWithUpload)
			entry.GET("/list", s.ListEntries)
			entry.GET("/calendar", s.EntryCalendar)
			entry.PUT("/text", userLimit("entry_modify"), s.UpdateEntryText)
			entry.DELETE("", userLimit("entry_modify"), s.DeleteEntry)
		}

		object := authed.Group("/object")
		{
			object.POST("/upload/key", userLimit("upload"), s.GenUploadKey)
		}
	}
}
