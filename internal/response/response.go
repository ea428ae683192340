package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memoirlab/memoir-api/pkg/errors"
	"github.com/memoirlab/memoir-api/pkg/i18n"
	"github.com/memoirlab/memoir-api/pkg/utils"
)

const (
	LOCALIZER_CONTEXT_KEY = "__memoir.response_localizer"
	LANGUAGE_CONTEXT_KEY  = "__memoir.accept_language"
)

type Meta struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Body struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}

// ProvideResponseLocalizer stores the localizer and the request language in
// gin context so APIError can translate message keys.
func ProvideResponseLocalizer(l *i18n.Localizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(LOCALIZER_CONTEXT_KEY, l)
		c.Set(LANGUAGE_CONTEXT_KEY, utils.ParseAcceptLanguage(c.GetHeader("Accept-Language")))
	}
}

func APISuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Body{
		Meta: Meta{
			Code: http.StatusOK,
		},
		Data: data,
	})
}

func APIError(c *gin.Context, err error) {
	e, ok := err.(*errors.Error)
	if !ok {
		e = errors.New("response.APIError", i18n.ERROR_INTERNAL, err)
	}

	if e.StatusCode() >= http.StatusInternalServerError {
		slog.Error("Request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", e.Error()))
	}

	message := e.MessageKey()
	if l, exist := c.Get(LOCALIZER_CONTEXT_KEY); exist {
		message = l.(*i18n.Localizer).Get(c.GetString(LANGUAGE_CONTEXT_KEY), e.MessageKey())
	}

	c.AbortWithStatusJSON(e.StatusCode(), Body{
		Meta: Meta{
			Code:    e.StatusCode(),
			Message: message,
		},
	})
}
