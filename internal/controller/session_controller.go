package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"media-insight-dashboard/internal/dto"
	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/store"
)

type SessionController struct {
	sessions store.SessionStore
}

func NewSessionController(sessions store.SessionStore) *SessionController {
	return &SessionController{sessions: sessions}
}

func RegisterSessionRoutes(router *gin.Engine, controller *SessionController) {
	router.POST("/api/v1/sessions", controller.CreateSession)
}

// CreateSession godoc
// @Summary      Start a dashboard session
// @Description  Returns a session id. Dashboard requests sent with this id in the X-Session-ID header cancel the session's earlier in-flight insight requests.
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  dto.SessionResponse "New session"
// @Failure      500  {object}  model.Response "Internal server error"
// @Router       /api/v1/sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	id, err := c.sessions.CreateSession(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse("Failed to create session", nil))
		return
	}
	ctx.JSON(http.StatusCreated, dto.SessionResponse{SessionID: id})
}
