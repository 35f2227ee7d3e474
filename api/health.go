package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

const (
	healthStatusOK          = "ok"
	healthStatusUnavailable = "unavailable"
)

//	@Summary		Health check
//	@Description	Reports whether the database and Redis are reachable
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	healthResponse
//	@Failure		503	{object}	healthResponse
//	@Router			/healthz [get]
func (server *Server) healthCheck(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()
	logger := zerolog.Ctx(reqCtx)

	resp := healthResponse{
		Status:   healthStatusOK,
		Database: healthStatusOK,
		Redis:    healthStatusOK,
	}

	if err := server.dbStore.Ping(reqCtx); err != nil {
		logger.Error().Err(err).Msg("database ping failed")
		resp.Database = healthStatusUnavailable
		resp.Status = healthStatusUnavailable
	}

	if server.redisClient != nil {
		if err := server.redisClient.Ping(reqCtx).Err(); err != nil {
			logger.Error().Err(err).Msg("redis ping failed")
			resp.Redis = healthStatusUnavailable
			resp.Status = healthStatusUnavailable
		}
	}

	if resp.Status != healthStatusOK {
		ctx.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
