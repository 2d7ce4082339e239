package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/john-zaremba/my-easy-tracker/services"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	Logs *services.LogService
}

func NewLogController(logs *services.LogService) *LogController {
	return &LogController{Logs: logs}
}

// respondError maps the engine's error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrNormalization):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrLookupTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, services.ErrLookupUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// GET /api/v1/logs
func (lc *LogController) ListLogs(c *gin.Context) {
	uid := c.GetUint("userID")
	logs, err := lc.Logs.ListLogs(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// POST /api/v1/logs — get-or-create today's log. The date always
// comes from the server clock, never from the request body.
func (lc *LogController) StartLog(c *gin.Context) {
	uid := c.GetUint("userID")
	log, created, err := lc.Logs.GetOrCreateLog(uid, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"log": log})
}

// GET /api/v1/logs/:id
func (lc *LogController) GetLog(c *gin.Context) {
	uid := c.GetUint("userID")
	logID, ok := idParam(c)
	if !ok {
		return
	}
	detail, err := lc.Logs.GetLogDetail(uid, logID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"log": detail})
}

// DELETE /api/v1/logs/:id — removes the log and all of its entries.
func (lc *LogController) DeleteLog(c *gin.Context) {
	uid := c.GetUint("userID")
	logID, ok := idParam(c)
	if !ok {
		return
	}
	if err := lc.Logs.DeleteLog(uid, logID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "log deleted"})
}

// GET /api/v1/progress — today's calories against the user's
// maintenance target.
func (lc *LogController) GetProgress(c *gin.Context) {
	uid := c.GetUint("userID")
	user, err := services.FindUserByID(uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	progress, err := lc.Logs.GetDailyProgress(uid, user.BMR, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
