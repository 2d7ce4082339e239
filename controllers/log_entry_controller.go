package controllers

import (
	"net/http"

	"github.com/john-zaremba/my-easy-tracker/services"

	"github.com/gin-gonic/gin"
)

type LogEntryController struct {
	Logs *services.LogService
	Hub  *services.RealtimeHub
}

func NewLogEntryController(logs *services.LogService, hub *services.RealtimeHub) *LogEntryController {
	return &LogEntryController{Logs: logs, Hub: hub}
}

func (ec *LogEntryController) broadcast(userID uint, detail *services.LogDetail) {
	if ec.Hub != nil {
		ec.Hub.BroadcastLogUpdate(userID, detail)
	}
}

// POST /api/v1/logs/:id/entries — resolve a natural-language food
// query and append the result to the log. Nothing is persisted when
// the lookup or normalization fails.
func (ec *LogEntryController) AddEntry(c *gin.Context) {
	uid := c.GetUint("userID")
	logID, ok := idParam(c)
	if !ok {
		return
	}

	var body struct {
		EntryQuery string `json:"entryQuery" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := ec.Logs.AddEntry(c.Request.Context(), uid, logID, body.EntryQuery)
	if err != nil {
		respondError(c, err)
		return
	}
	ec.broadcast(uid, detail)
	c.JSON(http.StatusCreated, gin.H{"log": detail})
}

// PATCH /api/v1/entries/:id
func (ec *LogEntryController) PatchEntry(c *gin.Context) {
	uid := c.GetUint("userID")
	entryID, ok := idParam(c)
	if !ok {
		return
	}

	var patch services.EntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := ec.Logs.PatchEntry(uid, entryID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	ec.broadcast(uid, detail)
	c.JSON(http.StatusOK, gin.H{"log": detail})
}

// DELETE /api/v1/entries/:id
func (ec *LogEntryController) DeleteEntry(c *gin.Context) {
	uid := c.GetUint("userID")
	entryID, ok := idParam(c)
	if !ok {
		return
	}

	detail, err := ec.Logs.DeleteEntry(uid, entryID)
	if err != nil {
		respondError(c, err)
		return
	}
	ec.broadcast(uid, detail)
	c.JSON(http.StatusOK, gin.H{"log": detail})
}
