package handlers

import (
	"errors"
	"net/http"

	"tool-directory/pkg/db"
	"tool-directory/pkg/metrics"
	"tool-directory/pkg/models"
	"tool-directory/pkg/services"
	"tool-directory/pkg/submit"

	"github.com/gin-gonic/gin"
)

// ListTools lists every tool in the directory
func ListTools(service *services.ToolService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tools, err := service.ListTools(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if tools == nil {
			tools = []models.Tool{}
		}

		c.JSON(http.StatusOK, tools)
	}
}

// CreateTool accepts a submission draft
func CreateTool(service *services.ToolService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var draft models.Draft
		if err := c.ShouldBindJSON(&draft); err != nil {
			metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeValidation).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		tool, err := service.CreateTool(c.Request.Context(), draft)

		var verr *services.ValidationError
		switch {
		case err == nil:
			metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()
			c.JSON(http.StatusCreated, tool)

		case errors.As(err, &verr):
			metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeValidation).Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   string(submit.ReasonValidation),
				"message": verr.Error(),
				"fields":  verr.Fields.ToMap(),
			})

		case errors.Is(err, db.ErrDuplicate):
			metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			c.JSON(http.StatusConflict, gin.H{
				"error":   string(submit.ReasonDuplicate),
				"message": submit.MsgDuplicate,
			})

		default:
			metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}
