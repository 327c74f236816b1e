package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Scalingo/sclng-yearly-stats/config"
	"github.com/Scalingo/sclng-yearly-stats/middleware"
	"github.com/Scalingo/sclng-yearly-stats/model"
	"github.com/Scalingo/sclng-yearly-stats/render"
	"github.com/Scalingo/sclng-yearly-stats/service"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type APIController interface {
	GetStats(ctx *gin.Context)
	GetStatsBatch(ctx *gin.Context)
	GetCard(ctx *gin.Context)
	Health(ctx *gin.Context)
}

type apiController struct {
	statsService service.StatsService
	config       config.Config
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func NewAPIController(config config.Config, service service.StatsService) APIController {
	return apiController{
		statsService: service,
		config:       config,
	}
}

// GetStats handles POST /api/stats with a body like {"username": "octocat"}
func (s apiController) GetStats(c *gin.Context) {
	var request model.StatsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		s.abortWithError(c, model.NewStatsError(model.ErrorKindInvalidInput, "Invalid JSON body", err))
		return
	}

	username := strings.TrimSpace(request.Username)
	if username == "" {
		s.abortWithError(c, model.NewStatsError(model.ErrorKindInvalidInput, "Username is required", nil))
		return
	}

	record, err := s.statsService.FetchStats(c.Request.Context(), username)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.StatsResponse{Data: record})
}

// GetStatsBatch handles POST /api/stats/batch with a body like {"usernames": ["octocat", "torvalds"]}
// failures of single usernames are reported next to the successful records
func (s apiController) GetStatsBatch(c *gin.Context) {
	var request model.BatchStatsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		s.abortWithError(c, model.NewStatsError(model.ErrorKindInvalidInput, "Invalid JSON body", err))
		return
	}

	results, err := s.statsService.FetchStatsBatch(c.Request.Context(), request.Usernames)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	response := model.BatchStatsResponse{
		Data:   make([]model.StatsRecord, 0, len(results)),
		Errors: make([]model.BatchStatsError, 0),
	}

	for _, result := range results {
		if result.Err != nil {
			_, apiErr := model.NewAPIError(result.Err)
			response.Errors = append(response.Errors, model.BatchStatsError{
				Username: result.Username,
				Code:     apiErr.Code,
				Error:    apiErr.Error,
			})
			continue
		}

		response.Data = append(response.Data, result.Record)
	}

	c.JSON(http.StatusOK, response)
}

// GetCard handles GET /api/card/:username and answer the stats card as an SVG image
// with ?download=true the browser is asked to save the image
func (s apiController) GetCard(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		s.abortWithError(c, model.NewStatsError(model.ErrorKindInvalidInput, "Username is required", nil))
		return
	}

	record, err := s.statsService.FetchStats(c.Request.Context(), username)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	svg, err := render.RenderCard(record)
	if err != nil {
		log.WithError(err).WithField("username", username).Error("unable to render stats card")
		s.abortWithError(c, err)
		return
	}

	if download, _ := strconv.ParseBool(c.Query("download")); download {
		c.Header("Content-Disposition", `attachment; filename="`+render.CardFilename(record)+`"`)
	}

	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", svg)
}

// Health handles GET /health
func (s apiController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: "Service is running",
	})
}

func (s apiController) abortWithError(c *gin.Context, err error) {
	status, apiErr := model.NewAPIError(err)

	log.WithFields(log.Fields{
		"requestId": middleware.GetRequestID(c),
		"code":      apiErr.Code,
		"status":    status,
	}).Debug("request answered with an error")

	c.AbortWithStatusJSON(status, apiErr)
}
