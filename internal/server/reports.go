package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/smallbiznis/eventdesk/internal/report/domain"
	"go.uber.org/zap"
)

const generateTimeout = 2 * time.Minute

type reportListItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (s *Server) ListReports(c *gin.Context) {
	names := reportdomain.Reports()
	items := make([]reportListItem, 0, len(names))
	for _, name := range names {
		items = append(items, reportListItem{
			Name: string(name),
			Path: "/api/reports/" + string(name),
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) GetDashboard(c *gin.Context) {
	opts, err := reportOptions(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.reports.GetDashboard(c.Request.Context(), userIDFromRequest(c), opts)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	setSnapshotCache(c, result)
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) GetReport(c *gin.Context) {
	name, err := reportdomain.ParseName(c.Param("name"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	opts, err := reportOptions(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.reports.GetReport(c.Request.Context(), userIDFromRequest(c), name, opts)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	setSnapshotCache(c, result)
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GenerateReports accepts the request and renders in the background. The
// run outlives the request but not the process.
func (s *Server) GenerateReports(c *gin.Context) {
	opts, err := reportOptions(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	userID := userIDFromRequest(c)
	ctx := context.WithoutCancel(c.Request.Context())

	s.jobs.Add(1)
	go func() {
		defer s.jobs.Done()
		ctx, cancel := context.WithTimeout(ctx, generateTimeout)
		defer cancel()

		if err := s.reports.GenerateAllReports(ctx, userID, opts); err != nil {
			s.log.Warn("background report generation failed",
				zap.String("user_id", userID),
				zap.Bool("force_refresh", opts.ForceRefresh),
				zap.Error(err),
			)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"data": gin.H{
		"status":        "accepted",
		"force_refresh": opts.ForceRefresh,
	}})
}

func setSnapshotCache(c *gin.Context, result reportdomain.ReportResult) {
	if result.Cached {
		c.Set("snapshot_cache", "hit")
		return
	}
	c.Set("snapshot_cache", "miss")
}
