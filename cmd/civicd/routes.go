package main

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"civicpulse-backend/lib/civic"
	"civicpulse-backend/lib/serviceutil"
	"civicpulse-backend/services/civicdata"
)

func NewRouter(service civicdata.Service, accessToken string) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := router.Group("/api/v1")
	api.Use(serviceutil.VerifyAccessToken(accessToken))
	{
		api.GET("/snapshots", func(c *gin.Context) {
			metas, err := service.Snapshots(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"snapshots": metas})
		})

		api.GET("/snapshots/:domain", func(c *gin.Context) {
			domain, err := civic.ParseDomain(c.Param("domain"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			snapshot, err := service.Snapshot(c.Request.Context(), domain)
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "domain has not been refreshed yet",
				})
				return
			}
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, snapshot)
		})

		api.GET("/runs", func(c *gin.Context) {
			limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
				return
			}

			runs, err := service.RecentRuns(c.Request.Context(), limit)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"runs": runs})
		})

		api.POST("/refresh", func(c *gin.Context) {
			runs, err := service.RefreshAll(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": err.Error(),
					"runs":  runs,
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{"runs": runs})
		})

		api.POST("/refresh/:domain", func(c *gin.Context) {
			domain, err := civic.ParseDomain(c.Param("domain"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			run, err := service.RefreshDomain(c.Request.Context(), domain)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"run": run})
		})
	}

	return router
}
