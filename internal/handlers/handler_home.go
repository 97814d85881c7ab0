package handlers

import (
	"net/http"

	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Expense Tracker API is running"})
}

// getHealth godoc
// @Summary Liveness check
// @Tags root
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func getHealth(ctx *gin.Context) {
	ctx.String(http.StatusOK, "OK")
}
