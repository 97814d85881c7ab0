package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statementHandler serves the derived statement, export and chart views.
type statementHandler struct {
	statementService portssvc.StatementService
}

func newStatementHandler(ss portssvc.StatementService) *statementHandler {
	return &statementHandler{statementService: ss}
}

// RegisterStatementRoutes registers the statement and chart routes.
func RegisterStatementRoutes(rg *gin.RouterGroup, ss portssvc.StatementService) {
	h := newStatementHandler(ss)

	statement := rg.Group("/statement")
	{
		statement.GET("/", h.getStatement)
		statement.GET("/pdf", h.exportStatement)
	}

	rg.GET("/charts/", h.getCharts)
}

// getStatement godoc
// @Summary Bank statement
// @Description Filtered ledger with running balance, one page at a time, plus totals over the filtered set
// @Tags statement
// @Produce json
// @Param month query string false "Calendar month, YYYY-MM. Wins over the date range"
// @Param startDate query string false "Range start, YYYY-MM-DD"
// @Param endDate query string false "Range end, YYYY-MM-DD"
// @Param description query string false "Case-insensitive description substring"
// @Param page query int false "Page number" default(1)
// @Param initialBalance query string false "Balance the running balance starts from" default(0)
// @Success 200 {object} domain.Statement
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Failed to build statement"
// @Router /statement/ [get]
func (h *statementHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.StatementQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, "query parameters", err)
		return
	}
	view, err := params.ToViewState()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build statement")
		return
	}

	statement, err := h.statementService.GetStatement(c.Request.Context(), view)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build statement")
		return
	}
	c.JSON(http.StatusOK, statement)
}

// exportStatement godoc
// @Summary Export statement
// @Description Current statement page as a PDF attachment, with totals over the filtered set
// @Tags statement
// @Produce application/pdf
// @Param month query string false "Calendar month, YYYY-MM. Wins over the date range"
// @Param startDate query string false "Range start, YYYY-MM-DD"
// @Param endDate query string false "Range end, YYYY-MM-DD"
// @Param description query string false "Case-insensitive description substring"
// @Param page query int false "Page number" default(1)
// @Param initialBalance query string false "Balance the running balance starts from" default(0)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Failed to export statement"
// @Router /statement/pdf [get]
func (h *statementHandler) exportStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.StatementQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, "query parameters", err)
		return
	}
	view, err := params.ToViewState()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export statement")
		return
	}

	data, fileName, contentType, err := h.statementService.ExportStatement(c.Request.Context(), view)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export statement")
		return
	}

	logger.Info("Statement exported", slog.String("file_name", fileName), slog.Int("bytes", len(data)))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, contentType, data)
}

// getCharts godoc
// @Summary Chart data
// @Description Credit vs debit totals and frequent descriptions for the filtered set
// @Tags statement
// @Produce json
// @Param month query string false "Calendar month, YYYY-MM. Wins over the date range"
// @Param startDate query string false "Range start, YYYY-MM-DD"
// @Param endDate query string false "Range end, YYYY-MM-DD"
// @Param description query string false "Case-insensitive description substring"
// @Success 200 {object} domain.ChartData
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Failed to build chart data"
// @Router /charts/ [get]
func (h *statementHandler) getCharts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.FilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, "query parameters", err)
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build chart data")
		return
	}

	charts, err := h.statementService.GetChartData(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build chart data")
		return
	}
	c.JSON(http.StatusOK, charts)
}
