package dashboard

import (
	"fmt"
	"io"
	"net/http"

	"github.com/adamstrass/payroll-dashboard/internal/shared/apperror"
	"github.com/adamstrass/payroll-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxProofSize caps uploaded proof files at 10 MiB.
const maxProofSize = 10 << 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("dashboard.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("dashboard request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindingError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}

func (h *Handler) GetDashboard(c *gin.Context) {
	identity := c.GetString("identity")
	h.logger.Debug("http get dashboard", zap.String("identity", identity))

	resp, err := h.service.GetDashboard(c.Request.Context(), identity)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) AddEmployee(c *gin.Context) {
	identity := c.GetString("identity")

	var req AddEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http add employee validation failed", zap.Error(err))
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.AddEmployee(c.Request.Context(), identity, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) SetSelectedMonth(c *gin.Context) {
	identity := c.GetString("identity")

	var req SetMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.SetSelectedMonth(c.Request.Context(), identity, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) SetPaid(c *gin.Context) {
	identity := c.GetString("identity")
	employeeID := c.Param("id")

	var req SetPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.SetPaid(c.Request.Context(), identity, employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) SetPaymentDate(c *gin.Context) {
	identity := c.GetString("identity")
	employeeID := c.Param("id")

	var req SetPaymentDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.SetPaymentDate(c.Request.Context(), identity, employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) MarkAllPaid(c *gin.Context) {
	identity := c.GetString("identity")

	resp, err := h.service.MarkAllPaid(c.Request.Context(), identity)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) AttachProof(c *gin.Context) {
	identity := c.GetString("identity")
	employeeID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "A proof file is required", nil)
		return
	}
	if fileHeader.Size > maxProofSize {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Proof file exceeds the 10 MB limit", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	upload := ProofUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	}

	resp, err := h.service.AttachProof(c.Request.Context(), identity, employeeID, upload)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) RemoveProof(c *gin.Context) {
	identity := c.GetString("identity")
	employeeID := c.Param("id")
	proofID := c.Param("proofId")

	resp, err := h.service.RemoveProof(c.Request.Context(), identity, employeeID, proofID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) DownloadProof(c *gin.Context) {
	identity := c.GetString("identity")
	proofID := c.Param("proofId")

	dl, err := h.service.DownloadProof(c.Request.Context(), identity, proofID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.FileName))
	c.Data(http.StatusOK, "application/pdf", dl.Content)
}

func (h *Handler) ExportCSV(c *gin.Context) {
	identity := c.GetString("identity")

	out, fileName, err := h.service.ExportCSV(c.Request.Context(), identity)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/csv", out)
}
