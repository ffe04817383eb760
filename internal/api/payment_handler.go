package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matchday-backend-go/internal/core"
	"matchday-backend-go/internal/models"
	"matchday-backend-go/internal/storage"
)

// maxProofUploadBytes caps payment proof uploads at 10 MiB.
const maxProofUploadBytes = 10 << 20

// PaymentHandler serves the payment request lifecycle endpoints.
type PaymentHandler struct {
	paymentService core.PaymentService
	uploader       storage.ProofUploader
	logger         *zap.Logger
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(paymentService core.PaymentService, uploader storage.ProofUploader, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, uploader: uploader, logger: logger}
}

// Initiate handles POST /payments/initiate. Manager only.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req models.InitiatePaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	summary, requests, err := h.paymentService.Initiate(c.Request.Context(), callerIdentity(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, PaymentInitiateResponse{Summary: summary, Requests: requests})
}

// Submit handles POST /payments/:id/submit. The target user marks their own
// request paid.
func (h *PaymentHandler) Submit(c *gin.Context) {
	var req models.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	request, err := h.paymentService.Submit(c.Request.Context(), callerIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// Verify handles POST /payments/:id/verify. Manager only.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}

	request, err := h.paymentService.Verify(c.Request.Context(), callerIdentity(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// My handles GET /payments/my.
func (h *PaymentHandler) My(c *gin.Context) {
	requests, totals, err := h.paymentService.MyRequests(c.Request.Context(), callerIdentity(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MyPaymentsResponse{Requests: requests, Totals: totals})
}

// MatchPayments handles GET /matches/:id/payments. Manager only.
func (h *PaymentHandler) MatchPayments(c *gin.Context) {
	requests, summary, err := h.paymentService.MatchPayments(c.Request.Context(), callerIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MatchPaymentsResponse{Summary: summary, Requests: requests})
}

// UploadProof handles POST /payments/:id/proof. The multipart file is written
// to the storage bucket and the resulting signed URL is stored on the
// caller's pending request. Preconditions are checked up front so a rejected
// request never writes an orphan object to the bucket.
func (h *PaymentHandler) UploadProof(c *gin.Context) {
	if err := h.paymentService.ValidateProofUpload(c.Request.Context(), callerIdentity(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxProofUploadBytes)

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A multipart 'proof' file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.logger.Error("proof upload failed", zap.String("filename", fileHeader.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}

	request, err := h.paymentService.AttachProof(c.Request.Context(), callerIdentity(c), c.Param("id"), url)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
