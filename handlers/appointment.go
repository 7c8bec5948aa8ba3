package handlers

import (
	"errors"
	"net/http"

	"medibook/models"
	"medibook/services/appointment"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves the appointment lifecycle endpoints.
type AppointmentHandler struct {
	Service appointment.AppointmentService
}

// NewAppointmentHandler creates an AppointmentHandler backed by the given service.
func NewAppointmentHandler(svc appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

// failAppointment maps lifecycle-engine errors onto the stable failure shape.
// Infrastructure faults are logged in full and surfaced only as a generic
// message.
func failAppointment(c *gin.Context, logger *zap.Logger, err error) {
	var (
		vErr    *appointment.ValidationError
		nfErr   *appointment.NotFoundError
		limErr  *appointment.LimitExceededError
		paidErr *appointment.AlreadyPaidError
		stErr   *appointment.InvalidStateError
	)
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, vErr.Message)
	case errors.As(err, &nfErr):
		utils.JSONError(c, http.StatusNotFound, nfErr.Message)
	case errors.As(err, &limErr):
		utils.JSONError(c, http.StatusBadRequest, limErr.Message)
	case errors.As(err, &paidErr):
		utils.JSONError(c, http.StatusBadRequest, paidErr.Message)
	case errors.As(err, &stErr):
		utils.JSONError(c, http.StatusBadRequest, stErr.Message)
	default:
		logger.Error("appointment operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

// BookHandler books an appointment for the authenticated user.
func (h *AppointmentHandler) BookHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := callerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized. Please log in.")
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	appt, err := h.Service.Book(c.Request.Context(), userID, req)
	if err != nil {
		failAppointment(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Appointment booked successfully. Please proceed with payment.",
		"appointment": appt,
	})
}

// InitiatePaymentHandler generates a payment link for an existing appointment.
func (h *AppointmentHandler) InitiatePaymentHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		AppointmentID string `json:"appointmentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.AppointmentID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Appointment ID is required.")
		return
	}

	link, appt, err := h.Service.InitiatePayment(c.Request.Context(), req.AppointmentID)
	if err != nil {
		failAppointment(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Payment link generated successfully.",
		"paymentLink": link,
		"appointment": appt,
	})
}

// ConfirmHandler confirms an appointment after (simulated) payment.
func (h *AppointmentHandler) ConfirmHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		AppointmentID string `json:"appointmentId"`
		PaymentID     string `json:"paymentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.AppointmentID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Appointment ID is required.")
		return
	}

	appt, err := h.Service.Confirm(c.Request.Context(), req.AppointmentID, req.PaymentID)
	if err != nil {
		failAppointment(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Appointment confirmed successfully.",
		"appointment": appt,
	})
}

// ListHandler returns the authenticated user's appointments, date ascending.
func (h *AppointmentHandler) ListHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := callerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized. Please log in.")
		return
	}

	appts, err := h.Service.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		failAppointment(c, logger, err)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": appts})
}

// CancelHandler cancels an appointment whose payment is still pending.
func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	logger := getLogger(c)

	appointmentID := c.Param("appointmentId")
	if appointmentID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Appointment ID is required.")
		return
	}

	if err := h.Service.Cancel(c.Request.Context(), appointmentID); err != nil {
		failAppointment(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment cancelled successfully."})
}

// FeedbackHandler stores feedback for a completed appointment.
func (h *AppointmentHandler) FeedbackHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		AppointmentID string `json:"appointmentId"`
		Feedback      string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.AppointmentID == "" || req.Feedback == "" {
		utils.JSONError(c, http.StatusBadRequest, "Appointment ID and feedback are required.")
		return
	}

	appt, err := h.Service.SubmitFeedback(c.Request.Context(), req.AppointmentID, req.Feedback)
	if err != nil {
		failAppointment(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Feedback submitted successfully.",
		"appointment": appt,
	})
}
