package handlers

import (
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"tuwaiq_relay/internal/adapter/http/dto/request"
	"tuwaiq_relay/internal/adapter/http/dto/response"
	"tuwaiq_relay/internal/logger"
	"tuwaiq_relay/internal/usecase"
	"tuwaiq_relay/pkg"
)

const (
	msgEmptyBody           = "Empty or invalid JSON body"
	msgMissingFields       = "Missing required fields"
	msgInvalidAmount       = "Invalid amount (not a positive number)"
	msgInvalidConsultation = "Invalid consultationAt (not a valid ISO timestamp)"
	msgConsultationInPast  = "consultationAt must be a future date/time"
	msgConsultationRestDay = "Selected consultation date falls on Friday or Saturday (not allowed), use Sunday to Thursday"
	msgServerError         = "Server error"
)

// BillHandler serves the create-bill and consultation routes.
type BillHandler struct {
	usecase usecase.IBillUseCase
	log     *logger.Logger
}

func NewBillHandler(uc usecase.IBillUseCase, log *logger.Logger) *BillHandler {
	return &BillHandler{usecase: uc, log: logger.OrNop(log)}
}

// CreateBill godoc
// @Summary      Create a payable bill
// @Description  Authenticates with TuwaiqPay, creates a bill and returns its payment link.
// @Description  When consultationAt is given it must be in the future and not on Friday or Saturday (UTC+3).
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        request  body      request.BillRequest  true  "Bill request"
// @Success      200      {object}  response.BillResponse
// @Failure      400      {object}  map[string]any
// @Failure      500      {object}  map[string]any
// @Router       /api/create-bill [post]
// @Router       /api/consultation [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Warnw("[bill][handler] read body failed", "err", err)
		h.fail(c, pkg.NewDomainErrorSimple("INVALID_BODY", msgEmptyBody, http.StatusBadRequest))
		return
	}

	dto, err := request.ParseBillRequest(raw)
	if err != nil {
		h.log.Infow("[bill][handler] empty or invalid body", "body_len", len(raw))
		h.fail(c, pkg.NewDomainErrorSimple("INVALID_BODY", msgEmptyBody, http.StatusBadRequest))
		return
	}

	req, err := dto.ToEntity()
	if err != nil {
		h.fail(c, pkg.NewDomainErrorSimple("INVALID_AMOUNT", msgInvalidAmount, http.StatusBadRequest))
		return
	}

	created, err := h.usecase.CreateBill(c.Request.Context(), req)
	if err != nil {
		appErr := mapBillError(err)
		h.log.Infow("[bill][handler] create failed", "code", appErr.Code, "err", err)
		h.fail(c, appErr)
		return
	}
	h.log.Infow("[bill][handler] create success", "bill_id", created.Bill.BillID, "ledger_write_failed", created.LedgerWrite.Failed())

	c.JSON(http.StatusOK, response.FromBillOutcome(created.BillOutcome))
}

func (h *BillHandler) fail(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapBillError(err error) *pkg.AppError {
	if upErr, ok := pkg.AsUpstreamError(err); ok {
		code := "UPSTREAM_BILL_FAILED"
		if errors.Is(upErr.Kind, pkg.ErrUpstreamAuth) {
			code = "UPSTREAM_AUTH_FAILED"
		}
		return pkg.NewDomainError(code, upErr.Message, err, http.StatusInternalServerError).With("response", upErr.Response)
	}

	switch {
	case errors.Is(err, usecase.ErrMissingRequiredFields):
		return pkg.NewDomainErrorSimple("MISSING_REQUIRED_FIELDS", msgMissingFields, http.StatusBadRequest).
			With("required", usecase.RequiredBillFields)
	case errors.Is(err, usecase.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_AMOUNT", msgInvalidAmount, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidConsultationAt):
		return pkg.NewDomainErrorSimple("INVALID_CONSULTATION_AT", msgInvalidConsultation, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrConsultationInPast):
		return pkg.NewDomainErrorSimple("CONSULTATION_IN_PAST", msgConsultationInPast, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrConsultationRestDay):
		return pkg.NewDomainErrorSimple("CONSULTATION_REST_DAY", msgConsultationRestDay, http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", msgServerError, err, http.StatusInternalServerError).With("details", err.Error())
	}
}
