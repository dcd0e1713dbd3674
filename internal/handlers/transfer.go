package handlers

import (
	"encoding/json"

	apperrors "moneytransfer/internal/errors"
	"moneytransfer/internal/models"
	"moneytransfer/internal/services/transfer"
	"moneytransfer/internal/utils/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// transferRequest is the body of POST /transfer-money. Amount is a decimal
// string; a bare JSON number is accepted too.
type transferRequest struct {
	SourceAccount      string      `json:"sourceAccount" validate:"required"`
	DestinationAccount string      `json:"destinationAccount" validate:"required"`
	Amount             json.Number `json:"amount" validate:"required"`
	Currency           string      `json:"currency" validate:"required"`
}

// TransferHandler exposes the money transfer endpoint.
type TransferHandler struct {
	service  transfer.Service
	validate *validator.Validate
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s transfer.Service) *TransferHandler {
	return &TransferHandler{
		service:  s,
		validate: validator.New(),
	}
}

// Transfer handles POST /transfer-money requests.
// Success is an empty 200; failures carry {"errorCode"}.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		return response.BadRequest(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return response.BadRequest(c)
	}

	amount, err := models.ParseAmount(req.Amount.String())
	if err != nil {
		return response.BadRequest(c)
	}

	err = h.service.Transfer(c.UserContext(), transfer.Request{
		SourceAccount:      req.SourceAccount,
		DestinationAccount: req.DestinationAccount,
		Amount:             amount,
		Currency:           req.Currency,
	})
	if err != nil {
		return response.Fail(c, apperrors.Classify(err))
	}

	return c.SendStatus(fiber.StatusOK)
}
