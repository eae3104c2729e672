// Package payment provides HTTP handlers for payment verification and listing.
package payment

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dineshsutihar/Hire3-sub000/internal/config"
	"github.com/dineshsutihar/Hire3-sub000/internal/database"
	"github.com/dineshsutihar/Hire3-sub000/internal/model"
	"github.com/dineshsutihar/Hire3-sub000/internal/solana"
	"github.com/dineshsutihar/Hire3-sub000/internal/utilities"
)

// myPaymentsCap bounds the my-payments listing.
const myPaymentsCap = 100

// PaymentController handles payment related endpoints
type PaymentController struct {
	DB       *database.DBinstanceStruct
	Verifier *solana.Verifier
	Cfg      *config.Config
}

// NewPaymentController creates a new instance of PaymentController
func NewPaymentController(db *database.DBinstanceStruct, verifier *solana.Verifier, cfg *config.Config) *PaymentController {
	return &PaymentController{
		DB:       db,
		Verifier: verifier,
		Cfg:      cfg,
	}
}

type verifyRequest struct {
	Signature string `json:"signature"`
}

// VerifyPayment verifies a transaction signature on chain and records the payment.
// @Summary Verify a posting-fee transfer by transaction signature
// @Description Idempotent by signature: resubmitting a verified signature returns the stored payment.
// @Tags Payment
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body verifyRequest true "Transaction signature"
// @Success 200 {object} model.Payment
// @Failure 400 {object} utilities.ErrorResponse "Missing signature or wallet mismatch"
// @Failure 402 {object} utilities.ErrorResponse "Transfer below the required amount"
// @Failure 404 {object} utilities.ErrorResponse "Transaction not found or not finalized"
// @Failure 500 {object} utilities.ErrorResponse "Server misconfigured or database error"
// @Router /payments/verify [post]
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req verifyRequest
	// Binding errors fall through to the missing-signature check.
	_ = c.ShouldBindJSON(&req)

	payment, err := pc.Verifier.VerifyAndRecord(c.Request.Context(), user, req.Signature)
	if err != nil {
		var insufficient *solana.InsufficientAmountError
		switch {
		case errors.Is(err, solana.ErrMissingSignature), errors.Is(err, solana.ErrWalletMismatch):
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		case errors.Is(err, solana.ErrRecipientNotConfigured):
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		case errors.Is(err, solana.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: err.Error()})
		case errors.As(err, &insufficient):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":            err.Error(),
				"requiredLamports": insufficient.Required,
				"receivedLamports": insufficient.Received,
			})
		default:
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to verify payment: %s", err.Error()),
			})
		}
		return
	}

	c.JSON(http.StatusOK, payment)
}

// RequiredPayment reports the configured posting fee and payment endpoints.
// @Summary Get the required posting fee in lamports
// @Tags Payment
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /payments/required [get]
func (pc *PaymentController) RequiredPayment(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"requiredLamports": pc.Cfg.RequiredLamports(),
		"admin":            pc.Cfg.AdminWallet,
		"rpc":              pc.Cfg.SolanaRPC,
	})
}

// MyPayments lists the caller's payments, newest first, capped at 100.
// @Summary List the caller's recorded payments
// @Tags Payment
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Payment
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /my-payments [get]
func (pc *PaymentController) MyPayments(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	payments := []model.Payment{}
	if err := pc.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(myPaymentsCap).
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch payments: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, payments)
}
