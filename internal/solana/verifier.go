package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dineshsutihar/Hire3-sub000/internal/config"
	"github.com/dineshsutihar/Hire3-sub000/internal/database"
	"github.com/dineshsutihar/Hire3-sub000/internal/model"
)

// Verification failure modes. Handlers translate these to HTTP statuses.
var (
	ErrMissingSignature       = errors.New("transaction signature is required")
	ErrRecipientNotConfigured = errors.New("platform wallet address is not configured")
	ErrTransactionNotFound    = errors.New("transaction not found or not finalized")
	ErrWalletMismatch         = errors.New("transaction sender does not match your wallet address")
)

// InsufficientAmountError reports a transfer below the required fee.
type InsufficientAmountError struct {
	Required int64
	Received int64
}

func (e *InsufficientAmountError) Error() string {
	return fmt.Sprintf("insufficient payment: required %d lamports, received %d", e.Required, e.Received)
}

// PaymentWindow is how long a confirmed payment authorizes job posting.
const PaymentWindow = 24 * time.Hour

// Verifier turns a signed on-chain transfer into a recorded Payment.
type Verifier struct {
	DB     *database.DBinstanceStruct
	Client *Client
	Cfg    *config.Config
}

// NewVerifier creates a Verifier backed by the given DB, RPC client and config.
func NewVerifier(db *database.DBinstanceStruct, client *Client, cfg *config.Config) *Verifier {
	return &Verifier{
		DB:     db,
		Client: client,
		Cfg:    cfg,
	}
}

// VerifyAndRecord checks the transaction behind signature and records a
// confirmed Payment exactly once. Resubmitting a known signature returns the
// stored payment without touching the chain, so a caller whose first attempt
// failed transiently can safely retry.
//
// The payer is taken from the first account key of the transaction. When the
// caller's profile declares a wallet address, it must match the payer; this is
// a deliberate strengthening over trusting the positional key alone.
func (v *Verifier) VerifyAndRecord(ctx context.Context, user model.User, signature string) (*model.Payment, error) {
	if signature == "" {
		return nil, ErrMissingSignature
	}
	if v.Cfg.AdminWallet == "" {
		return nil, ErrRecipientNotConfigured
	}

	// Idempotency: the signature is the natural key.
	var existing model.Payment
	err := v.DB.Where("signature = ?", signature).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup payment: %w", err)
	}

	tx, err := v.Client.GetTransaction(ctx, signature)
	if err != nil {
		return nil, err
	}
	if tx == nil || tx.Meta == nil || tx.Meta.Err != nil {
		return nil, ErrTransactionNotFound
	}

	received := recipientDelta(tx, v.Cfg.AdminWallet)
	required := v.Cfg.RequiredLamports()
	if received < required {
		return nil, &InsufficientAmountError{Required: required, Received: received}
	}

	sender := ""
	if len(tx.Transaction.Message.AccountKeys) > 0 {
		sender = tx.Transaction.Message.AccountKeys[0]
	}
	if user.WalletAddress != "" && sender != user.WalletAddress {
		return nil, ErrWalletMismatch
	}

	payment := model.Payment{
		UserID:         user.ID,
		Signature:      signature,
		AmountLamports: received,
		Sender:         sender,
		Recipient:      v.Cfg.AdminWallet,
		Status:         model.PaymentStatusConfirmed,
	}

	if err := v.DB.Create(&payment).Error; err != nil {
		// A concurrent request may have recorded the same signature first;
		// the unique index makes the row authoritative either way.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var winner model.Payment
			if lookupErr := v.DB.Where("signature = ?", signature).First(&winner).Error; lookupErr == nil {
				return &winner, nil
			}
		}
		return nil, fmt.Errorf("record payment: %w", err)
	}

	return &payment, nil
}

// HasQualifyingPayment reports whether the user holds a confirmed payment of
// at least required lamports created within the trailing 24-hour window.
// A single qualifying payment authorizes unlimited postings for the window.
func (v *Verifier) HasQualifyingPayment(userID uuid.UUID, required int64) (bool, error) {
	if required <= 0 {
		return true, nil
	}

	var payment model.Payment
	err := v.DB.
		Where("user_id = ? AND status = ? AND amount_lamports >= ? AND created_at > ?",
			userID, model.PaymentStatusConfirmed, required, time.Now().Add(-PaymentWindow)).
		Order("created_at DESC").
		First(&payment).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func recipientDelta(tx *TransactionResult, recipient string) int64 {
	for i, key := range tx.Transaction.Message.AccountKeys {
		if key != recipient {
			continue
		}
		if i < len(tx.Meta.PreBalances) && i < len(tx.Meta.PostBalances) {
			return tx.Meta.PostBalances[i] - tx.Meta.PreBalances[i]
		}
	}
	return 0
}
