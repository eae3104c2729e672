package solana

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/dineshsutihar/Hire3-sub000/internal/config"
	"github.com/dineshsutihar/Hire3-sub000/internal/database"
	"github.com/dineshsutihar/Hire3-sub000/internal/model"
)

const (
	adminWallet = "Adm1nWa11etAddr1111111111111111111111111111"
	buyerWallet = "BuyerWa11etAddr1111111111111111111111111111"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

// fakeRPC serves getTransaction responses for a fixed signature table.
// Unknown signatures produce a null result, matching real RPC behavior.
func fakeRPC(t *testing.T, transfers map[string]int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string        `json:"method"`
			Params []interface{} `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "getTransaction", req.Method)

		sig, _ := req.Params[0].(string)
		amount, known := transfers[sig]
		if !known {
			fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":null}`)
			return
		}

		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      1,
			"result": map[string]interface{}{
				"meta": map[string]interface{}{
					"err":          nil,
					"preBalances":  []int64{5_000_000_000, 1_000_000_000},
					"postBalances": []int64{5_000_000_000 - amount, 1_000_000_000 + amount},
				},
				"transaction": map[string]interface{}{
					"message": map[string]interface{}{
						"accountKeys": []string{buyerWallet, adminWallet},
					},
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func newVerifier(rpcURL string, feeSOL float64) *Verifier {
	cfg := &config.Config{
		JWTSecret:      "test-secret",
		SolanaRPC:      rpcURL,
		AdminWallet:    adminWallet,
		PlatformFeeSOL: feeSOL,
	}
	return NewVerifier(testDB, NewClient(rpcURL), cfg)
}

func TestVerify_missingSignature(t *testing.T) {
	v := newVerifier("http://unused", 0.1)
	_, err := v.VerifyAndRecord(context.Background(), database.TestUserBob, "")
	assert.ErrorIs(t, err, ErrMissingSignature)
}

func TestVerify_recipientNotConfigured(t *testing.T) {
	v := newVerifier("http://unused", 0.1)
	v.Cfg = &config.Config{PlatformFeeSOL: 0.1}
	_, err := v.VerifyAndRecord(context.Background(), database.TestUserBob, "sig-any")
	assert.ErrorIs(t, err, ErrRecipientNotConfigured)
}

func TestVerify_transactionNotFound(t *testing.T) {
	srv := fakeRPC(t, map[string]int64{})
	defer srv.Close()

	v := newVerifier(srv.URL, 0.1)
	_, err := v.VerifyAndRecord(context.Background(), database.TestUserBob, "sig-unknown")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestVerify_thresholds(t *testing.T) {
	required := int64(0.1 * config.LamportsPerSol)
	srv := fakeRPC(t, map[string]int64{
		"sig-exact": required,
		"sig-short": required - 1,
	})
	defer srv.Close()

	v := newVerifier(srv.URL, 0.1)

	payment, err := v.VerifyAndRecord(context.Background(), database.TestUserBob, "sig-exact")
	require.NoError(t, err)
	assert.Equal(t, required, payment.AmountLamports)
	assert.Equal(t, model.PaymentStatusConfirmed, payment.Status)
	assert.Equal(t, buyerWallet, payment.Sender)
	assert.Equal(t, adminWallet, payment.Recipient)

	_, err = v.VerifyAndRecord(context.Background(), database.TestUserBob, "sig-short")
	var insufficient *InsufficientAmountError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, required, insufficient.Required)
	assert.Equal(t, required-1, insufficient.Received)
}

func TestVerify_idempotent(t *testing.T) {
	required := int64(0.1 * config.LamportsPerSol)
	srv := fakeRPC(t, map[string]int64{"sig-idem": required})
	defer srv.Close()

	v := newVerifier(srv.URL, 0.1)

	first, err := v.VerifyAndRecord(context.Background(), database.TestUserBob, "sig-idem")
	require.NoError(t, err)

	second, err := v.VerifyAndRecord(context.Background(), database.TestUserBob, "sig-idem")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, testDB.Model(&model.Payment{}).Where("signature = ?", "sig-idem").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestVerify_walletMismatch(t *testing.T) {
	required := int64(0.1 * config.LamportsPerSol)
	srv := fakeRPC(t, map[string]int64{"sig-wallet": required})
	defer srv.Close()

	v := newVerifier(srv.URL, 0.1)

	// Alice declares a wallet address that differs from the payer key.
	_, err := v.VerifyAndRecord(context.Background(), database.TestUserAlice, "sig-wallet")
	assert.ErrorIs(t, err, ErrWalletMismatch)
}

func TestGate_window(t *testing.T) {
	required := int64(0.1 * config.LamportsPerSol)
	v := newVerifier("http://unused", 0.1)

	recent := model.Payment{
		UserID:         database.TestUserCarol.ID,
		Signature:      "sig-gate-recent",
		AmountLamports: required,
		Status:         model.PaymentStatusConfirmed,
		CreatedAt:      time.Now().Add(-23 * time.Hour),
	}
	require.NoError(t, testDB.Create(&recent).Error)

	ok, err := v.HasQualifyingPayment(database.TestUserCarol.ID, required)
	require.NoError(t, err)
	assert.True(t, ok)

	// Age the payment past the window; it must stop qualifying.
	require.NoError(t, testDB.Model(&model.Payment{}).
		Where("signature = ?", "sig-gate-recent").
		Update("created_at", time.Now().Add(-25*time.Hour)).Error)

	ok, err = v.HasQualifyingPayment(database.TestUserCarol.ID, required)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGate_bypassWhenFeeZero(t *testing.T) {
	v := newVerifier("http://unused", 0)
	ok, err := v.HasQualifyingPayment(database.TestUserBob.ID, v.Cfg.RequiredLamports())
	require.NoError(t, err)
	assert.True(t, ok)
}
