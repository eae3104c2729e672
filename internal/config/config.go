// Package config builds the immutable runtime configuration for the service.
// Every component receives a *Config at construction time instead of reading
// process environment at call sites.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// LamportsPerSol is the number of lamports in one SOL.
const LamportsPerSol = 1_000_000_000

// Config holds every runtime setting the service needs. It is constructed
// once in Load and never mutated afterwards.
type Config struct {
	Port         int
	AllowOrigins []string

	// JWTSecret signs and verifies access tokens.
	JWTSecret string

	// SolanaRPC is the chain RPC endpoint used for transaction lookups.
	SolanaRPC string
	// AdminWallet is the platform's recipient address for posting fees.
	AdminWallet string
	// PlatformFeeSOL is the posting fee in SOL. Zero disables the payment gate.
	PlatformFeeSOL float64

	// OpenAIKey is optional. When empty, resume enrichment is a no-op.
	OpenAIKey   string
	OpenAIModel string

	// AIRateLimit caps AI-backed requests per caller per 15-minute window.
	AIRateLimit uint
}

// Load reads configuration from the environment and validates required values.
func Load() (*Config, error) {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	fee := 0.0
	if feeStr := os.Getenv("PLATFORM_FEE_SOL"); feeStr != "" {
		parsed, err := strconv.ParseFloat(feeStr, 64)
		if err != nil {
			return nil, fmt.Errorf("PLATFORM_FEE_SOL is invalid: %w", err)
		}
		fee = parsed
	}

	rpc := os.Getenv("SOLANA_RPC_URL")
	if rpc == "" {
		rpc = "https://api.devnet.solana.com"
	}

	aiLimit := uint(10)
	if limitStr := os.Getenv("AI_RATE_LIMIT"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err == nil && parsed > 0 {
			aiLimit = uint(parsed)
		}
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	var origins []string
	if allowOriginsStr := os.Getenv("ALLOW_ORIGIN"); allowOriginsStr != "" {
		origins = strings.Split(allowOriginsStr, ",")
	} else {
		origins = []string{"http://localhost:5173"}
	}

	return &Config{
		Port:           port,
		AllowOrigins:   origins,
		JWTSecret:      secret,
		SolanaRPC:      rpc,
		AdminWallet:    os.Getenv("ADMIN_WALLET_ADDRESS"),
		PlatformFeeSOL: fee,
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    model,
		AIRateLimit:    aiLimit,
	}, nil
}

// RequiredLamports is the posting fee converted to lamports.
func (c *Config) RequiredLamports() int64 {
	// Rounded: SOL fees are decimal and a bare cast truncates (0.29 SOL
	// would come out one lamport short).
	return int64(math.Round(c.PlatformFeeSOL * LamportsPerSol))
}
