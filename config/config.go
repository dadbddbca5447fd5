package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// WalletCredentials is the per-currency endpoint/secret bundle for the wallet
// service. It is resolved once per request and passed down explicitly;
// nothing in the call path mutates it.
type WalletCredentials struct {
	BaseURL   string
	AgentCode string
	SecretKey string
	Currency  string
}

type WalletConfig struct {
	baseURL          string
	defaultAgentCode string
	defaultSecretKey string
	Timeout          time.Duration
	byCurrency       map[string]WalletCredentials
}

// Providers carries the shared secrets and id prefixes of each integrated
// provider family.
type Providers struct {
	PragmaticProviderID string
	PragmaticSecret     string
	SboCompanyKey       string
	GoldAPIAgentCode    string
	GoldAPIAgentSecret  string
	OperatorAPIKey      string

	// Prefix a provider encodes into its usernames, e.g. PCAUCN_<playid>.
	Prefixes map[string]string
}

type Config struct {
	Wallet    WalletConfig
	Providers Providers
}

func Load() *Config {
	timeout := 10 * time.Second
	if raw := os.Getenv("WALLET_TIMEOUT_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}

	cfg := &Config{
		Wallet: WalletConfig{
			baseURL:          os.Getenv("WALLET_BASE_URL"),
			defaultAgentCode: os.Getenv("WALLET_AGENT_CODE"),
			defaultSecretKey: os.Getenv("WALLET_SECRET_KEY"),
			Timeout:          timeout,
			byCurrency:       map[string]WalletCredentials{},
		},
		Providers: Providers{
			PragmaticProviderID: envOr("PRAGMATIC_PROVIDER_ID", "pragmaticplay"),
			PragmaticSecret:     os.Getenv("PRAGMATIC_SECRET"),
			SboCompanyKey:       os.Getenv("SBO_COMPANY_KEY"),
			GoldAPIAgentCode:    os.Getenv("GOLD_API_AGENT_CODE"),
			GoldAPIAgentSecret:  os.Getenv("GOLD_API_AGENT_SECRET"),
			OperatorAPIKey:      os.Getenv("OPERATOR_API_KEY"),
			Prefixes: map[string]string{
				"pragmatic": os.Getenv("PRAGMATIC_PLAYER_PREFIX"),
				"sbo":       os.Getenv("SBO_PLAYER_PREFIX"),
				"gold_api":  os.Getenv("GOLD_API_PLAYER_PREFIX"),
			},
		},
	}

	for _, ccy := range strings.Split(os.Getenv("WALLET_CURRENCIES"), ",") {
		ccy = strings.ToUpper(strings.TrimSpace(ccy))
		if ccy == "" {
			continue
		}
		cfg.Wallet.byCurrency[ccy] = WalletCredentials{
			BaseURL:   envOr("WALLET_BASE_URL_"+ccy, cfg.Wallet.baseURL),
			AgentCode: envOr("WALLET_AGENT_CODE_"+ccy, cfg.Wallet.defaultAgentCode),
			SecretKey: envOr("WALLET_SECRET_KEY_"+ccy, cfg.Wallet.defaultSecretKey),
			Currency:  ccy,
		}
	}

	return cfg
}

// StaticWallet builds a wallet config with a single fixed credentials bundle.
// Used by embedding callers and tests that bypass the environment.
func StaticWallet(creds WalletCredentials) WalletConfig {
	return WalletConfig{
		baseURL: creds.BaseURL,
		Timeout: 10 * time.Second,
		byCurrency: map[string]WalletCredentials{
			strings.ToUpper(creds.Currency): creds,
		},
	}
}

// Credentials resolves the wallet bundle for a currency. Unknown currencies
// fall back to the default bundle when one is configured. Everything is
// captured at Load time; the environment is never consulted per request.
func (w WalletConfig) Credentials(currency string) (WalletCredentials, error) {
	currency = strings.ToUpper(currency)
	if creds, ok := w.byCurrency[currency]; ok {
		return creds, nil
	}
	if w.baseURL != "" {
		return WalletCredentials{
			BaseURL:   w.baseURL,
			AgentCode: w.defaultAgentCode,
			SecretKey: w.defaultSecretKey,
			Currency:  currency,
		}, nil
	}
	return WalletCredentials{}, fmt.Errorf("no wallet credentials for currency %s", currency)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
