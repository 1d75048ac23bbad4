package gigachat

import (
	"crypto/tls"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the GigaChat client.
type Config struct {
	AuthURL     string        // token exchange endpoint; default is the hosted OAuth gateway
	BaseURL     string        // completion API base; default https://gigachat.devices.sberbank.ru/api/v1
	APIKey      string        // base64 client credentials; if empty, falls back to env GIGACHAT_API_KEY
	Model       string        // e.g., "GigaChat-2-Max"
	Scope       string        // token scope, default GIGACHAT_API_PERS
	Timeout     time.Duration // completion call timeout
	AuthTimeout time.Duration // token exchange timeout
	Insecure    bool          // skip TLS verification; the hosted endpoint uses a chain Go does not trust
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GIGACHAT_API_KEY")
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://gigachat.devices.sberbank.ru/api/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "GigaChat-2-Max"
	}
	if cfg.Scope == "" {
		cfg.Scope = "GIGACHAT_API_PERS"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	transport := http.DefaultTransport
	if cfg.Insecure {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		transport = t
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout, Transport: transport},
		logger: logger,
	}
}
