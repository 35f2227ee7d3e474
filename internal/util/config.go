package util

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvironmentDevelopment = "development"

	PaymentProviderStripe  = "stripe"
	PaymentProviderZalopay = "zalopay"

	EmailProviderResend = "resend"
	EmailProviderSMTP   = "smtp"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Environment       string   `mapstructure:"ENVIRONMENT"`
	HTTPServerAddress string   `mapstructure:"HTTP_SERVER_ADDRESS"`
	AllowedOrigins    []string `mapstructure:"ALLOWED_ORIGINS"`

	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	RedisServerAddress string `mapstructure:"REDIS_SERVER_ADDRESS"`
	TokenSecretKey     string `mapstructure:"TOKEN_SECRET_KEY"`

	PaymentProvider string        `mapstructure:"PAYMENT_PROVIDER"`
	StripeSecretKey string        `mapstructure:"STRIPE_SECRET_KEY"`
	StripeBaseURL   string        `mapstructure:"STRIPE_BASE_URL"`
	ZalopayAppID    string        `mapstructure:"ZALOPAY_APP_ID"`
	ZalopayKey1     string        `mapstructure:"ZALOPAY_KEY1"`
	ZalopayBaseURL  string        `mapstructure:"ZALOPAY_BASE_URL"`
	ProviderTimeout time.Duration `mapstructure:"PROVIDER_TIMEOUT"`

	EmailProvider            string `mapstructure:"EMAIL_PROVIDER"`
	ResendAPIKey             string `mapstructure:"RESEND_API_KEY"`
	ResendBaseURL            string `mapstructure:"RESEND_BASE_URL"`
	EmailFrom                string `mapstructure:"EMAIL_FROM"`
	SMTPHost                 string `mapstructure:"SMTP_HOST"`
	SMTPPort                 int    `mapstructure:"SMTP_PORT"`
	SMTPUsername             string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword             string `mapstructure:"SMTP_PASSWORD"`
	DefaultNotificationTitle string `mapstructure:"DEFAULT_NOTIFICATION_TITLE"`

	EscrowReconcileInterval    time.Duration `mapstructure:"ESCROW_RECONCILE_INTERVAL"`
	EscrowReconcileMinAge      time.Duration `mapstructure:"ESCROW_RECONCILE_MIN_AGE"`
	EscrowNotificationsEnabled bool          `mapstructure:"ESCROW_NOTIFICATIONS_ENABLED"`
	FirebaseCredentialsFile    string        `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

// IsDevelopment reports whether the service runs with developer-friendly logging.
func (config Config) IsDevelopment() bool {
	return config.Environment == EnvironmentDevelopment
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	setDefaults(v)

	// Prefer environment variables over config file
	v.AutomaticEnv()

	v.SetConfigFile(path)
	if err = v.ReadInConfig(); err != nil {
		return
	}

	err = v.UnmarshalExact(&config)
	if err != nil {
		return
	}

	err = validateConfig(config)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", EnvironmentDevelopment)
	v.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("PAYMENT_PROVIDER", PaymentProviderStripe)
	v.SetDefault("STRIPE_BASE_URL", "https://api.stripe.com")
	v.SetDefault("ZALOPAY_BASE_URL", "https://sb-openapi.zalopay.vn")
	v.SetDefault("PROVIDER_TIMEOUT", "10s")
	v.SetDefault("EMAIL_PROVIDER", EmailProviderResend)
	v.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	v.SetDefault("EMAIL_FROM", "Workhub <onboarding@resend.dev>")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("DEFAULT_NOTIFICATION_TITLE", "New notification")
	v.SetDefault("ESCROW_RECONCILE_INTERVAL", "0s")
	v.SetDefault("ESCROW_RECONCILE_MIN_AGE", "5m")
	v.SetDefault("ESCROW_NOTIFICATIONS_ENABLED", false)

	// Keys that may legitimately be empty still need to be known to viper,
	// otherwise AutomaticEnv never picks them up during Unmarshal.
	for _, key := range []string{
		"DATABASE_URL", "REDIS_SERVER_ADDRESS", "TOKEN_SECRET_KEY",
		"STRIPE_SECRET_KEY", "ZALOPAY_APP_ID", "ZALOPAY_KEY1",
		"RESEND_API_KEY", "SMTP_HOST", "SMTP_USERNAME", "SMTP_PASSWORD",
		"FIREBASE_CREDENTIALS_FILE",
	} {
		v.SetDefault(key, "")
	}
}

func validateConfig(config Config) error {
	if config.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if config.RedisServerAddress == "" {
		return fmt.Errorf("REDIS_SERVER_ADDRESS is required")
	}
	if config.TokenSecretKey == "" {
		return fmt.Errorf("TOKEN_SECRET_KEY is required")
	}

	switch config.PaymentProvider {
	case PaymentProviderStripe:
		if config.StripeSecretKey == "" {
			return fmt.Errorf("STRIPE_SECRET_KEY is required when PAYMENT_PROVIDER is %s", PaymentProviderStripe)
		}
	case PaymentProviderZalopay:
		if config.ZalopayAppID == "" || config.ZalopayKey1 == "" {
			return fmt.Errorf("ZALOPAY_APP_ID and ZALOPAY_KEY1 are required when PAYMENT_PROVIDER is %s", PaymentProviderZalopay)
		}
	default:
		return fmt.Errorf("unsupported PAYMENT_PROVIDER %q", config.PaymentProvider)
	}

	// A missing email credential is reported per request, not at startup.
	switch config.EmailProvider {
	case EmailProviderResend, EmailProviderSMTP:
	default:
		return fmt.Errorf("unsupported EMAIL_PROVIDER %q", config.EmailProvider)
	}

	if config.EscrowNotificationsEnabled && config.FirebaseCredentialsFile == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS_FILE is required when ESCROW_NOTIFICATIONS_ENABLED is true")
	}

	return nil
}
