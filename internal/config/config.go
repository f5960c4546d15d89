package config

import (
	"os"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion   string
	SNSTopicARN string // empty disables the ops notifier

	// TokenSecret salts verification-token derivation.
	TokenSecret string
	// AdminFallbackToken authorizes admin calls only when the admin-token
	// table itself is unreachable. Empty disables the fallback.
	AdminFallbackToken string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	VerificationCodes  string
	VerificationTokens string
	Submissions        string
	AdminTokens        string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			VerificationCodes:  getEnv("DYNAMO_TABLE_VERIFICATION_CODES", "email_verification_codes"),
			VerificationTokens: getEnv("DYNAMO_TABLE_VERIFICATION_TOKENS", "email_verification_tokens"),
			Submissions:        getEnv("DYNAMO_TABLE_SUBMISSIONS", "waitlist_submissions"),
			AdminTokens:        getEnv("DYNAMO_TABLE_ADMIN_TOKENS", "admin_tokens"),
		},

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "Waza Team <noreply@waza.dev>"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion:   getEnv("SNS_REGION", "us-east-1"),
		SNSTopicARN: getEnv("SNS_TOPIC_ARN", ""),

		TokenSecret:        getEnv("VERIFICATION_TOKEN_SECRET", "dev-only-secret"),
		AdminFallbackToken: getEnv("ADMIN_FALLBACK_TOKEN", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
