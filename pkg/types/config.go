package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Directory holding the JSON record collections
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	// Base URL used when building password reset links
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`

	// Object storage for aid request images
	S3Bucket string `envconfig:"S3_BUCKET"`

	// SMTP delivery for password reset mail
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	MailFrom     string `envconfig:"MAIL_FROM"`

	// Administrator bootstrap credential, configured rather than embedded
	AdminUsername string `envconfig:"ADMIN_USERNAME"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	// Password reset token signing secret and lifetime
	ResetTokenSecret string `envconfig:"RESET_TOKEN_SECRET"`
	ResetTokenTTLMin uint   `envconfig:"RESET_TOKEN_TTL_MIN" default:"60"`

	SessionMaxAgeSec int `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}
