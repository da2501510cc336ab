package main

import (
	"context"
	"fmt"

	"aidconnect/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/kelseyhightower/envconfig"
)

func loadConfig() (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.S3Bucket == "" {
		return nil, fmt.Errorf("set S3_BUCKET")
	}

	if c.AdminUsername == "" || c.AdminPassword == "" {
		return nil, fmt.Errorf("set ADMIN_USERNAME and ADMIN_PASSWORD")
	}

	if c.ResetTokenSecret == "" {
		return nil, fmt.Errorf("set RESET_TOKEN_SECRET")
	}

	if c.CookieHashKey == "" || c.CookieBlockKey == "" {
		return nil, fmt.Errorf("set COOKIE_HASH_KEY and COOKIE_BLOCK_KEY")
	}

	if c.SMTPHost == "" {
		return nil, fmt.Errorf("set SMTP_HOST")
	}

	if c.MailFrom == "" {
		c.MailFrom = c.SMTPUsername
	}

	return c, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}
