package config

import (
	"fmt"
	"os"
)

// R2Config holds the S3-compatible object storage settings used for the
// presigned direct-upload flow.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

func GetR2Config() *R2Config {
	return &R2Config{
		AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("CLOUDFLARE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("CLOUDFLARE_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("CLOUDFLARE_BUCKET_NAME"),
		PublicURL:       os.Getenv("CLOUDFLARE_PUBLIC_URL"),
		Region:          "auto",
	}
}

// CloudinaryConfig holds the unsigned upload settings for the image host
// used by the single-photo report flow.
type CloudinaryConfig struct {
	CloudName    string
	UploadPreset string
	BaseURL      string
}

func GetCloudinaryConfig() *CloudinaryConfig {
	baseURL := os.Getenv("CLOUDINARY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.cloudinary.com"
	}
	return &CloudinaryConfig{
		CloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		UploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		BaseURL:      baseURL,
	}
}

// UploadURL is the unsigned image upload endpoint for the configured cloud.
func (c *CloudinaryConfig) UploadURL() string {
	return fmt.Sprintf("%s/v1_1/%s/image/upload", c.BaseURL, c.CloudName)
}

// Configured reports whether the upload credentials are present. Missing
// secrets surface as a coded upload failure rather than a silent 500.
func (c *CloudinaryConfig) Configured() bool {
	return c.CloudName != "" && c.UploadPreset != ""
}
