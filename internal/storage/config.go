package storage

import "github.com/askbook/askbook-api/internal/config"

// MinIOConfig holds blob-storage connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// FromConfig builds the storage connection settings from the loaded configuration;
// keys come from the credential file, the bucket is fixed.
func FromConfig(cfg *config.Config) *MinIOConfig {
	return &MinIOConfig{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Credentials.StorageAccessKey,
		SecretKey: cfg.Credentials.StorageSecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
	}
}
