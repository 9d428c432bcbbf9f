package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/askbook/askbook-api/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ModelBucket is the blob-storage bucket holding model artifacts. Not configurable.
const ModelBucket = "model-askbook"

// ModelPrefix is the object-key prefix of model artifacts inside ModelBucket.
const ModelPrefix = "model/"

// Identity directory backends
const (
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig
	Project     ProjectConfig
	Credentials Credentials
	MongoDB     MongoDBConfig
	Redis       RedisConfig
	Identity    IdentityConfig
	Storage     StorageConfig
	Models      ModelsConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type ProjectConfig struct {
	ID              string
	CredentialsFile string
}

// Credentials is the content of the service credential file.
type Credentials struct {
	ProjectID        string
	ClientEmail      string
	TokenSecret      string
	StorageAccessKey string
	StorageSecretKey string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type IdentityConfig struct {
	Backend        string
	VerifyPassword bool
	TokenTTL       time.Duration
}

type StorageConfig struct {
	Endpoint string
	UseSSL   bool
	Bucket   string
}

type ModelsConfig struct {
	Dir          string
	RemotePrefix string
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// LoadConfig loads configuration from environment variables, an optional .env file
// and the service credential file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("CREDENTIALS_FILE", "askbook-key.json")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("TOKEN_TTL_MINUTES", 60)
	viper.SetDefault("MODELS_DIR", "./models")
	viper.SetDefault("SERVER_READ_TIMEOUT", 0)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 0)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  time.Duration(viper.GetInt("SERVER_READ_TIMEOUT")) * time.Second,
			WriteTimeout: time.Duration(viper.GetInt("SERVER_WRITE_TIMEOUT")) * time.Second,
		},
		Project: ProjectConfig{
			ID:              viper.GetString("PROJECT_ID"),
			CredentialsFile: viper.GetString("CREDENTIALS_FILE"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Identity: IdentityConfig{
			Backend:        strings.ToLower(strings.TrimSpace(viper.GetString("IDENTITY_BACKEND"))),
			VerifyPassword: viper.GetBool("IDENTITY_VERIFY_PASSWORD"),
			TokenTTL:       time.Duration(viper.GetInt("TOKEN_TTL_MINUTES")) * time.Minute,
		},
		Storage: StorageConfig{
			Endpoint: viper.GetString("STORAGE_ENDPOINT"),
			UseSSL:   viper.GetBool("STORAGE_USE_SSL"),
			Bucket:   ModelBucket,
		},
		Models: ModelsConfig{
			Dir:          viper.GetString("MODELS_DIR"),
			RemotePrefix: ModelPrefix,
		},
	}

	creds, err := LoadCredentials(cfg.Project.CredentialsFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		logger.Warnf("credential file %q not found; token signing and storage are unconfigured", cfg.Project.CredentialsFile)
	} else {
		cfg.Credentials = *creds
	}

	if cfg.Project.ID == "" {
		cfg.Project.ID = cfg.Credentials.ProjectID
	}
	// the project identifier names the identity/catalog database unless overridden
	if cfg.MongoDB.Database == "" {
		cfg.MongoDB.Database = cfg.Project.ID
	}
	if cfg.Identity.Backend == "" {
		if cfg.MongoDB.URI != "" {
			cfg.Identity.Backend = BackendMongo
		} else {
			cfg.Identity.Backend = BackendMemory
		}
	}
	switch cfg.Identity.Backend {
	case BackendMongo, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("unsupported IDENTITY_BACKEND %q", cfg.Identity.Backend)
	}

	if cfg.Credentials.TokenSecret == "" {
		logger.Warnf("token_secret is not set in the credential file; set a secure value in production")
	}

	return cfg, nil
}

// LoadCredentials reads the JSON credential file at path. A missing file is
// reported with an error satisfying os.IsNotExist.
func LoadCredentials(path string) (*Credentials, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read credential file: %w", err)
	}
	return &Credentials{
		ProjectID:        v.GetString("project_id"),
		ClientEmail:      v.GetString("client_email"),
		TokenSecret:      v.GetString("token_secret"),
		StorageAccessKey: v.GetString("storage_access_key"),
		StorageSecretKey: v.GetString("storage_secret_key"),
	}, nil
}
