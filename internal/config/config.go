package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Minio    MinioConfig
	Upload   UploadConfig
	Media    MediaConfig
	NATS     NATSConfig
	Database DatabaseConfig
	Server   ServerConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
	// PublicBaseURL is the externally reachable base of this service,
	// used to build resumable upload target URLs.
	PublicBaseURL string `envconfig:"SERVER_PUBLIC_BASE_URL" default:"http://localhost:8080"`
}

type MinioConfig struct {
	Endpoint                string        `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName              string        `envconfig:"MINIO_BUCKET_NAME" required:"true"`
	AccessKey               string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey               string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	SimplePresignedDuration time.Duration `envconfig:"MINIO_SIMPLE_PRESIGNED_DURATION" default:"15m"`
	UseSSL                  bool          `envconfig:"MINIO_USE_SSL" default:"false"`
}

type UploadConfig struct {
	ImageMaxSize int64         `envconfig:"UPLOAD_IMAGE_MAX_SIZE" default:"10485760"`   // 10MB
	VideoMaxSize int64         `envconfig:"UPLOAD_VIDEO_MAX_SIZE" default:"1073741824"` // 1GB
	ChunkSize    int64         `envconfig:"UPLOAD_CHUNK_SIZE" default:"8388608"`        // 8MB
	SessionTTL   time.Duration `envconfig:"UPLOAD_SESSION_TTL" default:"30m"`
	SweepEvery   time.Duration `envconfig:"UPLOAD_SWEEP_EVERY" default:"15m"`
}

type MediaConfig struct {
	// CDNBaseURL is the public base under which stored objects are served.
	// Asset URLs are immutable once ready, so they are built from this base
	// rather than from expiring presigned links.
	CDNBaseURL   string `envconfig:"MEDIA_CDN_BASE_URL" required:"true"`
	ThumbnailDim int    `envconfig:"MEDIA_THUMBNAIL_DIM" default:"320"`
}

type NATSConfig struct {
	URL              string `envconfig:"NATS_URL" required:"true"`
	StreamName       string `envconfig:"NATS_STREAM_NAME" required:"true"`
	ConsumerName     string `envconfig:"NATS_CONSUMER_NAME" required:"true"`
	StorageSubject   string `envconfig:"NATS_STORAGE_SUBJECT" required:"true"`
	TranscodeSubject string `envconfig:"NATS_TRANSCODE_SUBJECT" required:"true"`
	DeliverGroup     string `envconfig:"NATS_DELIVER_GROUP" required:"true"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

func Load() (*Config, error) {
	// optional local overrides; absence is not an error
	_ = godotenv.Load()

	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
