package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env         Env
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Minio       MinioConfig
	NATS        NATSConfig
	Upload      UploadConfig
	Cache       CacheConfig
	Lock        LockConfig
	Jobs        JobsConfig
	Transcriber TranscriberConfig
	Audio       AudioConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
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

type RedisConfig struct {
	Addr      string        `envconfig:"REDIS_ADDR" required:"true"`
	Password  string        `envconfig:"REDIS_PASSWORD" default:""`
	DB        int           `envconfig:"REDIS_DB" default:"0"`
	OpTimeout time.Duration `envconfig:"REDIS_OP_TIMEOUT" default:"3s"`
}

type MinioConfig struct {
	Endpoint          string        `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName        string        `envconfig:"MINIO_BUCKET_NAME" required:"true"`
	AccessKey         string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey         string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	UploadURLDuration time.Duration `envconfig:"MINIO_UPLOAD_URL_DURATION" default:"15m"`
	DownloadDuration  time.Duration `envconfig:"MINIO_DOWNLOAD_URL_DURATION" default:"15m"`
	TransferTimeout   time.Duration `envconfig:"MINIO_TRANSFER_TIMEOUT" default:"120s"`
	UseSSL            bool          `envconfig:"MINIO_USE_SSL" default:"false"`
}

type NATSConfig struct {
	URL          string `envconfig:"NATS_URL" required:"true"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" required:"true"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" required:"true"`
	Subject      string `envconfig:"NATS_SUBJECT" required:"true"`
	DeliverGroup string `envconfig:"NATS_DELIVER_GROUP" required:"true"`
}

type UploadConfig struct {
	MaxSizeBytes int64 `envconfig:"UPLOAD_MAX_SIZE_BYTES" default:"2147483648"`
}

type CacheConfig struct {
	TTL      time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	DedupTTL time.Duration `envconfig:"CACHE_DEDUP_TTL" default:"720h"`
	// Sweep drops dedup entries whose remaining TTL is below this grace window
	DedupSweepGrace time.Duration `envconfig:"CACHE_DEDUP_SWEEP_GRACE" default:"1h"`
}

type LockConfig struct {
	Lease        time.Duration `envconfig:"LOCK_LEASE" default:"5s"`
	PollAttempts int           `envconfig:"LOCK_POLL_ATTEMPTS" default:"5"`
	PollDelay    time.Duration `envconfig:"LOCK_POLL_DELAY" default:"100ms"`
}

type JobsConfig struct {
	Workers       int           `envconfig:"JOBS_WORKERS" default:"2"`
	MaxAttempts   int           `envconfig:"JOBS_MAX_ATTEMPTS" default:"3"`
	BackoffBase   time.Duration `envconfig:"JOBS_BACKOFF_BASE" default:"5s"`
	ClaimLease    time.Duration `envconfig:"JOBS_CLAIM_LEASE" default:"30s"`
	Heartbeat     time.Duration `envconfig:"JOBS_HEARTBEAT" default:"10s"`
	Retention     time.Duration `envconfig:"JOBS_RETENTION" default:"24h"`
	DequeueWait   time.Duration `envconfig:"JOBS_DEQUEUE_WAIT" default:"1s"`
	SweepSchedule string        `envconfig:"JOBS_SWEEP_SCHEDULE" default:"@every 24h"`
	WorkDir       string        `envconfig:"JOBS_WORK_DIR" default:"/tmp/subpipe"`
}

type TranscriberConfig struct {
	BaseURL string        `envconfig:"TRANSCRIBER_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"TRANSCRIBER_API_KEY" default:""`
	Model   string        `envconfig:"TRANSCRIBER_MODEL" default:"whisper-1"`
	Timeout time.Duration `envconfig:"TRANSCRIBER_TIMEOUT" default:"60s"`
}

type AudioConfig struct {
	FFmpegCmd  string `envconfig:"AUDIO_FFMPEG_CMD" default:"ffmpeg"`
	SampleRate int    `envconfig:"AUDIO_SAMPLE_RATE" default:"16000"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
