package database

import (
	"context"
	"time"

	"freshmarket_back_end/internal/config"
	"freshmarket_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	DB      *gorm.DB
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client
)

// Connect opens every backing store. Postgres is mandatory; Redis,
// Elasticsearch and MinIO degrade to nil clients so a dev box can run with
// just the database.
func Connect() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectPostgres()
	connectRedis(ctx)
	connectElastic()
	connectMinIO(ctx)
}

func connectPostgres() {
	db, err := gorm.Open(postgres.Open(config.C.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	DB = db
	log.Info().Msg("connected to postgres")
}

// Migrate creates or updates the schema. Also used by tests against SQLite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.VendorProfile{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderLine{},
	)
}

func connectRedis(ctx context.Context) {
	if config.C.RedisHost == "" {
		log.Warn().Msg("REDIS_HOST not set, caching and rate limiting disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.C.RedisHost,
		Password: config.C.RedisPassword,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, caching and rate limiting disabled")
		return
	}

	Redis = client
	log.Info().Msg("connected to redis")
}

func connectElastic() {
	if config.C.ElasticURL == "" {
		log.Warn().Msg("ELASTIC_URL not set, product search falls back to the database")
		return
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{config.C.ElasticURL},
		Username:  config.C.ElasticUser,
		Password:  config.C.ElasticPassword,
	})
	if err != nil {
		log.Warn().Err(err).Msg("elasticsearch client creation failed")
		return
	}

	res, err := client.Info()
	if err != nil {
		log.Warn().Err(err).Msg("elasticsearch unreachable, product search falls back to the database")
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Info().Msg("connected to elasticsearch")
}

func connectMinIO(ctx context.Context) {
	cfg := config.C.MinIO
	if cfg.Endpoint == "" {
		log.Warn().Msg("MINIO_ENDPOINT not set, image upload disabled")
		return
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Warn().Err(err).Msg("minio connection failed, image upload disabled")
		return
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		log.Warn().Err(err).Msg("minio bucket check failed, image upload disabled")
		return
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			log.Warn().Err(err).Msg("minio bucket creation failed, image upload disabled")
			return
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("created minio bucket")
	}

	MinIO = client
	log.Info().Str("endpoint", cfg.Endpoint).Msg("connected to minio")
}
