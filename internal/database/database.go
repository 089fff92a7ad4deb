package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// Stores regroupe toutes les connexions externes. Le handle est construit
// explicitement dans main et passé aux composants qui en ont besoin —
// pas d'état global implicite.
type Stores struct {
	Scylla  *gocql.Session
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client
	Bucket  string
}

// Connect ouvre toutes les connexions. Échec = erreur, pas de connexion
// partielle utilisable.
func Connect(ctx context.Context) (*Stores, error) {
	s := &Stores{}

	session, err := connectScylla()
	if err != nil {
		return nil, fmt.Errorf("scylla: %w", err)
	}
	s.Scylla = session

	if err := s.connectRedis(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	if err := s.connectElastic(); err != nil {
		s.Close()
		return nil, fmt.Errorf("elasticsearch: %w", err)
	}
	if err := s.connectMinIO(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("minio: %w", err)
	}

	log.Println("✅ Toutes les bases de données sont connectées")
	return s, nil
}

// Close ferme proprement toutes les connexions ouvertes.
func (s *Stores) Close() {
	if s.Scylla != nil {
		s.Scylla.Close()
		log.Println("🔌 Session ScyllaDB fermée")
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
		log.Println("🔌 Connexion Redis fermée")
	}
}

// =============================================
// SCYLLA DB
// =============================================

func connectScylla() (*gocql.Session, error) {
	hosts := strings.Split(envOr("SCYLLA_HOSTS", "127.0.0.1"), ",")
	keyspace := envOr("SCYLLA_KEYSPACE", "tibeb")

	cluster := gocql.NewCluster(hosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second
	cluster.NumConns = 4
	cluster.ReconnectInterval = 1 * time.Second

	if user := os.Getenv("SCYLLA_USERNAME"); user != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: user,
			Password: os.Getenv("SCYLLA_PASSWORD"),
		}
	}

	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	// Note: les tables sont créées via scripts/scylladb_init.cql
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Session ScyllaDB ouverte (keyspace '%s')", keyspace)
	return session, nil
}

// =============================================
// REDIS
// =============================================

func (s *Stores) connectRedis(ctx context.Context) error {
	s.Redis = redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_HOST", "127.0.0.1:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := s.Redis.Ping(ctx).Err(); err != nil {
		return err
	}
	log.Println("✅ Connecté à Redis")
	return nil
}

// =============================================
// ELASTICSEARCH
// =============================================

func (s *Stores) connectElastic() error {
	cfg := elasticsearch.Config{
		Addresses: []string{envOr("ELASTIC_URL", "http://127.0.0.1:9200")},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return err
	}

	res, err := client.Info()
	if err != nil {
		return err
	}
	defer res.Body.Close()

	s.Elastic = client
	log.Println("✅ Connecté à Elasticsearch")
	return nil
}

// =============================================
// MINIO
// =============================================

func (s *Stores) connectMinIO(ctx context.Context) error {
	endpoint := envOr("MINIO_ENDPOINT", "127.0.0.1:9000")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
		Secure: useSSL,
	})
	if err != nil {
		return err
	}

	bucket := envOr("MINIO_BUCKET", "tibeb-images")
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
		log.Println("🪣 Bucket créé :", bucket)
	} else {
		log.Println("🪣 Bucket MinIO déjà présent :", bucket)
	}

	s.MinIO = client
	s.Bucket = bucket
	log.Println("✅ Connecté à MinIO :", endpoint)
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
