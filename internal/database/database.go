package database

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
)

// --- Variables Globales ---
var (
	Redis  *redis.Client
	Scylla *gocql.Session // keyspace de auditoría; nil si no está configurado
)

// ConnectDatabases inicializa Redis (obligatorio) y ScyllaDB (opcional, auditoría)
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectRedis(ctx)
	connectScylla()

	log.Println("✅ Almacenes de datos conectados")
}

// =============================================
// REDIS (carrito, rate limits, pubsub)
// =============================================
func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Error conexión Redis:", err)
	}
	log.Println("✅ Conectado a Redis")
}

// =============================================
// SCYLLA DB (keyspace de auditoría)
// =============================================
func connectScylla() {
	hosts := os.Getenv("SCYLLA_HOSTS")
	keyspace := os.Getenv("SCYLLA_KS_AUDIT_KEYSPACE")
	if hosts == "" || keyspace == "" {
		log.Println("⚠️  ScyllaDB no configurado, auditoría de checkout desactivada")
		return
	}

	cluster := gocql.NewCluster(strings.Split(hosts, ",")...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second
	cluster.NumConns = 4
	cluster.ReconnectInterval = 1 * time.Second
	if user := os.Getenv("SCYLLA_KS_AUDIT_ROLE"); user != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: user,
			Password: os.Getenv("SCYLLA_KS_AUDIT_PASSWORD"),
		}
	}
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	session, err := cluster.CreateSession()
	if err != nil {
		// La auditoría no es crítica para vender: se degrada con aviso
		log.Printf("⚠️  Error conexión ScyllaDB (%v), auditoría desactivada", err)
		return
	}

	Scylla = session
	log.Printf("✅ Sesión ScyllaDB para keyspace '%s'", keyspace)
}

// CloseScylla cierra la sesión de auditoría
func CloseScylla() {
	if Scylla != nil {
		Scylla.Close()
		log.Println("🔌 Sesión ScyllaDB cerrada")
	}
}
