package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	goredis "github.com/redis/go-redis/v9"
)

// SetupTestDB connects to the MySQL catalog used by integration tests.
// It expects a database named 'campusmart_test' on localhost:3306 unless
// CAMPUSMART_TEST_DSN says otherwise, and skips the test when none is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("CAMPUSMART_TEST_DSN")
	if dsn == "" {
		dsn = "root:@tcp(localhost:3306)/campusmart_test"
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the catalog tables and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"Product", "Store"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the read-replica tables the catalog queries.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createStoreTable := `
	CREATE TABLE IF NOT EXISTS Store (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createProductTable := `
	CREATE TABLE IF NOT EXISTS Product (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		storeId INT NOT NULL,
		currency CHAR(3),
		isDeleted TINYINT(1) DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_store (storeId),
		INDEX idx_deleted (isDeleted)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Store", createStoreTable},
		{"Product", createProductTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// SetupTestRedis connects to a local Redis, flushing the test database.
// The test is skipped when Redis is not running.
func SetupTestRedis(t *testing.T) *goredis.Client {
	t.Helper()

	addr := os.Getenv("CAMPUSMART_TEST_REDIS")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := goredis.NewClient(&goredis.Options{Addr: addr, DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("test redis not available: %v", err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Logf("failed to flush redis: %v", err)
	}

	t.Cleanup(func() { client.Close() })
	return client
}
