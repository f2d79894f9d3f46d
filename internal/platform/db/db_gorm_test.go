package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// TestBuildDSN_TCP はTCP接続用のDSN文字列が正しく生成されることを検証します。
func TestBuildDSN_TCP(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver:   DriverMySQL,
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
		Port:     "3306",
	}

	dsn := BuildDSN(cfg)

	expected := "testuser:testpass@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=true&loc=UTC"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

// TestBuildDSN_CloudSQL はCloud SQL Unixソケット接続用のDSN文字列が正しく生成されることを検証します。
func TestBuildDSN_CloudSQL(t *testing.T) {
	t.Parallel()

	cfg := Config{
		User:         "testuser",
		Password:     "testpass",
		Name:         "testdb",
		InstanceName: "project:region:instance",
	}

	dsn := BuildDSN(cfg)

	expected := "testuser:testpass@unix(/cloudsql/project:region:instance)/testdb?charset=utf8mb4&parseTime=true&loc=UTC"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

// TestBuildDSN_CloudSQLTakesPrecedence はInstanceNameとHost/Portが両方設定されている場合にInstanceNameが優先されることを検証します。
func TestBuildDSN_CloudSQLTakesPrecedence(t *testing.T) {
	t.Parallel()

	// When both InstanceName and Host/Port are set, InstanceName takes precedence
	cfg := Config{
		User:         "testuser",
		Password:     "testpass",
		Name:         "testdb",
		Host:         "localhost",
		Port:         "3306",
		InstanceName: "project:region:instance",
	}

	dsn := BuildDSN(cfg)

	// Should use Cloud SQL format, not TCP
	if dsn == "testuser:testpass@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=true&loc=UTC" {
		t.Error("expected Cloud SQL DSN format, but got TCP format")
	}
	expected := "testuser:testpass@unix(/cloudsql/project:region:instance)/testdb?charset=utf8mb4&parseTime=true&loc=UTC"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

// TestBuildDSN_MySQLUsesUTC は MySQL の DSN が UTC で日付を送受信することを検証します。
// 日付はすべて UTC 0時で保持されるため、ホストのタイムゾーンに依存すると DATE 列が前日にずれます。
func TestBuildDSN_MySQLUsesUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "tcp", cfg: Config{Driver: DriverMySQL, User: "u", Password: "p", Name: "d", Host: "localhost", Port: "3306"}},
		{name: "cloudsql", cfg: Config{Driver: DriverMySQL, User: "u", Password: "p", Name: "d", InstanceName: "project:region:instance"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := mysql.ParseDSN(BuildDSN(tt.cfg))
			if err != nil {
				t.Fatalf("ParseDSN: %v", err)
			}
			if parsed.Loc != time.UTC {
				t.Errorf("expected loc UTC, got %v", parsed.Loc)
			}
			if !parsed.ParseTime {
				t.Error("expected parseTime=true")
			}

			civil := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
			if got := civil.In(parsed.Loc).Format(time.DateOnly); got != "2025-01-10" {
				t.Errorf("expected civil date to stay 2025-01-10, got %s", got)
			}
		})
	}
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	opener := func(dsn string) (*gorm.DB, error) {
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db != mockDB {
		t.Error("expected mock DB to be returned")
	}
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// Not parallel because this test takes time due to retry sleeps

	mockDB := &gorm.DB{}
	attemptCount := 0

	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		if attemptCount < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	// Use a timeout that allows for 2 retries (retry interval is 3 seconds)
	db, err := ConnectWithRetry("test-dsn", 10*time.Second, opener)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db != mockDB {
		t.Error("expected mock DB to be returned")
	}
	if attemptCount != 3 {
		t.Errorf("expected 3 attempts, got %d", attemptCount)
	}
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後にエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	attemptCount := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		return nil, errors.New("connection refused")
	}

	// Very short timeout - should fail quickly
	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, opener)

	if err == nil {
		t.Fatal("expected error after timeout, got nil")
	}
	if attemptCount == 0 {
		t.Error("expected at least one connection attempt")
	}
}

// TestBuildDSN_Postgres は PostgreSQL 用の key=value 形式の DSN が生成されることを検証します。
func TestBuildDSN_Postgres(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver:   DriverPostgres,
		User:     "fund",
		Password: "secret",
		Name:     "fundnav",
		Host:     "db",
		Port:     "5432",
	}

	dsn := BuildDSN(cfg)

	expected := "host=db user=fund password=secret dbname=fundnav port=5432 sslmode=disable"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

// TestBuildDSN_SQLite は SQLite ではファイルパスがそのまま DSN になることを検証します。
func TestBuildDSN_SQLite(t *testing.T) {
	t.Parallel()

	dsn := BuildDSN(Config{Driver: DriverSQLite, Path: "/tmp/fundnav.db", Host: "ignored"})

	if dsn != "/tmp/fundnav.db" {
		t.Errorf("expected DSN %q, got %q", "/tmp/fundnav.db", dsn)
	}
}

// TestNewOpener_UnsupportedDriver は未知のドライバ名でエラーになることを検証します。
func TestNewOpener_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	opener, err := NewOpener(Config{Driver: "oracle"})

	if err == nil {
		t.Fatal("expected error for unsupported driver, got nil")
	}
	if opener != nil {
		t.Error("expected nil opener")
	}
}

// TestNewOpener_InvalidPostgresDSN は pgx が解釈できない DSN を即座に拒否することを検証します。
func TestNewOpener_InvalidPostgresDSN(t *testing.T) {
	t.Parallel()

	opener, err := NewOpener(Config{Driver: DriverPostgres})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = opener("host=localhost port=notaport")

	if err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

// TestOpen_SQLite は SQLite ファイルに接続し、マイグレーションまで適用できることを検証します。
func TestOpen_SQLite(t *testing.T) {
	cfg := Config{
		Driver:         DriverSQLite,
		Path:           filepath.Join(t.TempDir(), "open.db"),
		ConnectTimeout: time.Second,
		RunMigrations:  true,
	}

	db, err := Open(context.Background(), cfg)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.Migrator().HasTable("funds") {
		t.Error("expected funds table to exist")
	}
	if !db.Migrator().HasTable("fund_nav_history") {
		t.Error("expected fund_nav_history table to exist")
	}
}
