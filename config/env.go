// Package config holds all runtime configuration for the Spectra POS backend.
//
// Values are resolved at startup in three layers: compiled-in defaults,
// then config/app.json, then .env, with real environment variables taking
// final precedence. Call config.Load() once during boot; every accessor
// below is safe to call afterwards from any goroutine.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
)

const (
	defaultSQLiteFile  = "spectra.db"
	defaultRedisAddr   = "localhost:6379"
	defaultAppPort     = "8080"
	defaultAppEnv      = "local"
	defaultLowStock    = "5"
	defaultSessionName = "spectra_session"
	defaultStorageDisk = "local"
	defaultStorageRoot = "storage"
	defaultStorageURL  = "http://localhost:8080/storage"
	defaultJWTSecret   = "change-me-in-production"
	defaultOwnerEmail  = "owner@spectra.com"
	defaultOwnerPass   = "changeme1"
	defaultReportDir   = "reports/sales"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

func defaultValues() map[string]string {
	return map[string]string{
		"APP_PORT":            defaultAppPort,
		"APP_ENV":             defaultAppEnv,
		"DATABASE_URL":        "",
		"DB_DRIVER":           "",
		"SQLITE_FILE":         defaultSQLiteFile,
		"REDIS_ADDR":          defaultRedisAddr,
		"REDIS_PASSWORD":      "",
		"SESSION_SECRET":      "",
		"SESSION_COOKIE":      defaultSessionName,
		"JWT_SECRET":          defaultJWTSecret,
		"LOW_STOCK_THRESHOLD": defaultLowStock,
		"GRPC_PORT":           "",
		"LOG_MONGO_URI":       "",
		"LOG_MONGO_DB":        "spectra",
		"STORAGE_DISK":        defaultStorageDisk,
		"STORAGE_LOCAL_ROOT":  defaultStorageRoot,
		"STORAGE_URL":         defaultStorageURL,
		"REPORT_PREFIX":       defaultReportDir,
		"OWNER_EMAIL":         defaultOwnerEmail,
		"OWNER_PASSWORD":      defaultOwnerPass,
	}
}

// Load resolves configuration from config/app.json and .env on first call.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

// ── Database ─────────────────────────────────────────────────────────────────

// DatabaseDriver reports which SQL backend to open.
//
// Selection order: an explicit DB_DRIVER wins; otherwise, if DATABASE_URL is
// set the driver is inferred from its scheme (network mode); otherwise the
// embedded sqlite file is used.
func DatabaseDriver() string {
	_ = Load()

	switch driver := strings.ToLower(get("DB_DRIVER", "")); driver {
	case "sqlite", "postgres", "mysql", "sqlserver":
		return driver
	}

	dsn := get("DATABASE_URL", "")
	if dsn == "" {
		return "sqlite"
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return "postgres"
	}
	switch u.Scheme {
	case "mysql":
		return "mysql"
	case "sqlserver", "mssql":
		return "sqlserver"
	default:
		return "postgres"
	}
}

// DatabaseDSN returns the connection string for the selected backend, in the
// form its driver expects. In embedded mode this is the sqlite file path.
func DatabaseDSN() string {
	_ = Load()

	if raw := get("DATABASE_URL", ""); raw != "" {
		return driverDSN(raw)
	}
	return get("SQLITE_FILE", defaultSQLiteFile)
}

// driverDSN rewrites a DATABASE_URL into the native DSN of the driver its
// scheme selects. Postgres and sqlserver drivers take the URL as is, but
// go-sql-driver/mysql only understands its own user:pass@tcp(host)/db form,
// and go-mssqldb does not know the mssql:// alias.
func driverDSN(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	switch u.Scheme {
	case "mysql":
		return mysqlDSN(u)
	case "mssql":
		u.Scheme = "sqlserver"
		return u.String()
	}
	return raw
}

func mysqlDSN(u *url.URL) string {
	var b strings.Builder
	if u.User != nil {
		b.WriteString(u.User.Username())
		if pass, ok := u.User.Password(); ok {
			b.WriteString(":")
			b.WriteString(pass)
		}
		b.WriteString("@")
	}

	host := u.Host
	if u.Port() == "" {
		host += ":3306"
	}
	b.WriteString("tcp(")
	b.WriteString(host)
	b.WriteString(")/")
	b.WriteString(strings.TrimPrefix(u.Path, "/"))

	// gorm scans timestamp columns into time.Time only with parseTime on.
	q := u.Query()
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	b.WriteString("?")
	b.WriteString(q.Encode())
	return b.String()
}

// ── Server ───────────────────────────────────────────────────────────────────

func AppPort() string { _ = Load(); return get("APP_PORT", defaultAppPort) }
func AppEnv() string  { _ = Load(); return get("APP_ENV", defaultAppEnv) }

// GRPCPort returns the gRPC health-probe port, or "" when disabled.
func GRPCPort() string { _ = Load(); return get("GRPC_PORT", "") }

// ── Auth & sessions ──────────────────────────────────────────────────────────

func JWTSecret() string { _ = Load(); return get("JWT_SECRET", defaultJWTSecret) }

// SessionSecret is the key used to seal session cookies. Falls back to the
// JWT secret so a single secret is enough for development.
func SessionSecret() string {
	_ = Load()
	if s := get("SESSION_SECRET", ""); s != "" {
		return s
	}
	return JWTSecret()
}

func SessionCookie() string { _ = Load(); return get("SESSION_COOKIE", defaultSessionName) }

// ── Redis ────────────────────────────────────────────────────────────────────

func RedisAddr() string     { _ = Load(); return get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { _ = Load(); return get("REDIS_PASSWORD", "") }

// ── Inventory ────────────────────────────────────────────────────────────────

// LowStockThreshold is the stock level at or below which a restock alert
// job is dispatched after checkout.
func LowStockThreshold() int {
	_ = Load()
	n, err := strconv.Atoi(get("LOW_STOCK_THRESHOLD", defaultLowStock))
	if err != nil || n < 0 {
		return 5
	}
	return n
}

// ── Seed account ─────────────────────────────────────────────────────────────

func OwnerEmail() string    { _ = Load(); return get("OWNER_EMAIL", defaultOwnerEmail) }
func OwnerPassword() string { _ = Load(); return get("OWNER_PASSWORD", defaultOwnerPass) }

// ── Logging ──────────────────────────────────────────────────────────────────

// LogMongoURI enables the async MongoDB log sink when non-empty.
func LogMongoURI() string { _ = Load(); return get("LOG_MONGO_URI", "") }
func LogMongoDB() string  { _ = Load(); return get("LOG_MONGO_DB", "spectra") }

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string   { _ = Load(); return get("STORAGE_DISK", defaultStorageDisk) }
func StorageLocalRoot() string { _ = Load(); return get("STORAGE_LOCAL_ROOT", defaultStorageRoot) }
func StorageURL() string       { _ = Load(); return get("STORAGE_URL", defaultStorageURL) }
func ReportPrefix() string     { _ = Load(); return get("REPORT_PREFIX", defaultReportDir) }

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

// ── Loader internals ─────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	for key := range loaded {
		if v, ok := os.LookupEnv(key); ok {
			loaded[key] = strings.TrimSpace(v)
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
