package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/dreschagin/syshealth/internal/domain/valueobject"
)

// Config содержит конфигурацию всего инструмента.
// Загружается один раз на старте; после валидации не меняется.
type Config struct {
	Monitor    MonitorConfig
	Thresholds ThresholdsConfig
	AlertLog   AlertLogConfig
	NATS       NATSConfig
	Redis      RedisConfig
	History    HistoryConfig
	AppCheck   AppCheckConfig

	// явно ли заданы warn-уровни через окружение: при переопределении
	// alert-уровня флагом -t неявный warn выводится заново
	cpuWarnExplicit  bool
	memWarnExplicit  bool
	diskWarnExplicit bool
}

type MonitorConfig struct {
	DiskPath        string        `validate:"required"`
	TopProcesses    int           `validate:"min=1,max=50"`
	CPUSampleWindow time.Duration `validate:"min=100ms,max=30s"`
	WatchInterval   time.Duration `validate:"min=1s"`
	Hostname        string
}

type ThresholdsConfig struct {
	CPUAlert  int `validate:"min=0,max=100"`
	CPUWarn   int `validate:"min=0,max=100"`
	MemAlert  int `validate:"min=0,max=100"`
	MemWarn   int `validate:"min=0,max=100"`
	DiskAlert int `validate:"min=0,max=100"`
	DiskWarn  int `validate:"min=0,max=100"`
}

type AlertLogConfig struct {
	Path string `validate:"required"`
}

type NATSConfig struct {
	Enabled bool
	URL     string
	Subject string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
	TTL      time.Duration
}

type HistoryConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type AppCheckConfig struct {
	Timeout          time.Duration `validate:"min=1s"`
	RetryAttempts    int           `validate:"min=1,max=10"`
	RetryDelay       time.Duration
	ExpectedStatuses []int
	CriticalKeywords []string
	SuccessKeywords  []string
	RatePerSecond    float64 `validate:"gt=0"`
}

// Load загружает конфигурацию из окружения (с учетом .env файла)
func Load() (*Config, error) {
	// .env опционален: отсутствие файла не ошибка
	_ = godotenv.Load()

	cpuAlert, err := getEnvInt("CPU_ALERT_THRESHOLD", 80)
	if err != nil {
		return nil, err
	}
	memAlert, err := getEnvInt("MEM_ALERT_THRESHOLD", 80)
	if err != nil {
		return nil, err
	}
	diskAlert, err := getEnvInt("DISK_ALERT_THRESHOLD", 80)
	if err != nil {
		return nil, err
	}

	cpuWarn, cpuWarnSet, err := getEnvIntOpt("CPU_WARN_THRESHOLD", deriveWarn(cpuAlert))
	if err != nil {
		return nil, err
	}
	memWarn, memWarnSet, err := getEnvIntOpt("MEM_WARN_THRESHOLD", deriveWarn(memAlert))
	if err != nil {
		return nil, err
	}
	diskWarn, diskWarnSet, err := getEnvIntOpt("DISK_WARN_THRESHOLD", deriveWarn(diskAlert))
	if err != nil {
		return nil, err
	}

	topProcesses, err := getEnvInt("TOP_PROCESSES", 5)
	if err != nil {
		return nil, err
	}

	cpuWindow, err := getEnvDuration("CPU_SAMPLE_WINDOW", time.Second)
	if err != nil {
		return nil, err
	}

	watchInterval, err := getEnvDuration("WATCH_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	redisTTL, err := getEnvDuration("REDIS_SNAPSHOT_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	probeTimeout, err := getEnvDuration("APPCHECK_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	retryAttempts, err := getEnvInt("APPCHECK_RETRY_ATTEMPTS", 3)
	if err != nil {
		return nil, err
	}

	retryDelay, err := getEnvDuration("APPCHECK_RETRY_DELAY", 2*time.Second)
	if err != nil {
		return nil, err
	}

	expectedStatuses, err := parseIntList(getEnv("APPCHECK_EXPECTED_STATUSES", "200,201,202,204"))
	if err != nil {
		return nil, fmt.Errorf("invalid APPCHECK_EXPECTED_STATUSES: %w", err)
	}

	probeRate, err := getEnvFloat("APPCHECK_RATE_PER_SECOND", 2)
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()

	cfg := &Config{
		Monitor: MonitorConfig{
			DiskPath:        getEnv("DISK_PATH", "/"),
			TopProcesses:    topProcesses,
			CPUSampleWindow: cpuWindow,
			WatchInterval:   watchInterval,
			Hostname:        hostname,
		},
		Thresholds: ThresholdsConfig{
			CPUAlert:  cpuAlert,
			CPUWarn:   cpuWarn,
			MemAlert:  memAlert,
			MemWarn:   memWarn,
			DiskAlert: diskAlert,
			DiskWarn:  diskWarn,
		},
		AlertLog: AlertLogConfig{
			Path: getEnv("ALERT_LOG_PATH", "/tmp/syshealth_alerts.log"),
		},
		NATS: NATSConfig{
			Enabled: getEnvBool("NATS_ENABLED", false),
			URL:     getEnv("NATS_URL", "nats://localhost:4222"),
			Subject: getEnv("NATS_SUBJECT", "syshealth.cycle"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			TTL:      redisTTL,
		},
		History: HistoryConfig{
			Enabled:  getEnvBool("HISTORY_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Database: getEnv("DB_NAME", "syshealth"),
		},
		AppCheck: AppCheckConfig{
			Timeout:          probeTimeout,
			RetryAttempts:    retryAttempts,
			RetryDelay:       retryDelay,
			ExpectedStatuses: expectedStatuses,
			CriticalKeywords: splitCSV(getEnv("APPCHECK_CRITICAL_KEYWORDS", "error,exception,down,maintenance")),
			SuccessKeywords:  splitCSV(getEnv("APPCHECK_SUCCESS_KEYWORDS", "success,ok,running,healthy")),
			RatePerSecond:    probeRate,
		},

		cpuWarnExplicit:  cpuWarnSet,
		memWarnExplicit:  memWarnSet,
		diskWarnExplicit: diskWarnSet,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет конфигурацию целиком: теги структур плюс
// межполевые инварианты порогов (0 <= warn < alert <= 100)
func (c *Config) Validate() error {
	v := validator.New()

	for _, section := range []interface{}{c.Monitor, c.Thresholds, c.AlertLog, c.AppCheck} {
		if err := v.Struct(section); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	if _, err := c.BuildThresholds(); err != nil {
		return err
	}

	return nil
}

// BuildThresholds собирает доменный набор порогов из конфигурации
func (c *Config) BuildThresholds() (valueobject.Thresholds, error) {
	cpu, err := valueobject.NewThreshold(c.Thresholds.CPUWarn, c.Thresholds.CPUAlert)
	if err != nil {
		return valueobject.Thresholds{}, fmt.Errorf("cpu: %w", err)
	}

	mem, err := valueobject.NewThreshold(c.Thresholds.MemWarn, c.Thresholds.MemAlert)
	if err != nil {
		return valueobject.Thresholds{}, fmt.Errorf("memory: %w", err)
	}

	disk, err := valueobject.NewThreshold(c.Thresholds.DiskWarn, c.Thresholds.DiskAlert)
	if err != nil {
		return valueobject.Thresholds{}, fmt.Errorf("disk: %w", err)
	}

	return valueobject.NewThresholds(cpu, mem, disk)
}

// ApplyThresholdSpec применяет переопределение alert-уровней из флага
// -t CPU:MEM:DISK. Warn-уровни, не заданные явно через окружение,
// выводятся заново из новых alert-уровней.
func (c *Config) ApplyThresholdSpec(spec string) error {
	cpu, mem, disk, err := ParseThresholdSpec(spec)
	if err != nil {
		return err
	}

	c.Thresholds.CPUAlert = cpu
	c.Thresholds.MemAlert = mem
	c.Thresholds.DiskAlert = disk

	if !c.cpuWarnExplicit {
		c.Thresholds.CPUWarn = deriveWarn(cpu)
	}
	if !c.memWarnExplicit {
		c.Thresholds.MemWarn = deriveWarn(mem)
	}
	if !c.diskWarnExplicit {
		c.Thresholds.DiskWarn = deriveWarn(disk)
	}

	return c.Validate()
}

// ParseThresholdSpec разбирает строку вида "80:80:80" (cpu:mem:disk).
// Нечисловые поля и неверное число полей считаются ошибкой конфигурации.
func ParseThresholdSpec(spec string) (cpu, mem, disk int, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("threshold spec must have 3 fields CPU:MEM:DISK, got %q", spec)
	}

	values := make([]int, 3)
	for i, part := range parts {
		n, convErr := strconv.Atoi(strings.TrimSpace(part))
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("threshold spec field %d is not a number: %q", i+1, part)
		}
		if n < 0 || n > 100 {
			return 0, 0, 0, fmt.Errorf("threshold spec field %d is out of range [0,100]: %d", i+1, n)
		}
		values[i] = n
	}

	return values[0], values[1], values[2], nil
}

// DSN возвращает строку подключения к PostgreSQL
func (c *HistoryConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Database)
}

// deriveWarn выводит warning-уровень как 3/4 от alert-уровня.
// При дефолтном alert=80 это дает исторический уровень 60.
func deriveWarn(alert int) int {
	return alert * 3 / 4
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return parsed, nil
}

func getEnvIntOpt(key string, defaultValue int) (int, bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, false, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s: %w", key, err)
	}

	return parsed, true, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return parsed, nil
}

func splitCSV(raw string) []string {
	items := make([]string, 0)

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}

	return items
}

func parseIntList(raw string) ([]int, error) {
	items := make([]int, 0)

	for _, part := range splitCSV(raw) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", part)
		}
		items = append(items, n)
	}

	return items, nil
}
