package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Engine        EngineConfig        `yaml:"engine"`
	Collaborators CollaboratorsConfig `yaml:"collaborators"`
}

// ServerConfig は HTTP サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// EngineConfig はオフボーディングエンジンの方針設定です。
type EngineConfig struct {
	// DefaultDepartments は承認時に部門指定がない場合に使う既定のクリアランス部門です。
	DefaultDepartments []string `yaml:"default_departments"`
	// UrgentAfterDays は承認からこの日数を超えた未剥奪を緊急扱いにします。
	UrgentAfterDays int `yaml:"urgent_after_days"`
}

// CollaboratorsConfig は外部コラボレーターのエンドポイント設定です。
type CollaboratorsConfig struct {
	PayrollURL   string `yaml:"payroll_url"`
	IdentityURL  string `yaml:"identity_url"`
	DirectoryURL string `yaml:"directory_url"`
}

// Load は指定されたパスから設定ファイルを読み込みます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	db := &c.Database
	if err := db.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Engine.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Collaborators.validate(); err != nil {
		return err
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (e *EngineConfig) validateAndNormalize() error {
	if len(e.DefaultDepartments) == 0 {
		return fmt.Errorf("config: engine.default_departments must not be empty")
	}
	seen := make(map[string]struct{}, len(e.DefaultDepartments))
	for _, department := range e.DefaultDepartments {
		if department == "" {
			return fmt.Errorf("config: engine.default_departments must not contain empty entries")
		}
		if _, ok := seen[department]; ok {
			return fmt.Errorf("config: engine.default_departments contains duplicate %q", department)
		}
		seen[department] = struct{}{}
	}
	if e.UrgentAfterDays < 0 {
		return fmt.Errorf("config: engine.urgent_after_days must not be negative")
	}
	if e.UrgentAfterDays == 0 {
		e.UrgentAfterDays = 3
	}
	return nil
}

func (c *CollaboratorsConfig) validate() error {
	if c.PayrollURL == "" {
		return fmt.Errorf("config: collaborators.payroll_url must be set")
	}
	if c.IdentityURL == "" {
		return fmt.Errorf("config: collaborators.identity_url must be set")
	}
	if c.DirectoryURL == "" {
		return fmt.Errorf("config: collaborators.directory_url must be set")
	}
	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。認証情報は URL エスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}
