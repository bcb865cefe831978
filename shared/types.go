package shared

type ServerConfig struct {
	Sqlite   SqliteConfig   `mapstructure:"sqlite"`
	Hunter   HunterConfig   `mapstructure:"hunter"`
	Listener ListenerConfig `mapstructure:"listener" validate:"required"`
	Cors     CorsConfig     `mapstructure:"cors"`
	Cron     CronConfig     `mapstructure:"cron"`
	Google   GoogleConfig   `mapstructure:"google"`
}

type SqliteConfig struct {
	// PassPhrase, when set, encrypts the contacts database on disk.
	PassPhrase string `mapstructure:"passPhrase"`
}

type HunterConfig struct {
	// APIKey is the hunter.io credential. When empty, every verification
	// returns the deterministic mock score instead of a real lookup.
	APIKey string `mapstructure:"apiKey"`

	// BaseURL overrides the hunter.io endpoint, mainly for tests.
	BaseURL string `mapstructure:"baseURL"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required"`
}

type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

type CronConfig struct {
	TimeZone string `mapstructure:"timeZone"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type StorageConfig struct {
	Bucket                    string      `mapstructure:"bucket" validate:"required_with=EnableSqliteBackupAndSync"`
	Prefix                    string      `mapstructure:"prefix"`
	SqliteBackupSchedule      string      `mapstructure:"sqliteBackupSchedule" validate:"required_with=EnableSqliteBackupAndSync"`
	EnableSqliteBackupAndSync interface{} `mapstructure:"enableSqliteBackupAndSync" validate:"omitempty,bool"`
}

// SqliteBackupEnabled reports whether scheduled db backups are turned on.
func (sc StorageConfig) SqliteBackupEnabled() bool {
	enabled, ok := sc.EnableSqliteBackupAndSync.(bool)
	return ok && enabled
}
