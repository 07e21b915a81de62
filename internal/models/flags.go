package models

type Flags struct {
	Mode       string `short:"m" long:"mode" env:"MODE" required:"true" description:"The mode the API is running in: cli/docker" default:"cli" choice:"cli" choice:"docker"`
	ConfigPath string `short:"c" long:"config" env:"CONFIG_PATH" description:"Path to the config.json file" default:"config.json"`
	LogFile    string `long:"log-file" env:"LOG_FILE" description:"Also write logs to this file"`

	HTTP     HTTPFlags     `group:"HTTP Server Options" namespace:"http"`
	Database DatabaseFlags `group:"Database Options" namespace:"db" env-namespace:"DB"`
}

type HTTPFlags struct {
	Port          int    `long:"port" env:"PORT" description:"Port to listen on" default:"3000"`
	ListeningAddr string `long:"addr" env:"ADDR" description:"Address to listen on" default:"0.0.0.0"`
	RateLimit     int    `long:"rate-limit" env:"RATE_LIMIT" description:"API requests allowed per IP per minute (0 disables)" default:"0"`
}

type DatabaseFlags struct {
	DBType           string `long:"type" env:"TYPE" description:"Database type: sqlite/postgres/mysql" default:"postgres"`
	ConnectionString string `long:"url" env:"URL" description:"Database connection string (sqlite DSNs get _pragma=foreign_keys(1) added when missing)"`
}
