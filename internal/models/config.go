package models

type Config struct {
	Database DatabaseConfig `json:"database"`
	HTTP     HTTPConfig     `json:"http"`
	Log      LogConfig      `json:"log"`
	Misc     MiscConfig     `json:"misc"`
}

type DatabaseConfig struct {
	DBType           string `json:"db_type" validate:"required,oneof=sqlite postgres mysql"`
	ConnectionString string `json:"connection_string" validate:"required"`
}

type HTTPConfig struct {
	Port          int    `json:"port" validate:"required,min=1,max=65535"`
	ListeningAddr string `json:"listening_addr" validate:"required"`
	// RateLimit is the amount of API requests allowed per IP per minute, 0 disables it.
	RateLimit int `json:"rate_limit" validate:"min=0"`
}

type LogConfig struct {
	File string `json:"file"`
}

type MiscConfig struct {
	// ImportFile is a JSON array of pokemon inserted once at startup.
	ImportFile string `json:"import_file"`
}
