package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkrasnova/brandkit/internal/flagx"
	"github.com/dkrasnova/brandkit/internal/timex"
)

// jsonConfig is the file-format DTO. timex.Duration lets the file specify
// timeouts either as strings like "15s" or as integer nanoseconds.
type jsonConfig struct {
	ServerAddr     string         `json:"server_addr"`
	DatabaseDSN    string         `json:"database_dsn"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJSON overlays cfg with values from the JSON file named by -c/-config.
// No flag, no file read. Read or unmarshal errors panic; configuration is
// resolved before anything else starts, so there is nothing to degrade to.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerAddr != "" {
		cfg.ServerAddr = jc.ServerAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
