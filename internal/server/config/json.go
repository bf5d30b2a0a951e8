package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avoronov/factura/internal/flagx"
	"github.com/avoronov/factura/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "30m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn"`
	SessionTTL       timex.Duration `json:"session_ttl"`
	HashAlgorithm    string         `json:"hash_algorithm"`
	BcryptCost       int            `json:"bcrypt_cost"`
	Pbkdf2Iterations int            `json:"pbkdf2_iterations"`
	Argon2Memory     int            `json:"argon2_memory"`
	Argon2Time       int            `json:"argon2_time"`
	Argon2Threads    int            `json:"argon2_threads"`
	DiagCapacity     int            `json:"diag_capacity"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is:
//
//	The -c or -config command-line flags.
//	If it is not set, no JSON file is loaded.
//
// If the file path is found, parseJson attempts to read and unmarshal it
// into a JsonConfig. The resulting values are copied into the target Config.
// If the file cannot be read or contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SessionTTL = time.Duration(c.SessionTTL)
	config.HashAlgorithm = c.HashAlgorithm
	config.BcryptCost = c.BcryptCost
	config.Pbkdf2Iterations = c.Pbkdf2Iterations
	config.Argon2Memory = c.Argon2Memory
	config.Argon2Time = c.Argon2Time
	config.Argon2Threads = c.Argon2Threads
	config.DiagCapacity = c.DiagCapacity
}
