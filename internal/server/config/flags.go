package config

import (
	"flag"
	"os"
	"time"

	"github.com/avoronov/factura/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-t int      session token lifetime, minutes
//	-h string   password hashing scheme (bcrypt, pbkdf2_sha256, argon2id)
//	-k int      diagnostics ring capacity
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The session lifetime flag is accepted as an integer in minutes and then
//     converted to a time.Duration value.
//   - Hashing tuning knobs are file-only settings; they have no flags.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-h", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session token lifetime (in minutes)")

	fs.StringVar(&config.HashAlgorithm, "h", config.HashAlgorithm, "password hashing scheme")
	fs.IntVar(&config.DiagCapacity, "k", config.DiagCapacity, "diagnostics ring capacity")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
}
