package config

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	defaultBufferSize = 1024
	minBufferSize     = 64
	maxBufferSize     = 1 << 20

	maxWorkers = 256
)

type config struct {
	address string
	port    string

	directory string

	workers        int
	bufferSize     int
	maxRequestSize int

	logLevel       string
	logDevelopment bool

	healthEnabled bool
	healthPort    string

	pprofEnabled bool
	pprofPort    string
}

func parse() (*config, error) {
	address := getenv("ADDRESS", "127.0.0.1")

	port, err := parsePort("PORT", "4221")
	if err != nil {
		return nil, err
	}

	workers, err := getenvInt("WORKERS", 4)
	if err != nil {
		return nil, err
	}
	if workers < 1 || workers > maxWorkers {
		return nil, fmt.Errorf("WORKERS must be between 1 and %d, got %d", maxWorkers, workers)
	}

	bufferSize := parseBufferSize()

	maxRequestSize, err := getenvInt("MAX_REQUEST_SIZE", 1<<20)
	if err != nil {
		return nil, err
	}
	if maxRequestSize < bufferSize {
		return nil, fmt.Errorf("MAX_REQUEST_SIZE (%d) must not be smaller than BUFFER_SIZE (%d)", maxRequestSize, bufferSize)
	}

	logLevel := strings.ToLower(getenv("LOG_LEVEL", "info"))
	if _, err = zapcore.ParseLevel(logLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	healthEnabled := getenvBool("HEALTH_ENABLED", false)
	healthPort, err := parsePort("HEALTH_PORT", "4222")
	if err != nil {
		return nil, err
	}

	pprofEnabled := getenvBool("PPROF_ENABLED", false)
	pprofPort, err := parsePort("PPROF_PORT", "6060")
	if err != nil {
		return nil, err
	}

	return &config{
		address:        address,
		port:           port,
		directory:      getenv("DIRECTORY", "/tmp"),
		workers:        workers,
		bufferSize:     bufferSize,
		maxRequestSize: maxRequestSize,
		logLevel:       logLevel,
		logDevelopment: getenvBool("LOG_DEVELOPMENT", false),
		healthEnabled:  healthEnabled,
		healthPort:     healthPort,
		pprofEnabled:   pprofEnabled,
		pprofPort:      pprofPort,
	}, nil
}

// parseFlags applies command line overrides. Only --directory is recognised.
func (c *config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("tinyhttpd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&c.directory, "directory", c.directory, "base directory served under /files/")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if c.directory == "" {
		return fmt.Errorf("--directory must not be empty")
	}
	return nil
}

func loadEnvFile() error {
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load(".env")
	}
	return nil
}

func parsePort(key, def string) (string, error) {
	raw := getenv(key, def)
	if _, err := strconv.ParseUint(raw, 10, 16); err != nil {
		return "", fmt.Errorf("invalid %s value %q", key, raw)
	}
	return raw, nil
}

func parseBufferSize() int {
	raw := getenv("BUFFER_SIZE", strconv.Itoa(defaultBufferSize))
	size, err := strconv.Atoi(raw)
	if err != nil || size < minBufferSize || size > maxBufferSize {
		log.Printf("Invalid BUFFER_SIZE %q, falling back to %d", raw, defaultBufferSize)
		return defaultBufferSize
	}
	return size
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val == "true"
}

func getenvInt(key string, def int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", key, val)
	}
	return n, nil
}
