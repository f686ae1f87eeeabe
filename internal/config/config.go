package config

import "net"

type Config interface {
	Address() string
	Port() string
	ListenAddress() string

	Directory() string

	Workers() int
	BufferSize() int
	MaxRequestSize() int

	LogLevel() string
	LogDevelopment() bool

	HealthEnabled() bool
	HealthPort() string

	PprofEnabled() bool
	PprofPort() string
}

// MustLoad reads .env when present, then the environment, then the command
// line arguments (without the program name).
func MustLoad(args []string) (Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg, err := parse()
	if err != nil {
		return nil, err
	}

	if err = cfg.parseFlags(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) Address() string       { return c.address }
func (c *config) Port() string          { return c.port }
func (c *config) ListenAddress() string { return net.JoinHostPort(c.address, c.port) }
func (c *config) Directory() string     { return c.directory }
func (c *config) Workers() int          { return c.workers }
func (c *config) BufferSize() int       { return c.bufferSize }
func (c *config) MaxRequestSize() int   { return c.maxRequestSize }
func (c *config) LogLevel() string      { return c.logLevel }
func (c *config) LogDevelopment() bool  { return c.logDevelopment }
func (c *config) HealthEnabled() bool   { return c.healthEnabled }
func (c *config) HealthPort() string    { return c.healthPort }
func (c *config) PprofEnabled() bool    { return c.pprofEnabled }
func (c *config) PprofPort() string     { return c.pprofPort }
