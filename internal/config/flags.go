package config

import (
	"errors"
	"net"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
)

// NetAddress holds structured network address data for host and port.
// It implements the kingpin.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the server command line.
//
// Flags:
//
//	-a/--address      listen address in format [host]:[port]
//	-d/--database-url database URL, same format as DATABASE_URL
//	-c/--config       JSON or YAML config file path
//	--[no-]debug      force debug mode on or off
//	--rate-limit-rps  per-client requests per second, 0 disables
//	--rate-limit-burst per-client burst size
//
// Only flags given on the command line end up in the returned config.
func ParseFlags(args []string) (*StructuredConfig, error) {
	app := kingpin.New("server", "DistribucionApp HTTP server")
	app.HelpFlag.Short('h')

	var address NetAddress
	app.Flag("address", "Net address host:port").Short('a').SetValue(&address)
	databaseURL := app.Flag("database-url", "Database URL").Short('d').String()
	configPath := app.Flag("config", "JSON or YAML config file path").Short('c').String()

	var debugSet bool
	debug := app.Flag("debug", "Enable debug mode").IsSetByUser(&debugSet).Bool()

	rateLimitRPS := app.Flag("rate-limit-rps", "Requests per second allowed per client (0 disables)").Default("-1").Float64()
	rateLimitBurst := app.Flag("rate-limit-burst", "Burst capacity per client").Default("-1").Int()

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}

	cfg := &StructuredConfig{
		Database: DatabaseSources{
			URL: *databaseURL,
		},
		Server: Server{
			Address: address.String(),
		},
		ConfigFilePath: *configPath,
	}

	if debugSet {
		cfg.App.Debug = "False"
		if *debug {
			cfg.App.Debug = "True"
		}
	}

	if *rateLimitRPS > 0 {
		cfg.Server.RateLimitRPS = *rateLimitRPS
	}
	if *rateLimitBurst > 0 {
		cfg.Server.RateLimitBurst = *rateLimitBurst
	}

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form [host]:port and populates the
// NetAddress. An empty host listens on every interface.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	a.Host = host
	a.Port = port
	return nil
}
