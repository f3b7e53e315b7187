package router

import "flag"

// Config defines the configurations for the relay.
type Config struct {
	CmdAddr     string
	TelAddr     string
	MetricsAddr string
	BrokerURL   string
}

var defaultConfig = Config{
	CmdAddr: "127.0.0.1:9003",
	TelAddr: "127.0.0.1:9001",
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.CmdAddr, "cmd-bind", defaultConfig.CmdAddr, "Listening address for client commands.")
	flag.StringVar(&defaultConfig.TelAddr, "tel-bind", defaultConfig.TelAddr, "Listening address for incoming telemetry.")
	flag.StringVar(&defaultConfig.MetricsAddr, "metrics-addr", defaultConfig.MetricsAddr, "Listening address for metrics, empty to disable.")
	flag.StringVar(&defaultConfig.BrokerURL, "broker", defaultConfig.BrokerURL, "MQTT broker URL for telemetry re-publish, empty to disable.")
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
