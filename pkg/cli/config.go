// Package cli provides the interactive shell for poking the link:
// sending channel frames, registering with the relay and watching
// re-published telemetry.
package cli

import "flag"

// Config defines the configurations for the shell.
type Config struct {
	InputAddr  string
	RouterAddr string
	BrokerURL  string
	EvalOnly   bool
}

var defaultConfig = Config{
	InputAddr:  "127.0.0.1:9005",
	RouterAddr: "127.0.0.1:9003",
	BrokerURL:  "mqtt://127.0.0.1:1883",
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.InputAddr, "input", defaultConfig.InputAddr, "Address of the input daemon.")
	flag.StringVar(&defaultConfig.RouterAddr, "router", defaultConfig.RouterAddr, "Address of the telemetry relay.")
	flag.StringVar(&defaultConfig.BrokerURL, "broker", defaultConfig.BrokerURL, "MQTT broker URL for the watch command.")
	flag.BoolVar(&defaultConfig.EvalOnly, "e", defaultConfig.EvalOnly, "Evaluation only, no interactive shell.")
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
