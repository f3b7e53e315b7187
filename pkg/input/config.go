package input

import "flag"

// Config defines the configurations for the input daemon.
type Config struct {
	BindAddr   string
	RouterAddr string
	DeviceName string
}

var defaultConfig = Config{
	BindAddr:   "127.0.0.1:9005",
	RouterAddr: "127.0.0.1:9003",
	DeviceName: DeviceName,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.BindAddr, "bind", defaultConfig.BindAddr, "Listening address for RC channel datagrams.")
	flag.StringVar(&defaultConfig.RouterAddr, "router", defaultConfig.RouterAddr, "Address of the telemetry relay.")
	flag.StringVar(&defaultConfig.DeviceName, "device-name", defaultConfig.DeviceName, "Name of the virtual joystick.")
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
