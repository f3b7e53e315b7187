package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/simlink/simlink.go/pkg/bridge"
	"github.com/simlink/simlink.go/pkg/framework"
	"github.com/simlink/simlink.go/pkg/metrics"
)

func init() {
	bridge.SetupFlags()
}

func main() {
	flag.Parse()

	conf := bridge.NewConfig()
	b, err := conf.NewBridge(bridge.NewMetrics(nil))
	if err != nil {
		glog.Exitf("bridge setup: %v", err)
	}
	defer b.Close()

	runner := framework.NewRunner().HandleSignals()
	runner.Go(b.Runnables()...)
	if conf.MetricsAddr != "" {
		runner.Go(&metrics.Server{Addr: conf.MetricsAddr})
	}
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}
