package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/simlink/simlink.go/pkg/framework"
	"github.com/simlink/simlink.go/pkg/metrics"
	"github.com/simlink/simlink.go/pkg/mqtt"
	"github.com/simlink/simlink.go/pkg/router"
)

func init() {
	router.SetupFlags()
}

func main() {
	flag.Parse()

	conf := router.NewConfig()
	relay, err := conf.NewRelay(router.NewMetrics(nil))
	if err != nil {
		glog.Exitf("relay setup: %v", err)
	}
	defer relay.Close()

	if conf.BrokerURL != "" {
		q, err := mqtt.NewQueueFromURL(conf.BrokerURL, "routerd")
		if err != nil {
			glog.Exitf("broker setup: %v", err)
		}
		defer q.Close()
		q.Connect()
		relay.Publish = mqtt.NewPublisher(q).PublishRecord
	}

	runner := framework.NewRunner().HandleSignals()
	runner.Go(relay.Runnables()...)
	if conf.MetricsAddr != "" {
		runner.Go(&metrics.Server{Addr: conf.MetricsAddr})
	}
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}
