package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/simlink/simlink.go/pkg/framework"
	"github.com/simlink/simlink.go/pkg/sim"
)

func init() {
	sim.SetupFlags()
}

func main() {
	flag.Parse()

	conf := sim.NewConfig()
	if conf.DescriptorPath != "" {
		if err := conf.WriteDescriptor(conf.DescriptorPath); err != nil {
			glog.Exitf("write descriptor: %v", err)
		}
		return
	}

	source, err := conf.NewSource()
	if err != nil {
		glog.Exitf("source setup: %v", err)
	}
	defer source.Close()

	runner := framework.NewRunner().HandleSignals()
	runner.Go(source)
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}
