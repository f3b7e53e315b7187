package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/simlink/simlink.go/pkg/framework"
	"github.com/simlink/simlink.go/pkg/input"
	"github.com/simlink/simlink.go/pkg/input/device"
)

func init() {
	input.SetupFlags()
}

func main() {
	flag.Parse()

	conf := input.NewConfig()
	dev, err := device.Create(conf.DeviceName, input.AxisMax)
	if err != nil {
		glog.Exitf("create virtual joystick: %v", err)
	}
	defer dev.Close()
	glog.Infof("virtual joystick %q created", dev.Name())

	ctl, err := conf.NewController(dev)
	if err != nil {
		glog.Exitf("controller setup: %v", err)
	}
	defer ctl.Close()

	runner := framework.NewRunner().HandleSignals()
	runner.Go(ctl.Runnables()...)
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}
