package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/simlink/simlink.go/pkg/framework"
	"github.com/simlink/simlink.go/pkg/gpsd"
)

func init() {
	gpsd.SetupFlags()
}

func main() {
	flag.Parse()

	srv, err := gpsd.NewConfig().NewServer()
	if err != nil {
		glog.Exitf("server setup: %v", err)
	}
	defer srv.Close()

	runner := framework.NewRunner().HandleSignals()
	runner.Go(srv.Runnables()...)
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}
