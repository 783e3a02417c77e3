package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	"github.com/viant/mcp-bridge/engine"
)

type options struct {
	SystemFirst bool `long:"system-first" description:"prefer the system python over engine bundled ones"`
	Debug       bool `short:"d" long:"debug" description:"verbose diagnostics on stderr"`
}

func main() {
	opts := &options{}
	if _, err := flags.ParseArgs(opts, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	logger := logrus.New()
	if opts.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	finder := engine.New(
		engine.WithSystemFirst(opts.SystemFirst),
		engine.WithLogger(logger))
	location, err := finder.FindPython(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(location)
}
