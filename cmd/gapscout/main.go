package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/seolab/gapscout/internal/cli"
	"github.com/seolab/gapscout/internal/config"
)

func main() {
	c := config.New()
	setupLogging(c.GetEnv())
	displayAppname(c.GetAppName())
	cli.Execute(c)
}

func setupLogging(env string) {
	if env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
