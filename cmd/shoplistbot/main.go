package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/m3rciful/shoplistbot/bot"
	"github.com/m3rciful/shoplistbot/core/bootstrap"
	"github.com/m3rciful/shoplistbot/core/buildinfo"
	"github.com/m3rciful/shoplistbot/core/cmd"
	coreconfig "github.com/m3rciful/shoplistbot/core/config"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("shoplistbot %s (%s %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
		return
	}

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "configs/config.yaml",
		Bootstrap: func(cfg *coreconfig.Config) (cmd.TelegramApp, error) {
			res, err := bootstrap.Run(bootstrap.Options{Config: cfg})
			if err != nil {
				return nil, err
			}
			return bot.NewApp(cfg, res.Store), nil
		},
	})
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
