package main

import (
	"log"

	"github.com/Badsnus/cu-clubs-web/cmd/web"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/config"
	"github.com/Badsnus/cu-clubs-web/internal/adapters/controller/http/setup"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()
	app, err := web.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	if err = setup.Setup(app); err != nil {
		log.Panic(err)
	}

	app.Start()
}
