package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jrsteele09/cms-oauth-proxy/internal/config"
	"github.com/jrsteele09/cms-oauth-proxy/internal/logging"
	"github.com/jrsteele09/cms-oauth-proxy/server"
	"github.com/rs/zerolog/log"
)

func main() {
	c, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Setup(c.Env.GetEnv(), c.Env.LogLevel)

	handler, err := server.Bootstrap(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build handler")
	}
	lambda.Start(newProxy(handler).invoke)
}
