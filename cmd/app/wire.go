//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weather-wizard/internal/bootstrap"
	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
	"github.com/yanqian/weather-wizard/internal/domain/forecast"
	"github.com/yanqian/weather-wizard/internal/infra/config"
	"github.com/yanqian/weather-wizard/internal/infra/openmeteo"
	httpiface "github.com/yanqian/weather-wizard/internal/interface/http"
	"github.com/yanqian/weather-wizard/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideDialogueConfig,
		provideForecastConfig,
		provideParser,
		provideOpenMeteoClient,
		provideChatResponder,
		provideValkeyClient,
		provideSessionStore,
		provideForecastCache,
		provideTranscriptLog,
		provideSessionTokens,
		forecast.NewService,
		dialogue.NewService,
		wire.Bind(new(forecast.Geocoder), new(*openmeteo.Client)),
		wire.Bind(new(forecast.Source), new(*openmeteo.Client)),
		wire.Bind(new(dialogue.WeatherResponder), new(*forecast.Service)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
