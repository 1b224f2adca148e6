// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/paperfolio/pf-api/analytics"
	"github.com/paperfolio/pf-api/common"
	"github.com/paperfolio/pf-api/data"
	"github.com/paperfolio/pf-api/database"
	"github.com/paperfolio/pf-api/handler"
	"github.com/paperfolio/pf-api/middleware"
	"github.com/paperfolio/pf-api/observability/opentelemetry"
	"github.com/paperfolio/pf-api/portfolio"
	"github.com/paperfolio/pf-api/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	viper.BindEnv("server.port", "PORT")
	serveCmd.Flags().IntP("port", "p", 3000, "Port to run application server on")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	serveCmd.Flags().String("cors-origins", "http://localhost:8080", "Comma separated list of allowed CORS origins")
	viper.BindPFlag("server.cors_origins", serveCmd.Flags().Lookup("cors-origins"))

	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pf-api server",
	Long:  `Run HTTP server that implements the Paper Folio API`,
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		common.SetupCache()
		log.Info().Msg("initialized logging")

		shutdownTracer, err := opentelemetry.Setup()
		if err != nil {
			log.Warn().Err(err).Msg("could not initialize opentelemetry; traces will not be exported")
		}

		ctx := context.Background()
		if err := database.Connect(ctx); err != nil {
			log.Fatal().Err(err).Msg("could not connect to database")
		}

		store := portfolio.NewPgStore()
		rates := data.NewFxRate()
		provider := data.NewYahoo(data.NewRotatingCredentials(userAgents()...))
		manager := data.NewManager(provider, rates)
		service := analytics.NewService(store, manager)

		app := fiber.New()

		// shutdown cleanly on interrupt
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		go func() {
			sig := <-c
			log.Info().Str("Signal", sig.String()).Msg("received signal; shutting down")
			if err := app.Shutdown(); err != nil {
				log.Fatal().Err(err).Msg("could not shutdown app")
			}
		}()

		app.Use(cors.New(cors.Config{
			AllowOrigins: viper.GetString("server.cors_origins"),
			AllowHeaders: "*",
			AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		}))
		app.Use(middleware.NewLogger())

		router.SetupRoutes(app, handler.New(service, store))

		// refresh the FX snapshot daily so the first request of the day
		// doesn't pay the provider round-trip
		tz, _ := time.LoadLocation("Asia/Kolkata") // reporting currency's home market
		scheduler := gocron.NewScheduler(tz)
		scheduler.Every(1).Day().At("06:00").Do(rates.RefreshSnapshot)
		scheduler.StartAsync()

		if err := app.Listen(":" + viper.GetString("server.port")); err != nil {
			log.Fatal().Err(err).Msg("could not start server")
		}

		scheduler.Stop()
		if shutdownTracer != nil {
			if err := shutdownTracer(ctx); err != nil {
				log.Warn().Err(err).Msg("could not shutdown tracer")
			}
		}
	},
}

func userAgents() []string {
	if agents := viper.GetStringSlice("yahoo.user_agents"); len(agents) > 0 {
		return agents
	}
	return []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
		"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
	}
}
