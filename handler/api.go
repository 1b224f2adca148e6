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

// Package handler maps HTTP requests onto the analytics service and
// portfolio store. Handlers parse and validate input, translate domain
// errors to HTTP statuses, and round monetary output to 2 decimal
// places at the serialization boundary; no computation happens here.
package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/paperfolio/pf-api/analytics"
	"github.com/paperfolio/pf-api/portfolio"
	"github.com/rs/zerolog/log"
)

// Handler bundles the dependencies the HTTP routes need
type Handler struct {
	Service *analytics.Service
	Store   portfolio.Store
}

func New(service *analytics.Service, store portfolio.Store) *Handler {
	return &Handler{
		Service: service,
		Store:   store,
	}
}

type PingResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"API is alive"`
	Time    string `json:"time" example:"2024-06-19T08:09:10.115924-05:00"`
}

func (h *Handler) Ping(c *fiber.Ctx) error {
	now, err := time.Now().MarshalText()
	if err != nil {
		log.Error().Err(err).Msg("error while getting time in ping")
		return c.JSON(PingResponse{
			Status:  "error",
			Message: err.Error(),
		})
	}

	return c.JSON(PingResponse{
		Status:  "success",
		Message: "API is alive",
		Time:    string(now),
	})
}
