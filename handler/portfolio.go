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

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/paperfolio/pf-api/portfolio"
	"github.com/rs/zerolog/log"
)

// GetPortfolio returns a portfolio with its holdings
func (h *Handler) GetPortfolio(c *fiber.Ctx) error {
	portfolioID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	p, err := h.Store.GetPortfolio(c.Context(), portfolioID)
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			return fiber.ErrNotFound
		}
		log.Warn().Err(err).Str("PortfolioID", portfolioID.String()).Msg("could not get portfolio")
		return fiber.ErrInternalServerError
	}

	return c.JSON(p)
}

// ListPortfolios lists all portfolios belonging to the user given by
// the userID query parameter
func (h *Handler) ListPortfolios(c *fiber.Ctx) error {
	userID := c.Query("userID")
	if userID == "" {
		return fiber.ErrBadRequest
	}

	portfolios, err := h.Store.ListPortfolios(c.Context(), userID)
	if err != nil {
		log.Warn().Err(err).Str("UserID", userID).Msg("could not list portfolios")
		return fiber.ErrInternalServerError
	}

	return c.JSON(portfolios)
}
