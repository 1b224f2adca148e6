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

// Package portfolio holds the portfolio and holding models plus the
// read-only store the analytics engine consumes them through. Writes
// (buys, sells, portfolio CRUD) belong to the surrounding system; the
// analytics core never mutates a holding.
package portfolio

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type Portfolio struct {
	ID       uuid.UUID  `json:"id"`
	UserID   string     `json:"userID"`
	Name     string     `json:"name"`
	Holdings []*Holding `json:"holdings"`
}

// Holding is a position in a portfolio. Quantity is non-negative; a
// fully sold position is removed by the write side, not zeroed.
type Holding struct {
	Symbol          string  `json:"symbol"`
	Quantity        float64 `json:"quantity"`
	AverageBuyPrice float64 `json:"averageBuyPrice"`
	TotalCost       float64 `json:"totalCost"`
}

// Store reads portfolios and their holdings
type Store interface {
	GetPortfolio(ctx context.Context, portfolioID uuid.UUID) (*Portfolio, error)
	GetHoldings(ctx context.Context, portfolioID uuid.UUID) ([]*Holding, error)
	ListPortfolios(ctx context.Context, userID string) ([]*Portfolio, error)
}

var (
	ErrNotFound = errors.New("portfolio not found")
)
