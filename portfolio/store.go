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

package portfolio

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/paperfolio/pf-api/database"
	"github.com/rs/zerolog/log"
)

// PgStore reads portfolios from PostgreSQL
type PgStore struct{}

func NewPgStore() *PgStore {
	return &PgStore{}
}

func (store *PgStore) GetPortfolio(ctx context.Context, portfolioID uuid.UUID) (*Portfolio, error) {
	subLog := log.With().Str("PortfolioID", portfolioID.String()).Logger()

	portfolioSQL := `SELECT id, userid, name FROM portfolio WHERE id=$1`
	row := database.GetPool().QueryRow(ctx, portfolioSQL, portfolioID)

	p := Portfolio{}
	if err := row.Scan(&p.ID, &p.UserID, &p.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		subLog.Warn().Err(err).Msg("could not read portfolio")
		return nil, err
	}

	holdings, err := store.GetHoldings(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	p.Holdings = holdings

	return &p, nil
}

func (store *PgStore) GetHoldings(ctx context.Context, portfolioID uuid.UUID) ([]*Holding, error) {
	subLog := log.With().Str("PortfolioID", portfolioID.String()).Logger()

	holdingSQL := `SELECT symbol, quantity, average_buy_price, total_cost FROM holding WHERE portfolio_id=$1 ORDER BY symbol`
	rows, err := database.GetPool().Query(ctx, holdingSQL, portfolioID)
	if err != nil {
		subLog.Warn().Err(err).Msg("could not read holdings")
		return nil, err
	}
	defer rows.Close()

	holdings := []*Holding{}
	for rows.Next() {
		h := Holding{}
		if err := rows.Scan(&h.Symbol, &h.Quantity, &h.AverageBuyPrice, &h.TotalCost); err != nil {
			subLog.Warn().Err(err).Msg("could not scan holding")
			return nil, err
		}
		holdings = append(holdings, &h)
	}

	if err := rows.Err(); err != nil {
		subLog.Warn().Err(err).Msg("could not read holdings")
		return nil, err
	}

	return holdings, nil
}

func (store *PgStore) ListPortfolios(ctx context.Context, userID string) ([]*Portfolio, error) {
	subLog := log.With().Str("UserID", userID).Logger()

	portfolioSQL := `SELECT id, userid, name FROM portfolio WHERE userid=$1 ORDER BY name`
	rows, err := database.GetPool().Query(ctx, portfolioSQL, userID)
	if err != nil {
		subLog.Warn().Err(err).Msg("could not list portfolios")
		return nil, err
	}
	defer rows.Close()

	portfolios := []*Portfolio{}
	for rows.Next() {
		p := Portfolio{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name); err != nil {
			subLog.Warn().Err(err).Msg("could not scan portfolio")
			return nil, err
		}
		portfolios = append(portfolios, &p)
	}

	if err := rows.Err(); err != nil {
		subLog.Warn().Err(err).Msg("could not list portfolios")
		return nil, err
	}

	return portfolios, nil
}
