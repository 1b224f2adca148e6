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

package portfolio_test

import (
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pashagolub/pgxmock"

	"github.com/paperfolio/pf-api/database"
	"github.com/paperfolio/pf-api/portfolio"
)

var _ = Describe("PgStore", func() {
	var (
		ctx         context.Context
		dbPool      pgxmock.PgxConnIface
		store       *portfolio.PgStore
		portfolioID uuid.UUID
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()

		dbPool, err = pgxmock.NewConn()
		Expect(err).To(BeNil())
		database.SetPool(dbPool)

		store = portfolio.NewPgStore()
		portfolioID = uuid.New()
	})

	Context("loading a portfolio", func() {
		It("returns the portfolio with its holdings", func() {
			dbPool.ExpectQuery("SELECT id, userid, name FROM portfolio").
				WithArgs(portfolioID).
				WillReturnRows(pgxmock.NewRows([]string{"id", "userid", "name"}).
					AddRow(portfolioID, "user-1", "Retirement"))
			dbPool.ExpectQuery("SELECT symbol, quantity, average_buy_price, total_cost FROM holding").
				WithArgs(portfolioID).
				WillReturnRows(pgxmock.NewRows([]string{"symbol", "quantity", "average_buy_price", "total_cost"}).
					AddRow("AAPL", 10.0, 150.0, 1500.0).
					AddRow("INFY.NS", 25.0, 1400.0, 35000.0))

			p, err := store.GetPortfolio(ctx, portfolioID)
			Expect(err).To(BeNil())
			Expect(p.Name).To(Equal("Retirement"))
			Expect(p.UserID).To(Equal("user-1"))
			Expect(p.Holdings).To(HaveLen(2))
			Expect(p.Holdings[0].Symbol).To(Equal("AAPL"))
			Expect(p.Holdings[0].Quantity).To(BeNumerically("==", 10))
		})

		It("translates no rows to ErrNotFound", func() {
			dbPool.ExpectQuery("SELECT id, userid, name FROM portfolio").
				WithArgs(portfolioID).
				WillReturnRows(pgxmock.NewRows([]string{"id", "userid", "name"}))

			_, err := store.GetPortfolio(ctx, portfolioID)
			Expect(err).To(MatchError(portfolio.ErrNotFound))
		})
	})

	Context("loading holdings", func() {
		It("returns an empty slice for a portfolio with no positions", func() {
			dbPool.ExpectQuery("SELECT symbol, quantity, average_buy_price, total_cost FROM holding").
				WithArgs(portfolioID).
				WillReturnRows(pgxmock.NewRows([]string{"symbol", "quantity", "average_buy_price", "total_cost"}))

			holdings, err := store.GetHoldings(ctx, portfolioID)
			Expect(err).To(BeNil())
			Expect(holdings).To(BeEmpty())
		})
	})

	Context("listing portfolios", func() {
		It("returns every portfolio for the user", func() {
			id2 := uuid.New()
			dbPool.ExpectQuery("SELECT id, userid, name FROM portfolio").
				WithArgs("user-1").
				WillReturnRows(pgxmock.NewRows([]string{"id", "userid", "name"}).
					AddRow(portfolioID, "user-1", "Growth").
					AddRow(id2, "user-1", "Retirement"))

			portfolios, err := store.ListPortfolios(ctx, "user-1")
			Expect(err).To(BeNil())
			Expect(portfolios).To(HaveLen(2))
			Expect(portfolios[1].ID).To(Equal(id2))
		})
	})
})
