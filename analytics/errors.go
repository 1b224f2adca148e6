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

package analytics

import "errors"

var (
	// ErrNoOverlap indicates that two compared series share no common date
	// and therefore no anchor for rebasing exists
	ErrNoOverlap = errors.New("series have no overlapping dates")

	// ErrNoHoldings indicates the portfolio has no positions to value
	ErrNoHoldings = errors.New("portfolio has no holdings")

	// ErrInsufficientData indicates fewer than 2 valuation points exist;
	// callers that require a minimum history surface this, all other
	// callers receive nil metrics instead
	ErrInsufficientData = errors.New("not enough valuation points to compute metrics")
)
