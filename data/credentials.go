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

package data

import "sync/atomic"

// CredentialProvider hands out the credential to use for the next
// upstream request. Providers that pool keys or user-agent strings
// across requests implement this; the fetch adapters stay unaware of
// the rotation policy.
type CredentialProvider interface {
	Next() string
}

// RotatingCredentials cycles through a fixed list of credentials
// round-robin. Safe for concurrent use.
type RotatingCredentials struct {
	creds []string
	idx   uint64
}

func NewRotatingCredentials(creds ...string) *RotatingCredentials {
	return &RotatingCredentials{
		creds: creds,
	}
}

func (r *RotatingCredentials) Next() string {
	if len(r.creds) == 0 {
		return ""
	}
	n := atomic.AddUint64(&r.idx, 1)
	return r.creds[(n-1)%uint64(len(r.creds))]
}
