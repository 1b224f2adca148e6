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

// Package pkginfo holds build metadata stamped in by the linker.
package pkginfo

var (
	// ProgramName is the name of the binary
	ProgramName = "pfapi"

	// Version is the SemVer release of pf-api
	Version = "0.1.0"

	// BuildDate is the date the binary was built; set with ldflags
	BuildDate = ""

	// CommitHash is the git revision the binary was built from; set with ldflags
	CommitHash = ""
)
