// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

// Package testinfra provides shared infrastructure for integration tests.
//
// Everything here sits behind the "integration" build tag because it needs
// a Docker daemon:
//
//	go test -tags integration ./...
//
// Tests call SkipIfNoDocker first so suites degrade gracefully on machines
// without Docker.
package testinfra
