//go:build tools

// Package tools pins the versions of the developer tools the Makefile runs.
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint" // make lint
	_ "github.com/pressly/goose/v3/cmd/goose"               // make migrate-*
	_ "github.com/sqlc-dev/sqlc/cmd/sqlc"                   // make sqlc
	_ "github.com/swaggo/swag/cmd/swag"                     // make docs
	_ "github.com/vektra/mockery/v2"                        // make mocks
	_ "golang.org/x/perf/cmd/benchstat"                     // make bench-compare
)
