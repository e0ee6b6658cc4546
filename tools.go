//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Tools used by this module:
// - github.com/matryer/moq (go:generate directives in *_mock_test.go users)
// - github.com/pressly/goose/v3/cmd/goose (ad-hoc migration authoring; cmd/migrate runs them)
