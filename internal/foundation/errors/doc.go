// Package errors provides the classified error primitives used across the styleguide generator.
//
// Every failure that leaves a package boundary is either a sentinel wrapped with %w or a
// ClassifiedError built through the fluent ErrorBuilder. The category drives the CLI exit code.
//
//	err := errors.ParseError("malformed block metadata").
//		WithContext("path", file).
//		WithContext("line", line).
//		WithCause(yamlErr).
//		Build()
package errors
