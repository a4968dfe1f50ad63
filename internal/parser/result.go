package parser

import (
	"strings"
)

// Outcome is the result of a single parse: a success flag, optional data and
// the errors and warnings collected along the way.
//
// Data is nil only when Succeeded is false and no fallback could be built.
type Outcome[T any] struct {
	Succeeded bool     `json:"succeeded"`
	Data      *T       `json:"data,omitempty"`
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
}

// Success wraps data as a successful outcome.
func Success[T any](data T, warnings ...string) Outcome[T] {
	return Outcome[T]{
		Succeeded: true,
		Data:      &data,
		Errors:    []string{},
		Warnings:  append([]string{}, warnings...),
	}
}

// Failure builds a failed outcome carrying fallback as its data. fallback may be nil.
func Failure[T any](errs []string, fallback *T) Outcome[T] {
	return Outcome[T]{
		Succeeded: false,
		Data:      fallback,
		Errors:    append([]string{}, errs...),
		Warnings:  []string{},
	}
}

// HasIssues reports whether the outcome carries any error or warning.
func (o Outcome[T]) HasIssues() bool {
	return len(o.Errors) > 0 || len(o.Warnings) > 0
}

// IssuesSummary renders errors and warnings as a single line.
func (o Outcome[T]) IssuesSummary() string {
	var parts []string
	if len(o.Errors) > 0 {
		parts = append(parts, "错误: "+strings.Join(o.Errors, ", "))
	}
	if len(o.Warnings) > 0 {
		parts = append(parts, "警告: "+strings.Join(o.Warnings, ", "))
	}
	return strings.Join(parts, "; ")
}
