package planner

import (
	"fmt"
	"log"
	"time"

	"travelfuse/internal/domain"
	"travelfuse/internal/parser"
)

// runWithRetry invokes fn up to cfg.MaxAttempts times. A panicking attempt is
// retried after attempt × BaseDelay. A non-panicking failure is final unless
// StrictMode is set, in which case it is retried without delay. When every
// attempt is spent the outcome is a failure carrying fallback data.
func runWithRetry[T any](cfg Config, module domain.ModuleName, fn parser.Func[T], text string, pctx parser.Context, fallback func() T) parser.Outcome[T] {
	attempts := max(cfg.MaxAttempts, 1)
	var errs []string
	var last parser.Outcome[T]
	for attempt := 1; attempt <= attempts; attempt++ {
		out, err := attemptOnce(module, attempt, fn, text, pctx)
		if err != nil {
			log.Printf("planner.runWithRetry: %s attempt %d/%d: %v", module, attempt, attempts, err)
			errs = append(errs, err.Error())
			if attempt < attempts {
				time.Sleep(time.Duration(attempt) * cfg.BaseDelay)
			}
			continue
		}
		if out.Succeeded || !cfg.StrictMode {
			return out
		}
		log.Printf("planner.runWithRetry: %s attempt %d/%d failed in strict mode", module, attempt, attempts)
		last = out
		errs = append(errs, out.Errors...)
	}

	data := last.Data
	if data == nil {
		fb := fallback()
		data = &fb
	}
	errs = append(errs, fmt.Sprintf("%s: %d attempts exhausted", module, attempts))
	return parser.Failure(errs, data)
}

// attemptOnce runs fn and converts a panic into a ModuleError.
func attemptOnce[T any](module domain.ModuleName, attempt int, fn parser.Func[T], text string, pctx parser.Context) (out parser.Outcome[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &parser.ModuleError{Module: module, Attempt: attempt, Err: parser.PanicError(r)}
		}
	}()
	return fn(text, pctx), nil
}
