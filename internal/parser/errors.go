package parser

import (
	"errors"
	"fmt"

	"travelfuse/internal/domain"
)

// ModuleError records a module parser failure, either a recovered panic or a
// failed attempt reported by the retry loop.
type ModuleError struct {
	Module  domain.ModuleName
	Attempt int
	Err     error
}

func (e *ModuleError) Error() string {
	if e.Attempt > 0 {
		return fmt.Sprintf("解析%s时出错 (attempt %d): %v", moduleLabel(e.Module), e.Attempt, e.Err)
	}
	return fmt.Sprintf("解析%s时出错: %v", moduleLabel(e.Module), e.Err)
}

func (e *ModuleError) Unwrap() error {
	return e.Err
}

// PanicError converts a recovered panic value into an error.
func PanicError(r any) error {
	switch v := r.(type) {
	case error:
		return v
	case string:
		return errors.New(v)
	default:
		return fmt.Errorf("%v", v)
	}
}

func moduleLabel(m domain.ModuleName) string {
	switch m {
	case domain.ModuleAccommodation:
		return "住宿信息"
	case domain.ModuleFood:
		return "美食信息"
	case domain.ModuleTransport:
		return "交通信息"
	case domain.ModuleTips:
		return "实用贴士"
	default:
		return string(m)
	}
}
