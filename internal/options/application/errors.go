package application

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput 所有参数校验错误都可以用 errors.Is 匹配到它
var ErrInvalidInput = errors.New("invalid input")

// ValidationError 单个字段的校验错误
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func checkFinite(field string, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return invalid(field, "must be a finite number")
	}
	return nil
}

// checkNonNegative 数值必须有限且不小于 0
func checkNonNegative(field string, x float64) error {
	if err := checkFinite(field, x); err != nil {
		return err
	}
	if x < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

// firstError 按顺序返回第一个非空错误
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
