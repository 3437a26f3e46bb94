package shell

import (
	"fmt"
	"strconv"
	"strings"

	perrors "github.com/JuanS3/INTER-seguridad-taller3/internal/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// parsePrice accepts a non-negative decimal. A comma is accepted as the decimal separator.
func parsePrice(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q is not a number: %w", raw, perrors.ErrInvalidInput)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s must not be negative: %w", raw, perrors.ErrInvalidInput)
	}
	return d, nil
}

// parseDiscount accepts a percentage between 0 and 100.
func parseDiscount(raw string) (decimal.Decimal, error) {
	d, err := parsePrice(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.GreaterThan(hundred) {
		return decimal.Decimal{}, fmt.Errorf("%s is above 100: %w", raw, perrors.ErrInvalidInput)
	}
	return d, nil
}

// parseCount parses an integer not lower than min.
func parseCount(raw string, min int) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer: %w", raw, perrors.ErrInvalidInput)
	}
	if n < min {
		return 0, fmt.Errorf("%d is lower than %d: %w", n, min, perrors.ErrInvalidInput)
	}
	return n, nil
}

func parseStock(raw string) (int, error) {
	return parseCount(raw, 0)
}

func parseQuantity(raw string) (int, error) {
	return parseCount(raw, 1)
}

// ask shows label and returns the trimmed answer.
func (s *Shell) ask(label string) (string, error) {
	s.in.SetPrompt(label)
	line, err := s.in.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askValue prompts until parse accepts the answer. When optional is set an empty answer
// returns nil, meaning the field keeps its current value.
func askValue[T any](s *Shell, label string, optional bool, parse func(string) (T, error)) (*T, error) {
	for {
		raw, err := s.ask(label)
		if err != nil {
			return nil, err
		}
		if raw == "" && optional {
			return nil, nil
		}
		v, err := parse(raw)
		if err != nil {
			s.logger.Debug("Rejected input", "label", label, "error", err)
			fmt.Fprintln(s.out, "Entrada inválida. Intente nuevamente.")
			continue
		}
		return &v, nil
	}
}

// optionalText returns nil for an empty answer.
func optionalText(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}
