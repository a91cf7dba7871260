package query

import (
	"github.com/vegasq/jsonq/document"
)

// compare compares a record value with a literal using the given operator.
//
// Only same-kind pairs are ordered or tested for equality: numbers
// numerically and strings byte-wise. Any other pairing, including a missing
// value, is unequal and unordered, so = is false, != is true and every
// ordering operator is false.
func compare(left document.Value, operator TokenType, right document.Value) bool {
	if leftNum, ok := left.AsNumber(); ok {
		if rightNum, ok := right.AsNumber(); ok {
			return compareNumbers(leftNum, operator, rightNum)
		}
	}

	if leftStr, ok := left.AsString(); ok {
		if rightStr, ok := right.AsString(); ok {
			return compareStrings(leftStr, operator, rightStr)
		}
	}

	// Type mismatch or missing value
	return operator == TokenNotEqual
}

// compareNumbers compares two numbers
func compareNumbers(left float64, operator TokenType, right float64) bool {
	switch operator {
	case TokenEqual:
		return left == right
	case TokenNotEqual:
		return left != right
	case TokenLess:
		return left < right
	case TokenGreater:
		return left > right
	case TokenLessEqual:
		return left <= right
	case TokenGreaterEqual:
		return left >= right
	default:
		return false
	}
}

// compareStrings compares two strings (case-sensitive)
func compareStrings(left string, operator TokenType, right string) bool {
	switch operator {
	case TokenEqual:
		return left == right
	case TokenNotEqual:
		return left != right
	case TokenLess:
		return left < right
	case TokenGreater:
		return left > right
	case TokenLessEqual:
		return left <= right
	case TokenGreaterEqual:
		return left >= right
	default:
		return false
	}
}

// ApplyFilter returns the records that satisfy filter, in their original
// order. alias is stripped from field paths as in Execute.
func ApplyFilter(records []document.Value, filter Expression, alias string) []document.Value {
	if filter == nil {
		return records
	}

	filtered := make([]document.Value, 0)
	for _, value := range records {
		if filter.Evaluate(Record{Value: value, Alias: alias}) {
			filtered = append(filtered, value)
		}
	}

	return filtered
}

// GetFieldNames returns all unique member names of object records, in the
// order first seen
func GetFieldNames(records []document.Value) []string {
	if len(records) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	fields := make([]string, 0)

	for _, rec := range records {
		obj, ok := rec.AsObject()
		if !ok {
			continue
		}
		for _, key := range obj.Keys() {
			if !seen[key] {
				seen[key] = true
				fields = append(fields, key)
			}
		}
	}

	return fields
}
