package cmd

import (
	"fmt"
	"strings"

	"github.com/accessexpr/accessexpr/internal/value"
	"github.com/accessexpr/accessexpr/pkg/expr"
)

func parseExprType(s string) (expr.ExprType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "general":
		return expr.ExprGeneral, nil
	case "default-value", "defaultvalue":
		return expr.ExprDefaultValue, nil
	case "field-validator", "fieldvalidator":
		return expr.ExprFieldValidator, nil
	case "record-validator", "recordvalidator":
		return expr.ExprRecordValidator, nil
	default:
		return 0, fmt.Errorf("unknown expr-type %q (want general, default-value, field-validator, or record-validator)", s)
	}
}

func parseResultType(s string) (expr.ResultType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null":
		return value.KindNull, nil
	case "bool", "boolean":
		return value.KindBool, nil
	case "long", "integer", "int":
		return value.KindLong, nil
	case "double":
		return value.KindDouble, nil
	case "bigdec", "decimal", "currency":
		return value.KindBigDec, nil
	case "string", "text":
		return value.KindString, nil
	case "date":
		return value.KindDate, nil
	case "time":
		return value.KindTime, nil
	case "datetime":
		return value.KindDateTime, nil
	default:
		return 0, fmt.Errorf("unknown result-type %q", s)
	}
}
