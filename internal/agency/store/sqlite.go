package store

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"modernc.org/sqlite"
)

// sqliteFoldFunc is registered on every SQLite connection. SQLite's own
// LOWER() folds ASCII only; this one folds the same way as the Go side of
// likePattern.
const sqliteFoldFunc = "ulower"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(sqliteFoldFunc, 1, ulower); err != nil {
		panic(fmt.Sprintf("register sqlite %s: %v", sqliteFoldFunc, err))
	}
}

func ulower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return strings.ToLower(fmt.Sprint(v)), nil
	}
}
