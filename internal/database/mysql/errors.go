package mysql

import (
	"errors"
	"fmt"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
)

// Server error numbers the tool reacts to.
const (
	ErBadDB       uint16 = 1049
	ErBadTable    uint16 = 1051
	ErNoSuchTable uint16 = 1146
)

func errorNumber(err error) (uint16, bool) {
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number, true
	}
	return 0, false
}

// IsUnknownDatabase reports whether err says the selected database does not
// exist.
func IsUnknownDatabase(err error) bool {
	n, ok := errorNumber(err)
	return ok && n == ErBadDB
}

// IsMissingTable reports whether err says the table does not exist.
func IsMissingTable(err error) bool {
	n, ok := errorNumber(err)
	return ok && (n == ErBadTable || n == ErNoSuchTable)
}

// QuoteIdentifier quotes name as a MySQL identifier.
func QuoteIdentifier(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("identifier cannot be empty")
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`", nil
}
