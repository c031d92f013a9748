package enums

import "fmt"

// DBDriver names the SQL dialect behind the catalog database.
type DBDriver string

const (
	DBDriverPostgres DBDriver = "postgres"
	DBDriverSQLite   DBDriver = "sqlite"
)

var validDBDrivers = []DBDriver{
	DBDriverPostgres,
	DBDriverSQLite,
}

// String implements fmt.Stringer.
func (c DBDriver) String() string {
	return string(c)
}

// IsValid reports whether the value is a known DBDriver.
func (c DBDriver) IsValid() bool {
	for _, candidate := range validDBDrivers {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseDBDriver converts raw input into a DBDriver.
func ParseDBDriver(value string) (DBDriver, error) {
	for _, candidate := range validDBDrivers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid db driver %q", value)
}

// GooseDialect returns the goose dialect name for the driver.
func (c DBDriver) GooseDialect() string {
	if c == DBDriverSQLite {
		return "sqlite3"
	}
	return "postgres"
}
