package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationStatementsAreIdempotent(t *testing.T) {
	for i, stmt := range migrationStatements {
		upper := strings.ToUpper(stmt)
		assert.Contains(t, upper, "IF NOT EXISTS", "statement %d", i+1)
	}
	assert.Contains(t, migrationStatements[1], "rc_records")
}
