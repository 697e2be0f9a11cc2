package rulegen

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWritesHeaderAndSource(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "rules")

	require.NoError(t, Generate(base, time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)))

	header, err := os.ReadFile(base + ".h")
	require.NoError(t, err)
	assert.Contains(t, string(header), "RULE_TYPE_EVOLUTION")
	assert.Contains(t, string(header), "RULE_TYPE_CONDITIONAL_EVOLUTION_EVOLUTION = 10")
	assert.Contains(t, string(header), "#ifndef RULES_H")

	source, err := os.ReadFile(base + ".c")
	require.NoError(t, err)
	assert.Contains(t, string(source), "#include \"rules.h\"")
	assert.Contains(t, string(source), "lookupFirst[]")
	assert.Contains(t, string(source), "lookupSecond[]")
}
