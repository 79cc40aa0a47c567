package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/internal/testutil"
)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	assert.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)
	assert.Equal(t, "value", messages[0].Field("key"))

	logger.Clear()
	assert.Len(t, logger.GetMessages(), 0)

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

func TestMockLogger_WithSharesSink(t *testing.T) {
	logger := testutil.NewMockLogger()
	child := logger.With(logging.String("run_id", "abc"))

	child.Warn("from child")

	found := logger.Find("warn", "from child")
	assert.Len(t, found, 1)
	assert.Equal(t, "abc", found[0].Field("run_id"))
}

//Personal.AI order the ending
