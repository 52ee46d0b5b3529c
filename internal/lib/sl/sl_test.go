package sl_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/elevator/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := sl.Err(nil)
		assert.Equal(t, "<nil>", attr.Value.String())
	})
}

func TestOp(t *testing.T) {
	attr := sl.Op("handlers.webhook")
	assert.Equal(t, "op", attr.Key)
	assert.Equal(t, "handlers.webhook", attr.Value.String())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	sl.New("prod", &buf).Debug("hidden")
	assert.Empty(t, buf.String())

	sl.New("prod", &buf).Info("shown", slog.String("k", "v"))
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	sl.New("local", &buf).Debug("debug line")
	assert.Contains(t, buf.String(), "msg=\"debug line\"")
}
