package errcode_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"otdconvert/pkg/errcode"
)

func TestMessages(t *testing.T) {
	tests := []struct {
		err  *errcode.Error
		code int
		want string
	}{
		{errcode.NewFileNotFound("a.otd", nil), -1, "File not found: a.otd"},
		{errcode.NewEmptyFile("b.otd"), -2, "Empty file: b.otd"},
		{errcode.NewParseError(12, "bad value"), -3, "Parse error at line 12: bad value"},
		{errcode.NewNoPatternSection(), -11, "No [Pattern] section found in file"},
		{errcode.New(errcode.InvalidArc, "arc"), 100, "arc"},
		{errcode.New(errcode.OutOfBounds, "oob"), 101, "oob"},
		{errcode.New(errcode.ShapeSizeMismatch, "Shape 3 is used on pieces of different sizes"), 200, "Shape 3 is used on pieces of different sizes"},
		{errcode.New(errcode.NoCutsFound, "No cuts found in layout"), 201, "No cuts found in layout"},
		{errcode.New(errcode.ToolNotFound, "tool"), 202, "tool"},
		{errcode.NewDecryptionFailed("Decryption failed: short", nil), 300, "OTX decryption failed: Decryption failed: short"},
	}
	for _, test := range tests {
		assert.Equal(t, test.code, int(test.err.Code), test.want)
		assert.EqualError(t, test.err, test.want)
	}
}

func TestCodeOf(t *testing.T) {
	cause := fs.ErrNotExist
	err := fmt.Errorf("failed to parse x.otd: %w", errcode.NewFileNotFound("x.otd", cause))

	assert.Equal(t, errcode.FileNotFound, errcode.CodeOf(err))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, errcode.Code(0), errcode.CodeOf(errors.New("plain")))
	assert.Equal(t, errcode.Code(0), errcode.CodeOf(nil))
	assert.Equal(t, "NoPatternSection", errcode.NoPatternSection.String())
	assert.Equal(t, "Code(7)", errcode.Code(7).String())
}
