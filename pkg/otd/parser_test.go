package otd

import (
	"bytes"
	"crypto/cipher"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgryski/go-rc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otdconvert/pkg/errcode"
	"otdconvert/pkg/model"
)

const twoPatterns = `; exported by the optimizer
[Header]
OTDCutVersion=3.0
Dimension=mm
Date=2024-01-15

[Signature]
Creator=Optimizer 7

[Pattern]
MachineNumber=130
Width=1000
Height=500
GlassThickness=4
X=400
Y=200 Info=1
Y=300 Info=2 Shape=1
X=600
Y=500 Info=1

[Info]
Id=1
Customer=ACME Corp
OrderNo=ORD-1

[Info]
Id=2

[Shape]
Id=1
Name=Triangle
x=0 y=0 X=400 Y=0
x=400 y=0 X=400 Y=300
x=400 y=300 X=0 Y=0

[Pattern]
Width=500
Height=500
LinearAdvance=0
X=500
Y=500 Info=3

[Cuttings]
x=0 y=250 X=500 Y=250 Levcut=1 Qcut=250
IndPiece=0 Cut=1
XO=0 YO=0 Width=500 Height=250 Info=3
`

func TestParse(t *testing.T) {
	schemas, err := Parse(twoPatterns)
	require.NoError(t, err)
	require.Len(t, schemas, 2)

	first := schemas[0]
	assert.Equal(t, "3.0", first.Version)
	assert.Equal(t, model.Millimeters, first.Unit)
	assert.Equal(t, "2024-01-15", first.Date)
	assert.Equal(t, "Optimizer 7", first.Creator)
	assert.Equal(t, 130, first.MachineNumber)
	assert.Equal(t, 4.0, first.Thickness)
	assert.Equal(t, 1.0, first.LinearAdvance)
	assert.False(t, first.LinearOptimized)
	assert.True(t, first.OptimizeShapeOrder)
	assert.Len(t, first.LinearCuts, 5)

	require.Len(t, first.PieceTypes, 2)
	assert.Equal(t, "ACME Corp", first.PieceTypes[0].Customer)
	require.Len(t, first.Shapes, 1)
	assert.False(t, first.Shapes[0].Open)

	require.Len(t, first.Pieces, 3)
	assert.Equal(t, 0, first.Pieces[0].TypeIndex)
	assert.Equal(t, -1, first.Pieces[0].ShapeIndex)
	assert.Equal(t, 1, first.Pieces[1].TypeIndex)
	assert.Equal(t, 0, first.Pieces[1].ShapeIndex)
	assert.Equal(t, 0, first.Pieces[2].TypeIndex)

	assert.Equal(t, model.EdgeLeft|model.EdgeBottom, first.Pieces[0].Edges)
	assert.Equal(t, model.EdgeLeft|model.EdgeTop, first.Pieces[1].Edges)
	assert.Equal(t, model.EdgeBottom|model.EdgeRight|model.EdgeTop, first.Pieces[2].Edges)
	assert.Equal(t, []model.PieceCount{{InfoID: 1, Count: 2}, {InfoID: 2, Count: 1}}, first.PieceDistribution())

	second := schemas[1]
	assert.Equal(t, "Optimizer 7", second.Creator)
	assert.Equal(t, 1.0, second.LinearAdvance)
	assert.Empty(t, second.Shapes)
	assert.Empty(t, second.PieceTypes)
	assert.True(t, second.LinearOptimized)
	assert.False(t, second.OptimizeShapeOrder)

	require.Len(t, second.LinearCuts, 1)
	assert.Equal(t, 250.0, second.LinearCuts[0].Quota)
	assert.Equal(t, []int{0}, second.LinearCuts[0].PieceIndices)

	require.Len(t, second.Pieces, 1)
	assert.Equal(t, -1, second.Pieces[0].TypeIndex)
	assert.Equal(t, model.EdgeLeft|model.EdgeBottom|model.EdgeRight, second.Pieces[0].Edges)
}

func TestParseInchAdvance(t *testing.T) {
	schemas, err := Parse("[Header]\nDimension=inch\n[Pattern]\nWidth=100\nHeight=50\n")
	require.NoError(t, err)
	require.Len(t, schemas, 1)
	assert.Equal(t, model.Inches, schemas[0].Unit)
	assert.InDelta(t, 1/25.4, schemas[0].LinearAdvance, 1e-12)
	assert.Empty(t, schemas[0].LinearCuts)
	assert.Empty(t, schemas[0].Pieces)
}

func TestParseNoPattern(t *testing.T) {
	_, err := Parse("[Header]\nOTDCutVersion=3.0\n")
	assert.Equal(t, errcode.NoPatternSection, errcode.CodeOf(err))
	assert.EqualError(t, err, "No [Pattern] section found in file")
}

func encryptOTX(t *testing.T, plain []byte) []byte {
	t.Helper()
	block, err := rc2.New(otxKey(), otxKeyBits)
	require.NoError(t, err)
	bs := block.BlockSize()
	n := bs - len(plain)%bs
	buf := append(append([]byte{}, plain...), bytes.Repeat([]byte{byte(n)}, n)...)
	cipher.NewCBCEncrypter(block, []byte(otxIV)).CryptBlocks(buf, buf)
	return buf
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestParseFile(t *testing.T) {
	schemas, err := ParseFile(writeFile(t, "layout.otd", []byte(twoPatterns)))
	require.NoError(t, err)
	assert.Len(t, schemas, 2)

	// Encrypted layouts are recognised by extension regardless of case.
	schemas, err = ParseFile(writeFile(t, "layout.OTX", encryptOTX(t, []byte(twoPatterns))))
	require.NoError(t, err)
	require.Len(t, schemas, 2)
	assert.Len(t, schemas[0].Pieces, 3)
}

func TestParseFileErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.otd")
	_, err := ParseFile(missing)
	assert.Equal(t, errcode.FileNotFound, errcode.CodeOf(err))
	assert.EqualError(t, err, "File not found: "+missing)

	_, err = ParseFile(writeFile(t, "blank.otd", []byte(" \n\t\n")))
	assert.Equal(t, errcode.EmptyFile, errcode.CodeOf(err))

	_, err = ParseFile(writeFile(t, "header.otd", []byte("[Header]\nDimension=mm\n")))
	assert.Equal(t, errcode.NoPatternSection, errcode.CodeOf(err))

	_, err = ParseFile(writeFile(t, "blank.otx", encryptOTX(t, []byte("\n\n"))))
	assert.Equal(t, errcode.EmptyFile, errcode.CodeOf(err))
}

func TestDecryptOTX(t *testing.T) {
	plain, err := DecryptOTX(encryptOTX(t, []byte("[Pattern]\nX=1\n")))
	require.NoError(t, err)
	assert.Equal(t, "[Pattern]\nX=1\n", plain)

	// Exactly one block of plaintext gains a whole block of padding.
	plain, err = DecryptOTX(encryptOTX(t, []byte("12345678")))
	require.NoError(t, err)
	assert.Equal(t, "12345678", plain)

	_, err = DecryptOTX(nil)
	assert.Equal(t, errcode.DecryptionFailed, errcode.CodeOf(err))
	assert.EqualError(t, err, "OTX decryption failed: Decryption failed: empty input")

	// A block of zeros decrypts without a valid padding byte.
	block, err := rc2.New(otxKey(), otxKeyBits)
	require.NoError(t, err)
	zeros := make([]byte, block.BlockSize())
	cipher.NewCBCEncrypter(block, []byte(otxIV)).CryptBlocks(zeros, zeros)
	_, err = DecryptOTX(zeros)
	assert.Equal(t, errcode.DecryptionFailed, errcode.CodeOf(err))
	assert.ErrorIs(t, err, errBadPadding)

	_, err = DecryptOTX(encryptOTX(t, []byte{0xff, 0xfe, 'a'}))
	assert.Equal(t, errcode.DecryptionFailed, errcode.CodeOf(err))
	assert.Contains(t, err.Error(), "Invalid UTF-8 in decrypted content")
}
