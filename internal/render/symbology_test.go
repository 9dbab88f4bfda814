package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSymbology_DefaultAndUnknown(t *testing.T) {
	enc, err := ResolveSymbology("")
	assert.Nil(t, err)
	assert.NotNil(t, enc)

	enc, err = ResolveSymbology("Code128")
	assert.Nil(t, err)
	assert.NotNil(t, enc)

	_, err = ResolveSymbology("datamatrix9000")
	if assert.NotNil(t, err) {
		assert.Equal(t, KindUnsupportedSymbology, err.Kind)
		assert.Contains(t, err.Message, "datamatrix9000")
	}
}

func TestSymbologyEncoders(t *testing.T) {
	cases := []struct {
		token string
		text  string
		ok    bool
	}{
		{"code128", "hello world", true},
		{"code39", "hello", true},
		{"code93", "hello", true},
		{"codabar", "A40156B", true},
		{"ean13", "5901234123457", true},
		{"ean13", "590123412345", true}, // 12 digits, checksum appended
		{"ean13", "5901234123456", false},
		{"ean13", "1234", false},
		{"ean8", "96385074", true},
		{"ean", "5901234123457", true},
		{"upc", "123456789012", true},
		{"upca", "123456789012", true},
		{"upc", "1234", false},
		{"itf", "123456789012", true},
		{"itf", "12345", false}, // interleaved needs an even digit count
	}
	for _, tc := range cases {
		enc, rerr := ResolveSymbology(tc.token)
		if rerr != nil {
			t.Fatalf("resolve %s: %v", tc.token, rerr)
		}
		bc, err := enc(tc.text)
		if tc.ok {
			assert.NoError(t, err, "%s %q", tc.token, tc.text)
			assert.NotNil(t, bc)
			assert.Greater(t, bc.Bounds().Dx(), 0)
		} else {
			assert.Error(t, err, "%s %q", tc.token, tc.text)
		}
	}
}

func TestBarcodeTypes_SortedAndComplete(t *testing.T) {
	types := BarcodeTypes()
	assert.Equal(t, len(symbologies), len(types))
	for _, tok := range types {
		_, err := ResolveSymbology(tok)
		assert.Nil(t, err, tok)
	}
	for i := 1; i < len(types); i++ {
		assert.Less(t, types[i-1], types[i])
	}
}

func TestCoerceQRPayload(t *testing.T) {
	// passthrough for text and unrecognized tokens
	v, err := CoerceQRPayload("Hello World", "text")
	assert.Nil(t, err)
	assert.Equal(t, "Hello World", v)

	v, err = CoerceQRPayload("abc", "")
	assert.Nil(t, err)
	assert.Equal(t, "abc", v)

	v, err = CoerceQRPayload("abc", "weird")
	assert.Nil(t, err)
	assert.Equal(t, "abc", v)

	v, err = CoerceQRPayload("1234567890", "number")
	assert.Nil(t, err)
	assert.Equal(t, "1234567890", v)

	_, err = CoerceQRPayload("abc", "number")
	if assert.NotNil(t, err) {
		assert.Equal(t, KindValidation, err.Kind)
		assert.Contains(t, err.Message, "abc")
	}
}
