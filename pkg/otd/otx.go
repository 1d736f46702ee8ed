package otd

import (
	"crypto/cipher"
	"crypto/md5"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dgryski/go-rc2"

	"otdconvert/pkg/errcode"
)

const (
	otxPassphrase = "%x$Intermac^(zx"
	otxIV         = "DeCarneD"
	// effective key length in bits
	otxKeyBits = 128
)

var errBadPadding = errors.New("invalid PKCS7 padding")

func otxKey() []byte {
	sum := md5.Sum([]byte(otxPassphrase))
	return sum[:]
}

// DecryptOTX returns the OTD text of an OTX file: RC2-CBC with an MD5-derived
// key and PKCS7 padding. Input that is not block aligned is zero padded.
func DecryptOTX(data []byte) (string, error) {
	block, err := rc2.New(otxKey(), otxKeyBits)
	if err != nil {
		return "", errcode.NewDecryptionFailed(fmt.Sprintf("Failed to create decryptor: %v", err), err)
	}

	bs := block.BlockSize()
	buf := make([]byte, len(data), len(data)+bs)
	copy(buf, data)
	if rem := len(buf) % bs; rem != 0 {
		buf = append(buf, make([]byte, bs-rem)...)
	}
	if len(buf) == 0 {
		return "", errcode.NewDecryptionFailed("Decryption failed: empty input", nil)
	}

	cipher.NewCBCDecrypter(block, []byte(otxIV)).CryptBlocks(buf, buf)

	plain, err := unpad(buf, bs)
	if err != nil {
		return "", errcode.NewDecryptionFailed(fmt.Sprintf("Decryption failed: %v", err), err)
	}
	if !utf8.Valid(plain) {
		err := errors.New("invalid utf-8 sequence")
		return "", errcode.NewDecryptionFailed(fmt.Sprintf("Invalid UTF-8 in decrypted content: %v", err), err)
	}
	return string(plain), nil
}

func unpad(buf []byte, bs int) ([]byte, error) {
	if len(buf) == 0 || len(buf)%bs != 0 {
		return nil, errBadPadding
	}
	n := int(buf[len(buf)-1])
	if n == 0 || n > bs {
		return nil, errBadPadding
	}
	for _, b := range buf[len(buf)-n:] {
		if int(b) != n {
			return nil, errBadPadding
		}
	}
	return buf[:len(buf)-n], nil
}
