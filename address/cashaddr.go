package address

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

const checksumLen = 8

var charsetRev = func() [128]int8 {
	var rev [128]int8
	for i := range rev {
		rev[i] = -1
	}
	for i, c := range charset {
		rev[c] = int8(i)
	}
	return rev
}()

func polymod(values []byte) uint64 {
	c := uint64(1)
	for _, d := range values {
		c0 := byte(c >> 35)
		c = ((c & 0x07ffffffff) << 5) ^ uint64(d)
		if c0&0x01 != 0 {
			c ^= 0x98f2bc8e61
		}
		if c0&0x02 != 0 {
			c ^= 0x79b76d99e2
		}
		if c0&0x04 != 0 {
			c ^= 0xf33e5fb3c4
		}
		if c0&0x08 != 0 {
			c ^= 0xae2eabe2a8
		}
		if c0&0x10 != 0 {
			c ^= 0x1e4f43e470
		}
	}
	return c ^ 1
}

func expandPrefix(prefix string) []byte {
	out := make([]byte, len(prefix)+1)
	for i := 0; i < len(prefix); i++ {
		out[i] = prefix[i] & 0x1f
	}
	// out[len(prefix)] is the zero separator.
	return out
}

func createChecksum(prefix string, payload []byte) []byte {
	values := append(expandPrefix(prefix), payload...)
	values = append(values, make([]byte, checksumLen)...)
	mod := polymod(values)
	sum := make([]byte, checksumLen)
	for i := range sum {
		sum[i] = byte((mod >> (5 * (checksumLen - 1 - i))) & 0x1f)
	}
	return sum
}

func verifyChecksum(prefix string, payload []byte) bool {
	return polymod(append(expandPrefix(prefix), payload...)) == 0
}

// encodeCashAddr encodes a version byte and hash under prefix.
func encodeCashAddr(prefix string, version byte, hash []byte) (string, error) {
	data := append([]byte{version}, hash...)
	conv, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", err
	}
	conv = append(conv, createChecksum(prefix, conv)...)

	var sb strings.Builder
	sb.Grow(len(prefix) + 1 + len(conv))
	sb.WriteString(prefix)
	sb.WriteByte(':')
	for _, v := range conv {
		sb.WriteByte(charset[v])
	}
	return sb.String(), nil
}

// decodeCashAddr validates the checksum of payload under prefix and
// returns the version byte and hash. prefix must be lowercase.
func decodeCashAddr(prefix, payload string) (byte, []byte, bool) {
	if len(payload) <= checksumLen {
		return 0, nil, false
	}
	data := make([]byte, len(payload))
	for i := 0; i < len(payload); i++ {
		c := payload[i]
		if c >= 128 || charsetRev[c] < 0 {
			return 0, nil, false
		}
		data[i] = byte(charsetRev[c])
	}
	if !verifyChecksum(prefix, data) {
		return 0, nil, false
	}
	conv, err := bech32.ConvertBits(data[:len(data)-checksumLen], 5, 8, false)
	if err != nil || len(conv) < 1 {
		return 0, nil, false
	}
	return conv[0], conv[1:], true
}
