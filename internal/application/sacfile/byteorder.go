package sacfile

import (
	"encoding/binary"

	"github.com/kvoloboi/sacio/internal/domain"
)

// detectByteOrder picks the order in which the header version word is a
// known version, preferring preferred when both or neither are.
func detectByteOrder(hdr []byte, preferred binary.ByteOrder) binary.ByteOrder {
	word := hdr[domain.VersionOffset : domain.VersionOffset+4]

	if domain.KnownVersion(int32(preferred.Uint32(word))) {
		return preferred
	}

	swapped := opposite(preferred)
	if domain.KnownVersion(int32(swapped.Uint32(word))) {
		return swapped
	}

	return preferred
}

func isLittleEndian(order binary.ByteOrder) bool {
	return order.Uint16([]byte{1, 0}) == 1
}

func opposite(order binary.ByteOrder) binary.ByteOrder {
	if isLittleEndian(order) {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
