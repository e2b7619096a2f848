// Package protocol implements the GO-M8010-6 wire protocol: fixed-point
// quantization, frame layout, command encoding and feedback decoding.
// It performs no I/O.
package protocol

// CRCSeed is the initial CRC value for this protocol (CRC-16/CCITT-FALSE).
const CRCSeed uint16 = 0xFFFF

const crcPoly uint16 = 0x1021

// crcTable is built once at package init and never mutated afterwards.
var crcTable = makeCRCTable()

func makeCRCTable() [256]uint16 {
	var table [256]uint16
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPoly
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}

// CRC16 updates a running CRC-16/CCITT checksum over data, starting from
// seed. Pass CRCSeed for a fresh computation, or a previous return value to
// continue across multiple spans.
func CRC16(data []byte, seed uint16) uint16 {
	crc := seed
	for _, b := range data {
		crc = crc<<8 ^ crcTable[byte(crc>>8)^b]
	}
	return crc
}
