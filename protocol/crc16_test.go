package protocol

import (
	"testing"

	"github.com/sigurn/crc16"
)

func TestCRC16_CheckValue(t *testing.T) {
	// Standard CRC-16/CCITT-FALSE check value.
	got := CRC16([]byte("123456789"), CRCSeed)
	if got != 0x29B1 {
		t.Fatalf("CRC16(123456789) = %04X, want 29B1", got)
	}
}

func TestCRC16_MatchesReference(t *testing.T) {
	table := crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

	inputs := [][]byte{
		{},
		{0x00},
		{0xFF},
		{0xAA, 0x55, 0x10, 0x80, 0x01, 0x92, 0x01, 0x00, 0x40, 0x00, 0x00, 0x00, 0x00, 0x48, 0x01},
		[]byte("GO-M8010-6"),
	}

	for _, in := range inputs {
		got := CRC16(in, CRCSeed)
		want := crc16.Checksum(in, table)
		if got != want {
			t.Fatalf("CRC16(% X) = %04X, reference = %04X", in, got, want)
		}
	}
}

func TestCRC16_RunningSeed(t *testing.T) {
	data := []byte{0xAA, 0x55, 0x10, 0x80, 0x01, 0x92, 0x01, 0x00}

	whole := CRC16(data, CRCSeed)
	split := CRC16(data[3:], CRC16(data[:3], CRCSeed))
	if whole != split {
		t.Fatalf("split computation %04X != whole %04X", split, whole)
	}
}

func TestCRC16_SingleBitSensitivity(t *testing.T) {
	data := []byte{0xAA, 0x55, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x19, 0x00, 0x00}
	base := CRC16(data, CRCSeed)

	for i := range data {
		for bit := 0; bit < 8; bit++ {
			mut := make([]byte, len(data))
			copy(mut, data)
			mut[i] ^= 1 << bit

			if CRC16(mut, CRCSeed) == base {
				t.Fatalf("flipping byte %d bit %d did not change the CRC", i, bit)
			}
		}
	}
}
