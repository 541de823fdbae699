package bmp

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// HeaderSize is the size of the file header plus the BITMAPINFOHEADER.
const HeaderSize = 54

const (
	signature   = 0x4d42 // "BM"
	infoSize    = 40
	planes      = 1
	bitsPerPix  = 24
	compression = 0
)

// RowSize returns the stored byte length of one pixel row, 3*width + width%4.
// Since 3*width ≡ -width (mod 4), this equals the 24-bit row rounded up
// to a multiple of four bytes.
func RowSize(width int32) int32 {
	return width*3 + width%4
}

// ToUint8 converts a channel value to a byte, clamping to [0,255]
// and rounding half up. NaN maps to 0.
func ToUint8(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Encode writes img to w as a 24-bit BMP: rows bottom to top,
// pixels in B,G,R order, each row RowSize bytes long.
func Encode(w io.Writer, img *Image) error {
	rowSize := RowSize(img.width)
	imageSize := uint32(rowSize) * uint32(img.height)

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header(img.width, img.height, imageSize)); err != nil {
		return fmt.Errorf("write header: %v", err)
	}

	line := make([]byte, rowSize)
	for y := img.height - 1; y >= 0; y-- {
		pos := 0
		row := img.data[int(y)*int(img.width) : int(y+1)*int(img.width)]
		for _, c := range row {
			line[pos] = ToUint8(c.B)
			line[pos+1] = ToUint8(c.G)
			line[pos+2] = ToUint8(c.R)
			pos += 3
		}
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("write row %v: %v", y, err)
		}
	}

	return bw.Flush()
}

// Save writes img to the BMP file at path.
func Save(path string, img *Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Save(%q): %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("Save(%q): %w", path, cerr)
		}
	}()

	if err := Encode(f, img); err != nil {
		return fmt.Errorf("Save(%q): %w", path, err)
	}
	return nil
}

// header serializes the 54-byte header field by field in little-endian order.
func header(width, height int32, imageSize uint32) []byte {
	le := binary.LittleEndian
	b := make([]byte, 0, HeaderSize)
	b = le.AppendUint16(b, signature)
	b = le.AppendUint32(b, imageSize+HeaderSize)
	b = le.AppendUint16(b, 0) // reserved1
	b = le.AppendUint16(b, 0) // reserved2
	b = le.AppendUint32(b, HeaderSize)
	b = le.AppendUint32(b, infoSize)
	b = le.AppendUint32(b, uint32(width))
	b = le.AppendUint32(b, uint32(height))
	b = le.AppendUint16(b, planes)
	b = le.AppendUint16(b, bitsPerPix)
	b = le.AppendUint32(b, compression)
	b = le.AppendUint32(b, imageSize)
	b = le.AppendUint32(b, 0) // x pixels per meter
	b = le.AppendUint32(b, 0) // y pixels per meter
	b = le.AppendUint32(b, 0) // colors used
	b = le.AppendUint32(b, 0) // important colors
	return b
}
