package output

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// pngHeaderLen is the signature plus the IHDR chunk (length, type, 13 data bytes, CRC)
const pngHeaderLen = 8 + 4 + 4 + 13 + 4

// ErrInvalidFrame is returned for frames whose buffer does not match their size
var ErrInvalidFrame = errors.New("invalid frame")

// Chromaticities are CIE xy coordinates of the white point and primaries
type Chromaticities struct {
	WhiteX, WhiteY float64
	RedX, RedY     float64
	GreenX, GreenY float64
	BlueX, BlueY   float64
}

// SRGBChromaticities are the sRGB primaries with a D65 white point
var SRGBChromaticities = Chromaticities{
	WhiteX: 0.31270, WhiteY: 0.32900,
	RedX: 0.64000, RedY: 0.33000,
	GreenX: 0.30000, GreenY: 0.60000,
	BlueX: 0.15000, BlueY: 0.06000,
}

// Options controls the metadata written alongside the pixels
type Options struct {
	Gamma          float64         // Source gamma for the gAMA chunk; 0 omits the chunk
	Chromaticities *Chromaticities // cHRM chunk; nil omits the chunk
}

// DefaultOptions declares gamma 1/2.2 with sRGB primaries
func DefaultOptions() Options {
	chrm := SRGBChromaticities
	return Options{Gamma: 1.0 / 2.2, Chromaticities: &chrm}
}

// ToImage wraps a frame's pixels in an image.RGBA without changing them
func ToImage(frame *renderer.Frame) (*image.RGBA, error) {
	if frame.Width <= 0 || frame.Height <= 0 || len(frame.Pix) != frame.Width*frame.Height*4 {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidFrame, frame.Width, frame.Height, len(frame.Pix))
	}
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	copy(img.Pix, frame.Pix)
	return img, nil
}

// EncodePNG writes frame as an 8-bit RGBA PNG with the requested metadata chunks
func EncodePNG(w io.Writer, frame *renderer.Frame, opts Options) error {
	img, err := ToImage(frame)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	encoded := buf.Bytes()

	if _, err := w.Write(encoded[:pngHeaderLen]); err != nil {
		return err
	}
	if opts.Gamma > 0 {
		data := make([]byte, 4)
		binary.BigEndian.PutUint32(data, scaled(opts.Gamma))
		if err := writeChunk(w, "gAMA", data); err != nil {
			return err
		}
	}
	if c := opts.Chromaticities; c != nil {
		data := make([]byte, 0, 32)
		for _, v := range []float64{c.WhiteX, c.WhiteY, c.RedX, c.RedY, c.GreenX, c.GreenY, c.BlueX, c.BlueY} {
			data = binary.BigEndian.AppendUint32(data, scaled(v))
		}
		if err := writeChunk(w, "cHRM", data); err != nil {
			return err
		}
	}
	_, err = w.Write(encoded[pngHeaderLen:])
	return err
}

// WritePNGFile encodes frame to path, creating parent directories as needed
func WritePNGFile(path string, frame *renderer.Frame, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := EncodePNG(file, frame, opts); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadPNG reads a PNG back into a frame
func LoadPNG(path string) (*renderer.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	frame := renderer.NewFrame(bounds.Dx(), bounds.Dy())
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			r, g, b, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns 16-bit channels
			copy(frame.Pix[(y*frame.Width+x)*4:], []byte{byte(r >> 8), byte(g >> 8), byte(b >> 8), byte(a >> 8)})
		}
	}
	return frame, nil
}

// scaled converts a value to the PNG fixed-point representation (times 100000)
func scaled(v float64) uint32 {
	return uint32(math.Round(v * 100000))
}

func writeChunk(w io.Writer, chunkType string, data []byte) error {
	chunk := make([]byte, 0, 12+len(data))
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(data)))
	chunk = append(chunk, chunkType...)
	chunk = append(chunk, data...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))
	_, err := w.Write(chunk)
	return err
}
