package texture

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type Kind int

const (
	JPEG Kind = iota
	PNG
)

// Channels is the number of 8-bit channels a texture of this kind is
// decoded into, regardless of what the file itself stores.
func (k Kind) Channels() int {
	switch k {
	case PNG:
		return 4
	default:
		return 3
	}
}

func (k Kind) String() string {
	switch k {
	case JPEG:
		return "jpeg"
	case PNG:
		return "png"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "jpeg", "jpg":
		*k = JPEG
	case "png":
		*k = PNG
	default:
		return fmt.Errorf("unknown texture kind: %s", b)
	}
	return nil
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Pixels is a decoded image in tightly packed rows, bottom row first so it
// can be handed to glTexImage2D as is.
type Pixels struct {
	Width    int
	Height   int
	Channels int
	Data     []byte
}

func Load(path string, kind Kind) (*Pixels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open texture: %w", err)
	}
	defer f.Close()

	p, err := Decode(f, kind.Channels())
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", path, err)
	}
	return p, nil
}

func Decode(r io.Reader, channels int) (*Pixels, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("unsupported channel count %d", channels)
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}

	nrgba := toNRGBA(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", w, h)
	}

	p := &Pixels{
		Width:    w,
		Height:   h,
		Channels: channels,
		Data:     make([]byte, w*h*channels),
	}

	rowLen := w * channels
	for y := 0; y < h; y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		// GL expects the first row to be the bottom of the image
		dst := p.Data[(h-1-y)*rowLen : (h-y)*rowLen]
		if channels == 4 {
			copy(dst, src)
			continue
		}
		for x := 0; x < w; x++ {
			copy(dst[x*3:x*3+3], src[x*4:x*4+3])
		}
	}
	return p, nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
