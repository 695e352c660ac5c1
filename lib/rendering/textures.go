package rendering

import (
	"fmt"

	"github.com/fosdem/glmix/lib/metrics"
	"github.com/fosdem/glmix/lib/texture"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// Texture is a 2D texture object. It is allocated up front and stays valid
// even when no image could be loaded into it.
type Texture struct {
	ID     uint32
	Loaded bool
}

func NewTexture() *Texture {
	t := &Texture{}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.MIRRORED_REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	return t
}

// Load decodes path and uploads it with mipmaps. On error the texture keeps
// whatever it held before.
func (t *Texture) Load(path string, kind texture.Kind) error {
	pixels, err := texture.Load(path, kind)
	if err != nil {
		return err
	}
	return t.Upload(pixels)
}

func (t *Texture) Upload(p *texture.Pixels) error {
	var format int32
	switch p.Channels {
	case 3:
		format = gl.RGB
	case 4:
		format = gl.RGBA
	default:
		return fmt.Errorf("cannot upload %d channel texture", p.Channels)
	}

	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	// rows are tightly packed, RGB rows are not 4-byte aligned in general
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		format,
		int32(p.Width),
		int32(p.Height),
		0,
		uint32(format),
		gl.UNSIGNED_BYTE,
		gl.Ptr(p.Data),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	metrics.TextureUploadBytes.Add(float64(len(p.Data)))
	t.Loaded = true
	return nil
}

// Bind attaches the texture to texture unit `unit`.
func (t *Texture) Bind(unit int) {
	gl.ActiveTexture(uint32(gl.TEXTURE0 + unit))
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

func (t *Texture) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
		t.Loaded = false
	}
}
