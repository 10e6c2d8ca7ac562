package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/woozymasta/spritepack"
	"github.com/woozymasta/spritepack/palette"
)

var (
	packOutput  string
	packCodec   string
	packPacker  string
	packZoomMin string
	packZoomMax string
	packXOffset int
	packYOffset int
	packGlyph   bool
	packRemap   bool
	packPalette string
)

var packCmd = &cobra.Command{
	Use:   "pack <image>",
	Short: "Encode an image into a packed sprite container",
	Long: `Decodes an image, builds the requested zoom chain by halving the raster
for every level past the first, packs it into the blitter layout and
writes a .pspr container.

The input image is the most detailed level of the chain. Draw offsets
halve along with the pixels.`,
	Args: cobra.ExactArgs(1),
	RunE: runPack,
}

func init() {
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "", "output file (default: input with .pspr extension)")
	packCmd.Flags().StringVar(&packCodec, "codec", "lz4", "block codec: lz4, zstd or copy")
	packCmd.Flags().StringVar(&packPacker, "packer", "", "packer variant (default: best available)")
	packCmd.Flags().StringVar(&packZoomMin, "zoom-min", "in-4x", "zoom level of the input image")
	packCmd.Flags().StringVar(&packZoomMax, "zoom-max", "out-8x", "last zoom level to generate")
	packCmd.Flags().IntVar(&packXOffset, "x-offset", 0, "horizontal draw offset of the input image")
	packCmd.Flags().IntVar(&packYOffset, "y-offset", 0, "vertical draw offset of the input image")
	packCmd.Flags().BoolVar(&packGlyph, "glyph", false, "encode as a font glyph (single zoom level)")
	packCmd.Flags().BoolVar(&packRemap, "remap", false, "store nearest palette indices for recolouring")
	packCmd.Flags().StringVar(&packPalette, "palette", "", "palette file (768 bytes of RGB triplets)")
	rootCmd.AddCommand(packCmd)
}

func runPack(_ *cobra.Command, args []string) error {
	input := args[0]

	codec, err := spritepack.ParseCodec(packCodec)
	if err != nil {
		return err
	}

	zoomMin, err := spritepack.ParseZoomLevel(packZoomMin)
	if err != nil {
		return err
	}

	zoomMax, err := spritepack.ParseZoomLevel(packZoomMax)
	if err != nil {
		return err
	}

	pal, err := loadPalette(packPalette)
	if err != nil {
		return err
	}

	var packer spritepack.Packer
	if packPacker != "" {
		packer, err = spritepack.NewRegistry().Get(packPacker)
		if err != nil {
			return err
		}
		logVerbose("packer %s", packer.Name())
	}

	enc, err := spritepack.NewEncoder(spritepack.Options{
		Zoom:    spritepack.ZoomRange{Min: zoomMin, Max: zoomMax},
		Palette: pal,
		Packer:  packer,
	})
	if err != nil {
		return err
	}

	img, err := decodeImage(input)
	if err != nil {
		return err
	}

	kind := spritepack.KindNormal
	if packGlyph {
		kind = spritepack.KindFont
	}

	coll := buildCollection(img, enc.Zoom(), kind, pal)

	start := time.Now()
	sprite, err := enc.Encode(coll, kind, nil)
	if err != nil {
		return fmt.Errorf("encode %s: %w", input, err)
	}

	out := packOutput
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".pspr"
	}

	if err := spritepack.WriteContainerFile(out, sprite, spritepack.ContainerOptions{Codec: codec}); err != nil {
		return err
	}

	st, err := os.Stat(out)
	if err != nil {
		return fmt.Errorf("stat %s: %w", out, err)
	}

	zr := sprite.ZoomRange()
	fmt.Printf("%s: %dx%d, zoom %s..%s, flags %s\n",
		out, sprite.Width(), sprite.Height(), zr.Min, zr.Max, sprite.Flags())
	fmt.Printf("  %s packed into %s (%.1f%%) in %s\n",
		formatBytes(int64(sprite.Size())), formatBytes(st.Size()),
		float64(st.Size())/float64(sprite.Size())*100,
		time.Since(start).Round(time.Millisecond))

	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	logVerbose("decoded %s %s (%dx%d)", format, path, img.Bounds().Dx(), img.Bounds().Dy())

	return img, nil
}

func loadPalette(path string) (*palette.Table, error) {
	if path == "" {
		return palette.Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette %s: %w", path, err)
	}

	return palette.FromBytes(data)
}

// buildCollection fills the zoom chain. The input raster lands on the
// first level, every further level is resampled at half the previous
// dimensions. Font glyphs get only the minimum level. When the chain
// starts above the minimum level, the first level's geometry is
// mirrored into the root record, which the header is read from.
func buildCollection(img image.Image, zr spritepack.ZoomRange, kind spritepack.SpriteKind, pal *palette.Table) *spritepack.Collection {
	var coll spritepack.Collection

	if kind == spritepack.KindFont {
		coll[spritepack.ZoomMin] = spriteFromImage(imaging.Clone(img), packXOffset, packYOffset, pal)
		return &coll
	}

	base := img.Bounds()
	xoff, yoff := packXOffset, packYOffset
	for z := zr.Min; z <= zr.Max; z++ {
		step := int(z - zr.Min)
		var raster *image.NRGBA
		if step == 0 {
			raster = imaging.Clone(img)
		} else {
			w := levelDimension(base.Dx(), step)
			h := levelDimension(base.Dy(), step)
			raster = imaging.Resize(img, w, h, imaging.Lanczos)
		}
		coll[z] = spriteFromImage(raster, xoff, yoff, pal)
		logVerbose("level %s: %dx%d at %+d%+d", z, coll[z].Width, coll[z].Height, xoff, yoff)
		xoff /= 2
		yoff /= 2
	}

	if zr.Min != spritepack.ZoomMin {
		top := &coll[zr.Min]
		coll[spritepack.ZoomMin] = spritepack.Sprite{
			Width:   top.Width,
			Height:  top.Height,
			XOffset: top.XOffset,
			YOffset: top.YOffset,
		}
	}

	return &coll
}

// levelDimension halves a base dimension step times, bottoming out at
// one pixel.
func levelDimension(base, step int) int {
	d := base >> step
	if d < 1 {
		return 1
	}

	return d
}

// spriteFromImage copies a decoded raster into the packer's pixel form.
// With --remap it also stores the nearest palette index of every
// visible pixel; index zero stays reserved for plain RGB pixels.
func spriteFromImage(img *image.NRGBA, xoff, yoff int, pal *palette.Table) spritepack.Sprite {
	b := img.Bounds()
	s := spritepack.Sprite{
		Width:   b.Dx(),
		Height:  b.Dy(),
		XOffset: xoff,
		YOffset: yoff,
		Pixels:  make([]spritepack.Pixel, b.Dx()*b.Dy()),
	}

	for y := 0; y < s.Height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+s.Width*4]
		for x := 0; x < s.Width; x++ {
			px := &s.Pixels[y*s.Width+x]
			px.R = row[x*4]
			px.G = row[x*4+1]
			px.B = row[x*4+2]
			px.A = row[x*4+3]
			if packRemap && px.A != 0 {
				px.M = nearestIndex(pal, px.R, px.G, px.B)
			}
		}
	}

	return s
}

func nearestIndex(pal *palette.Table, r, g, b uint8) uint8 {
	best := 1
	bestDist := 1 << 30
	for i := 1; i < len(pal); i++ {
		c := pal[i]
		dr := int(c.R) - int(r)
		dg := int(c.G) - int(g)
		db := int(c.B) - int(b)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			best, bestDist = i, d
		}
	}

	return uint8(best) // #nosec G115 -- best stays below 256.
}
