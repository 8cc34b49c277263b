// Package preprocess expands one camera frame into the fixed set of image
// variants the decode engine attempts in order. A frame that fails to decode
// as-is (glare, low contrast, noise) often succeeds in one of the cheap
// transforms, so recall is bought with a bounded constant multiple of decode
// invocations.
package preprocess

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// Variant labels, in decode-attempt priority order.
const (
	LabelOriginal  = "original"
	LabelGrayscale = "grayscale"
	LabelBlurred   = "blurred"
	LabelAdaptive  = "adaptive-threshold"
	LabelBinary    = "binary"
	LabelOtsu      = "otsu"
	LabelEqualized = "equalized"
	LabelSharpened = "sharpened"
)

// VariantCount is the fixed size of the pipeline output.
const VariantCount = 8

const (
	fixedThreshold = 127
	adaptiveWindow = 11
	adaptiveBias   = 2
	equalizeTiles  = 8
	equalizeClip   = 2.0
	blurRadius     = 1.4
)

// Variant is one preprocessed rendition of a camera frame.
type Variant struct {
	Label string
	Image image.Image
}

// Variants produces the preprocessing pipeline for one frame. The order is
// fixed: it defines decode-attempt priority and therefore which variant's
// geometry wins during deduplication. The pipeline is deterministic,
// side-effect-free and never fails; degenerate frames (for example a uniform
// color) still yield well-formed variants.
func Variants(frame image.Image) []Variant {
	gray := grayOf(frame)
	return []Variant{
		{Label: LabelOriginal, Image: frame},
		{Label: LabelGrayscale, Image: effect.Grayscale(frame)},
		{Label: LabelBlurred, Image: blur.Gaussian(gray, blurRadius)},
		{Label: LabelAdaptive, Image: adaptiveThreshold(gray, adaptiveWindow, adaptiveBias)},
		{Label: LabelBinary, Image: segment.Threshold(gray, fixedThreshold)},
		{Label: LabelOtsu, Image: segment.Threshold(gray, otsuLevel(gray))},
		{Label: LabelEqualized, Image: equalizeLocal(gray, equalizeTiles, equalizeClip)},
		{Label: LabelSharpened, Image: effect.Sharpen(gray)},
	}
}

// grayOf converts any image to 8-bit grayscale for the threshold and
// equalization stages.
func grayOf(img image.Image) *image.Gray {
	b := img.Bounds()
	g := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return g
}

// otsuLevel picks the threshold that maximizes between-class variance over
// the gray histogram. A uniform frame degenerates to level 0, which still
// binarizes into a well-formed (if unhelpful) variant.
func otsuLevel(g *image.Gray) uint8 {
	b := g.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}

	var hist [256]int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[g.GrayAt(x, y).Y]++
		}
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB, best float64
	var level uint8
	for i := 0; i < 256; i++ {
		wB += float64(hist[i])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(hist[i])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			level = uint8(i)
		}
	}
	return level
}

// adaptiveThreshold binarizes each pixel against the mean of its
// window×window neighborhood minus bias. An integral image keeps the cost
// linear in pixels regardless of window size.
func adaptiveThreshold(g *image.Gray, window, bias int) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(b)
	if w == 0 || h == 0 {
		return out
	}

	integral := make([][]int, h+1)
	for i := range integral {
		integral[i] = make([]int, w+1)
	}
	for y := 0; y < h; y++ {
		row := 0
		for x := 0; x < w; x++ {
			row += int(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			integral[y+1][x+1] = integral[y][x+1] + row
		}
	}

	r := window / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := max(0, x-r), max(0, y-r)
			x1, y1 := min(w-1, x+r), min(h-1, y+r)
			area := (x1 - x0 + 1) * (y1 - y0 + 1)
			sum := integral[y1+1][x1+1] - integral[y0][x1+1] - integral[y1+1][x0] + integral[y0][x0]

			v := uint8(0)
			if int(g.GrayAt(b.Min.X+x, b.Min.Y+y).Y) > sum/area-bias {
				v = 255
			}
			out.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: v})
		}
	}
	return out
}

// equalizeLocal is a tiled histogram equalization with a clip limit. It
// approximates CLAHE without the inter-tile interpolation step: each tile is
// remapped through its own clipped cumulative distribution.
func equalizeLocal(g *image.Gray, tiles int, clip float64) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(b)
	if w == 0 || h == 0 {
		return out
	}

	tw := (w + tiles - 1) / tiles
	th := (h + tiles - 1) / tiles
	for ty := 0; ty < h; ty += th {
		for tx := 0; tx < w; tx += tw {
			equalizeTile(g, out,
				b.Min.X+tx, b.Min.Y+ty,
				b.Min.X+min(tx+tw, w), b.Min.Y+min(ty+th, h),
				clip)
		}
	}
	return out
}

func equalizeTile(g, out *image.Gray, x0, y0, x1, y1 int, clip float64) {
	n := (x1 - x0) * (y1 - y0)
	if n == 0 {
		return
	}

	var hist [256]int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[g.GrayAt(x, y).Y]++
		}
	}

	// Clip histogram peaks and spread the excess uniformly, which bounds
	// the contrast amplification within the tile.
	limit := int(clip * float64(n) / 256)
	if limit < 1 {
		limit = 1
	}
	excess := 0
	for i := range hist {
		if hist[i] > limit {
			excess += hist[i] - limit
			hist[i] = limit
		}
	}
	share := excess / 256
	for i := range hist {
		hist[i] += share
	}

	var lut [256]uint8
	cum := 0
	for i := range hist {
		cum += hist[i]
		lut[i] = uint8(min(cum*255/n, 255))
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			out.SetGray(x, y, color.Gray{Y: lut[g.GrayAt(x, y).Y]})
		}
	}
}
