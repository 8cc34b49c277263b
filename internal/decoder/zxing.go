package decoder

import (
	"image"

	"barcode-scanner/internal/model"

	"github.com/makiuchi-d/gozxing"
)

// zxingDecoder adapts the gozxing multi-format reader to the Decoder port.
// The reader reports at most one code per image; multi-code frames are still
// covered because the engine decodes every preprocessed variant.
type zxingDecoder struct {
	reader gozxing.Reader
	hints  map[gozxing.DecodeHintType]interface{}
}

// NewZxingDecoder creates the default decode capability backed by gozxing.
func NewZxingDecoder() Decoder {
	return &zxingDecoder{
		reader: gozxing.NewMultiFormatReader(),
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Decode runs the multi-format reader over one image. gozxing signals "no
// barcode here" through an error, which maps to an empty detection list.
func (d *zxingDecoder) Decode(img image.Image) ([]model.BarcodeCandidate, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, err
	}

	result, err := d.reader.Decode(bmp, d.hints)
	if err != nil {
		return nil, nil
	}

	var geometry []model.Point
	for _, p := range result.GetResultPoints() {
		geometry = append(geometry, model.Point{X: int(p.GetX()), Y: int(p.GetY())})
	}

	return []model.BarcodeCandidate{{
		Symbology: result.GetBarcodeFormat().String(),
		Payload:   result.GetText(),
		Geometry:  geometry,
	}}, nil
}
