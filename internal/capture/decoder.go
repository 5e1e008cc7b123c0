package capture

import (
	"errors"
	"fmt"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ImageDecoder reads QR codes from frame images. Frames that already carry
// text are passed through untouched.
type ImageDecoder struct {
	hints map[gozxing.DecodeHintType]interface{}
}

// NewImageDecoder creates a QR decoder that tries hard on every frame
func NewImageDecoder() *ImageDecoder {
	return &ImageDecoder{
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Decode implements Decoder
func (d *ImageDecoder) Decode(frame Frame) (string, error) {
	if frame.Text != "" {
		return frame.Text, nil
	}
	if frame.Image == nil {
		return "", nil
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(frame.Image)
	if err != nil {
		return "", fmt.Errorf("prepare frame bitmap: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, d.hints)
	if err != nil {
		var notFound gozxing.NotFoundException
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("decode qr frame: %w", err)
	}
	return result.GetText(), nil
}
