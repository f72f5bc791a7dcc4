package sequence

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FrameImageSize decodes only the header of a frame image and returns its
// dimensions
func (s *Sequence) FrameImageSize(frame int) (image.Point, error) {

	path := s.FrameImagePath(frame)

	f, err := os.Open(path)

	if err != nil {
		return image.Point{}, errors.Wrap(err, "error opening frame image")
	}

	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)

	if err != nil {
		return image.Point{}, errors.Wrapf(err, "error decoding %s", path)
	}

	return image.Point{X: cfg.Width, Y: cfg.Height}, nil
}

// CheckImages verifies every frame in [1, seqLength] has an image with the
// dimensions declared in seqinfo.ini
func (s *Sequence) CheckImages() error {

	want := image.Point{X: s.info.Width, Y: s.info.Height}

	for frame := 1; frame <= s.info.Length; frame++ {
		size, err := s.FrameImageSize(frame)

		if err != nil {
			return err
		}

		if size != want {
			return errors.Wrapf(ErrImageMismatch, "frame %d is %dx%d, expected %dx%d",
				frame, size.X, size.Y, want.X, want.Y)
		}
	}

	return nil
}
