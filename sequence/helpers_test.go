package sequence

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// seqFixture describes a sequence directory written to a temp dir
type seqFixture struct {
	name   string
	length int
	width  int
	height int
	ext    string
	// gt is the content of gt/gt.txt
	gt string
	// det is the content of det/det.txt, skipped when empty
	det string
	// pngSize writes real PNG frames of this size instead of empty files
	pngSize *image.Point
	// noImages leaves the image directory empty
	noImages bool
}

func defaultFixture() seqFixture {
	return seqFixture{
		name:   "dancetrack0001",
		length: 2,
		width:  64,
		height: 48,
		ext:    ".jpg",
		gt:     "1,1,0,0,10,10,1,1,1\n2,1,1,1,10,10,1,1,1\n",
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func writePNG(t *testing.T, path string, size image.Point) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, size.X, size.Y))))
}

// writeSequence creates the fixture under a new temp dir and returns the
// sequence directory
func writeSequence(t *testing.T, fx seqFixture) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), fx.name)

	writeFile(t, filepath.Join(dir, SeqInfoFile), fmt.Sprintf(`[Sequence]
name=%s
imDir=img1
frameRate=20
seqLength=%d
imWidth=%d
imHeight=%d
imExt=%s
`, fx.name, fx.length, fx.width, fx.height, fx.ext))

	imgDir := filepath.Join(dir, "img1")
	require.NoError(t, os.MkdirAll(imgDir, 0755))

	if !fx.noImages {
		for frame := 1; frame <= fx.length; frame++ {
			path := filepath.Join(imgDir, fmt.Sprintf("%08d%s", frame, fx.ext))

			if fx.pngSize != nil {
				writePNG(t, path, *fx.pngSize)
				continue
			}

			writeFile(t, path, "")
		}
	}

	writeFile(t, filepath.Join(dir, DefaultGroundTruthPath), fx.gt)

	if fx.det != "" {
		writeFile(t, filepath.Join(dir, DefaultDetectionsPath), fx.det)
	}

	return dir
}
