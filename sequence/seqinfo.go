package sequence

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// SeqInfoFile is the metadata file name inside a sequence directory
const SeqInfoFile = "seqinfo.ini"

// Info holds the [Sequence] section of seqinfo.ini
type Info struct {
	// Name of the sequence, optional
	Name string
	// ImageDir is the image subdirectory, relative to the sequence directory
	ImageDir string
	// ImageExt is the image extension including the leading dot
	ImageExt string
	// Length is the number of frames
	Length int
	// Width is the image width in pixels
	Width int
	// Height is the image height in pixels
	Height int
	// FrameRate is the capture rate, 0 when not declared
	FrameRate int
}

// readSeqInfo parses the [Sequence] section of a seqinfo.ini file
func readSeqInfo(path string) (Info, error) {

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")

	if err := v.ReadInConfig(); err != nil {
		return Info{}, errors.Wrapf(ErrInvalidSeqInfo, "reading %s: %v", path, err)
	}

	// ini keys are flattened to "<section>.<key>" and lower cased
	const sec = "sequence."

	info := Info{
		Name:      v.GetString(sec + "name"),
		ImageDir:  v.GetString(sec + "imdir"),
		ImageExt:  v.GetString(sec + "imext"),
		Length:    v.GetInt(sec + "seqlength"),
		Width:     v.GetInt(sec + "imwidth"),
		Height:    v.GetInt(sec + "imheight"),
		FrameRate: v.GetInt(sec + "framerate"),
	}

	switch {
	case info.ImageDir == "":
		return info, errors.Wrapf(ErrInvalidSeqInfo, "%s: imDir missing", path)
	case info.ImageExt == "":
		return info, errors.Wrapf(ErrInvalidSeqInfo, "%s: imExt missing", path)
	case info.Length <= 0:
		return info, errors.Wrapf(ErrInvalidSeqInfo, "%s: seqLength must be positive", path)
	case info.Width <= 0 || info.Height <= 0:
		return info, errors.Wrapf(ErrInvalidSeqInfo, "%s: imWidth and imHeight must be positive", path)
	}

	return info, nil
}

// imagePadding returns the number of digits used in frame image filenames,
// inferred from the first image in dir with the given extension
func imagePadding(dir, ext string) (int, error) {

	entries, err := os.ReadDir(dir)

	if err != nil {
		return 0, errors.Wrapf(ErrNoImages, "reading %s: %v", dir, err)
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		// frames may be symlinks into a shared image store
		if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
			names = append(names, e.Name())
		}
	}

	if len(names) == 0 {
		return 0, errors.Wrapf(ErrNoImages, "no *%s files in %s", ext, dir)
	}

	sort.Strings(names)

	return len(strings.TrimSuffix(filepath.Base(names[0]), ext)), nil
}

// ReadInfo parses the seqinfo.ini of a sequence directory without loading
// any annotations, for splits that ship without ground truth
func ReadInfo(dir string) (Info, error) {

	if err := checkDir(dir); err != nil {
		return Info{}, err
	}

	return readSeqInfo(filepath.Join(dir, SeqInfoFile))
}

// checkDir returns ErrDirNotFound unless dir is an existing directory
func checkDir(dir string) error {

	st, err := os.Stat(dir)

	if err == nil && st.IsDir() {
		return nil
	}

	abs, absErr := filepath.Abs(dir)

	if absErr != nil {
		abs = dir
	}

	return errors.Wrapf(ErrDirNotFound, "directory '%s' does not exist", abs)
}
