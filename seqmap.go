package motstats

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// seqMapHeader is the header line of a seqmap file
const seqMapHeader = "name"

// ErrNoSequenceID is returned when a sequence name has no numeric suffix
var ErrNoSequenceID = errors.New("sequence name has no numeric id")

// LoadSeqMap reads the sequence names of a split from a seqmap file.  It
// should contain one name per line, the "name" header and blank lines are
// skipped
func LoadSeqMap(file string) ([]string, error) {

	// open the file
	f, err := os.Open(file)

	if err != nil {
		return nil, errors.Wrap(err, "error opening seqmap")
	}

	defer f.Close()

	scanner := bufio.NewScanner(f)

	var names []string

	// read and trim each line
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || line == seqMapHeader {
			continue
		}

		names = append(names, line)
	}

	// check for errors during scanning
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading seqmap")
	}

	return names, nil
}

// SequenceID returns the trailing decimal number of a sequence name, eg:
// "dancetrack0042" is 42 and "MOT17-05-FRCNN" is an error as it ends in
// letters
func SequenceID(name string) (int, error) {

	end := len(name)
	start := end

	for start > 0 && name[start-1] >= '0' && name[start-1] <= '9' {
		start--
	}

	if start == end {
		return 0, errors.Wrapf(ErrNoSequenceID, "%q", name)
	}

	id, err := strconv.Atoi(name[start:end])

	if err != nil {
		return 0, errors.Wrapf(err, "parsing id of %q", name)
	}

	return id, nil
}
