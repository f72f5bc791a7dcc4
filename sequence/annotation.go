package sequence

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/swdee/go-motstats/tracker"
)

const (
	// gtFields is the exact field count of a ground truth record
	gtFields = 9
	// detFields is the number of leading fields consumed from raw detection
	// and tracker output records
	detFields = 7
)

// recordParser converts the fields of one line into a Detection.  A nil
// Detection with a nil error skips the line
type recordParser func(fields []string) (*tracker.Detection, error)

// readAnnotations parses every non blank line of a comma separated
// annotation file.  Lines with fewer than minFields fields, or more than
// maxFields when maxFields is positive, are rejected
func readAnnotations(path string, minFields, maxFields int,
	parse recordParser) ([]*tracker.Detection, error) {

	f, err := os.Open(path)

	if err != nil {
		return nil, errors.Wrap(err, "error opening annotation file")
	}

	defer f.Close()

	var dets []*tracker.Detection

	scanner := bufio.NewScanner(f)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")

		if len(fields) < minFields || (maxFields > 0 && len(fields) > maxFields) {
			return nil, &ParseError{
				File: path,
				Line: lineNo,
				Err:  fmt.Errorf("expected %s fields, got %d", fieldRange(minFields, maxFields), len(fields)),
			}
		}

		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		det, err := parse(fields)

		if err != nil {
			return nil, &ParseError{File: path, Line: lineNo, Err: err}
		}

		if det != nil {
			dets = append(dets, det)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading annotation file")
	}

	return dets, nil
}

func fieldRange(min, max int) string {
	if max <= 0 {
		return fmt.Sprintf("at least %d", min)
	}
	if min == max {
		return strconv.Itoa(min)
	}
	return fmt.Sprintf("%d to %d", min, max)
}

// parseBox reads the left, top, width, height fields starting at fields[2]
func parseBox(fields []string) (tracker.Rect, error) {

	var v [4]float64

	for i := 0; i < 4; i++ {
		f, err := strconv.ParseFloat(fields[2+i], 64)

		if err != nil {
			return tracker.Rect{}, errors.Wrapf(err, "field %d", 3+i)
		}

		v[i] = f
	}

	return tracker.NewRect(v[0], v[1], v[2], v[3]), nil
}

func parseInt(fields []string, idx int) (int, error) {
	n, err := strconv.Atoi(fields[idx])
	if err != nil {
		return 0, errors.Wrapf(err, "field %d", idx+1)
	}
	return n, nil
}

func parseFloat(fields []string, idx int) (float64, error) {
	f, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil {
		return 0, errors.Wrapf(err, "field %d", idx+1)
	}
	return f, nil
}

// groundTruthParser parses frame,id,l,t,w,h,class,_,_ keeping only records
// whose class is in classIDs
func groundTruthParser(classIDs map[int]struct{}) recordParser {
	return func(fields []string) (*tracker.Detection, error) {

		cls, err := parseInt(fields, 6)

		if err != nil {
			return nil, err
		}

		if _, ok := classIDs[cls]; !ok {
			return nil, nil
		}

		frame, err := parseInt(fields, 0)

		if err != nil {
			return nil, err
		}

		id, err := parseInt(fields, 1)

		if err != nil {
			return nil, err
		}

		rect, err := parseBox(fields)

		if err != nil {
			return nil, err
		}

		return tracker.NewDetection(rect, frame, tracker.WithTrackID(id)), nil
	}
}

// rawDetectionParser parses frame,_,l,t,w,h,conf
func rawDetectionParser(fields []string) (*tracker.Detection, error) {

	frame, err := parseInt(fields, 0)

	if err != nil {
		return nil, err
	}

	rect, err := parseBox(fields)

	if err != nil {
		return nil, err
	}

	conf, err := parseFloat(fields, 6)

	if err != nil {
		return nil, err
	}

	return tracker.NewDetection(rect, frame, tracker.WithConfidence(conf)), nil
}

// trackerOutputParser parses frame,id,l,t,w,h,conf
func trackerOutputParser(fields []string) (*tracker.Detection, error) {

	frame, err := parseInt(fields, 0)

	if err != nil {
		return nil, err
	}

	id, err := parseInt(fields, 1)

	if err != nil {
		return nil, err
	}

	rect, err := parseBox(fields)

	if err != nil {
		return nil, err
	}

	conf, err := parseFloat(fields, 6)

	if err != nil {
		return nil, err
	}

	return tracker.NewDetection(rect, frame, tracker.WithTrackID(id),
		tracker.WithConfidence(conf)), nil
}
