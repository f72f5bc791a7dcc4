package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-motstats/sequence"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestMatchTrackerLogs(t *testing.T) {

	dir := filepath.Join(t.TempDir(), "dancetrack0001")

	writeFile(t, filepath.Join(dir, "seqinfo.ini"), `[Sequence]
name=dancetrack0001
imDir=img1
frameRate=20
seqLength=2
imWidth=64
imHeight=48
imExt=.jpg
`)
	writeFile(t, filepath.Join(dir, "img1", "00000001.jpg"), "")
	writeFile(t, filepath.Join(dir, "img1", "00000002.jpg"), "")
	writeFile(t, filepath.Join(dir, "gt", "gt.txt"),
		"1,1,0,0,10,10,1,1,1\n2,1,1,1,10,10,1,1,1\n")

	// one box on the ground truth, one far away
	out := filepath.Join(dir, "tracker.txt")
	writeFile(t, out, "1,7,0,0,10,10,0.9\n2,8,40,30,10,10,0.8\n")

	seq, err := sequence.New(dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer log.SetOutput(os.Stderr)

	matchTracker(seq, out, 0.5)

	assert.Equal(t, "Tracker output: 2 tracks, 1 of 2 boxes matched (50.0%)\n", buf.String())
}
