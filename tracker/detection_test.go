package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDetection(t *testing.T) {

	d := NewDetection(NewRect(1, 2, 10, 20), 7)

	assert.Equal(t, 7, d.Frame())
	assert.Equal(t, 11.0, d.Right())
	assert.Equal(t, 22.0, d.Bottom())
	assert.Equal(t, 6.0, d.CenterX())
	assert.Equal(t, 12.0, d.CenterY())

	_, ok := d.Confidence()
	assert.False(t, ok)

	_, ok = d.TrackID()
	assert.False(t, ok)

	_, ok = d.MatchedID()
	assert.False(t, ok)
}

func TestDetectionOptions(t *testing.T) {

	d := NewDetection(NewRect(0, 0, 1, 1), 1, WithConfidence(0.75), WithTrackID(4))

	conf, ok := d.Confidence()
	assert.True(t, ok)
	assert.Equal(t, 0.75, conf)

	id, ok := d.TrackID()
	assert.True(t, ok)
	assert.Equal(t, 4, id)
}

func TestDetectionWithMatch(t *testing.T) {

	d := NewDetection(NewRect(0, 0, 1, 1), 1, WithTrackID(4))
	m := d.WithMatch(9)

	id, ok := m.MatchedID()
	assert.True(t, ok)
	assert.Equal(t, 9, id)

	// original is untouched
	_, ok = d.MatchedID()
	assert.False(t, ok)
	assert.Equal(t, d.Rect(), m.Rect())
}

func TestDetectionString(t *testing.T) {

	d := NewDetection(NewRect(0, 0, 10, 10), 1)
	assert.Equal(t, "<Det: frame=   1, bbox=(   0.0    0.0   10.0   10.0)>", d.String())

	d = NewDetection(NewRect(1.5, 2, 10, 10), 12, WithConfidence(0.9), WithTrackID(3)).WithMatch(5)
	assert.Equal(t,
		"<Det: frame=  12, bbox=(   1.5    2.0   10.0   10.0), conf=0.900, trid=   3, mtid=   5>",
		d.String())
}
