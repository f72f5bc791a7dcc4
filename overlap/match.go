package overlap

import (
	"sort"

	"github.com/swdee/go-motstats/tracker"
)

// MatchFrame pairs tracker detections with ground truth detections of the
// same frame greedily by descending IoU, only accepting pairs with an IoU
// above threshold.  The returned slice is parallel to dts, matched entries
// are replaced by copies carrying the ground truth track ID as MatchedID.
// Each ground truth detection is matched at most once
func MatchFrame(gts, dts []*tracker.Detection, threshold float64) []*tracker.Detection {

	type candidate struct {
		gt, dt int
		iou    float64
	}

	var cands []candidate

	for i, gt := range gts {
		if _, ok := gt.TrackID(); !ok {
			continue
		}

		for j, dt := range dts {
			iou := IoU(gt.Rect(), dt.Rect())

			if iou > threshold {
				cands = append(cands, candidate{gt: i, dt: j, iou: iou})
			}
		}
	}

	// ties resolved by input order so results are deterministic
	sort.SliceStable(cands, func(a, b int) bool {
		return cands[a].iou > cands[b].iou
	})

	usedGT := make([]bool, len(gts))
	out := make([]*tracker.Detection, len(dts))
	copy(out, dts)
	matched := make([]bool, len(dts))

	for _, c := range cands {
		if usedGT[c.gt] || matched[c.dt] {
			continue
		}

		id, _ := gts[c.gt].TrackID()
		out[c.dt] = dts[c.dt].WithMatch(id)
		usedGT[c.gt] = true
		matched[c.dt] = true
	}

	return out
}
