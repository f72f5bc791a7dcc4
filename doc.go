/*
go-motstats loads multi-object-tracking datasets laid out in the
MOTChallenge/DanceTrack directory format and computes dataset statistics
over them: frame and identity counts, the number of box pairs a human
annotator would need to compare, and how many ground truth boxes overlap.

The sequence package parses a single capture directory into frame and
identity keyed indices of ground truth, raw detector output and tracker
output.  The overlap package measures box overlap and the stats package
walks whole dataset splits and persists a summary.

See example code and usage in the example subdirectory.
*/
package motstats
