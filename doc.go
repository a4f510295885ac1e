/*
go-balltrack tracks a single moving ball through a folder of video frames.

The main tracking method is a particle filter that models the ball's
appearance with an intensity histogram and scores particle hypotheses using
the Hellinger distance between histograms.  An alternative Hough circle
transform tracker is provided for footage where the ball presents as a clean
circular edge.

The root package handles frame enumeration and inter-frame timing.  The
filter and hough subpackages implement the two tracking methods, render draws
tracking output onto frames and report produces speed curves, HTML reports
and movies from a completed run.

See example code and usage in the example subdirectory.
*/
package balltrack
