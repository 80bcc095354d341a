package render

// FrameStats counts what the last Render call did.
type FrameStats struct {
	Subsectors   int // subsectors visited
	Segs         int // segs considered
	SegsInFOV    int // segs surviving field-of-view clipping
	TwoSided     int // visible two-sided segs, not drawn as occluders
	SolidWalls   int // one-sided segs submitted to the clipper
	Fragments    int // visible fragments drawn
	SolidRanges  int // occlusion ranges at the end of the frame
	ScreenFilled bool
}
