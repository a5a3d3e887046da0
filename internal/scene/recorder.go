package scene

// Recorder is an in-memory Surface that keeps the elements drawn since the
// last Clear.
type Recorder struct {
	width    float64
	height   float64
	elements []Element
	clears   int
	draws    int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Clear implements Surface.
func (r *Recorder) Clear() {
	r.elements = nil
	r.width, r.height = 0, 0
	r.clears++
}

// Draw implements Surface.
func (r *Recorder) Draw(s Scene) {
	r.width = max(r.width, s.Width)
	r.height = max(r.height, s.Height)
	r.elements = append(r.elements, s.Elements...)
	r.draws++
}

// Scene returns a copy of what the surface currently shows.
func (r *Recorder) Scene() Scene {
	return Scene{
		Width:    r.width,
		Height:   r.height,
		Elements: append([]Element(nil), r.elements...),
	}
}

// Len returns the number of elements on the surface.
func (r *Recorder) Len() int {
	return len(r.elements)
}

// Clears returns how many times Clear was called.
func (r *Recorder) Clears() int {
	return r.clears
}

// Draws returns how many times Draw was called.
func (r *Recorder) Draws() int {
	return r.draws
}
