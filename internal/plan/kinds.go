package plan

// Kind selects the motion treatment applied to one image stage.
type Kind int

const (
	ZoomIn Kind = iota
	ZoomOut
	PanLeft
	PanRight
	PanUp
	PanDown

	kindCount = 6
)

var kindNames = [kindCount]string{
	"zoom_in", "zoom_out", "pan_left", "pan_right", "pan_up", "pan_down",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// KindFor maps a zero-based image position to its animation kind. The
// assignment is cyclic and purely positional, so the same image count
// always yields the same sequence.
func KindFor(i int) Kind {
	if i < 0 {
		i = 0
	}
	return Kind(i % kindCount)
}
