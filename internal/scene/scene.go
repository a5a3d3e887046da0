// Package scene describes rendered charts as plain data. Renderers build a
// Scene; surfaces clear themselves and draw it.
package scene

import "fmt"

// Kind identifies what an element draws.
type Kind int

const (
	// KindAxis is an axis line with ticks.
	KindAxis Kind = iota
	// KindMarker is a circular data point.
	KindMarker
	// KindLabel is text placed next to a data point.
	KindLabel
	// KindPath is a connected polyline.
	KindPath
	// KindTitle is chart or axis title text.
	KindTitle
)

var kindNames = [...]string{"axis", "marker", "label", "path", "title"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown element kind %q", text)
}

// Orientation places an axis.
type Orientation int

const (
	// OrientBottom is a horizontal axis with ticks below it.
	OrientBottom Orientation = iota
	// OrientLeft is a vertical axis with ticks left of it.
	OrientLeft
)

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if o == OrientLeft {
		return []byte("left"), nil
	}
	return []byte("bottom"), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "bottom":
		*o = OrientBottom
	case "left":
		*o = OrientLeft
	default:
		return fmt.Errorf("unknown orientation %q", text)
	}
	return nil
}

// Point is a position in logical pixels. Y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tick is one axis tick.
type Tick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Axis describes an axis line. For a bottom axis Cross is its y coordinate
// and From/To span x; for a left axis Cross is x and From/To span y.
type Axis struct {
	Orient Orientation `json:"orient"`
	Cross  float64     `json:"cross"`
	From   float64     `json:"from"`
	To     float64     `json:"to"`
	Ticks  []Tick      `json:"ticks"`
}

// Element is one visual element.
type Element struct {
	Kind   Kind    `json:"kind"`
	Entity string  `json:"entity,omitempty"`
	At     Point   `json:"at"`
	Radius float64 `json:"radius,omitempty"`
	Text   string  `json:"text,omitempty"`
	Rotate float64 `json:"rotate,omitempty"`
	Points []Point `json:"points,omitempty"`
	Axis   *Axis   `json:"axis,omitempty"`
}

// Scene is everything one render pass draws on a surface of Width x Height
// logical pixels.
type Scene struct {
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Elements []Element `json:"elements"`
}

// Add appends elements.
func (s *Scene) Add(el ...Element) {
	s.Elements = append(s.Elements, el...)
}

// Filter returns the elements of the given kind.
func (s Scene) Filter(kind Kind) []Element {
	var out []Element
	for _, el := range s.Elements {
		if el.Kind == kind {
			out = append(out, el)
		}
	}
	return out
}

// Owned returns the elements that belong to entity.
func (s Scene) Owned(entity string) []Element {
	var out []Element
	for _, el := range s.Elements {
		if el.Entity == entity {
			out = append(out, el)
		}
	}
	return out
}

// Surface is a drawing target. Draw adds a scene on top of whatever the
// surface holds; Clear removes everything.
type Surface interface {
	Clear()
	Draw(s Scene)
}

// Render clears surface and draws s, so repeated renders never accumulate.
func Render(surface Surface, s Scene) {
	surface.Clear()
	surface.Draw(s)
}
