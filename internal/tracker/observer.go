package tracker

import "github.com/yildizm/SiteLens/internal/dom"

// DefaultThreshold is the visible-area ratio at which a section counts as seen
const DefaultThreshold = 0.5

// Observer reports when observed elements cross into visibility.
//
// Each crossing from below the threshold to at or above it calls onVisible
// once. Leaving and re-entering counts as a new crossing.
type Observer struct {
	threshold float64
	onVisible func(el *dom.Element) error
	visible   map[*dom.Element]bool
}

// NewObserver creates an observer. A non-positive threshold uses DefaultThreshold.
func NewObserver(threshold float64, onVisible func(el *dom.Element) error) *Observer {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Observer{
		threshold: threshold,
		onVisible: onVisible,
		visible:   make(map[*dom.Element]bool),
	}
}

// Observe starts watching el. Observing an element twice has no effect.
func (o *Observer) Observe(el *dom.Element) {
	if _, ok := o.visible[el]; !ok {
		o.visible[el] = false
	}
}

// Observing reports whether el is being watched
func (o *Observer) Observing(el *dom.Element) bool {
	_, ok := o.visible[el]
	return ok
}

// Report records the current visible ratio of el and reports whether it
// produced a visibility crossing. Reports for unobserved elements are ignored.
func (o *Observer) Report(el *dom.Element, ratio float64) (bool, error) {
	wasVisible, ok := o.visible[el]
	if !ok {
		return false, nil
	}

	isVisible := ratio >= o.threshold
	o.visible[el] = isVisible
	if !isVisible || wasVisible {
		return false, nil
	}

	if o.onVisible != nil {
		if err := o.onVisible(el); err != nil {
			return true, err
		}
	}
	return true, nil
}
