package variance

// Boundedness describes the extent of a variant property.
type Boundedness uint8

const (
	// Closed means the property has a fixed, finite extent.
	Closed Boundedness = iota
	// Open means the property is unbounded.
	Open
)

// String returns the string representation of Boundedness.
func (b Boundedness) String() string {
	switch b {
	case Closed:
		return "closed"
	case Open:
		return "open"
	default:
		return "unknown"
	}
}

// IsOpen reports whether b is Open.
func (b Boundedness) IsOpen() bool { return b == Open }

// IsClosed reports whether b is Closed.
func (b Boundedness) IsClosed() bool { return b == Closed }

// Join returns Open if either side is Open.
func (b Boundedness) Join(other Boundedness) Boundedness {
	if b == Open || other == Open {
		return Open
	}
	return Closed
}
