package model

// Level represents a heading level assigned to a block. LevelNone means the
// block is not a heading. A block carries at most one level at a time.
type Level int

const (
	LevelNone Level = iota
	LevelH1
	LevelH2
	LevelH3
	LevelH4
)

// String returns the conventional label for the level ("H1".."H4", or ""
// for LevelNone).
func (l Level) String() string {
	switch l {
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	case LevelH4:
		return "H4"
	default:
		return ""
	}
}

// HTMLTag returns the HTML element name for the level, or "p" for LevelNone
func (l Level) HTMLTag() string {
	switch l {
	case LevelH1:
		return "h1"
	case LevelH2:
		return "h2"
	case LevelH3:
		return "h3"
	case LevelH4:
		return "h4"
	default:
		return "p"
	}
}

// Depth returns the numeric depth of the level (1 for H1 .. 4 for H4,
// 0 for LevelNone).
func (l Level) Depth() int {
	return int(l)
}

// IsHeading reports whether the level denotes an actual heading
func (l Level) IsHeading() bool {
	return l >= LevelH1 && l <= LevelH4
}

// LevelFromDepth returns the level for a numeric depth, clamping depths
// below 1 to LevelNone and above 4 to LevelH4.
func LevelFromDepth(depth int) Level {
	switch {
	case depth < 1:
		return LevelNone
	case depth > 4:
		return LevelH4
	default:
		return Level(depth)
	}
}

// ParseLevel converts a label such as "H2" or "h2" to a Level. Unknown
// labels yield LevelNone.
func ParseLevel(s string) Level {
	switch s {
	case "H1", "h1":
		return LevelH1
	case "H2", "h2":
		return LevelH2
	case "H3", "h3":
		return LevelH3
	case "H4", "h4":
		return LevelH4
	default:
		return LevelNone
	}
}
