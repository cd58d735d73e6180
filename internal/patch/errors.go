package patch

import "fmt"

// ParseError reports a settings document whose existing content is not
// valid structured data. It is fatal for the whole run: patching on top of
// a broken document would destroy whatever the user still has in it.
type ParseError struct {
	Path string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("settings file %s is not valid JSON", e.Path)
}

// PathError reports a key-path that cannot be applied because an
// intermediate segment already exists with a non-object value (e.g. a
// string where a nested object is expected). The patcher refuses to
// overwrite it; the user has to resolve the conflict by hand.
type PathError struct {
	Path    string // settings file
	KeyPath string // full dotted key-path being set
	Segment string // dotted prefix holding the non-object value
}

func (e *PathError) Error() string {
	return fmt.Sprintf("cannot set %q in %s: %q exists but is not an object", e.KeyPath, e.Path, e.Segment)
}
