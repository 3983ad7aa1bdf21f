package reactive

import "strings"

// ParsePath compiles a dot-delimited path expression into a read function
// over nested Objects. Returns nil (the failure sentinel; callers warn and
// fall back to a no-op) when the expression contains anything but letters,
// digits, underscores, '$' and dots.
//
// The returned function walks one Object field per segment, firing each
// field's tracked read, and returns nil as soon as a segment is missing or
// the intermediate value is not an Object.
func ParsePath(path string) func(root any) any {
	if !validPath(path) {
		return nil
	}
	segments := strings.Split(path, ".")
	return func(root any) any {
		cur := root
		for _, seg := range segments {
			obj, ok := cur.(*Object)
			if !ok {
				return nil
			}
			cur = obj.Get(seg)
		}
		return cur
	}
}

func validPath(path string) bool {
	if path == "" {
		return false
	}
	for _, r := range path {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '$' || r == '.':
		default:
			return false
		}
	}
	return true
}
