package valueobject

import (
	"fmt"
	"strings"
)

// Format renders v as
//
//	Name(
//	    alpha = 1,
//	    b     = [1, 2]
//	)
//
// with values produced by r. Re-entering Format for an instance
// already being formatted yields "Name(...)".
func Format(v any, r Renderer) string {
	sv, ptr, ok := structOf(v)
	if !ok {
		return r.Render(v)
	}

	name := sv.Type().Name()
	if !enter("format", ptr) {
		return name + "(...)"
	}
	defer leave("format", ptr)

	names := Fields(sv.Type(), false)
	if len(names) == 0 {
		return name + "()"
	}

	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}
	cont := strings.Repeat(" ", 4+width+3)

	lines := make([]string, 0, len(names))
	for _, n := range names {
		value := r.Render(sv.FieldByName(n).Interface())
		value = strings.ReplaceAll(value, "\n", "\n"+cont)
		lines = append(lines, fmt.Sprintf("    %-*s = %s", width, n, value))
	}
	return name + "(\n" + strings.Join(lines, ",\n") + "\n)"
}
