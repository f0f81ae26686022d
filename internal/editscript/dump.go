package editscript

import "strings"

// Dump serialises a Script back to edit-script text. Round-tripping a
// script through Parse(Dump(s)) reproduces the same blocks, modulo blank
// separator lines between them.
func Dump(s *Script) string {
	var b strings.Builder
	for i, block := range s.Blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(block.Path)
		b.WriteByte('\n')
		for _, tag := range block.Tags {
			b.WriteString("    ")
			b.WriteString(tag)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
