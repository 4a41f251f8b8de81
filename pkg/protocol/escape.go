package protocol

import "strings"

var pangoReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
	"\"", "&quot;",
)

// PangoEscape makes s safe to embed in a block whose markup is "pango".
func PangoEscape(s string) string {
	return pangoReplacer.Replace(s)
}
