package debpatch

import "fmt"

// colorPrinter is the common surface of gookit's *color.Theme and
// *color.Style, so helpers can take either.
type colorPrinter interface {
	Printf(format string, a ...any)
	Println(a ...any)
}

// cPrintf prints with the given style, or plain when p is nil.
func cPrintf(p colorPrinter, format string, a ...any) {
	if p == nil {
		fmt.Printf(format, a...)
		return
	}
	p.Printf(format, a...)
}

// cPrintln prints a line with the given style, or plain when p is nil.
func cPrintln(p colorPrinter, a ...any) {
	if p == nil {
		fmt.Println(a...)
		return
	}
	p.Println(a...)
}

// debugf prints in the info style when DEBPATCH_DEBUG is on, so debug
// chatter stands apart from the output of the spawned tools.
func debugf(format string, args ...any) {
	if Debug {
		cPrintf(colInfo, format, args...)
	}
}
