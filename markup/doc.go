// Package markup parses a small description language for styled text
// boxes into a layout request.
//
// A document declares fonts, fallback families, named styles, the box and
// the styled runs of text:
//
//	font "Go" "Regular" "Go-Regular.ttf"
//	candidate "Go" "Regular"
//	fallback Han "Noto Sans SC"
//
//	box { width: 400; height: 300; wrap: 400; align: center middle }
//
//	style body { family: "Go"; size: 24; line-height: auto }
//	style title { family: "Go"; weight: Bold; size: 36; case: upper }
//
//	text title "Hello\n"
//	text body "world"
//
// Statements are separated by newlines or semicolons. Comments start with
// "//" or "#", or are enclosed in "/* */".
package markup
