// Package builder turns the documentation sources and the build
// configuration into HTML, manual page, LaTeX and Texinfo output.
//
// Markdown sources are rendered with goldmark; sources with any other
// suffix (reStructuredText by default) are carried through as literal text
// under their underlined title. Every build writes a build-report.json next
// to its output.
package builder
