// Package style owns syntax-highlighting colour styles and the table they are
// selected from.
//
// A Registry is an explicit, caller-owned name -> style table. Nothing in
// this package mutates chroma's process-wide style registry; the built-in
// chroma styles are only read to seed a new table.
package style
