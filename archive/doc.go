// Package archive finds compiled class files buried inside jar files.
//
// A Locator walks a zip container depth-first, reopening every member whose
// name ends in ".jar" as a nested container, and hands each member whose base
// name contains the target fragment to a Sink as soon as it is found. The
// DirSink shipped here copies matches flat into one output directory and
// keeps the resulting manifest.
//
// Start with Extract for the common case of searching a whole project tree.
package archive
