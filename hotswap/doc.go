// Package hotswap ties the archive locator to a remote session: it turns a
// source reference into a class file fragment, extracts the matching class
// from the project's jars, uploads it and asks Arthas to redefine it inside
// a running JVM.
package hotswap
