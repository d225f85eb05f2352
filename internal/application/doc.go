// Package application provides application initialization and dependency
// wiring. It encapsulates the creation of the calculator, preset store, and
// slicer, and drives the run pipeline (load image, compute regions, preview
// or export), making the main package cleaner and more focused on CLI parsing
// and orchestration.
package application
