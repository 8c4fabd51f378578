// Package canvas implements the raster drawing engine behind the REXTOON doodle
// widget: a single RGBA surface, a tool model (brush, eraser, line, rect, circle,
// fill), a bounded linear undo/redo history of full-surface snapshots, template
// stamping and PNG export.
//
// The engine is single-threaded. A host adapter (see cmd/doodle) translates
// platform input into Point values in display space, maps them to surface space
// with MapToSurface and calls the engine's methods. The only asynchronous work is
// template loading, which is owned by Templates.
//
//	eng := canvas.New()
//	eng.Initialize(800, 600)
//	eng.SelectTool(canvas.ToolBrush)
//	eng.BeginStroke(canvas.Pt(10, 10))
//	eng.ContinueStroke(canvas.Pt(120, 80))
//	eng.EndStroke()
//	png, err := eng.ExportPNG()
package canvas
