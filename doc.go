// Package tripatch replaces the flat triangles of a tessellated surface
// with curved Bézier patches. Each triangle, augmented with per-vertex
// surface normals and optional feature-edge tangents, becomes a cubic or
// rational quadratic triangular patch that approximates the surface the
// triangle was cut from, and is then re-expressed as rectangular
// tensor-product patches for consumers that only understand those.
//
// # Triangles and surfaces
//
// A [Triangle] has three [Vertex] values (point and unit normal), three
// [Side] values and a [Surface]. The surface class selects how edges are
// built: [Generic] for spheres and freeform surfaces, [Cylinder] and
// [Cone]. A cone needs its apex, axis and half angle; use [NewCone] or
// [ResolveCone] to obtain validated parameters.
//
// Sides on a feature edge, where two faces of the body meet at an angle,
// are built from tangents rather than normals. [Triangle.SetFaceBoundary]
// and [ApplyFaceBoundaries] derive those tangents from the normals of the
// neighboring face.
//
// # Building patches
//
// Every triangle is built independently:
//
//   - [BuildCubic] builds the ten poles of a cubic patch. Edges come from
//     [CubicEdge] or [CubicEdgeFromTangents], the interior pole from
//     [MidPole].
//   - [BuildQuadratic] builds the six weighted poles of a rational
//     quadratic patch, using [QuadEdge] or [QuadEdgeFromTangents].
//   - [BuildMixed] builds a quadratic patch unless a side is inflected (see
//     [IsInflected]), in which case it builds a cubic one.
//
// [Build] combines the above with the rectangular conversion selected by
// [Options]; [Patches] and [BuildAll] process batches, sequentially and
// concurrently. A failing triangle never aborts a batch.
//
// Degenerate geometry, such as parallel normals or tangents pointing at
// each other, is not an error. The affected edge degrades to a straight
// line, which is logged at debug level (see [SetLogger]). Errors are
// reserved for malformed input, unusable cone parameters and patches that
// overflow the floating-point range; [Build] never returns a patch with NaN
// or infinite poles.
//
// # Rectangular patches
//
// [CubicTriangle.Pinched] and [QuadTriangle.Pinched] return a single
// rectangular patch with one side collapsed into a corner.
// [CubicTriangle.Packed] returns three rectangular patches without
// degenerate corners that tile the triangle. Both are exact
// reparametrizations of the triangular patch.
//
// # Literature
//
// This package makes use of the following ideas:
//   - [Bézier triangle]
//   - Curves and Surfaces for CAGD by Gerald Farin, chapters on conics and
//     rational quadratics (the shoulder point and ρ parameter)
//   - Curved PN Triangles by Vlachos, Peters, Boyd and Mitchell
//   - Conversion between triangular and rectangular Bézier patches by
//     Shi-Min Hu
//
// [Bézier triangle]: https://en.wikipedia.org/wiki/B%C3%A9zier_triangle
package tripatch
