// Package bongocat animates a desktop Bongo Cat for [Ebitengine].
//
// The cat sits in a small window docked to the bottom-right corner of the
// screen. Its paw follows the mouse cursor along a Bezier stroke, and key
// sprites light up while the matching keys are held.
//
// # Quick start
//
//	watcher, err := bongocat.NewConfigWatcher("conf.yaml", bongocat.DefaultReloadInterval)
//	// ...
//	watcher.Start()
//	defer watcher.Stop()
//
//	assets, err := bongocat.LoadAssets("init.yaml", "keyinf.yaml")
//	// ...
//	mascot, err := bongocat.NewMascot(assets, watcher, bongocat.MascotOptions{})
//	// ...
//	bongocat.Run(mascot, bongocat.RunConfig{})
//
// # Geometry
//
// Everything the renderer draws is derived per tick from pure functions:
//
//   - 4x4 transforms ([Scale], [Rotate], [Translate], [Perspective],
//     [InversePerspective], [TranAndRot]) in the row-vector convention:
//     a point is transformed as v' = v * M and [Compose] multiplies left
//     to right.
//   - [SolveHomography] maps screen pixels to canvas coordinates.
//   - [BezierCurve] samples a curve of any degree.
//   - [SynthesizeTrajectory] builds the paw stroke from two anchors and the
//     cursor.
//   - [NewSpriteQuad] pairs a bounding box with its texture extent.
//
// [ComputeFrame] ties them together. A degenerate cursor position never
// fails a frame: the stroke is skipped for that tick and the paw keeps its
// last offset.
//
// # Configuration
//
// conf.yaml is re-read once a second by [ConfigWatcher]. A broken edit is
// logged and the previous values stay in effect. The sprite manifests
// (init.yaml and keyinf.yaml) are read once at startup; layers are drawn in
// manifest order.
//
// # ECS integration
//
// Key events can be forwarded to a [Donburi] world through the adapter in
// bongocat/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package bongocat
