// Package ebitenhost runs frames viewports inside an [Ebitengine] game loop.
//
// The host owns a [frames.Document]: each tick it either polls the real
// mouse into it or, when a script is attached, replays the next scripted
// step. It also advances a [stream.ManualClock] by one tick so that timed
// streams (single and double clicks) follow game time.
//
//	doc := frames.NewDocument()
//	game := ebitenhost.NewGame(doc, ebitenhost.RunConfig{Title: "demo", Width: 640, Height: 480})
//	events := game.AddCanvas(canvas)
//	err := ebitenhost.Run(game)
//
// [Ebitengine]: https://ebitengine.org
package ebitenhost
