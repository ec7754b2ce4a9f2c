// Package ecs publishes hit-tested pointer events into a [Donburi] world.
//
// [NewBridge] subscribes to an annotated event source (a frames.FrameSource
// or one of its views) and republishes every event as a [HitEvent]. Systems
// subscribe to [HitEventType] and drain it with ProcessEvents:
//
//	bridge := ecs.NewBridge(world, src)
//	defer bridge.Close()
//	ecs.HitEventType.Subscribe(world, onHit)
//	// each tick:
//	ecs.HitEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
