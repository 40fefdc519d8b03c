// Package pong is the simulation core of a two-player Pong game.
//
// State lives in an ecs.Storage: the ball and the two paddles are entities,
// while the playfield, rules, score, session flags and pending input are
// singletons. Each frame runs four systems in order:
//
//	InputSystem  - applies queued key events (start, paddle up/down)
//	PaddleSystem - integrates and clamps paddle positions
//	BallSystem   - integrates the ball, reflects off walls and paddles,
//	               scores, serves and applies the speed ramp
//	MatchSystem  - advances the frame clock and ends the match on WinScore
//
// The plane is y-up: y=0 is the bottom wall. Session is the entry point for
// frontends.
package pong
