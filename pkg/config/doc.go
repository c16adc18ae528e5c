// Package config loads nestview's tunables from a TOML file.
//
// Every constant the engine uses has a default in [Default]; a file only
// needs the keys it changes:
//
//	[visibility]
//	max_hops = 4
//
//	[render]
//	max_box_width = 300
//	rightward_only = true
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[source]
//	token_env = "NESTVIEW_TOKEN"
//
// [Load] overlays a file on the defaults and validates the result. The
// To* methods convert a section into the options struct of the package it
// configures, so hosts never copy fields by hand.
package config
