// Package config centralizes the knobs that control one STA run: PE
// pipelining, resource limits, and the delay table to load against.
//
// # Basic usage
//
//	cfg := config.Default()
//	cfg.Pipelined = true
//
// # Environment
//
// FromEnv reads PIPELINED, PE_LATENCY and DELAY_TABLE_PATH into a Config;
// cmd/sta calls it once at startup. Default and the Config methods never
// read the environment, and pkg/construct and pkg/sta take peLatency as an
// explicit parameter.
package config
