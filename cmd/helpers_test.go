package main

import "github.com/m-aljasem/Sample-Size-Calculator/internal/config"

// testConfig mirrors the defaults config.Load applies.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, RateLimitRPS: 20, RateLimitBurst: 40, CORSOrigins: []string{"*"}},
		Engine: config.EngineConfig{CompareConcurrency: 4},
		Export: config.ExportConfig{DefaultFormat: "csv"},
		Log:    config.LogConfig{Level: "info", Format: "json"},
	}
}
