// Package fuzztests holds go-fuzz targets for the lexer and the engine.
//
//	go test ./internal/fuzz -fuzz=FuzzConvert
package fuzztests
